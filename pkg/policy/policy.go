// Package policy decides whether an authenticated principal may mutate an
// entity. Authorization is always "exactly the owner, or deny"; there is no
// elevated role.
package policy

import (
	"recipe-hub/domain"
	"recipe-hub/entities"

	"github.com/google/uuid"
)

// AuthorizeOwner permits the request only when ownerID is the caller. denied
// is returned otherwise so callers keep their entity-specific message.
func AuthorizeOwner(principalID, ownerID uuid.UUID, denied error) error {
	if principalID == uuid.Nil || ownerID != principalID {
		return denied
	}
	return nil
}

func AuthorizeRecipe(principalID uuid.UUID, recipe *entities.Recipe) error {
	return AuthorizeOwner(principalID, recipe.UserID, domain.ErrUnauthorizedRecipeAccess)
}

func AuthorizeProfile(principalID uuid.UUID, user *entities.User) error {
	return AuthorizeOwner(principalID, user.ID, domain.ErrUnauthorizedProfileAccess)
}

// AuthorizeCommentDeletion checks the parent recipe before authorship, so a
// comment addressed through the wrong recipe is rejected even for its author.
func AuthorizeCommentDeletion(principalID, recipeID uuid.UUID, comment *entities.Comment) error {
	if comment.RecipeID != recipeID {
		return domain.ErrCommentRecipeMismatch
	}
	return AuthorizeOwner(principalID, comment.UserID, domain.ErrUnauthorizedCommentAccess)
}
