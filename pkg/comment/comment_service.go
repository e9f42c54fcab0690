package comment

import (
	"context"
	"errors"
	"fmt"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/pkg/policy"
	"recipe-hub/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CommentService interface {
		GetComments(ctx context.Context, recipeID uuid.UUID) ([]domain.Comment, error)
		AddComment(ctx context.Context, recipeID, userID uuid.UUID, req domain.AddCommentRequest) (domain.Comment, error)
		DeleteComment(ctx context.Context, recipeID, commentID, userID uuid.UUID) error
	}

	commentService struct {
		commentRepository CommentRepository
		recipeRepository  recipe.RecipeRepository
	}
)

func NewCommentService(commentRepository CommentRepository, recipeRepository recipe.RecipeRepository) CommentService {
	return &commentService{
		commentRepository: commentRepository,
		recipeRepository:  recipeRepository,
	}
}

func toComment(c *entities.Comment) domain.Comment {
	res := domain.Comment{
		ID:        c.ID.String(),
		Recipe:    c.RecipeID.String(),
		Author:    domain.CommentAuthor{ID: c.UserID.String()},
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		res.Author.Handle = c.User.Handle
	}
	return res
}

func (s *commentService) GetComments(ctx context.Context, recipeID uuid.UUID) ([]domain.Comment, error) {
	comments, err := s.commentRepository.GetCommentsByRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, toComment(c))
	}
	return out, nil
}

func (s *commentService) AddComment(ctx context.Context, recipeID, userID uuid.UUID, req domain.AddCommentRequest) (domain.Comment, error) {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, domain.ErrRecipeNotFound
		}
		return domain.Comment{}, fmt.Errorf("find recipe: %w", err)
	}

	comment := &entities.Comment{
		ID:       uuid.New(),
		RecipeID: recipeID,
		UserID:   userID,
		Text:     req.Text,
	}
	if err := s.commentRepository.CreateComment(ctx, comment); err != nil {
		return domain.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return toComment(comment), nil
}

func (s *commentService) DeleteComment(ctx context.Context, recipeID, commentID, userID uuid.UUID) error {
	comment, err := s.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}

	if err := policy.AuthorizeCommentDeletion(userID, recipeID, comment); err != nil {
		return err
	}

	if err := s.commentRepository.DeleteComment(ctx, comment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
