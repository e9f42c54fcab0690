package handlers

import (
	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/middleware"
	"recipe-hub/pkg/comment"

	"github.com/gofiber/fiber/v2"
)

type (
	CommentHandler interface {
		GetComments(c *fiber.Ctx) error
		AddComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
	}

	commentHandler struct {
		commentService comment.CommentService
	}
)

func NewCommentHandler(commentService comment.CommentService) CommentHandler {
	return &commentHandler{
		commentService: commentService,
	}
}

func (h *commentHandler) GetComments(c *fiber.Ctx) error {
	recipeID, err := middleware.ParamID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComments, err)
	}

	res, err := h.commentService.GetComments(c.UserContext(), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *commentHandler) AddComment(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddComment, err)
	}
	recipeID, err := middleware.ParamID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddComment, err)
	}
	req, err := middleware.Body[domain.AddCommentRequest](c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.commentService.AddComment(c.UserContext(), recipeID, userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddComment)
}

func (h *commentHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}
	recipeID, err := middleware.ParamID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}
	commentID, err := middleware.ParamID(c, "commentId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}

	if err := h.commentService.DeleteComment(c.UserContext(), recipeID, commentID, userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteComment)
}
