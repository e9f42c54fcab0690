package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	MessageSuccessGetComments   = "success get comments"
	MessageSuccessAddComment    = "Comment added successfully"
	MessageSuccessDeleteComment = "Comment deleted successfully"

	MessageFailedGetComments   = "failed to get comments"
	MessageFailedAddComment    = "failed to add comment"
	MessageFailedDeleteComment = "failed to delete comment"

	ErrCommentNotFound           = errors.New("Comment not found")
	ErrCommentRecipeMismatch     = errors.New("Comment does not belong to the specified recipe")
	ErrUnauthorizedCommentAccess = errors.New("Unauthorized to delete this comment")
)

type (
	AddCommentRequest struct {
		Text string `json:"text" validate:"required" msg:"Comment text is required"`
	}

	CommentAuthor struct {
		ID     string `json:"id"`
		Handle string `json:"handle"`
	}

	Comment struct {
		ID        string        `json:"id"`
		Recipe    string        `json:"recipe"`
		Author    CommentAuthor `json:"author"`
		Text      string        `json:"text"`
		CreatedAt time.Time     `json:"created_at"`
	}
)

func (r *AddCommentRequest) Sanitize() {
	r.Text = strings.TrimSpace(r.Text)
}
