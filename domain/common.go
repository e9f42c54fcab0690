package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedValidation     = "validation failed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageInternalServerError  = "Internal server error"

	ErrInvalidID       = errors.New("invalid identifier")
	ErrTokenNotFound   = errors.New("authorization token is required")
	ErrTokenInvalid    = errors.New("failed to token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrPrincipalAbsent = errors.New("no authenticated principal on request")
)

type (
	// FieldError is one entry of a validation failure response.
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}

	PaginationResponse struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

// Sanitizer is implemented by request bodies that normalize their own input
// before validation runs.
type Sanitizer interface {
	Sanitize()
}
