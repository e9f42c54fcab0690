package presenters

import (
	"errors"

	"recipe-hub/domain"
	"recipe-hub/internal/utils/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidID, fiber.StatusBadRequest},
	{domain.ErrInvalidHandle, fiber.StatusBadRequest},
	{domain.ErrCommentRecipeMismatch, fiber.StatusBadRequest},
	{domain.ErrInvalidImageFormat, fiber.StatusBadRequest},
	{storage.ErrFileTypeNotAllowed, fiber.StatusBadRequest},
	{domain.ErrImageRequired, fiber.StatusBadRequest},

	{domain.ErrTokenNotFound, fiber.StatusUnauthorized},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{domain.ErrPrincipalAbsent, fiber.StatusUnauthorized},

	{domain.ErrTokenInvalid, fiber.StatusForbidden},
	{domain.ErrTokenExpired, fiber.StatusForbidden},
	{domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
	{domain.ErrUnauthorizedCommentAccess, fiber.StatusForbidden},
	{domain.ErrUnauthorizedProfileAccess, fiber.StatusForbidden},

	{domain.ErrUserNotFound, fiber.StatusNotFound},
	{domain.ErrRecipeNotFound, fiber.StatusNotFound},
	{domain.ErrCommentNotFound, fiber.StatusNotFound},

	{domain.ErrEmailInUse, fiber.StatusConflict},
	{domain.ErrHandleInUse, fiber.StatusConflict},

	{domain.ErrStorageUnavailable, fiber.StatusServiceUnavailable},
}

// StatusFromError maps a domain error to its HTTP status. Anything unknown is
// an internal error.
func StatusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse never exposes the detail of a 5xx error to the client; it is
// logged instead.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if status >= fiber.StatusInternalServerError {
		log.Errorw(message, "method", c.Method(), "path", c.Path(), "error", err)
		res.Error = domain.MessageInternalServerError
		if errors.Is(err, domain.ErrStorageUnavailable) {
			res.Error = err.Error()
		}
	} else if err != nil {
		res.Error = err.Error()
	}
	return c.Status(status).JSON(res)
}

// HandleError renders err with the status its kind maps to.
func HandleError(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}

func ValidationErrorResponse(c *fiber.Ctx, errs []domain.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Status:  false,
		Message: domain.MessageFailedValidation,
		Errors:  errs,
	})
}

// ErrorHandler is the app-level fallback for errors returned by handlers and
// panics recovered by the recover middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return HandleError(c, domain.MessageFailedProcessRequest, err)
}
