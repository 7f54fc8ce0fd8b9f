package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"training-center/internal/apperror"
)

type ErrorResponse struct {
	Error   string                `json:"error"`
	Code    apperror.Code         `json:"code"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindInUse:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindDuplicate:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders err as an ErrorResponse. Anything that is not an
// *apperror.Error is logged and hidden behind a generic 500.
func writeError(c *fiber.Ctx, err error) error {
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		slog.ErrorContext(c.UserContext(), "Unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  apperror.CodeInternal,
		})
	}

	status := statusFor(ae.Kind)
	if status == fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "Unclassified application error", "code", ae.Code, "error", err)
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:   ae.Message,
		Code:    ae.Code,
		Details: ae.Fields,
	})
}

// ErrorHandler is installed on the fiber.App for errors that escape the
// handlers, e.g. unknown routes or recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return writeError(c, err)
}
