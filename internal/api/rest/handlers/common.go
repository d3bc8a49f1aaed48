package handlers

import (
	"errors"

	"contracthub/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service error onto an HTTP status. Unknown errors are
// internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrUserAlreadyActive):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNoPendingRegistration),
		errors.Is(err, domain.ErrInvalidOtp),
		errors.Is(err, domain.ErrOtpExpired),
		errors.Is(err, domain.ErrEmailNotFound),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrWrongCurrentPassword),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrUnsupportedFileType):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func currentUser(ctx *fiber.Ctx) (*domain.User, bool) {
	user, ok := ctx.Locals("user").(*domain.User)
	return user, ok && user != nil
}
