package handlers

import (
	"time"

	"contracthub/internal/domain"
	"contracthub/internal/dto"
	"contracthub/internal/helper/utils"
	"contracthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	svc services.AuthService
}

func NewSettingsHandler(svc services.AuthService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) SetupRoutes(app *fiber.App) {
	settings := app.Group("/settings")
	settings.Get("/", h.Settings)
	settings.Post("/profile", h.UpdateProfile)
	settings.Post("/password", h.ChangePassword)
	settings.Post("/delete-account", h.DeleteAccount)
}

func (h *SettingsHandler) Settings(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *SettingsHandler) UpdateProfile(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.UpdateProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.UpdateProfile(user, requestBody.FullName, requestBody.Email); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *SettingsHandler) ChangePassword(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.ChangePasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if requestBody.NewPassword != requestBody.ConfirmPassword {
		return utils.ResponseError(ctx, statusFor(domain.ErrPasswordMismatch), domain.ErrPasswordMismatch.Error())
	}

	if err := h.svc.ChangePassword(user, requestBody.CurrentPassword, requestBody.NewPassword); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password changed successfully")
}

func (h *SettingsHandler) DeleteAccount(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.svc.DeactivateUser(user); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Account deactivated")
}
