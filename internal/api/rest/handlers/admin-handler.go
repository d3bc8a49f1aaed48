package handlers

import (
	"strconv"

	"contracthub/internal/helper/utils"
	"contracthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	svc services.AuthService
}

func NewAdminHandler(svc services.AuthService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) SetupRoutes(admin fiber.Router) {
	admin.Get("/users", h.Users)
	admin.Post("/users/:id/restore", h.Restore)
	admin.Post("/users/delete/:id", h.Delete)
}

func (h *AdminHandler) Users(ctx *fiber.Ctx) error {
	users, err := h.svc.AllUsers()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, users)
}

func (h *AdminHandler) Restore(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.RestoreUser(uint(id)); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "User restored")
}

func (h *AdminHandler) Delete(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	if uint(id) == user.ID {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "You cannot permanently delete your own account")
	}

	if err := h.svc.PermanentlyDeleteUser(uint(id)); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "User permanently deleted")
}
