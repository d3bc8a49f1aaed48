package handlers

import (
	"log"
	"strconv"

	"contracthub/internal/helper/utils"
	"contracthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) SetupRoutes(app *fiber.App) {
	notifications := app.Group("/notifications")
	notifications.Get("/", h.List)
	notifications.Post("/read/:id", h.MarkRead)
	notifications.Post("/read-all", h.MarkAllRead)
	notifications.Post("/delete/:id", h.Delete)
}

func (h *NotificationHandler) List(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	// refresh expiry alerts before serving the feed
	if err := h.svc.GenerateExpiryAlerts(user); err != nil {
		log.Println("generate expiry alerts:", err)
	}

	notifications, err := h.svc.NotificationsForUser(user)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	unread, _ := h.svc.UnreadCount(user)

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid notification id")
	}

	if err := h.svc.MarkAsRead(uint(id), user); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Notification marked as read")
}

func (h *NotificationHandler) MarkAllRead(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.svc.MarkAllAsRead(user); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "All notifications marked as read")
}

func (h *NotificationHandler) Delete(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid notification id")
	}

	if err := h.svc.DeleteNotification(uint(id), user); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Notification deleted")
}
