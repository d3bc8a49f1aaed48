package middleware

import (
	"strings"

	"contracthub/internal/domain"
	"contracthub/internal/helper"
	"contracthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WantsHTML reports whether the request is a browser navigation, which
// gets redirects instead of JSON errors.
func WantsHTML(ctx *fiber.Ctx) bool {
	return ctx.Method() == fiber.MethodGet &&
		strings.Contains(ctx.Get("Accept"), "text/html")
}

// AuthMiddleware validates the JWT from the access_token cookie (or the
// Authorization header) and loads the account, which must still be active.
func AuthMiddleware(auth helper.Auth, svc services.AuthService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// cookie first, header as fallback
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return reject(ctx, err.Error())
		}

		user, err := svc.GetUser(claims.UserID)
		if err != nil || user == nil {
			return reject(ctx, "user not found")
		}
		if user.Status != domain.UserActive {
			return reject(ctx, "account is deactivated")
		}

		ctx.Locals("userID", user.ID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// AdminOnly assumes AuthMiddleware already ran.
func AdminOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(*domain.User)
		if !ok || user == nil {
			return reject(ctx, "unauthorized")
		}
		if !user.IsAdmin() {
			if WantsHTML(ctx) {
				return ctx.Redirect("/dashboard", fiber.StatusSeeOther)
			}
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin only",
			})
		}
		return ctx.Next()
	}
}

func reject(ctx *fiber.Ctx, msg string) error {
	if WantsHTML(ctx) {
		return ctx.Redirect("/login", fiber.StatusSeeOther)
	}
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}
