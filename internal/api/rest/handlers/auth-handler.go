package handlers

import (
	"time"

	"contracthub/internal/api/rest/middleware"
	"contracthub/internal/dto"
	"contracthub/internal/helper"
	"contracthub/internal/helper/utils"
	"contracthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

const regTokenCookie = "reg_token"

type AuthHandler struct {
	svc  services.AuthService
	auth helper.Auth
}

func NewAuthHandler(svc services.AuthService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

// SetupRoutes registers the public surface: everything before the auth
// middleware mounts.
func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	app.Get("/", h.Root)
	app.Post("/login", h.Login)
	app.Get("/logout", h.Logout)

	app.Post("/register", h.Register)
	app.Post("/register/verify-otp", h.VerifyRegistrationOtp)
	app.Post("/register/resend-otp", h.ResendRegistrationOtp)

	app.Post("/forgot-password", h.ForgotPassword)
	app.Post("/resend-otp", h.ResendResetOtp)
	app.Post("/verify-otp", h.VerifyResetOtp)
	app.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) Root(ctx *fiber.Ctx) error {
	if _, err := h.auth.VerifyToken(ctx.Cookies("access_token")); err == nil {
		return ctx.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return ctx.Redirect("/login", fiber.StatusSeeOther)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	user, err := h.svc.Login(requestBody.Username, requestBody.Password)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	token, err := h.auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	if middleware.WantsHTML(ctx) {
		return ctx.Redirect("/login", fiber.StatusSeeOther)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "logged out")
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	token, err := h.svc.BeginRegistration(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     regTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * time.Minute),
		HTTPOnly: true,
	})

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "OTP has been sent to "+requestBody.Email)
}

func (h *AuthHandler) VerifyRegistrationOtp(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyOtpRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Otp == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "OTP is required")
	}

	if _, err := h.svc.VerifyRegistrationOtp(ctx.Cookies(regTokenCookie), requestBody.Otp); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     regTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Registration successful, please login")
}

func (h *AuthHandler) ResendRegistrationOtp(ctx *fiber.Ctx) error {
	if err := h.svc.ResendRegistrationOtp(ctx.Cookies(regTokenCookie)); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "New OTP has been sent to your email")
}

func (h *AuthHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.BeginPasswordReset(requestBody.Email); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "OTP has been sent to your email")
}

func (h *AuthHandler) ResendResetOtp(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.BeginPasswordReset(requestBody.Email); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "New OTP has been sent to your email")
}

func (h *AuthHandler) VerifyResetOtp(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyResetOtpRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" || requestBody.Otp == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and OTP are required")
	}

	if err := h.svc.VerifyPasswordResetOtp(requestBody.Email, requestBody.Otp); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "OTP verified")
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ResetPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.ResetPassword(requestBody.Email, requestBody.Password, requestBody.ConfirmPassword); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset successful, please login")
}
