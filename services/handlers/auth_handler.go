package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// @Summary Register a new user
// @Description Create a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.RegisterResponse}
// @Failure 409 {object} shared.ErrorEnvelope
// @Router /api/v1/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authSvc.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, resp)
}

// @Summary Login
// @Description Authenticate with email or username and return a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Failure 401 {object} shared.ErrorEnvelope
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Refresh tokens
// @Description Exchange a refresh token for a fresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} shared.Response{data=dto.TokenPair}
// @Failure 401 {object} shared.ErrorEnvelope
// @Router /api/v1/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	pair, err := h.authSvc.RefreshToken(req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, pair)
}

// @Summary Change password
// @Description Change the authenticated user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param changeRequest body dto.ChangePasswordRequest true "Current and new password"
// @Success 204
// @Failure 401 {object} shared.ErrorEnvelope
// @Router /api/v1/password/change [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.authSvc.ChangePassword(shared.Scope(c).UserID, req); err != nil {
		return err
	}

	return shared.ResponseNoContent(c)
}

// @Summary Request a password reset
// @Description Send a reset code to the given email if an account exists
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotRequest body dto.ForgotPasswordRequest true "Account email"
// @Success 204
// @Router /api/v1/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.authSvc.ForgotPassword(c.Context(), req); err != nil {
		return err
	}

	return shared.ResponseNoContent(c)
}

// @Summary Reset password
// @Description Set a new password using the emailed reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param resetRequest body dto.ResetPasswordRequest true "Email, code and new password"
// @Success 204
// @Failure 401 {object} shared.ErrorEnvelope
// @Router /api/v1/password/reset [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.authSvc.ResetPassword(req); err != nil {
		return err
	}

	return shared.ResponseNoContent(c)
}
