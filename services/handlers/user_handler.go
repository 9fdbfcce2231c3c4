package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// @Summary Get own profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Router /api/v1/me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	resp, err := h.userSvc.GetProfile(shared.Scope(c).UserID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update own profile
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateRequest body dto.UpdateProfileRequest true "Profile fields to change"
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Failure 409 {object} shared.ErrorEnvelope
// @Router /api/v1/me [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.userSvc.UpdateProfile(shared.Scope(c).UserID, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Check username availability
// @Tags user
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} shared.Response{data=dto.UsernameCheckResponse}
// @Router /api/v1/username/check [get]
func (h *UserHandler) CheckUsername(c *fiber.Ctx) error {
	var query dto.UsernameCheckQuery
	if err := dto.ParseQuery(c, &query); err != nil {
		return err
	}

	resp, err := h.userSvc.CheckUsername(query.Username)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
