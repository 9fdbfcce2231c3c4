package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

type AdminHandler struct {
	userSvc    UserServiceInterface
	rateLimits RateLimiterInterface
}

func NewAdminHandler(userSvc UserServiceInterface, rateLimits RateLimiterInterface) *AdminHandler {
	return &AdminHandler{
		userSvc:    userSvc,
		rateLimits: rateLimits,
	}
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match against email or username"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.AdminUserListResponse}
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var query dto.AdminListUsersQuery
	if err := dto.ParseQuery(c, &query); err != nil {
		return err
	}

	resp, err := h.userSvc.ListUsers(query)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Rate limit rules
// @Description Registered rate-limit rules for every limited route
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.RateLimitStatsResponse}
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/admin/rate-limits [get]
func (h *AdminHandler) RateLimitStats(c *fiber.Ctx) error {
	return shared.ResponseOK(c, dto.RateLimitStatsResponse{
		Rules:     h.rateLimits.Rules(),
		Timestamp: time.Now().UTC(),
	})
}

// @Summary Reset a rate limit counter
// @Description Drop the active window for one identity on one route
// @Tags admin
// @Security BearerAuth
// @Param route path string true "Limited route name"
// @Param identity path string true "User ID or IP the counter belongs to"
// @Success 204
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/admin/rate-limits/{route}/{identity} [delete]
func (h *AdminHandler) ResetRateLimit(c *fiber.Ctx) error {
	var params dto.RateLimitResetParams
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	if err := h.rateLimits.ResetCounter(c, params.Route, params.Identity); err != nil {
		return shared.ErrInfrastructure(err)
	}
	return shared.ResponseNoContent(c)
}
