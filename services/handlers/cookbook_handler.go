package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

type CookbookHandler struct {
	cookbookSvc CookbookServiceInterface
}

func NewCookbookHandler(cookbookSvc CookbookServiceInterface) *CookbookHandler {
	return &CookbookHandler{cookbookSvc: cookbookSvc}
}

// @Summary Create a cookbook
// @Tags cookbooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createRequest body dto.CreateCookbookRequest true "Cookbook details"
// @Success 201 {object} shared.Response{data=dto.CookbookResponse}
// @Router /api/v1/cookbooks [post]
func (h *CookbookHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCookbookRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.cookbookSvc.CreateCookbook(c.Context(), shared.Scope(c).UserID, req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, resp)
}

// @Summary Get a cookbook with its recipes
// @Tags cookbooks
// @Produce json
// @Param id path string true "Cookbook ID"
// @Success 200 {object} shared.Response{data=dto.CookbookDetailResponse}
// @Failure 404 {object} shared.ErrorEnvelope
// @Router /api/v1/cookbooks/{id} [get]
func (h *CookbookHandler) Get(c *fiber.Ctx) error {
	var params dto.CookbookIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	resp, err := h.cookbookSvc.GetCookbook(c.Context(), shared.Scope(c).UserID, params.ID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary List own cookbooks
// @Tags cookbooks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.CookbookListResponse}
// @Router /api/v1/cookbooks [get]
func (h *CookbookHandler) List(c *fiber.Ctx) error {
	resp, err := h.cookbookSvc.ListCookbooks(c.Context(), shared.Scope(c).UserID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update a cookbook
// @Tags cookbooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cookbook ID"
// @Param updateRequest body dto.UpdateCookbookRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.CookbookResponse}
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/cookbooks/{id} [put]
func (h *CookbookHandler) Update(c *fiber.Ctx) error {
	var params dto.CookbookIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	var req dto.UpdateCookbookRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.cookbookSvc.UpdateCookbook(c.Context(), shared.Scope(c).UserID, params.ID, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Delete a cookbook
// @Tags cookbooks
// @Security BearerAuth
// @Param id path string true "Cookbook ID"
// @Success 204
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/cookbooks/{id} [delete]
func (h *CookbookHandler) Delete(c *fiber.Ctx) error {
	var params dto.CookbookIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	if err := h.cookbookSvc.DeleteCookbook(c.Context(), shared.Scope(c).UserID, params.ID); err != nil {
		return err
	}
	return shared.ResponseNoContent(c)
}

// @Summary Add a recipe to a cookbook
// @Tags cookbooks
// @Security BearerAuth
// @Param id path string true "Cookbook ID"
// @Param recipeId path string true "Recipe ID"
// @Success 204
// @Failure 409 {object} shared.ErrorEnvelope
// @Router /api/v1/cookbooks/{id}/recipes/{recipeId} [post]
func (h *CookbookHandler) AddRecipe(c *fiber.Ctx) error {
	var params dto.CookbookRecipeParams
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	if err := h.cookbookSvc.AddRecipe(c.Context(), shared.Scope(c).UserID, params.ID, params.RecipeID); err != nil {
		return err
	}
	return shared.ResponseNoContent(c)
}

// @Summary Remove a recipe from a cookbook
// @Tags cookbooks
// @Security BearerAuth
// @Param id path string true "Cookbook ID"
// @Param recipeId path string true "Recipe ID"
// @Success 204
// @Failure 404 {object} shared.ErrorEnvelope
// @Router /api/v1/cookbooks/{id}/recipes/{recipeId} [delete]
func (h *CookbookHandler) RemoveRecipe(c *fiber.Ctx) error {
	var params dto.CookbookRecipeParams
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	if err := h.cookbookSvc.RemoveRecipe(c.Context(), shared.Scope(c).UserID, params.ID, params.RecipeID); err != nil {
		return err
	}
	return shared.ResponseNoContent(c)
}
