package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

type RecipeHandler struct {
	recipeSvc RecipeServiceInterface
}

func NewRecipeHandler(recipeSvc RecipeServiceInterface) *RecipeHandler {
	return &RecipeHandler{recipeSvc: recipeSvc}
}

// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createRequest body dto.CreateRecipeRequest true "Recipe details"
// @Success 201 {object} shared.Response{data=dto.RecipeResponse}
// @Failure 400 {object} shared.ErrorEnvelope
// @Router /api/v1/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRecipeRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.recipeSvc.CreateRecipe(c.Context(), shared.Scope(c).UserID, req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, resp)
}

// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} shared.Response{data=dto.RecipeResponse}
// @Failure 404 {object} shared.ErrorEnvelope
// @Router /api/v1/recipes/{id} [get]
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	var params dto.RecipeIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	resp, err := h.recipeSvc.GetRecipe(c.Context(), params.ID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary List recipes
// @Description Filterable, paginated recipe listing
// @Tags recipes
// @Produce json
// @Param search query string false "Full-text search over title and description"
// @Param cuisine query []string false "Cuisine filter, repeatable"
// @Param difficulty query []string false "Difficulty filter, repeatable"
// @Param max_prep_time query int false "Maximum prep time in minutes"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.RecipeListResponse}
// @Router /api/v1/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	var query dto.ListRecipesQuery
	if err := dto.ParseQuery(c, &query); err != nil {
		return err
	}

	resp, err := h.recipeSvc.ListRecipes(c.Context(), query)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Param updateRequest body dto.UpdateRecipeRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.RecipeResponse}
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var params dto.RecipeIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	var req dto.UpdateRecipeRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.recipeSvc.UpdateRecipe(c.Context(), shared.Scope(c).UserID, params.ID, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Delete a recipe
// @Tags recipes
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Success 204
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	var params dto.RecipeIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	scope := shared.Scope(c)
	if err := h.recipeSvc.DeleteRecipe(c.Context(), scope.UserID, scope.UserRole, params.ID); err != nil {
		return err
	}
	return shared.ResponseNoContent(c)
}

// @Summary Rate a recipe
// @Description Submit or replace the caller's score for a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Param rateRequest body dto.RateRecipeRequest true "Score from 1 to 5"
// @Success 200 {object} shared.Response{data=dto.RatingResponse}
// @Failure 403 {object} shared.ErrorEnvelope
// @Router /api/v1/recipes/{id}/rating [put]
func (h *RecipeHandler) Rate(c *fiber.Ctx) error {
	var params dto.RecipeIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	var req dto.RateRecipeRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.recipeSvc.RateRecipe(c.Context(), shared.Scope(c).UserID, params.ID, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
