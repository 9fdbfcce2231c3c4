package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

type ShoppingListHandler struct {
	listSvc ShoppingListServiceInterface
}

func NewShoppingListHandler(listSvc ShoppingListServiceInterface) *ShoppingListHandler {
	return &ShoppingListHandler{listSvc: listSvc}
}

// @Summary Get the shopping list
// @Tags shopping-list
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.ShoppingListResponse}
// @Router /api/v1/shopping-list [get]
func (h *ShoppingListHandler) Get(c *fiber.Ctx) error {
	resp, err := h.listSvc.GetList(shared.Scope(c).UserID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Add an item
// @Tags shopping-list
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param addRequest body dto.AddShoppingItemRequest true "Item details"
// @Success 200 {object} shared.Response{data=dto.ShoppingListResponse}
// @Router /api/v1/shopping-list/items [post]
func (h *ShoppingListHandler) AddItem(c *fiber.Ctx) error {
	var req dto.AddShoppingItemRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.listSvc.AddItem(shared.Scope(c).UserID, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Add all ingredients of a recipe
// @Tags shopping-list
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Success 200 {object} shared.Response{data=dto.ShoppingListResponse}
// @Failure 404 {object} shared.ErrorEnvelope
// @Router /api/v1/shopping-list/recipes/{id} [post]
func (h *ShoppingListHandler) AddRecipe(c *fiber.Ctx) error {
	var params dto.RecipeIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	resp, err := h.listSvc.AddRecipeIngredients(c.Context(), shared.Scope(c).UserID, params.ID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update an item
// @Description Currently toggles the checked flag
// @Tags shopping-list
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Param updateRequest body dto.UpdateShoppingItemRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.ShoppingListResponse}
// @Failure 404 {object} shared.ErrorEnvelope
// @Router /api/v1/shopping-list/items/{itemId} [put]
func (h *ShoppingListHandler) UpdateItem(c *fiber.Ctx) error {
	var params dto.ShoppingItemParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	var req dto.UpdateShoppingItemRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.listSvc.UpdateItem(shared.Scope(c).UserID, params.ItemID, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Remove an item
// @Tags shopping-list
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Success 200 {object} shared.Response{data=dto.ShoppingListResponse}
// @Failure 404 {object} shared.ErrorEnvelope
// @Router /api/v1/shopping-list/items/{itemId} [delete]
func (h *ShoppingListHandler) RemoveItem(c *fiber.Ctx) error {
	var params dto.ShoppingItemParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	resp, err := h.listSvc.RemoveItem(shared.Scope(c).UserID, params.ItemID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Clear the shopping list
// @Tags shopping-list
// @Security BearerAuth
// @Success 204
// @Router /api/v1/shopping-list [delete]
func (h *ShoppingListHandler) Clear(c *fiber.Ctx) error {
	if err := h.listSvc.ClearList(shared.Scope(c).UserID); err != nil {
		return err
	}
	return shared.ResponseNoContent(c)
}
