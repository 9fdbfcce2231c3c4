package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// @Summary Upload a recipe image
// @Description Store an image for a recipe the caller authored
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Param image formData file true "Image file (jpeg, png or webp, max 5MB)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Failure 413 {object} shared.ErrorEnvelope
// @Failure 415 {object} shared.ErrorEnvelope
// @Router /api/v1/recipes/{id}/image [post]
func (h *MediaHandler) UploadRecipeImage(c *fiber.Ctx) error {
	var params dto.RecipeIDParam
	if err := dto.ParseParams(c, &params); err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return shared.ErrValidationFailed(err)
	}

	resp, err := h.mediaSvc.UploadRecipeImage(c.Context(), shared.Scope(c).UserID, params.ID, file)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
