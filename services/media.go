package services

import (
	goContext "context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/shared"
)

// MediaService stores recipe images in object storage and keeps the recipe's
// image URL in sync.
type MediaService struct {
	context.DefaultService

	minioSvc  *MinIOService
	recipeSvc *RecipeService
}

const MEDIA_SVC = "media_svc"

const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.minioSvc = ctx.Service(MINIO_SVC).(*MinIOService)
	svc.recipeSvc = ctx.Service(RECIPE_SVC).(*RecipeService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	return nil
}

// UploadRecipeImage validates the upload and replaces the recipe's image.
// Only the recipe author may do this.
func (svc *MediaService) UploadRecipeImage(ctx goContext.Context, userID, recipeID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if file.Size > maxImageSize {
		return nil, shared.ErrPayloadTooLarge(fmt.Errorf("image is %d bytes, limit is %d", file.Size, maxImageSize))
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, shared.ErrUnsupportedMediaType(fmt.Errorf("content type %q not allowed", contentType))
	}

	// Ownership check happens before any byte is stored.
	recipe, err := svc.recipeSvc.GetRecipeModel(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, shared.ErrForbidden(errors.New("only the author can change the recipe image"))
	}

	src, err := file.Open()
	if err != nil {
		return nil, shared.ErrValidationFailed(err)
	}
	defer src.Close()

	objectName := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.NewString(), ext)
	if _, err := svc.minioSvc.UploadFile(ctx, objectName, src, file.Size, contentType); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	url := svc.minioSvc.ObjectURL(objectName)
	if err := svc.recipeSvc.SetRecipeImage(ctx, recipeID, url); err != nil {
		return nil, err
	}

	return &dto.MediaUploadResponse{
		RecipeID: recipeID,
		URL:      url,
		Size:     file.Size,
		MimeType: contentType,
	}, nil
}

// PurgeRecipeImages removes all stored objects for a deleted recipe. Invoked
// by the background purge job, not from the request path.
func (svc *MediaService) PurgeRecipeImages(ctx goContext.Context, recipeID string) error {
	return svc.minioSvc.DeletePrefix(ctx, fmt.Sprintf("recipes/%s/", recipeID))
}
