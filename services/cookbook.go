package services

import (
	goContext "context"
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/model"
	"github.com/jaikeex/cookhound-api/services/repositories"
	"github.com/jaikeex/cookhound-api/shared"
)

type CookbookService struct {
	context.DefaultService

	sqlSvc    *PostgresService
	cacheSvc  *CacheService
	recipeSvc *RecipeService

	cookbookRepo *repositories.CookbookRepository
}

const COOKBOOK_SVC = "cookbook_svc"

func cookbooksTag(ownerID string) string {
	return "cookbooks:user:" + ownerID
}

func (svc CookbookService) Id() string {
	return COOKBOOK_SVC
}

func (svc *CookbookService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.cacheSvc = ctx.Service(CACHE_SVC).(*CacheService)
	svc.recipeSvc = ctx.Service(RECIPE_SVC).(*RecipeService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *CookbookService) Start() error {
	svc.cookbookRepo = repositories.NewCookbookRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *CookbookService) CreateCookbook(ctx goContext.Context, ownerID string, req dto.CreateCookbookRequest) (*dto.CookbookResponse, error) {
	cookbook := model.Cookbook{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}

	if err := svc.cookbookRepo.Create(&cookbook); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	svc.invalidate(ctx, cookbooksTag(ownerID))
	return svc.toResponse(&cookbook)
}

// GetCookbook returns a cookbook with its recipes. Private cookbooks are
// visible to their owner only.
func (svc *CookbookService) GetCookbook(ctx goContext.Context, viewerID string, cookbookID string) (*dto.CookbookDetailResponse, error) {
	cookbook, err := svc.getVisible(viewerID, cookbookID)
	if err != nil {
		return nil, err
	}

	summary, err := svc.toResponse(cookbook)
	if err != nil {
		return nil, err
	}

	recipes, err := svc.cookbookRepo.Recipes(cookbookID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	items := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		item, err := svc.recipeSvc.toResponse(&recipes[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return &dto.CookbookDetailResponse{
		CookbookResponse: *summary,
		Recipes:          items,
	}, nil
}

func (svc *CookbookService) ListCookbooks(ctx goContext.Context, ownerID string) (*dto.CookbookListResponse, error) {
	var resp dto.CookbookListResponse

	err := svc.cacheSvc.Remember(ctx, "cookbook:list:"+ownerID, []string{cookbooksTag(ownerID)}, &resp, func() (interface{}, error) {
		cookbooks, err := svc.cookbookRepo.ListByOwner(ownerID)
		if err != nil {
			return nil, shared.ErrInfrastructure(err)
		}

		items := make([]dto.CookbookResponse, 0, len(cookbooks))
		for i := range cookbooks {
			item, err := svc.toResponse(&cookbooks[i])
			if err != nil {
				return nil, err
			}
			items = append(items, *item)
		}

		return &dto.CookbookListResponse{Cookbooks: items}, nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (svc *CookbookService) UpdateCookbook(ctx goContext.Context, ownerID string, cookbookID string, req dto.UpdateCookbookRequest) (*dto.CookbookResponse, error) {
	cookbook, err := svc.getOwned(ownerID, cookbookID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cookbook.Name = *req.Name
	}
	if req.Description != nil {
		cookbook.Description = *req.Description
	}
	if req.IsPublic != nil {
		cookbook.IsPublic = *req.IsPublic
	}

	if err := svc.cookbookRepo.Update(cookbook); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	svc.invalidate(ctx, cookbooksTag(ownerID))
	return svc.toResponse(cookbook)
}

func (svc *CookbookService) DeleteCookbook(ctx goContext.Context, ownerID string, cookbookID string) error {
	if _, err := svc.getOwned(ownerID, cookbookID); err != nil {
		return err
	}
	if err := svc.cookbookRepo.Delete(cookbookID); err != nil {
		return shared.ErrInfrastructure(err)
	}

	svc.invalidate(ctx, cookbooksTag(ownerID))
	return nil
}

func (svc *CookbookService) AddRecipe(ctx goContext.Context, ownerID string, cookbookID string, recipeID string) error {
	if _, err := svc.getOwned(ownerID, cookbookID); err != nil {
		return err
	}

	// The recipe must exist; a public cookbook may hold anyone's recipes.
	if _, err := svc.recipeSvc.GetRecipeModel(ctx, recipeID); err != nil {
		return err
	}

	exists, err := svc.cookbookRepo.ContainsRecipe(cookbookID, recipeID)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}
	if exists {
		return shared.ErrConflict(errors.New("recipe already in cookbook"))
	}

	if err := svc.cookbookRepo.AddRecipe(cookbookID, recipeID); err != nil {
		return shared.ErrInfrastructure(err)
	}

	svc.invalidate(ctx, cookbooksTag(ownerID))
	return nil
}

func (svc *CookbookService) RemoveRecipe(ctx goContext.Context, ownerID string, cookbookID string, recipeID string) error {
	if _, err := svc.getOwned(ownerID, cookbookID); err != nil {
		return err
	}

	removed, err := svc.cookbookRepo.RemoveRecipe(cookbookID, recipeID)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}
	if removed == 0 {
		return shared.ErrNotFound(errors.New("recipe not in cookbook"))
	}

	svc.invalidate(ctx, cookbooksTag(ownerID))
	return nil
}

func (svc *CookbookService) invalidate(ctx goContext.Context, tags ...string) {
	if err := svc.cacheSvc.InvalidateTags(ctx, tags...); err != nil {
		log.WithError(err).WithField("tags", tags).Warn("Cache invalidation failed")
	}
}

func (svc *CookbookService) getOwned(ownerID string, cookbookID string) (*model.Cookbook, error) {
	cookbook, err := svc.cookbookRepo.GetByID(cookbookID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if cookbook == nil {
		return nil, shared.ErrNotFound(errors.New("cookbook not found"))
	}
	if cookbook.OwnerID != ownerID {
		return nil, shared.ErrForbidden(errors.New("not the cookbook owner"))
	}
	return cookbook, nil
}

func (svc *CookbookService) getVisible(viewerID string, cookbookID string) (*model.Cookbook, error) {
	cookbook, err := svc.cookbookRepo.GetByID(cookbookID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if cookbook == nil {
		return nil, shared.ErrNotFound(errors.New("cookbook not found"))
	}
	if !cookbook.IsPublic && cookbook.OwnerID != viewerID {
		// Hide the existence of private cookbooks from other users.
		return nil, shared.ErrNotFound(errors.New("cookbook not found"))
	}
	return cookbook, nil
}

func (svc *CookbookService) toResponse(cookbook *model.Cookbook) (*dto.CookbookResponse, error) {
	count, err := svc.cookbookRepo.RecipeCount(cookbook.ID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	return &dto.CookbookResponse{
		ID:          cookbook.ID,
		OwnerID:     cookbook.OwnerID,
		Name:        cookbook.Name,
		Description: cookbook.Description,
		IsPublic:    cookbook.IsPublic,
		RecipeCount: int(count),
		CreatedAt:   cookbook.CreatedAt,
		UpdatedAt:   cookbook.UpdatedAt,
	}, nil
}
