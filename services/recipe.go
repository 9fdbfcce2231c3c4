package services

import (
	goContext "context"
	"errors"
	"fmt"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/model"
	"github.com/jaikeex/cookhound-api/services/repositories"
	"github.com/jaikeex/cookhound-api/shared"
)

type RecipeService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	cacheSvc *CacheService
	queueSvc *QueueService

	recipeRepo *repositories.RecipeRepository
	userRepo   *repositories.UserRepository
}

const RECIPE_SVC = "recipe_svc"

const cacheTagRecipes = "recipes"

func (svc RecipeService) Id() string {
	return RECIPE_SVC
}

func (svc *RecipeService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.cacheSvc = ctx.Service(CACHE_SVC).(*CacheService)
	svc.queueSvc = ctx.Service(QUEUE_SVC).(*QueueService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RecipeService) Start() error {
	svc.recipeRepo = repositories.NewRecipeRepository(svc.sqlSvc.Db())
	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func recipeTag(recipeID string) string {
	return "recipe:" + recipeID
}

func (svc *RecipeService) CreateRecipe(ctx goContext.Context, authorID string, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe := model.Recipe{
		ID:              uuid.NewString(),
		AuthorID:        authorID,
		Title:           req.Title,
		Description:     req.Description,
		Cuisine:         req.Cuisine,
		Difficulty:      req.Difficulty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		ImageURL:        "",
	}
	if err := recipe.SetSteps(req.Steps); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	recipe.Ingredients = make([]model.Ingredient, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		recipe.Ingredients[i] = model.Ingredient{
			ID:       uuid.NewString(),
			RecipeID: recipe.ID,
			Position: i,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}

	if err := svc.recipeRepo.Create(&recipe); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	svc.invalidate(ctx, cacheTagRecipes)

	return svc.toResponse(&recipe)
}

func (svc *RecipeService) GetRecipe(ctx goContext.Context, recipeID string) (*dto.RecipeResponse, error) {
	var resp dto.RecipeResponse
	err := svc.cacheSvc.Remember(ctx, "recipe:detail:"+recipeID, []string{cacheTagRecipes, recipeTag(recipeID)}, &resp, func() (interface{}, error) {
		recipe, err := svc.getModel(recipeID)
		if err != nil {
			return nil, err
		}
		return svc.toResponse(recipe)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (svc *RecipeService) ListRecipes(ctx goContext.Context, query dto.ListRecipesQuery) (*dto.RecipeListResponse, error) {
	key := fmt.Sprintf("recipe:list:%+v", query)

	page := query.PageOrDefault()
	perPage := query.PerPageOrDefault()

	var resp dto.RecipeListResponse
	err := svc.cacheSvc.Remember(ctx, key, []string{cacheTagRecipes}, &resp, func() (interface{}, error) {
		recipes, total, err := svc.recipeRepo.List(query, (page-1)*perPage, perPage)
		if err != nil {
			return nil, shared.ErrInfrastructure(err)
		}

		items := make([]dto.RecipeResponse, 0, len(recipes))
		for i := range recipes {
			item, err := svc.toResponse(&recipes[i])
			if err != nil {
				return nil, err
			}
			items = append(items, *item)
		}

		return &dto.RecipeListResponse{
			Recipes: items,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (svc *RecipeService) UpdateRecipe(ctx goContext.Context, userID string, recipeID string, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := svc.getOwned(userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Cuisine != nil {
		recipe.Cuisine = *req.Cuisine
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *req.CookTimeMinutes
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Steps != nil {
		if err := recipe.SetSteps(req.Steps); err != nil {
			return nil, shared.ErrInfrastructure(err)
		}
	}

	if err := svc.recipeRepo.Update(recipe); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	if req.Ingredients != nil {
		ingredients := make([]model.Ingredient, len(req.Ingredients))
		for i, ing := range req.Ingredients {
			ingredients[i] = model.Ingredient{
				ID:       uuid.NewString(),
				RecipeID: recipe.ID,
				Position: i,
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
			}
		}
		if err := svc.recipeRepo.ReplaceIngredients(recipe.ID, ingredients); err != nil {
			return nil, shared.ErrInfrastructure(err)
		}
		recipe.Ingredients = ingredients
	}

	svc.invalidate(ctx, cacheTagRecipes, recipeTag(recipe.ID))

	return svc.toResponse(recipe)
}

func (svc *RecipeService) DeleteRecipe(ctx goContext.Context, userID string, role string, recipeID string) error {
	recipe, err := svc.getModel(recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID && role != shared.RoleAdmin {
		return shared.ErrForbidden(errors.New("only the author may delete a recipe"))
	}

	if err := svc.recipeRepo.Delete(recipeID); err != nil {
		return shared.ErrInfrastructure(err)
	}

	if _, err := svc.queueSvc.Enqueue(ctx, JobRecipeImagePurge, RecipeImagePurgePayload{RecipeID: recipeID}); err != nil {
		log.WithError(err).WithField("recipe_id", recipeID).Error("Failed to enqueue image purge")
	}

	svc.invalidate(ctx, cacheTagRecipes, recipeTag(recipeID))
	return nil
}

func (svc *RecipeService) RateRecipe(ctx goContext.Context, userID string, recipeID string, req dto.RateRecipeRequest) (*dto.RatingResponse, error) {
	recipe, err := svc.getModel(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID == userID {
		return nil, shared.ErrForbidden(errors.New("authors cannot rate their own recipes"))
	}

	rating := model.Rating{
		ID:       uuid.NewString(),
		RecipeID: recipeID,
		UserID:   userID,
		Score:    req.Score,
	}

	avg, count, err := svc.recipeRepo.UpsertRating(&rating)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	svc.invalidate(ctx, cacheTagRecipes, recipeTag(recipeID))

	return &dto.RatingResponse{
		RecipeID:      recipeID,
		Score:         req.Score,
		AverageRating: avg,
		RatingCount:   count,
	}, nil
}

// GetRecipeModel exposes the raw record for services that need ownership
// checks without the cache in the way.
func (svc *RecipeService) GetRecipeModel(ctx goContext.Context, recipeID string) (*model.Recipe, error) {
	return svc.getModel(recipeID)
}

func (svc *RecipeService) SetRecipeImage(ctx goContext.Context, recipeID string, url string) error {
	if err := svc.recipeRepo.SetImageURL(recipeID, url); err != nil {
		return shared.ErrInfrastructure(err)
	}
	svc.invalidate(ctx, cacheTagRecipes, recipeTag(recipeID))
	return nil
}

func (svc *RecipeService) getModel(recipeID string) (*model.Recipe, error) {
	recipe, err := svc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if recipe == nil {
		return nil, shared.ErrNotFound(errors.New("recipe not found"))
	}
	return recipe, nil
}

func (svc *RecipeService) getOwned(userID string, recipeID string) (*model.Recipe, error) {
	recipe, err := svc.getModel(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, shared.ErrForbidden(errors.New("only the author may modify a recipe"))
	}
	return recipe, nil
}

func (svc *RecipeService) invalidate(ctx goContext.Context, tags ...string) {
	if err := svc.cacheSvc.InvalidateTags(ctx, tags...); err != nil {
		log.WithError(err).WithField("tags", tags).Warn("Cache invalidation failed")
	}
}

func (svc *RecipeService) toResponse(recipe *model.Recipe) (*dto.RecipeResponse, error) {
	steps, err := recipe.GetSteps()
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	author, err := svc.userRepo.GetByID(recipe.AuthorID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	authorName := ""
	if author != nil {
		authorName = author.Username
	}

	ingredients := make([]dto.IngredientResponse, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ingredients[i] = dto.IngredientResponse{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}

	return &dto.RecipeResponse{
		ID:              recipe.ID,
		AuthorID:        recipe.AuthorID,
		AuthorUsername:  authorName,
		Title:           recipe.Title,
		Description:     recipe.Description,
		Cuisine:         recipe.Cuisine,
		Difficulty:      recipe.Difficulty,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		Steps:           steps,
		Ingredients:     ingredients,
		ImageURL:        recipe.ImageURL,
		AverageRating:   recipe.AverageRating,
		RatingCount:     recipe.RatingCount,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}, nil
}
