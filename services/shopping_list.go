package services

import (
	goContext "context"
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/model"
	"github.com/jaikeex/cookhound-api/services/repositories"
	"github.com/jaikeex/cookhound-api/shared"
)

type ShoppingListService struct {
	context.DefaultService

	sqlSvc    *PostgresService
	recipeSvc *RecipeService

	listRepo *repositories.ShoppingListRepository
}

const SHOPPING_LIST_SVC = "shopping_list_svc"

func (svc ShoppingListService) Id() string {
	return SHOPPING_LIST_SVC
}

func (svc *ShoppingListService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.recipeSvc = ctx.Service(RECIPE_SVC).(*RecipeService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *ShoppingListService) Start() error {
	svc.listRepo = repositories.NewShoppingListRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *ShoppingListService) GetList(userID string) (*dto.ShoppingListResponse, error) {
	list, err := svc.listRepo.GetOrCreate(userID, uuid.NewString())
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	return toListResponse(list), nil
}

func (svc *ShoppingListService) AddItem(userID string, req dto.AddShoppingItemRequest) (*dto.ShoppingListResponse, error) {
	list, err := svc.listRepo.GetOrCreate(userID, uuid.NewString())
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	position, err := svc.listRepo.NextPosition(list.ID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	item := model.ShoppingListItem{
		ID:       uuid.NewString(),
		ListID:   list.ID,
		Position: position,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	}
	if err := svc.listRepo.AddItems([]model.ShoppingListItem{item}); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	return svc.GetList(userID)
}

// AddRecipeIngredients copies every ingredient of a recipe onto the user's
// list in one shot, preserving the recipe's ingredient order.
func (svc *ShoppingListService) AddRecipeIngredients(ctx goContext.Context, userID string, recipeID string) (*dto.ShoppingListResponse, error) {
	recipe, err := svc.recipeSvc.GetRecipeModel(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	list, err := svc.listRepo.GetOrCreate(userID, uuid.NewString())
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	position, err := svc.listRepo.NextPosition(list.ID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	items := make([]model.ShoppingListItem, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		items[i] = model.ShoppingListItem{
			ID:       uuid.NewString(),
			ListID:   list.ID,
			RecipeID: recipeID,
			Position: position + i,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}
	if len(items) > 0 {
		if err := svc.listRepo.AddItems(items); err != nil {
			return nil, shared.ErrInfrastructure(err)
		}
	}

	return svc.GetList(userID)
}

func (svc *ShoppingListService) UpdateItem(userID string, itemID string, req dto.UpdateShoppingItemRequest) (*dto.ShoppingListResponse, error) {
	list, err := svc.listRepo.GetOrCreate(userID, uuid.NewString())
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	item, err := svc.listRepo.GetItem(list.ID, itemID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if item == nil {
		return nil, shared.ErrNotFound(errors.New("shopping list item not found"))
	}

	if req.Checked != nil {
		item.Checked = *req.Checked
	}
	if err := svc.listRepo.UpdateItem(item); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	return svc.GetList(userID)
}

func (svc *ShoppingListService) RemoveItem(userID string, itemID string) (*dto.ShoppingListResponse, error) {
	list, err := svc.listRepo.GetOrCreate(userID, uuid.NewString())
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	removed, err := svc.listRepo.RemoveItem(list.ID, itemID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if removed == 0 {
		return nil, shared.ErrNotFound(errors.New("shopping list item not found"))
	}

	return svc.GetList(userID)
}

func (svc *ShoppingListService) ClearList(userID string) error {
	list, err := svc.listRepo.GetOrCreate(userID, uuid.NewString())
	if err != nil {
		return shared.ErrInfrastructure(err)
	}
	if err := svc.listRepo.Clear(list.ID); err != nil {
		return shared.ErrInfrastructure(err)
	}
	return nil
}

func toListResponse(list *model.ShoppingList) *dto.ShoppingListResponse {
	items := make([]dto.ShoppingItemResponse, len(list.Items))
	for i, item := range list.Items {
		items[i] = dto.ShoppingItemResponse{
			ID:       item.ID,
			RecipeID: item.RecipeID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Checked:  item.Checked,
		}
	}
	return &dto.ShoppingListResponse{
		Items:     items,
		UpdatedAt: list.UpdatedAt,
	}
}
