package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/dto"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(req dto.RefreshTokenRequest) (*dto.TokenPair, error)
	ChangePassword(userID string, req dto.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(req dto.ResetPasswordRequest) error
}

type UserServiceInterface interface {
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	CheckUsername(username string) (*dto.UsernameCheckResponse, error)
	ListUsers(query dto.AdminListUsersQuery) (*dto.AdminUserListResponse, error)
}

type RecipeServiceInterface interface {
	CreateRecipe(ctx context.Context, authorID string, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	GetRecipe(ctx context.Context, recipeID string) (*dto.RecipeResponse, error)
	ListRecipes(ctx context.Context, query dto.ListRecipesQuery) (*dto.RecipeListResponse, error)
	UpdateRecipe(ctx context.Context, userID string, recipeID string, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error)
	DeleteRecipe(ctx context.Context, userID string, role string, recipeID string) error
	RateRecipe(ctx context.Context, userID string, recipeID string, req dto.RateRecipeRequest) (*dto.RatingResponse, error)
}

type CookbookServiceInterface interface {
	CreateCookbook(ctx context.Context, ownerID string, req dto.CreateCookbookRequest) (*dto.CookbookResponse, error)
	GetCookbook(ctx context.Context, viewerID string, cookbookID string) (*dto.CookbookDetailResponse, error)
	ListCookbooks(ctx context.Context, ownerID string) (*dto.CookbookListResponse, error)
	UpdateCookbook(ctx context.Context, ownerID string, cookbookID string, req dto.UpdateCookbookRequest) (*dto.CookbookResponse, error)
	DeleteCookbook(ctx context.Context, ownerID string, cookbookID string) error
	AddRecipe(ctx context.Context, ownerID string, cookbookID string, recipeID string) error
	RemoveRecipe(ctx context.Context, ownerID string, cookbookID string, recipeID string) error
}

type ShoppingListServiceInterface interface {
	GetList(userID string) (*dto.ShoppingListResponse, error)
	AddItem(userID string, req dto.AddShoppingItemRequest) (*dto.ShoppingListResponse, error)
	AddRecipeIngredients(ctx context.Context, userID string, recipeID string) (*dto.ShoppingListResponse, error)
	UpdateItem(userID string, itemID string, req dto.UpdateShoppingItemRequest) (*dto.ShoppingListResponse, error)
	RemoveItem(userID string, itemID string) (*dto.ShoppingListResponse, error)
	ClearList(userID string) error
}

type MediaServiceInterface interface {
	UploadRecipeImage(ctx context.Context, userID, recipeID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
}

type RateLimiterInterface interface {
	Rules() []dto.RateLimitRuleInfo
	ResetCounter(c *fiber.Ctx, route, identity string) error
}
