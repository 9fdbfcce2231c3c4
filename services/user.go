package services

import (
	"errors"

	"github.com/alphabatem/common/context"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/model"
	"github.com/jaikeex/cookhound-api/services/repositories"
	"github.com/jaikeex/cookhound-api/shared"
)

type UserService struct {
	context.DefaultService

	sqlSvc *PostgresService

	userRepo *repositories.UserRepository
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *UserService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := svc.userRepo.GetByID(userID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if user == nil {
		return nil, shared.ErrNotFound(errors.New("user not found"))
	}
	return svc.toProfile(user)
}

func (svc *UserService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := svc.userRepo.GetByID(userID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if user == nil {
		return nil, shared.ErrNotFound(errors.New("user not found"))
	}

	if req.Username != nil && *req.Username != user.Username {
		existing, err := svc.userRepo.GetByUsername(*req.Username)
		if err != nil {
			return nil, shared.ErrInfrastructure(err)
		}
		if existing != nil {
			return nil, shared.ErrConflict(errors.New("username already taken"))
		}
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := svc.userRepo.Update(user); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	return svc.toProfile(user)
}

func (svc *UserService) CheckUsername(username string) (*dto.UsernameCheckResponse, error) {
	existing, err := svc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	return &dto.UsernameCheckResponse{
		Username:  username,
		Available: existing == nil,
	}, nil
}

func (svc *UserService) ListUsers(query dto.AdminListUsersQuery) (*dto.AdminUserListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 20
	}

	users, total, err := svc.userRepo.List(query.Search, (page-1)*perPage, perPage)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	profiles := make([]dto.UserProfileResponse, 0, len(users))
	for i := range users {
		profile, err := svc.toProfile(&users[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	return &dto.AdminUserListResponse{
		Users:   profiles,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (svc *UserService) toProfile(user *model.User) (*dto.UserProfileResponse, error) {
	recipeCount, err := svc.userRepo.CountRecipes(user.ID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	return &dto.UserProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Role:        user.Role,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		RecipeCount: int(recipeCount),
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
	}, nil
}
