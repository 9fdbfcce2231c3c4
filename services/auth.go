package services

import (
	goContext "context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/model"
	"github.com/jaikeex/cookhound-api/services/repositories"
	"github.com/jaikeex/cookhound-api/shared"
)

type AuthService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	jwtSvc   *JWTService
	queueSvc *QueueService

	userRepo *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

const resetCodeTTL = 15 * time.Minute

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = ctx.Service(JWT_SVC).(*JWTService)
	svc.queueSvc = ctx.Service(QUEUE_SVC).(*QueueService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AuthService) Register(ctx goContext.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if existing, err := svc.userRepo.GetByEmail(req.Email); err != nil {
		return nil, shared.ErrInfrastructure(err)
	} else if existing != nil {
		return nil, shared.ErrConflict(errors.New("email already registered"))
	}

	if existing, err := svc.userRepo.GetByUsername(req.Username); err != nil {
		return nil, shared.ErrInfrastructure(err)
	} else if existing != nil {
		return nil, shared.ErrConflict(errors.New("username already taken"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	user := model.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Username: req.Username,
		Password: string(hash),
		Role:     shared.RoleUser,
	}

	if err := svc.userRepo.Create(&user); err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	if _, err := svc.queueSvc.Enqueue(ctx, JobWelcomeEmail, WelcomeEmailPayload{
		Email:    user.Email,
		Username: user.Username,
	}); err != nil {
		// Registration already committed; a failed enqueue is not the user's problem.
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to enqueue welcome email")
	}

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Message: "Registration successful",
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.findByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrUnauthorized(errors.New("invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.ErrUnauthorized(errors.New("invalid credentials"))
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	if err := svc.userRepo.TouchLastLogin(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to update last login")
	}

	return &dto.LoginResponse{
		TokenPair: *pair,
		User: dto.UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			Username:  user.Username,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (svc *AuthService) RefreshToken(req dto.RefreshTokenRequest) (*dto.TokenPair, error) {
	userID, err := svc.jwtSvc.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized(err)
	}

	user, err := svc.userRepo.GetByID(userID)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if user == nil {
		return nil, shared.ErrUnauthorized(errors.New("user no longer exists"))
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}

	return pair, nil
}

func (svc *AuthService) ChangePassword(userID string, req dto.ChangePasswordRequest) error {
	user, err := svc.userRepo.GetByID(userID)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}
	if user == nil {
		return shared.ErrNotFound(errors.New("user not found"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return shared.ErrUnauthorized(errors.New("current password is incorrect"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}

	user.Password = string(hash)
	if err := svc.userRepo.Update(user); err != nil {
		return shared.ErrInfrastructure(err)
	}

	return nil
}

// ForgotPassword always reports success so the endpoint does not confirm
// which emails have accounts.
func (svc *AuthService) ForgotPassword(ctx goContext.Context, req dto.ForgotPasswordRequest) error {
	user, err := svc.userRepo.GetByEmail(req.Email)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}
	if user == nil {
		return nil
	}

	code, err := generateResetCode()
	if err != nil {
		return shared.ErrInfrastructure(err)
	}

	resetCode := model.PasswordResetCode{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := svc.userRepo.CreateResetCode(&resetCode); err != nil {
		return shared.ErrInfrastructure(err)
	}

	if _, err := svc.queueSvc.Enqueue(ctx, JobPasswordResetEmail, PasswordResetEmailPayload{
		Email:    user.Email,
		Username: user.Username,
		Code:     code,
	}); err != nil {
		return shared.ErrInfrastructure(err)
	}

	return nil
}

func (svc *AuthService) ResetPassword(req dto.ResetPasswordRequest) error {
	user, err := svc.userRepo.GetByEmail(req.Email)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}
	if user == nil {
		return shared.ErrUnauthorized(errors.New("invalid reset code"))
	}

	resetCode, err := svc.userRepo.GetActiveResetCode(user.ID, req.Code)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}
	if resetCode == nil {
		return shared.ErrUnauthorized(errors.New("invalid reset code"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return shared.ErrInfrastructure(err)
	}

	user.Password = string(hash)
	if err := svc.userRepo.Update(user); err != nil {
		return shared.ErrInfrastructure(err)
	}

	if err := svc.userRepo.MarkResetCodeUsed(resetCode.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to mark reset code used")
	}

	return nil
}

func (svc *AuthService) findByEmailOrUsername(value string) (*model.User, error) {
	user, err := svc.userRepo.GetByEmail(value)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	if user != nil {
		return user, nil
	}

	user, err = svc.userRepo.GetByUsername(value)
	if err != nil {
		return nil, shared.ErrInfrastructure(err)
	}
	return user, nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
