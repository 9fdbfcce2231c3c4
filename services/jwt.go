package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alphabatem/common/context"

	"github.com/jaikeex/cookhound-api/dto"
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	issuer               string
	jwtSecretKey         string
}

type CustomClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.AccessTokenDuration = 15 * time.Minute
	if v := os.Getenv("JWT_ACCESS_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			svc.AccessTokenDuration = d
		}
	}

	svc.RefreshTokenDuration = 30 * 24 * time.Hour
	if v := os.Getenv("JWT_REFRESH_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			svc.RefreshTokenDuration = d
		}
	}

	svc.issuer = os.Getenv("JWT_ISSUER")
	if svc.issuer == "" {
		svc.issuer = "CookHound"
	}

	svc.jwtSecretKey = os.Getenv("JWT_SECRET")
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	if svc.jwtSecretKey == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

// VerifyAccessToken validates an access token and returns the user id and
// role embedded in it.
func (svc *JWTService) VerifyAccessToken(jwtToken string) (string, string, error) {
	claims, err := svc.verify(jwtToken, tokenTypeAccess)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Role, nil
}

// VerifyRefreshToken validates a refresh token and returns the user id.
func (svc *JWTService) VerifyRefreshToken(jwtToken string) (string, error) {
	claims, err := svc.verify(jwtToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (svc *JWTService) verify(jwtToken, tokenType string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, svc.getJWTKey)
	if err != nil || !token.Valid {
		return nil, errors.New("unsupported JWT format")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims == nil {
		return nil, errors.New("unsupported JWT format")
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("expected %s token", tokenType)
	}

	expTime, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("failed to get expiration time: %v", err)
	}
	if expTime.Unix() < time.Now().Unix() {
		return nil, errors.New("token has expired")
	}

	return claims, nil
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

// GenerateTokenPair mints an access/refresh pair for the user.
func (svc *JWTService) GenerateTokenPair(userID, role string) (*dto.TokenPair, error) {
	accessToken, err := svc.sign(userID, role, tokenTypeAccess, svc.AccessTokenDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, err := svc.sign(userID, role, tokenTypeRefresh, svc.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(svc.AccessTokenDuration.Seconds()),
	}, nil
}

func (svc *JWTService) sign(userID, role, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := &CustomClaims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    svc.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(svc.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}

	return authHeader[7:], nil
}
