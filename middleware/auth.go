package middleware

import (
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/services"
	"github.com/jaikeex/cookhound-api/shared"
)

type AuthMiddleware struct {
	context.DefaultService

	jwtSvc *services.JWTService
}

const AUTH_MIDDLEWARE_SVC = "auth"

func (svc AuthMiddleware) Id() string {
	return AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Configure(ctx *context.Context) error {
	svc.jwtSvc = ctx.Service(services.JWT_SVC).(*services.JWTService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthMiddleware) Start() error {
	return nil
}

// Required verifies the Bearer token and resolves the request identity.
// Handlers behind it can rely on Scope(c).UserID being set.
func (svc *AuthMiddleware) Required() shared.Wrapper {
	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
			if err != nil {
				return shared.ErrUnauthorized(err)
			}

			userID, role, err := svc.jwtSvc.VerifyAccessToken(token)
			if err != nil {
				return shared.ErrUnauthorized(err)
			}

			if userID == "" {
				return shared.ErrUnauthorized(errors.New("empty user id in token"))
			}

			scope := shared.Scope(c)
			scope.UserID = userID
			scope.UserRole = role
			c.Locals(shared.UserID, userID)

			return next(c)
		}
	}
}

// Optional resolves identity when a valid token is present and stays
// anonymous otherwise. Used by public reads that personalize when they can.
func (svc *AuthMiddleware) Optional() shared.Wrapper {
	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return next(c)
			}

			if userID, role, err := svc.jwtSvc.VerifyAccessToken(token); err == nil && userID != "" {
				scope := shared.Scope(c)
				scope.UserID = userID
				scope.UserRole = role
				c.Locals(shared.UserID, userID)
			}

			return next(c)
		}
	}
}

// RequireRole gates a route on the resolved role. Compose it after Required.
func (svc *AuthMiddleware) RequireRole(role string) shared.Wrapper {
	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			scope := shared.Scope(c)
			if scope.UserID == "" {
				return shared.ErrUnauthorized(errors.New("role check before authentication"))
			}

			if scope.UserRole != role {
				return shared.ErrForbidden(errors.New("insufficient role"))
			}

			return next(c)
		}
	}
}
