package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	_ "github.com/jaikeex/cookhound-api/docs"
	"github.com/jaikeex/cookhound-api/middleware"
	"github.com/jaikeex/cookhound-api/services"
	"github.com/jaikeex/cookhound-api/services/handlers"
	"github.com/jaikeex/cookhound-api/shared"
)

// HttpService owns the public API surface. Every route goes through
// shared.MakeHandler so the scope, panic recovery and the error envelope
// are uniform across the whole surface.
type HttpService struct {
	context.DefaultService

	authMw        *middleware.AuthMiddleware
	rateLimitMw   *middleware.RateLimitMiddleware
	monitoringSvc *services.MonitoringService

	authSvc     *services.AuthService
	userSvc     *services.UserService
	recipeSvc   *services.RecipeService
	cookbookSvc *services.CookbookService
	listSvc     *services.ShoppingListService
	mediaSvc    *services.MediaService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

// 5MB image uploads plus multipart overhead.
const bodyLimit = 8 * 1024 * 1024

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.authMw = ctx.Service(middleware.AUTH_MIDDLEWARE_SVC).(*middleware.AuthMiddleware)
	svc.rateLimitMw = ctx.Service(middleware.RATE_LIMIT_MIDDLEWARE_SVC).(*middleware.RateLimitMiddleware)
	svc.monitoringSvc = ctx.Service(services.MONITORING_SVC).(*services.MonitoringService)

	svc.authSvc = ctx.Service(services.AUTH_SVC).(*services.AuthService)
	svc.userSvc = ctx.Service(services.USER_SVC).(*services.UserService)
	svc.recipeSvc = ctx.Service(services.RECIPE_SVC).(*services.RecipeService)
	svc.cookbookSvc = ctx.Service(services.COOKBOOK_SVC).(*services.CookbookService)
	svc.listSvc = ctx.Service(services.SHOPPING_LIST_SVC).(*services.ShoppingListService)
	svc.mediaSvc = ctx.Service(services.MEDIA_SVC).(*services.MediaService)

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	app := fiber.New(fiber.Config{
		AppName:     "cookhound-api",
		BodyLimit:   bodyLimit,
		JSONEncoder: shared.JSONEncoder,
		JSONDecoder: shared.JSONDecoder,
	})
	svc.server = app

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders: "X-Request-ID, X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After",
	}))
	app.Use(services.MonitoringMiddleware(svc.monitoringSvc))

	app.Get("/ping", shared.MakeHandler(svc.ping))
	app.Get("/swagger/*", swagger.HandlerDefault)

	svc.registerRoutes(app)

	app.Use(shared.MakeHandler(func(c *fiber.Ctx) error {
		return shared.ErrNotFound(fmt.Errorf("no route for %s %s", c.Method(), c.Path()))
	}))

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc)
	recipeHandler := handlers.NewRecipeHandler(svc.recipeSvc)
	cookbookHandler := handlers.NewCookbookHandler(svc.cookbookSvc)
	listHandler := handlers.NewShoppingListHandler(svc.listSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)
	adminHandler := handlers.NewAdminHandler(svc.userSvc, svc.rateLimitMw)

	required := svc.authMw.Required()
	optional := svc.authMw.Optional()
	adminOnly := svc.authMw.RequireRole(shared.RoleAdmin)

	// One rule object per named route; registration panics on conflicts so a
	// bad wiring change dies at startup, not in production traffic.
	loginLimit := svc.rateLimitMw.Limit("login", 10, 15*time.Minute)
	registerLimit := svc.rateLimitMw.Limit("register", 5, 15*time.Minute)
	accountLimit := svc.rateLimitMw.Limit("account", 5, time.Hour)
	createLimit := svc.rateLimitMw.Limit("recipe_create", 20, 10*time.Minute)
	mutationLimit := svc.rateLimitMw.Limit("mutation", 10, time.Minute)

	v1 := app.Group("/api/v1")

	// Auth
	v1.Post("/register", shared.MakeHandler(authHandler.Register, registerLimit))
	v1.Post("/login", shared.MakeHandler(authHandler.Login, loginLimit))
	v1.Post("/refresh", shared.MakeHandler(authHandler.Refresh, mutationLimit))
	v1.Post("/password/change", shared.MakeHandler(authHandler.ChangePassword, required, accountLimit))
	v1.Post("/password/forgot", shared.MakeHandler(authHandler.ForgotPassword, accountLimit))
	v1.Post("/password/reset", shared.MakeHandler(authHandler.ResetPassword, accountLimit))

	// Profile
	v1.Get("/me", shared.MakeHandler(userHandler.GetProfile, required))
	v1.Put("/me", shared.MakeHandler(userHandler.UpdateProfile, required, mutationLimit))
	v1.Get("/username/check", shared.MakeHandler(userHandler.CheckUsername))

	// Recipes
	v1.Get("/recipes", shared.MakeHandler(recipeHandler.List, optional))
	v1.Post("/recipes", shared.MakeHandler(recipeHandler.Create, required, createLimit))
	v1.Get("/recipes/:id", shared.MakeHandler(recipeHandler.Get, optional))
	v1.Put("/recipes/:id", shared.MakeHandler(recipeHandler.Update, required, mutationLimit))
	v1.Delete("/recipes/:id", shared.MakeHandler(recipeHandler.Delete, required, mutationLimit))
	v1.Put("/recipes/:id/rating", shared.MakeHandler(recipeHandler.Rate, required, mutationLimit))
	v1.Post("/recipes/:id/image", shared.MakeHandler(mediaHandler.UploadRecipeImage, required, mutationLimit))

	// Cookbooks
	v1.Post("/cookbooks", shared.MakeHandler(cookbookHandler.Create, required, mutationLimit))
	v1.Get("/cookbooks", shared.MakeHandler(cookbookHandler.List, required))
	v1.Get("/cookbooks/:id", shared.MakeHandler(cookbookHandler.Get, optional))
	v1.Put("/cookbooks/:id", shared.MakeHandler(cookbookHandler.Update, required, mutationLimit))
	v1.Delete("/cookbooks/:id", shared.MakeHandler(cookbookHandler.Delete, required, mutationLimit))
	v1.Post("/cookbooks/:id/recipes/:recipeId", shared.MakeHandler(cookbookHandler.AddRecipe, required, mutationLimit))
	v1.Delete("/cookbooks/:id/recipes/:recipeId", shared.MakeHandler(cookbookHandler.RemoveRecipe, required, mutationLimit))

	// Shopping list
	v1.Get("/shopping-list", shared.MakeHandler(listHandler.Get, required))
	v1.Delete("/shopping-list", shared.MakeHandler(listHandler.Clear, required, mutationLimit))
	v1.Post("/shopping-list/items", shared.MakeHandler(listHandler.AddItem, required, mutationLimit))
	v1.Put("/shopping-list/items/:itemId", shared.MakeHandler(listHandler.UpdateItem, required, mutationLimit))
	v1.Delete("/shopping-list/items/:itemId", shared.MakeHandler(listHandler.RemoveItem, required, mutationLimit))
	v1.Post("/shopping-list/recipes/:id", shared.MakeHandler(listHandler.AddRecipe, required, mutationLimit))

	// Admin
	v1.Get("/admin/users", shared.MakeHandler(adminHandler.ListUsers, required, adminOnly))
	v1.Get("/admin/rate-limits", shared.MakeHandler(adminHandler.RateLimitStats, required, adminOnly))
	v1.Delete("/admin/rate-limits/:route/:identity", shared.MakeHandler(adminHandler.ResetRateLimit, required, adminOnly))
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseOK(c, "pong")
}
