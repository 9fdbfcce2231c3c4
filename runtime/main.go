package main

import (
	"github.com/jaikeex/cookhound-api/middleware"
	"github.com/jaikeex/cookhound-api/server"
	"github.com/jaikeex/cookhound-api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.RedisService{},
		&services.PostgresService{},
		&services.JWTService{},
		&services.CacheService{},
		&services.QueueService{},
		&services.EmailService{},
		&services.MinIOService{},

		&middleware.RateLimitMiddleware{},
		&middleware.AuthMiddleware{},

		&services.AuthService{},
		&services.UserService{},
		&services.RecipeService{},
		&services.CookbookService{},
		&services.ShoppingListService{},
		&services.MediaService{},
		&services.JobsService{},

		&services.MonitoringService{},
		&server.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
