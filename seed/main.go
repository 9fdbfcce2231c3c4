package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jaikeex/cookhound-api/model"
	"github.com/jaikeex/cookhound-api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, admin, recipes")
		dsn      = flag.String("dsn", "", "Postgres DSN (overrides DATABASE_URL env var)")
	)
	flag.Parse()

	databaseURL := *dsn
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			log.Fatal("DATABASE_URL is not set and no -dsn flag given")
		}
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.PasswordResetCode{},
		&model.Recipe{},
		&model.Ingredient{},
		&model.Rating{},
		&model.Cookbook{},
		&model.CookbookRecipe{},
		&model.ShoppingList{},
		&model.ShoppingListItem{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "admin":
		if err := mainSeeder.SeedAdminOnly(); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
	case "recipes":
		if err := mainSeeder.SeedRecipesOnly(); err != nil {
			log.Fatalf("Failed to seed recipes: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'admin' or 'recipes'", *seedType)
	}

	log.Println("Seeding completed successfully")
}
