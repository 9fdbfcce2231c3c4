package services

import (
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jaikeex/cookhound-api/model"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "cookhound"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff; the database container is
	// often still warming up when the API starts.
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},
		&model.PasswordResetCode{},

		&model.Recipe{},
		&model.Ingredient{},
		&model.Rating{},

		&model.Cookbook{},
		&model.CookbookRecipe{},

		&model.ShoppingList{},
		&model.ShoppingListItem{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}
