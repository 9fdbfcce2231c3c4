package seeders

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaikeex/cookhound-api/model"
	"github.com/jaikeex/cookhound-api/shared"
)

type AdminSeeder struct {
	db *gorm.DB
}

func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// Seed creates the admin account if it does not exist yet and returns it
// either way, so dependent seeders have an author to hang records on.
func (s *AdminSeeder) Seed() (*model.User, error) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@cookhound.dev"
	}

	var existing model.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Admin user %s already exists, skipping", email)
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be set to seed the admin user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := model.User{
		ID:       uuid.NewString(),
		Email:    email,
		Username: "cookhound",
		Password: string(hash),
		Role:     shared.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	log.Printf("Created admin user %s", email)
	return &admin, nil
}
