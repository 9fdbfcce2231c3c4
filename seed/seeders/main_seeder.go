package seeders

import (
	"log"

	"gorm.io/gorm"
)

type MainSeeder struct {
	db           *gorm.DB
	adminSeeder  *AdminSeeder
	recipeSeeder *RecipeSeeder
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{
		db:           db,
		adminSeeder:  NewAdminSeeder(db),
		recipeSeeder: NewRecipeSeeder(db),
	}
}

func (s *MainSeeder) SeedAll() error {
	log.Println("Seeding admin user...")
	admin, err := s.adminSeeder.Seed()
	if err != nil {
		return err
	}

	log.Println("Seeding sample recipes...")
	return s.recipeSeeder.Seed(admin.ID)
}

func (s *MainSeeder) SeedAdminOnly() error {
	_, err := s.adminSeeder.Seed()
	return err
}

func (s *MainSeeder) SeedRecipesOnly() error {
	admin, err := s.adminSeeder.Seed()
	if err != nil {
		return err
	}
	return s.recipeSeeder.Seed(admin.ID)
}
