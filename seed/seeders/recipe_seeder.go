package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaikeex/cookhound-api/model"
)

type RecipeSeeder struct {
	db *gorm.DB
}

func NewRecipeSeeder(db *gorm.DB) *RecipeSeeder {
	return &RecipeSeeder{db: db}
}

type seedRecipe struct {
	title       string
	description string
	cuisine     string
	difficulty  string
	prepTime    int
	cookTime    int
	servings    int
	steps       []string
	ingredients []seedIngredient
}

type seedIngredient struct {
	name     string
	quantity float64
	unit     string
}

var sampleRecipes = []seedRecipe{
	{
		title:       "Beef Pho",
		description: "Hanoi-style noodle soup with a slow-simmered bone broth.",
		cuisine:     "vietnamese",
		difficulty:  "hard",
		prepTime:    45,
		cookTime:    360,
		servings:    6,
		steps: []string{
			"Char the onion and ginger over an open flame until blackened in spots.",
			"Simmer beef bones with the charred aromatics and spices for six hours, skimming regularly.",
			"Strain the broth and season with fish sauce and rock sugar.",
			"Blanch the noodles, slice the raw beef thinly and assemble the bowls.",
			"Ladle the boiling broth over the beef so it cooks in the bowl.",
		},
		ingredients: []seedIngredient{
			{"beef bones", 2, "kg"},
			{"flat rice noodles", 600, "g"},
			{"beef sirloin", 400, "g"},
			{"yellow onion", 2, ""},
			{"ginger", 80, "g"},
			{"star anise", 4, ""},
			{"fish sauce", 60, "ml"},
		},
	},
	{
		title:       "Margherita Pizza",
		description: "The classic: tomato, mozzarella and basil on a thin crust.",
		cuisine:     "italian",
		difficulty:  "medium",
		prepTime:    30,
		cookTime:    12,
		servings:    2,
		steps: []string{
			"Mix flour, water, salt and yeast; knead until smooth and rest overnight in the fridge.",
			"Shape the dough into two rounds and let them proof at room temperature.",
			"Stretch each round, spread crushed tomatoes and tear the mozzarella over the top.",
			"Bake as hot as your oven goes until the crust blisters, then finish with basil.",
		},
		ingredients: []seedIngredient{
			{"bread flour", 500, "g"},
			{"crushed tomatoes", 200, "g"},
			{"fresh mozzarella", 250, "g"},
			{"basil", 10, "leaves"},
			{"olive oil", 20, "ml"},
		},
	},
	{
		title:       "Shakshuka",
		description: "Eggs poached in a spiced tomato and pepper sauce.",
		cuisine:     "middle eastern",
		difficulty:  "easy",
		prepTime:    10,
		cookTime:    25,
		servings:    4,
		steps: []string{
			"Soften the onion and pepper in olive oil, then bloom the spices.",
			"Add the tomatoes and simmer until the sauce thickens.",
			"Make wells in the sauce, crack in the eggs and cover until the whites set.",
			"Scatter parsley over the top and serve with bread.",
		},
		ingredients: []seedIngredient{
			{"canned tomatoes", 800, "g"},
			{"red bell pepper", 1, ""},
			{"yellow onion", 1, ""},
			{"eggs", 6, ""},
			{"ground cumin", 1, "tsp"},
			{"smoked paprika", 1, "tsp"},
		},
	},
}

func (s *RecipeSeeder) Seed(authorID string) error {
	for _, sample := range sampleRecipes {
		var count int64
		if err := s.db.Model(&model.Recipe{}).
			Where("title = ? AND author_id = ?", sample.title, authorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Recipe %q already seeded, skipping", sample.title)
			continue
		}

		recipe := model.Recipe{
			ID:              uuid.NewString(),
			AuthorID:        authorID,
			Title:           sample.title,
			Description:     sample.description,
			Cuisine:         sample.cuisine,
			Difficulty:      sample.difficulty,
			PrepTimeMinutes: sample.prepTime,
			CookTimeMinutes: sample.cookTime,
			Servings:        sample.servings,
		}
		if err := recipe.SetSteps(sample.steps); err != nil {
			return err
		}

		recipe.Ingredients = make([]model.Ingredient, len(sample.ingredients))
		for i, ing := range sample.ingredients {
			recipe.Ingredients[i] = model.Ingredient{
				ID:       uuid.NewString(),
				RecipeID: recipe.ID,
				Position: i,
				Name:     ing.name,
				Quantity: ing.quantity,
				Unit:     ing.unit,
			}
		}

		if err := s.db.Create(&recipe).Error; err != nil {
			return err
		}
		log.Printf("Seeded recipe %q", sample.title)
	}

	return nil
}
