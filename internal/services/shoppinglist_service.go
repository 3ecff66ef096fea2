package services

import (
	"github.com/recipehub/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// ShoppingListService merges the line items of every recipe in a user's
// cart into one deduplicated, unit-aggregated report
type ShoppingListService interface {
	// BuildReport returns (name, unit, total) rows ordered by name.
	// An empty cart yields an empty report.
	BuildReport(userID uint) ([]models.ShoppingListItem, error)
}

type shoppingListService struct {
	db *gorm.DB
}

// NewShoppingListService creates a new instance of ShoppingListService
func NewShoppingListService(db *gorm.DB) ShoppingListService {
	return &shoppingListService{db: db}
}

func (s *shoppingListService) BuildReport(userID uint) ([]models.ShoppingListItem, error) {
	// Grouping key is (name, measurement_unit), not the ingredient id: two
	// distinct catalog rows sharing name and unit merge into one total.
	items := make([]models.ShoppingListItem, 0)
	err := s.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
