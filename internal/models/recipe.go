package models

import "time"

// Recipe owns its ingredient line items exclusively: deleting a recipe
// cascades to recipe_ingredients and to favorite/cart rows referencing it.
// Tags and ingredients are shared references, never owned.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"-"`
	Author      User      `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`

	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

// RecipeIngredient is a recipe line item: one ingredient with its quantity.
// A recipe may reference each ingredient at most once. On recipe update the
// whole set is replaced, never diffed in place.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredient"`
	Amount       int        `gorm:"not null" json:"amount"`
}

// ShortRecipe is the compact projection returned by favorite and
// shopping-cart add endpoints.
type ShortRecipe struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// Short returns the compact projection of a recipe
func (r *Recipe) Short() ShortRecipe {
	return ShortRecipe{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// ShoppingListItem is one aggregated row of the shopping-list report:
// line items are grouped by (name, measurement_unit) and their amounts
// summed across every recipe in the user's cart.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}
