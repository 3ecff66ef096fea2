package render

import (
	"strings"
	"testing"
	"time"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestShoppingList(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	items := []models.ShoppingListItem{
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 500},
		{Name: "sugar", MeasurementUnit: "kg", TotalAmount: 1},
	}

	out := string(ShoppingList(items, now))

	assert.Contains(t, out, "Shopping list (2025-03-14)")
	assert.Contains(t, out, "- flour: 500 g\n")
	assert.Contains(t, out, "- sugar: 1 kg\n")
	// flour comes before sugar, matching the aggregator's ordering
	assert.Less(t, strings.Index(out, "flour"), strings.Index(out, "sugar"))
}

func TestShoppingListEmpty(t *testing.T) {
	out := string(ShoppingList(nil, time.Now()))
	assert.Contains(t, out, "Your shopping cart is empty.")
}
