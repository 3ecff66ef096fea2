package services

import (
	"testing"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportAggregatesSharedIngredients(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db)
	memberships := NewMembershipService(db)
	shoppingList := NewShoppingListService(db)

	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	sugar := createTestIngredient(t, db, "sugar", "kg")

	pancakes, err := recipes.Create(author.ID, RecipeInput{
		Name: "Pancakes", Text: "x", CookingTime: 20,
		TagIDs: []uint{tag.ID},
		Ingredients: []IngredientAmount{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: sugar.ID, Amount: 1},
		},
	})
	require.NoError(t, err)
	bread, err := recipes.Create(author.ID, RecipeInput{
		Name: "Bread", Text: "x", CookingTime: 120,
		TagIDs:      []uint{tag.ID},
		Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 300}},
	})
	require.NoError(t, err)

	_, err = memberships.AddToCart(shopper.ID, pancakes.ID)
	require.NoError(t, err)
	_, err = memberships.AddToCart(shopper.ID, bread.ID)
	require.NoError(t, err)

	report, err := shoppingList.BuildReport(shopper.ID)
	require.NoError(t, err)

	// flour appears once with summed amounts, ordered by name ascending
	require.Len(t, report, 2)
	assert.Equal(t, models.ShoppingListItem{Name: "flour", MeasurementUnit: "g", TotalAmount: 500}, report[0])
	assert.Equal(t, models.ShoppingListItem{Name: "sugar", MeasurementUnit: "kg", TotalAmount: 1}, report[1])
}

func TestBuildReportEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	shoppingList := NewShoppingListService(db)
	shopper := createTestUser(t, db, "bob")

	report, err := shoppingList.BuildReport(shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, report)
	assert.NotNil(t, report)
}

func TestBuildReportScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db)
	memberships := NewMembershipService(db)
	shoppingList := NewShoppingListService(db)

	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")
	other := createTestUser(t, db, "carol")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	recipe, err := recipes.Create(author.ID, validInput(tag, flour))
	require.NoError(t, err)

	_, err = memberships.AddToCart(other.ID, recipe.ID)
	require.NoError(t, err)

	report, err := shoppingList.BuildReport(shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, report)
}
