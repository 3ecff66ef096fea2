package services

import (
	"testing"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countQueries registers a callback counting every SELECT the db issues
func countQueries(t *testing.T, db *gorm.DB) *int {
	queries := 0
	err := db.Callback().Query().After("gorm:query").Register("test_count_queries", func(*gorm.DB) {
		queries++
	})
	require.NoError(t, err)
	return &queries
}

func TestAnnotateAnonymousViewer(t *testing.T) {
	db := setupTestDB(t)

	recipes := []models.Recipe{{ID: 1}, {ID: 2}, {ID: 3}}
	queries := countQueries(t, db)

	annotated, err := annotateRecipes(db, recipes, nil)
	require.NoError(t, err)
	require.Len(t, annotated, 3)
	for _, recipe := range annotated {
		assert.False(t, recipe.IsFavorited)
		assert.False(t, recipe.IsInShoppingCart)
	}

	// Anonymous annotation touches the database zero times
	assert.Equal(t, 0, *queries)
}

func TestAnnotateIssuesTwoQueriesRegardlessOfSize(t *testing.T) {
	db := setupTestDB(t)
	recipeService := NewRecipeService(db)
	memberships := NewMembershipService(db)

	author := createTestUser(t, db, "alice")
	viewer := createTestUser(t, db, "bob")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	recipes := make([]models.Recipe, 0, 7)
	for i := 0; i < 7; i++ {
		input := validInput(tag, flour)
		input.Name = input.Name + string(rune('A'+i))
		created, err := recipeService.Create(author.ID, input)
		require.NoError(t, err)
		recipes = append(recipes, created.Recipe)
	}

	_, err := memberships.AddFavorite(viewer.ID, recipes[0].ID)
	require.NoError(t, err)
	_, err = memberships.AddToCart(viewer.ID, recipes[1].ID)
	require.NoError(t, err)
	_, err = memberships.AddFavorite(viewer.ID, recipes[2].ID)
	require.NoError(t, err)
	_, err = memberships.AddToCart(viewer.ID, recipes[2].ID)
	require.NoError(t, err)

	queries := countQueries(t, db)
	annotated, err := annotateRecipes(db, recipes, &viewer.ID)
	require.NoError(t, err)

	// One favorites probe plus one cart probe, never one per recipe
	assert.Equal(t, 2, *queries)

	require.Len(t, annotated, 7)
	assert.True(t, annotated[0].IsFavorited)
	assert.False(t, annotated[0].IsInShoppingCart)
	assert.False(t, annotated[1].IsFavorited)
	assert.True(t, annotated[1].IsInShoppingCart)
	assert.True(t, annotated[2].IsFavorited)
	assert.True(t, annotated[2].IsInShoppingCart)
	for _, recipe := range annotated[3:] {
		assert.False(t, recipe.IsFavorited)
		assert.False(t, recipe.IsInShoppingCart)
	}
}

func TestAnnotateEmptyInput(t *testing.T) {
	db := setupTestDB(t)
	viewer := createTestUser(t, db, "bob")

	queries := countQueries(t, db)
	annotated, err := annotateRecipes(db, nil, &viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, annotated)
	assert.Equal(t, 0, *queries)
}
