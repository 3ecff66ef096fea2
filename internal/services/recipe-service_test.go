package services

import (
	"fmt"
	"testing"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCart{},
		&models.Follow{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	user := models.User{
		Email:    fmt.Sprintf("%s@example.com", username),
		Username: username,
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, name, color, slug string) models.Tag {
	tag := models.Tag{Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return ingredient
}

func validInput(tag models.Tag, ingredients ...models.Ingredient) RecipeInput {
	items := make([]IngredientAmount, 0, len(ingredients))
	for i, ing := range ingredients {
		items = append(items, IngredientAmount{IngredientID: ing.ID, Amount: 100 * (i + 1)})
	}
	return RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uint{tag.ID},
		Ingredients: items,
	}
}

func TestCreateRecipePersistsExactSets(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	author := createTestUser(t, db, "alice")
	breakfast := createTestTag(t, db, "Breakfast", "#E26C2D", "breakfast")
	lunch := createTestTag(t, db, "Lunch", "#49B64E", "lunch")
	flour := createTestIngredient(t, db, "flour", "g")
	milk := createTestIngredient(t, db, "milk", "ml")

	recipe, err := service.Create(author.ID, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uint{breakfast.ID, lunch.ID},
		Ingredients: []IngredientAmount{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: milk.ID, Amount: 300},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", recipe.Name)
	assert.Equal(t, author.ID, recipe.AuthorID)
	assert.Equal(t, author.Username, recipe.Author.Username)
	assert.False(t, recipe.IsFavorited)
	assert.False(t, recipe.IsInShoppingCart)

	require.Len(t, recipe.Tags, 2)
	require.Len(t, recipe.Ingredients, 2)
	amounts := map[uint]int{}
	for _, item := range recipe.Ingredients {
		amounts[item.IngredientID] = item.Amount
	}
	assert.Equal(t, map[uint]int{flour.ID: 200, milk.ID: 300}, amounts)
}

func TestReplaceIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	author := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	milk := createTestIngredient(t, db, "milk", "ml")

	created, err := service.Create(author.ID, validInput(tag, flour))
	require.NoError(t, err)

	input := RecipeInput{
		Name:        "Crepes",
		Text:        "Thin pancakes.",
		CookingTime: 30,
		TagIDs:      []uint{tag.ID},
		Ingredients: []IngredientAmount{
			{IngredientID: flour.ID, Amount: 150},
			{IngredientID: milk.ID, Amount: 500},
		},
	}

	first, err := service.Replace(created.ID, input)
	require.NoError(t, err)
	second, err := service.Replace(created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	require.Len(t, second.Ingredients, 2)
	require.Len(t, second.Tags, 1)

	// No stale line items survive repeated replaces
	var count int64
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestReplaceSwapsLineItemsWholesale(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	author := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	milk := createTestIngredient(t, db, "milk", "ml")
	sugar := createTestIngredient(t, db, "sugar", "g")

	created, err := service.Create(author.ID, validInput(tag, flour, milk))
	require.NoError(t, err)

	replaced, err := service.Replace(created.ID, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uint{tag.ID},
		Ingredients: []IngredientAmount{
			{IngredientID: milk.ID, Amount: 250},
			{IngredientID: sugar.ID, Amount: 50},
		},
	})
	require.NoError(t, err)

	amounts := map[uint]int{}
	for _, item := range replaced.Ingredients {
		amounts[item.IngredientID] = item.Amount
	}
	assert.Equal(t, map[uint]int{milk.ID: 250, sugar.ID: 50}, amounts)

	// The flour line item from the first version is gone
	var count int64
	db.Model(&models.RecipeIngredient{}).
		Where("recipe_id = ? AND ingredient_id = ?", created.ID, flour.ID).
		Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestReplacePreservesAuthor(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	author := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	created, err := service.Create(author.ID, validInput(tag, flour))
	require.NoError(t, err)

	replaced, err := service.Replace(created.ID, validInput(tag, flour))
	require.NoError(t, err)
	assert.Equal(t, author.ID, replaced.AuthorID)
}

func TestCreateRecipeValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	author := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	testCases := []struct {
		name  string
		input RecipeInput
		field string
	}{
		{
			name: "zero amount",
			input: RecipeInput{
				Name: "Bad", Text: "x", CookingTime: 20,
				TagIDs:      []uint{tag.ID},
				Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 0}},
			},
			field: "ingredients",
		},
		{
			name: "duplicate ingredient",
			input: RecipeInput{
				Name: "Bad", Text: "x", CookingTime: 20,
				TagIDs: []uint{tag.ID},
				Ingredients: []IngredientAmount{
					{IngredientID: flour.ID, Amount: 100},
					{IngredientID: flour.ID, Amount: 200},
				},
			},
			field: "ingredients",
		},
		{
			name: "empty ingredients",
			input: RecipeInput{
				Name: "Bad", Text: "x", CookingTime: 20,
				TagIDs: []uint{tag.ID},
			},
			field: "ingredients",
		},
		{
			name: "empty tags",
			input: RecipeInput{
				Name: "Bad", Text: "x", CookingTime: 20,
				Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 100}},
			},
			field: "tags",
		},
		{
			name: "cooking time too low",
			input: RecipeInput{
				Name: "Bad", Text: "x", CookingTime: 0,
				TagIDs:      []uint{tag.ID},
				Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 100}},
			},
			field: "cooking_time",
		},
		{
			name: "cooking time too high",
			input: RecipeInput{
				Name: "Bad", Text: "x", CookingTime: 1442,
				TagIDs:      []uint{tag.ID},
				Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 100}},
			},
			field: "cooking_time",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(author.ID, tt.input)

			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)

			// Fail-fast: nothing was persisted
			var count int64
			db.Model(&models.Recipe{}).Count(&count)
			assert.EqualValues(t, 0, count)
		})
	}
}

func TestCreateRecipeDanglingReferences(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	author := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	_, err := service.Create(author.ID, RecipeInput{
		Name: "Bad", Text: "x", CookingTime: 20,
		TagIDs:      []uint{tag.ID + 100},
		Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 100}},
	})
	var notFoundErr *models.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	_, err = service.Create(author.ID, RecipeInput{
		Name: "Bad", Text: "x", CookingTime: 20,
		TagIDs:      []uint{tag.ID},
		Ingredients: []IngredientAmount{{IngredientID: flour.ID + 100, Amount: 100}},
	})
	require.ErrorAs(t, err, &notFoundErr)

	// Surfaced before any write
	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)
	memberships := NewMembershipService(db)

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	created, err := service.Create(author.ID, validInput(tag, flour))
	require.NoError(t, err)

	_, err = memberships.AddFavorite(fan.ID, created.ID)
	require.NoError(t, err)
	_, err = memberships.AddToCart(fan.ID, created.ID)
	require.NoError(t, err)

	require.NoError(t, service.Delete(created.ID))

	_, err = service.GetByID(created.ID, nil)
	var notFoundErr *models.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	var count int64
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.Favorite{}).Where("recipe_id = ?", created.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.ShoppingCart{}).Where("recipe_id = ?", created.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteMissingRecipe(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	err := service.Delete(42)
	var notFoundErr *models.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestListFiltersByTagAndAuthor(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	breakfast := createTestTag(t, db, "Breakfast", "#E26C2D", "breakfast")
	dinner := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	pancakes, err := service.Create(alice.ID, RecipeInput{
		Name: "Pancakes", Text: "x", CookingTime: 20,
		TagIDs:      []uint{breakfast.ID},
		Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 100}},
	})
	require.NoError(t, err)
	_, err = service.Create(bob.ID, RecipeInput{
		Name: "Stew", Text: "x", CookingTime: 90,
		TagIDs:      []uint{dinner.ID},
		Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 50}},
	})
	require.NoError(t, err)

	byTag, err := service.List(RecipeFilter{TagSlugs: []string{"breakfast"}}, nil)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, pancakes.ID, byTag[0].ID)

	byAuthor, err := service.List(RecipeFilter{AuthorID: &bob.ID}, nil)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Stew", byAuthor[0].Name)

	all, err := service.List(RecipeFilter{}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListFavoritedOnly(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(db)
	memberships := NewMembershipService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	first, err := service.Create(alice.ID, validInput(tag, flour))
	require.NoError(t, err)
	input := validInput(tag, flour)
	input.Name = "Second"
	_, err = service.Create(alice.ID, input)
	require.NoError(t, err)

	_, err = memberships.AddFavorite(bob.ID, first.ID)
	require.NoError(t, err)

	favorites, err := service.List(RecipeFilter{FavoritedOnly: true}, &bob.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, first.ID, favorites[0].ID)
	assert.True(t, favorites[0].IsFavorited)

	// Anonymous viewers get the unfiltered listing
	anonymous, err := service.List(RecipeFilter{FavoritedOnly: true}, nil)
	require.NoError(t, err)
	assert.Len(t, anonymous, 2)
}
