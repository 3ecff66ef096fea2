package services

import (
	"errors"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// Cooking time bounds in minutes (one minute to one day inclusive)
const (
	MinCookingTime = 1
	MaxCookingTime = 1441
)

// IngredientAmount is one submitted line item: an ingredient reference
// with its quantity
type IngredientAmount struct {
	IngredientID uint `json:"id" binding:"required"`
	Amount       int  `json:"amount" binding:"required"`
}

// RecipeInput carries the already-decoded payload for create and replace.
// Image is a stored file reference, resolved by the caller before the
// service is invoked.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// RecipeFilter narrows the recipe listing
type RecipeFilter struct {
	TagSlugs      []string
	AuthorID      *uint
	FavoritedOnly bool
	InCartOnly    bool
	Limit         int
	Offset        int
}

// RecipeService assembles and persists recipes together with their tag set
// and ingredient line items, and serves annotated read-backs
type RecipeService interface {
	// List retrieves recipes matching the filter, newest first, annotated
	// with the viewer's favorite/cart flags
	List(filter RecipeFilter, viewerID *uint) ([]AnnotatedRecipe, error)
	// GetByID retrieves a single annotated recipe
	GetByID(id uint, viewerID *uint) (AnnotatedRecipe, error)
	// Create validates and atomically persists a new recipe for the author
	Create(authorID uint, input RecipeInput) (AnnotatedRecipe, error)
	// Replace overwrites a recipe's attributes, tag set and line items
	// wholesale, preserving its identity and author
	Replace(id uint, input RecipeInput) (AnnotatedRecipe, error)
	// Delete removes a recipe; line items and membership rows cascade away
	Delete(id uint) error
}

type recipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new instance of RecipeService
func NewRecipeService(db *gorm.DB) RecipeService {
	return &recipeService{db: db}
}

func (s *recipeService) List(filter RecipeFilter, viewerID *uint) ([]AnnotatedRecipe, error) {
	query := s.db.Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC, recipes.id DESC")

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	// Membership filters only apply to an authenticated viewer; anonymous
	// requests see the unfiltered listing, matching the flag semantics.
	if viewerID != nil && filter.FavoritedOnly {
		query = query.Where("recipes.id IN (?)",
			s.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", *viewerID))
	}
	if viewerID != nil && filter.InCartOnly {
		query = query.Where("recipes.id IN (?)",
			s.db.Model(&models.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", *viewerID))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return annotateRecipes(s.db, recipes, viewerID)
}

func (s *recipeService) GetByID(id uint, viewerID *uint) (AnnotatedRecipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AnnotatedRecipe{}, models.NewNotFoundError("recipe")
		}
		return AnnotatedRecipe{}, err
	}

	annotated, err := annotateRecipes(s.db, []models.Recipe{recipe}, viewerID)
	if err != nil {
		return AnnotatedRecipe{}, err
	}
	return annotated[0], nil
}

func (s *recipeService) Create(authorID uint, input RecipeInput) (AnnotatedRecipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return AnnotatedRecipe{}, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       input.Image,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, input); err != nil {
			return err
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, &recipe, input)
	})
	if err != nil {
		return AnnotatedRecipe{}, err
	}

	// Read back the fully assembled recipe through the viewer's eyes
	return s.GetByID(recipe.ID, &authorID)
}

func (s *recipeService) Replace(id uint, input RecipeInput) (AnnotatedRecipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return AnnotatedRecipe{}, err
	}

	var recipe models.Recipe
	if err := s.db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AnnotatedRecipe{}, models.NewNotFoundError("recipe")
		}
		return AnnotatedRecipe{}, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, input); err != nil {
			return err
		}
		// Identity and author are preserved; only attributes change
		updates := map[string]interface{}{
			"name":         input.Name,
			"text":         input.Text,
			"cooking_time": input.CookingTime,
		}
		if input.Image != "" {
			updates["image"] = input.Image
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, &recipe, input)
	})
	if err != nil {
		return AnnotatedRecipe{}, err
	}

	return s.GetByID(recipe.ID, &recipe.AuthorID)
}

func (s *recipeService) Delete(id uint) error {
	result := s.db.Select("Ingredients").Delete(&models.Recipe{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("recipe")
	}
	// Membership rows referencing the recipe go with it
	if err := s.db.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
		return err
	}
	return s.db.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error
}

// validateRecipeInput runs every check before any mutation so a failure
// leaves zero persisted changes
func validateRecipeInput(input RecipeInput) error {
	if len(input.TagIDs) == 0 {
		return models.NewValidationError("tags", "at least one tag is required")
	}
	if len(input.Ingredients) == 0 {
		return models.NewValidationError("ingredients", "at least one ingredient is required")
	}
	seen := make(map[uint]struct{}, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if item.Amount < 1 {
			return models.NewValidationError("ingredients", "ingredient amount must be at least 1")
		}
		if _, ok := seen[item.IngredientID]; ok {
			return models.NewValidationError("ingredients", "duplicate ingredient in recipe")
		}
		seen[item.IngredientID] = struct{}{}
	}
	if input.CookingTime < MinCookingTime || input.CookingTime > MaxCookingTime {
		return models.NewValidationError("cooking_time", "cooking time must be between 1 and 1441 minutes")
	}
	return nil
}

// checkReferences verifies every referenced tag and ingredient exists,
// surfacing a NotFoundError before any write happens
func checkReferences(tx *gorm.DB, input RecipeInput) error {
	tagIDs := uniqueIDs(input.TagIDs)
	var count int64
	if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(tagIDs)) {
		return models.NewNotFoundError("tag")
	}

	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, item.IngredientID)
	}
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ingredientIDs)) {
		return models.NewNotFoundError("ingredient")
	}
	return nil
}

// replaceAssociations swaps the recipe's tag set and line items wholesale
// inside the surrounding transaction. Clear-then-set is deliberate: a reader
// in another transaction never observes a recipe mixing two submitted
// versions, and never one with zero line items.
func replaceAssociations(tx *gorm.DB, recipe *models.Recipe, input RecipeInput) error {
	tags := make([]models.Tag, 0, len(input.TagIDs))
	for _, id := range uniqueIDs(input.TagIDs) {
		tags = append(tags, models.Tag{ID: id})
	}
	if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
		return err
	}

	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	lineItems := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		lineItems = append(lineItems, models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		})
	}
	return tx.Create(&lineItems).Error
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
