package services

import (
	"github.com/recipehub/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// AnnotatedRecipe is a recipe with the viewer's derived flags attached
type AnnotatedRecipe struct {
	models.Recipe
	IsFavorited      bool `json:"is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart"`
}

// annotateRecipes attaches the favorited and in-cart flags for the viewer.
// Anonymous viewers get false flags with zero lookups. An authenticated
// viewer costs exactly one query per flag regardless of how many recipes
// are passed in: both membership tables are probed with a single
// user-scoped IN query over the recipe ids.
func annotateRecipes(db *gorm.DB, recipes []models.Recipe, viewerID *uint) ([]AnnotatedRecipe, error) {
	annotated := make([]AnnotatedRecipe, 0, len(recipes))
	if viewerID == nil || len(recipes) == 0 {
		for _, recipe := range recipes {
			annotated = append(annotated, AnnotatedRecipe{Recipe: recipe})
		}
		return annotated, nil
	}

	recipeIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
	}

	favorited, err := memberSet(db, &models.Favorite{}, *viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := memberSet(db, &models.ShoppingCart{}, *viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}

	for _, recipe := range recipes {
		_, isFavorited := favorited[recipe.ID]
		_, isInCart := inCart[recipe.ID]
		annotated = append(annotated, AnnotatedRecipe{
			Recipe:           recipe,
			IsFavorited:      isFavorited,
			IsInShoppingCart: isInCart,
		})
	}
	return annotated, nil
}

// memberSet returns the subset of recipeIDs present in one membership table
// for the user, as a lookup set
func memberSet(db *gorm.DB, model interface{}, userID uint, recipeIDs []uint) (map[uint]struct{}, error) {
	var ids []uint
	err := db.Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
