package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/recipehub/gin-recipe-api/internal/media"
	"github.com/recipehub/gin-recipe-api/internal/middleware"
	"github.com/recipehub/gin-recipe-api/internal/models"
	"github.com/recipehub/gin-recipe-api/internal/render"
	"github.com/recipehub/gin-recipe-api/internal/services"
)

// RecipeController handles HTTP requests related to recipes, favorites,
// the shopping cart and the downloadable shopping list
type RecipeController interface {
	ListRecipes(c *gin.Context)
	GetRecipeByID(c *gin.Context)
	CreateRecipe(c *gin.Context)
	UpdateRecipe(c *gin.Context)
	DeleteRecipe(c *gin.Context)
	AddFavorite(c *gin.Context)
	RemoveFavorite(c *gin.Context)
	AddToCart(c *gin.Context)
	RemoveFromCart(c *gin.Context)
	DownloadShoppingCart(c *gin.Context)
}

type recipeController struct {
	recipes      services.RecipeService
	memberships  services.MembershipService
	shoppingList services.ShoppingListService
	mediaDir     string
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(
	recipes services.RecipeService,
	memberships services.MembershipService,
	shoppingList services.ShoppingListService,
	mediaDir string,
) *recipeController {
	return &recipeController{
		recipes:      recipes,
		memberships:  memberships,
		shoppingList: shoppingList,
		mediaDir:     mediaDir,
	}
}

// recipePayload is the write body for create and update
type recipePayload struct {
	Name        string                      `json:"name" binding:"required"`
	Text        string                      `json:"text" binding:"required"`
	CookingTime int                         `json:"cooking_time" binding:"required"`
	Image       string                      `json:"image"`
	Tags        []uint                      `json:"tags"`
	Ingredients []services.IngredientAmount `json:"ingredients"`
}

// toInput resolves the payload into a service input, storing the image
// blob first when one was submitted
func (rc *recipeController) toInput(payload recipePayload) (services.RecipeInput, error) {
	input := services.RecipeInput{
		Name:        payload.Name,
		Text:        payload.Text,
		CookingTime: payload.CookingTime,
		TagIDs:      payload.Tags,
		Ingredients: payload.Ingredients,
	}
	if payload.Image != "" {
		filename, err := media.SaveBase64Image(rc.mediaDir, payload.Image)
		if err != nil {
			return services.RecipeInput{}, models.NewValidationError("image", err.Error())
		}
		input.Image = filename
	}
	return input, nil
}

// ListRecipes godoc
// @Summary List recipes
// @Description Get recipes newest first, annotated with the viewer's favorite and cart flags
// @Tags recipes
// @Accept json
// @Produce json
// @Param tags query string false "Comma-separated tag slugs"
// @Param author query int false "Filter by author id"
// @Param is_favorited query int false "Only the viewer's favorites (1)"
// @Param is_in_shopping_cart query int false "Only recipes in the viewer's cart (1)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} services.AnnotatedRecipe
// @Failure 500 {object} models.APIError
// @Router /api/v1/recipes [get]
func (rc *recipeController) ListRecipes(ctx *gin.Context) {
	filter := services.RecipeFilter{
		FavoritedOnly: ctx.Query("is_favorited") == "1",
		InCartOnly:    ctx.Query("is_in_shopping_cart") == "1",
	}
	if tags := ctx.Query("tags"); tags != "" {
		filter.TagSlugs = strings.Split(tags, ",")
	}
	if author := ctx.Query("author"); author != "" {
		authorID, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID format"})
			return
		}
		id := uint(authorID)
		filter.AuthorID = &id
	}
	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	recipes, err := rc.recipes.List(filter, middleware.ViewerID(ctx))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipes)
}

// GetRecipeByID godoc
// @Summary Get recipe by ID
// @Description Get a single annotated recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} services.AnnotatedRecipe
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/{id} [get]
func (rc *recipeController) GetRecipeByID(ctx *gin.Context) {
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	recipe, err := rc.recipes.GetByID(recipeID, middleware.ViewerID(ctx))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// CreateRecipe godoc
// @Summary Create a new recipe
// @Description Create a recipe with its tags and ingredient amounts in one atomic write
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body recipePayload true "Recipe payload"
// @Success 201 {object} services.AnnotatedRecipe
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes [post]
func (rc *recipeController) CreateRecipe(ctx *gin.Context) {
	var payload recipePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	input, err := rc.toInput(payload)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	recipe, err := rc.recipes.Create(*viewerID, input)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe godoc
// @Summary Replace a recipe
// @Description Overwrite a recipe's attributes, tag set and ingredient amounts wholesale
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body recipePayload true "Recipe payload"
// @Success 200 {object} services.AnnotatedRecipe
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [put]
func (rc *recipeController) UpdateRecipe(ctx *gin.Context) {
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	if _, ok := rc.requireAuthor(ctx, recipeID, "You can only update your own recipes"); !ok {
		return
	}

	var payload recipePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input, err := rc.toInput(payload)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	recipe, err := rc.recipes.Replace(recipeID, input)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe; its line items and membership rows cascade away
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [delete]
func (rc *recipeController) DeleteRecipe(ctx *gin.Context) {
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	if _, ok := rc.requireAuthor(ctx, recipeID, "You can only delete your own recipes"); !ok {
		return
	}

	if err := rc.recipes.Delete(recipeID); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// AddFavorite godoc
// @Summary Add a recipe to favorites
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} models.ShortRecipe
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/favorite [post]
func (rc *recipeController) AddFavorite(ctx *gin.Context) {
	rc.addMembership(ctx, rc.memberships.AddFavorite)
}

// RemoveFavorite godoc
// @Summary Remove a recipe from favorites
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/favorite [delete]
func (rc *recipeController) RemoveFavorite(ctx *gin.Context) {
	rc.removeMembership(ctx, rc.memberships.RemoveFavorite)
}

// AddToCart godoc
// @Summary Add a recipe to the shopping cart
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} models.ShortRecipe
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/shopping_cart [post]
func (rc *recipeController) AddToCart(ctx *gin.Context) {
	rc.addMembership(ctx, rc.memberships.AddToCart)
}

// RemoveFromCart godoc
// @Summary Remove a recipe from the shopping cart
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/shopping_cart [delete]
func (rc *recipeController) RemoveFromCart(ctx *gin.Context) {
	rc.removeMembership(ctx, rc.memberships.RemoveFromCart)
}

// DownloadShoppingCart godoc
// @Summary Download the aggregated shopping list
// @Description Merge every cart recipe's ingredients into one list, summed per (name, unit), as a text attachment
// @Tags recipes
// @Produce plain
// @Success 200 {string} string
// @Security BearerAuth
// @Router /api/v1/recipes/download_shopping_cart [get]
func (rc *recipeController) DownloadShoppingCart(ctx *gin.Context) {
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := rc.shoppingList.BuildReport(*viewerID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	document := render.ShoppingList(items, time.Now())
	ctx.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", document)
}

func (rc *recipeController) addMembership(ctx *gin.Context, add func(userID, recipeID uint) (models.ShortRecipe, error)) {
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	short, err := add(*viewerID, recipeID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, short)
}

func (rc *recipeController) removeMembership(ctx *gin.Context, remove func(userID, recipeID uint) error) {
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := remove(*viewerID, recipeID); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// requireAuthor checks that the authenticated user wrote the recipe.
// The core trusts this check has happened before Replace/Delete run.
func (rc *recipeController) requireAuthor(ctx *gin.Context, recipeID uint, message string) (uint, bool) {
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}

	existing, err := rc.recipes.GetByID(recipeID, nil)
	if err != nil {
		respondWithServiceError(ctx, err)
		return 0, false
	}

	if existing.AuthorID != *viewerID {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":        message,
			"recipe_owner": existing.AuthorID,
			"your_id":      *viewerID,
		})
		return 0, false
	}
	return *viewerID, true
}

// pathID parses the :id path parameter, responding with 400 on bad input
func pathID(ctx *gin.Context) (uint, bool) {
	id, existID := ctx.Params.Get("id")
	if !existID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return 0, false
	}

	parsed, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(parsed), true
}
