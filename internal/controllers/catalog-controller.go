package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipehub/gin-recipe-api/internal/models"
	"github.com/recipehub/gin-recipe-api/internal/services"
)

// CatalogController serves the tag and ingredient reference endpoints
type CatalogController interface {
	GetAllTags(c *gin.Context)
	GetTagByID(c *gin.Context)
	CreateTag(c *gin.Context)
	GetAllIngredients(c *gin.Context)
	GetIngredientByID(c *gin.Context)
	CreateIngredient(c *gin.Context)
}

type catalogController struct {
	service services.CatalogService
}

// NewCatalogController creates a new instance of CatalogController
func NewCatalogController(service services.CatalogService) *catalogController {
	return &catalogController{service: service}
}

// GetAllTags godoc
// @Summary List tags
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Tag
// @Router /api/v1/tags [get]
func (cc *catalogController) GetAllTags(ctx *gin.Context) {
	tags, err := cc.service.GetAllTags()
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// GetTagByID godoc
// @Summary Get tag by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.APIError
// @Router /api/v1/tags/{id} [get]
func (cc *catalogController) GetTagByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	tag, err := cc.service.GetTagByID(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// CreateTag godoc
// @Summary Create a tag
// @Description Admin-only; name, color and slug must each be unique
// @Tags catalog
// @Accept json
// @Produce json
// @Param tag body models.Tag true "Tag"
// @Success 201 {object} models.Tag
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags [post]
func (cc *catalogController) CreateTag(ctx *gin.Context) {
	var tag models.Tag
	if err := ctx.ShouldBindJSON(&tag); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := cc.service.CreateTag(tag)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// GetAllIngredients godoc
// @Summary List ingredients
// @Description Optionally filter by a name prefix
// @Tags catalog
// @Produce json
// @Param name query string false "Name prefix"
// @Success 200 {array} models.Ingredient
// @Router /api/v1/ingredients [get]
func (cc *catalogController) GetAllIngredients(ctx *gin.Context) {
	ingredients, err := cc.service.GetAllIngredients(ctx.Query("name"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// GetIngredientByID godoc
// @Summary Get ingredient by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.APIError
// @Router /api/v1/ingredients/{id} [get]
func (cc *catalogController) GetIngredientByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	ingredient, err := cc.service.GetIngredientByID(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Description Admin-only; the (name, measurement_unit) pair must be unique
// @Tags catalog
// @Accept json
// @Produce json
// @Param ingredient body models.Ingredient true "Ingredient"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients [post]
func (cc *catalogController) CreateIngredient(ctx *gin.Context) {
	var ingredient models.Ingredient
	if err := ctx.ShouldBindJSON(&ingredient); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := cc.service.CreateIngredient(ingredient)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}
