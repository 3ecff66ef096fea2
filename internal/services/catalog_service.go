package services

import (
	"errors"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// CatalogService serves the flat tag and ingredient reference data.
// Writes are an admin path; reads are public.
type CatalogService interface {
	GetAllTags() ([]models.Tag, error)
	GetTagByID(id uint) (models.Tag, error)
	// CreateTag inserts a tag; duplicate name, color or slug is a conflict
	CreateTag(tag models.Tag) (models.Tag, error)
	// GetAllIngredients lists ingredients, optionally by name prefix
	GetAllIngredients(namePrefix string) ([]models.Ingredient, error)
	GetIngredientByID(id uint) (models.Ingredient, error)
	// CreateIngredient inserts an ingredient; a duplicate
	// (name, measurement_unit) pair is a conflict
	CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error)
}

type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) GetAllTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *catalogService) GetTagByID(id uint) (models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tag{}, models.NewNotFoundError("tag")
		}
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *catalogService) CreateTag(tag models.Tag) (models.Tag, error) {
	if tag.Name == "" {
		return models.Tag{}, models.NewValidationError("name", "tag name is required")
	}
	if tag.Slug == "" {
		return models.Tag{}, models.NewValidationError("slug", "tag slug is required")
	}
	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Tag{}, models.NewConflictError("tag name, color and slug must be unique")
		}
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *catalogService) GetAllIngredients(namePrefix string) ([]models.Ingredient, error) {
	query := s.db.Order("name ASC")
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}
	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *catalogService) GetIngredientByID(id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ingredient{}, models.NewNotFoundError("ingredient")
		}
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *catalogService) CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error) {
	if ingredient.Name == "" {
		return models.Ingredient{}, models.NewValidationError("name", "ingredient name is required")
	}
	if ingredient.MeasurementUnit == "" {
		return models.Ingredient{}, models.NewValidationError("measurement_unit", "measurement unit is required")
	}
	if err := s.db.Create(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Ingredient{}, models.NewConflictError("ingredient with this name and unit already exists")
		}
		return models.Ingredient{}, err
	}
	return ingredient, nil
}
