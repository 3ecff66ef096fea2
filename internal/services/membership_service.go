package services

import (
	"errors"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// MembershipService manages the favorite, shopping-cart and follow
// relations. Uniqueness races are settled by the storage constraints;
// this layer only translates constraint violations into ConflictError.
type MembershipService interface {
	// AddFavorite marks a recipe as favorited, returning its short projection
	AddFavorite(userID, recipeID uint) (models.ShortRecipe, error)
	RemoveFavorite(userID, recipeID uint) error
	// AddToCart puts a recipe into the user's shopping cart
	AddToCart(userID, recipeID uint) (models.ShortRecipe, error)
	RemoveFromCart(userID, recipeID uint) error
	// Follow subscribes a user to an author; self-follow is rejected
	Follow(followerID, authorID uint) error
	Unfollow(followerID, authorID uint) error
	// IsFollowing reports whether follower is subscribed to the author
	IsFollowing(followerID, authorID uint) (bool, error)
}

type membershipService struct {
	db *gorm.DB
}

// NewMembershipService creates a new instance of MembershipService
func NewMembershipService(db *gorm.DB) MembershipService {
	return &membershipService{db: db}
}

func (s *membershipService) AddFavorite(userID, recipeID uint) (models.ShortRecipe, error) {
	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return models.ShortRecipe{}, err
	}
	entry := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ShortRecipe{}, models.NewConflictError("recipe already in favorites")
		}
		return models.ShortRecipe{}, err
	}
	return recipe.Short(), nil
}

func (s *membershipService) RemoveFavorite(userID, recipeID uint) error {
	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("favorite")
	}
	return nil
}

func (s *membershipService) AddToCart(userID, recipeID uint) (models.ShortRecipe, error) {
	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return models.ShortRecipe{}, err
	}
	entry := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ShortRecipe{}, models.NewConflictError("recipe already in shopping cart")
		}
		return models.ShortRecipe{}, err
	}
	return recipe.Short(), nil
}

func (s *membershipService) RemoveFromCart(userID, recipeID uint) error {
	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.ShoppingCart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("shopping cart entry")
	}
	return nil
}

func (s *membershipService) Follow(followerID, authorID uint) error {
	// Rejected regardless of existing data
	if followerID == authorID {
		return models.NewValidationError("author", "cannot follow yourself")
	}
	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("user")
		}
		return err
	}
	entry := models.Follow{FollowerID: followerID, AuthorID: authorID}
	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("already following this author")
		}
		return err
	}
	return nil
}

func (s *membershipService) Unfollow(followerID, authorID uint) error {
	result := s.db.Where("follower_id = ? AND author_id = ?", followerID, authorID).Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("subscription")
	}
	return nil
}

func (s *membershipService) IsFollowing(followerID, authorID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (s *membershipService) findRecipe(recipeID uint) (models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Recipe{}, models.NewNotFoundError("recipe")
		}
		return models.Recipe{}, err
	}
	return recipe, nil
}
