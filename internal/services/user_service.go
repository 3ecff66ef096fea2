package services

import (
	"errors"

	"github.com/recipehub/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// SubscribedAuthor is a followed author together with their recipes
type SubscribedAuthor struct {
	models.User
	IsSubscribed bool                 `json:"is_subscribed"`
	Recipes      []models.ShortRecipe `json:"recipes"`
	RecipesCount int                  `json:"recipes_count"`
}

type UserService interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	// Subscriptions lists the authors the user follows, each with up to
	// recipesLimit of their recipes (0 means all)
	Subscriptions(userID uint, recipesLimit int) ([]SubscribedAuthor, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var existing models.User
	if err := s.db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existing).Error; err == nil {
		return models.NewConflictError("user with this email or username already exists")
	}

	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user")
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user")
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) Subscriptions(userID uint, recipesLimit int) ([]SubscribedAuthor, error) {
	var authors []models.User
	err := s.db.
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.created_at DESC")
		}).
		Find(&authors).Error
	if err != nil {
		return nil, err
	}

	subscribed := make([]SubscribedAuthor, 0, len(authors))
	for _, author := range authors {
		recipes := make([]models.ShortRecipe, 0, len(author.Recipes))
		for i := range author.Recipes {
			if recipesLimit > 0 && len(recipes) >= recipesLimit {
				break
			}
			recipes = append(recipes, author.Recipes[i].Short())
		}
		subscribed = append(subscribed, SubscribedAuthor{
			User:         author,
			IsSubscribed: true,
			Recipes:      recipes,
			RecipesCount: len(author.Recipes),
		})
	}
	return subscribed, nil
}
