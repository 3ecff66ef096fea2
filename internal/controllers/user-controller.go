package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/recipehub/gin-recipe-api/internal/middleware"
	"github.com/recipehub/gin-recipe-api/internal/services"
)

// UserController serves user profiles and author subscriptions
type UserController interface {
	GetMe(c *gin.Context)
	GetUserByID(c *gin.Context)
	Subscribe(c *gin.Context)
	Unsubscribe(c *gin.Context)
	Subscriptions(c *gin.Context)
}

type userController struct {
	users       services.UserService
	memberships services.MembershipService
}

// NewUserController creates a new instance of UserController
func NewUserController(users services.UserService, memberships services.MembershipService) *userController {
	return &userController{users: users, memberships: memberships}
}

// GetMe godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Security BearerAuth
// @Router /api/v1/users/me [get]
func (uc *userController) GetMe(ctx *gin.Context) {
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	user, err := uc.users.GetUserByID(*viewerID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// GetUserByID godoc
// @Summary Get a user profile
// @Description Includes whether the viewer is subscribed to this user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Router /api/v1/users/{id} [get]
func (uc *userController) GetUserByID(ctx *gin.Context) {
	userID, ok := pathID(ctx)
	if !ok {
		return
	}
	user, err := uc.users.GetUserByID(userID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	isSubscribed := false
	if viewerID := middleware.ViewerID(ctx); viewerID != nil {
		isSubscribed, err = uc.memberships.IsFollowing(*viewerID, userID)
		if err != nil {
			respondWithServiceError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"is_subscribed": isSubscribed,
	})
}

// Subscribe godoc
// @Summary Follow an author
// @Tags users
// @Produce json
// @Param id path int true "Author ID"
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id}/subscribe [post]
func (uc *userController) Subscribe(ctx *gin.Context) {
	authorID, ok := pathID(ctx)
	if !ok {
		return
	}
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := uc.memberships.Follow(*viewerID, authorID); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "subscribed"})
}

// Unsubscribe godoc
// @Summary Unfollow an author
// @Tags users
// @Produce json
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id}/subscribe [delete]
func (uc *userController) Unsubscribe(ctx *gin.Context) {
	authorID, ok := pathID(ctx)
	if !ok {
		return
	}
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := uc.memberships.Unfollow(*viewerID, authorID); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// Subscriptions godoc
// @Summary List followed authors
// @Description Each author comes with their recipes and a recipe count
// @Tags users
// @Produce json
// @Param recipes_limit query int false "Max recipes per author"
// @Success 200 {array} services.SubscribedAuthor
// @Security BearerAuth
// @Router /api/v1/users/subscriptions [get]
func (uc *userController) Subscriptions(ctx *gin.Context) {
	viewerID := middleware.ViewerID(ctx)
	if viewerID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipesLimit, _ := strconv.Atoi(ctx.DefaultQuery("recipes_limit", "0"))
	authors, err := uc.users.Subscriptions(*viewerID, recipesLimit)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, authors)
}
