package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipehub/gin-recipe-api/internal/models"
)

// respondWithServiceError maps the domain error taxonomy onto HTTP status
// codes: ValidationError → 400, NotFoundError → 404, ConflictError → 409.
// Anything else is an internal error and is not leaked to the client.
func respondWithServiceError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, models.NewAPIError(
			models.ErrValidationFailed,
			validationErr.Message,
			map[string]interface{}{"field": validationErr.Field},
		))
		return
	}

	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, notFoundErr.Error()))
		return
	}

	var conflictErr *models.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, conflictErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "internal server error"))
}
