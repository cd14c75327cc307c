package controllers

import (
	"errors"
	"net/http"

	"github.com/JimmyMcBride/nutrition-tracker-be/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Every
// failure path writes a response; nothing is swallowed.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var incompleteErr *services.IncompleteProfileError
	var providerErr *services.ProviderError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &incompleteErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &providerErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
