package handlers

import (
	"errors"
	"net/http"

	"github.com/PropertyIntelLTD/property-intel-server/internal/helpers"
	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/gin-gonic/gin"
)

// statusForError maps the data-layer taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrProfileNotFound), errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func claimsFromContext(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	raw, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := raw.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}
