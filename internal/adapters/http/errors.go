package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// abortWithError maps engine errors onto HTTP statuses. Unexpected
// errors are logged and flattened to a generic 500.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrGroupNotFound),
		errors.Is(err, core.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrAlreadyMember),
		errors.Is(err, core.ErrGroupFull),
		errors.Is(err, core.ErrGroupNotActive),
		errors.Is(err, core.ErrCodeExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrNotAMember),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, domain.ErrGroupNameEmpty),
		errors.Is(err, domain.ErrGroupNameTooLong),
		errors.Is(err, domain.ErrBadGroupCode),
		errors.Is(err, domain.ErrUsernameEmpty),
		errors.Is(err, domain.ErrUsernameTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
