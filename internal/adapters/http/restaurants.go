package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bitefinder/server/internal/app"
	"github.com/bitefinder/server/internal/domain"
)

type RestaurantHandler struct {
	Orch *app.Orchestrator
}

// GroupCatalog lists the restaurant catalog with the group's current
// like tallies, for the selection screen.
func (h *RestaurantHandler) GroupCatalog(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	tallies, err := h.Orch.GroupRestaurants(c.Request.Context(), domain.GroupCode(c.Param("code")), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": tallies})
}
