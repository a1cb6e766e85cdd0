package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/internal/services"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get GET /api/stats
func (h *StatsHandler) Get(c *gin.Context) {
	stats, appErr := h.stats.GetAppStats()
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, stats)
}
