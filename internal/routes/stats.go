package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/internal/handlers"
)

func RegisterStatsRoutes(r gin.IRouter, h *handlers.StatsHandler) {
	r.GET("/stats", h.Get)
}
