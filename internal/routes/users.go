package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/internal/handlers"
	"github.com/ankit705yadav/skillCircle/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter, h *handlers.UserHandler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.Me)
		users.POST("/sync", h.SyncLocation)
		users.GET("/generate-usernames", h.GenerateUsernames)
		users.POST("/claim-username", h.ClaimUsername)
	}
}
