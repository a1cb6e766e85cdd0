package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/internal/handlers"
	"github.com/ankit705yadav/skillCircle/internal/middleware"
)

func RegisterConnectionRoutes(r gin.IRouter, ch *handlers.ConnectionHandler, mh *handlers.MessageHandler) {
	connections := r.Group("/connections")
	connections.Use(middleware.AuthMiddleware())
	{
		connections.POST("", ch.Create)
		connections.GET("/notifications", ch.ListPending)
		connections.GET("/active", ch.ListActive)
		connections.POST("/:connectionId/accept", ch.Accept)
		connections.POST("/:connectionId/reject", ch.Reject)

		connections.GET("/:connectionId/messages", mh.List)
		connections.POST("/:connectionId/messages", middleware.ChatRateLimit(), mh.Send)
	}
}
