package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/internal/handlers"
	"github.com/ankit705yadav/skillCircle/internal/middleware"
)

func RegisterSkillRoutes(r gin.IRouter, h *handlers.PostHandler) {
	skills := r.Group("/skills")
	{
		// Nearby search is public; everything else needs identity.
		skills.GET("/nearby", h.Nearby)

		protected := skills.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("", h.Create)
			protected.GET("/my-skills", h.Mine)
			protected.POST("/:id/archive", h.Archive)
		}
	}

	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("/poster", handlers.UploadPosterImage)
	}
}
