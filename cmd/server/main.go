package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/internal/config"
	"github.com/ankit705yadav/skillCircle/internal/database"
	"github.com/ankit705yadav/skillCircle/internal/handlers"
	"github.com/ankit705yadav/skillCircle/internal/middleware"
	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/realtime"
	"github.com/ankit705yadav/skillCircle/internal/routes"
	"github.com/ankit705yadav/skillCircle/internal/services"
	"github.com/ankit705yadav/skillCircle/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)
	logger.Info().Str("environment", env).Msg("Starting SkillCircle Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.SkillPost{},
		&models.Connection{},
		&models.Message{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Realtime plumbing: one registry, one dispatcher, injected into the
	// services that produce notifications.
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry)

	moderation := services.NewModerationService(config.AppConfig.PerspectiveAPIKey)
	userService := services.NewUserService(database.DB, services.NewUsernameGenerator(time.Now().UnixNano()))
	postService := services.NewPostService(database.DB, moderation)
	connectionService := services.NewConnectionService(database.DB, dispatcher)
	messageService := services.NewMessageService(database.DB, dispatcher)
	statsService := services.NewStatsService(database.DB)

	socketServer := realtime.NewSocketServer(registry, connectionService.AuthorizeParticipant)
	defer socketServer.Close()

	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Socket.IO polling is chatty; exempt it from the general limiter.
	r.Use(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 10 && c.Request.URL.Path[:10] == "/socket.io" {
			c.Next()
			return
		}
		middleware.GeneralRateLimit()(c)
	})

	api := r.Group("/api")
	{
		routes.RegisterUserRoutes(api, handlers.NewUserHandler(userService))
		routes.RegisterSkillRoutes(api, handlers.NewPostHandler(postService))
		routes.RegisterConnectionRoutes(api,
			handlers.NewConnectionHandler(connectionService),
			handlers.NewMessageHandler(messageService))
		routes.RegisterStatsRoutes(api, handlers.NewStatsHandler(statsService))
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}
		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	r.GET("/socket.io/*any", realtime.SocketHandler(socketServer))
	r.POST("/socket.io/*any", realtime.SocketHandler(socketServer))

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}
	logger.Info().Msg("Server exited")
}
