package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ankit705yadav/skillCircle/internal/config"
	"github.com/ankit705yadav/skillCircle/internal/handlers"
	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/realtime"
	"github.com/ankit705yadav/skillCircle/internal/routes"
	"github.com/ankit705yadav/skillCircle/internal/services"
	"github.com/ankit705yadav/skillCircle/pkg/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	config.AppConfig = &config.Config{
		JWTSecret: "test_secret_key_12345",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.SkillPost{},
		&models.Connection{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	return db
}

// setupRouter mirrors the wiring in cmd/server/main.go, minus Redis, rate
// limiting and the socket transport.
func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry)

	userService := services.NewUserService(db, services.NewUsernameGenerator(1))
	postService := services.NewPostService(db, services.NewModerationService(""))
	connectionService := services.NewConnectionService(db, dispatcher)
	messageService := services.NewMessageService(db, dispatcher)
	statsService := services.NewStatsService(db)

	api := r.Group("/api")
	{
		routes.RegisterUserRoutes(api, handlers.NewUserHandler(userService))
		routes.RegisterSkillRoutes(api, handlers.NewPostHandler(postService))
		routes.RegisterConnectionRoutes(api,
			handlers.NewConnectionHandler(connectionService),
			handlers.NewMessageHandler(messageService))
		routes.RegisterStatsRoutes(api, handlers.NewStatsHandler(statsService))
	}
	return r
}

// createTestUser inserts an onboarded user directly and returns a dev token
// for the subject.
func createTestUser(t *testing.T, db *gorm.DB, subject, username string) string {
	user := models.User{ClerkUserID: subject, Username: &username}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", subject, err)
	}

	token, err := utils.GenerateDevToken(subject)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

func performRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(jsonBytes))
	} else {
		bodyReader = strings.NewReader("")
	}

	req, _ := http.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}
