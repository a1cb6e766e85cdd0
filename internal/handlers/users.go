package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me GET /api/users/me, find-or-create the account for the caller.
func (h *UserHandler) Me(c *gin.Context) {
	user, appErr := h.users.FindOrCreate(subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clerkUserId": user.ClerkUserID,
		"username":    user.DisplayName(),
	})
}

// SyncLocation POST /api/users/sync
func (h *UserHandler) SyncLocation(c *gin.Context) {
	var req struct {
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if appErr := h.users.SyncLocation(subjectFrom(c), req.Latitude, req.Longitude); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.Status(http.StatusOK)
}

// GenerateUsernames GET /api/users/generate-usernames
func (h *UserHandler) GenerateUsernames(c *gin.Context) {
	names, appErr := h.users.GenerateUsernames()
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, names)
}

// ClaimUsername POST /api/users/claim-username
func (h *UserHandler) ClaimUsername(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if appErr := h.users.ClaimUsername(subjectFrom(c), req.Username); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.Status(http.StatusOK)
}
