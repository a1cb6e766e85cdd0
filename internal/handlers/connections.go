package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/services"
)

type ConnectionHandler struct {
	connections *services.ConnectionService
}

func NewConnectionHandler(connections *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

// Create POST /api/connections
func (h *ConnectionHandler) Create(c *gin.Context) {
	var req struct {
		SkillPostID string `json:"skillPostId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	conn, appErr := h.connections.Request(req.SkillPostID, subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusCreated, services.ConnectionToDTO(conn))
}

// ListPending GET /api/connections/notifications, requests awaiting the
// caller's approval.
func (h *ConnectionHandler) ListPending(c *gin.Context) {
	conns, appErr := h.connections.ListPendingForApprover(subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, lo.Map(conns, func(cn models.Connection, _ int) services.ConnectionDTO {
		return services.ConnectionToDTO(&cn)
	}))
}

// ListActive GET /api/connections/active
func (h *ConnectionHandler) ListActive(c *gin.Context) {
	conns, appErr := h.connections.ListActiveForUser(subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, lo.Map(conns, func(cn models.Connection, _ int) services.ConnectionDTO {
		return services.ConnectionToDTO(&cn)
	}))
}

// Accept POST /api/connections/:connectionId/accept
func (h *ConnectionHandler) Accept(c *gin.Context) {
	conn, appErr := h.connections.Accept(c.Param("connectionId"), subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, services.ConnectionToDTO(conn))
}

// Reject POST /api/connections/:connectionId/reject
func (h *ConnectionHandler) Reject(c *gin.Context) {
	conn, appErr := h.connections.Reject(c.Param("connectionId"), subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, services.ConnectionToDTO(conn))
}
