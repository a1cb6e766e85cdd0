package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/ankit705yadav/skillCircle/internal/database"
	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/services"
)

// Per-user budget on top of the per-IP limiter, so one account cannot
// flood a conversation from many addresses.
const (
	userSendLimit  = 30
	userSendWindow = time.Minute
)

type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// List GET /api/connections/:connectionId/messages
func (h *MessageHandler) List(c *gin.Context) {
	msgs, appErr := h.messages.GetMessages(c.Param("connectionId"), subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, lo.Map(msgs, func(m models.Message, _ int) services.MessageDTO {
		return services.MessageToDTO(&m)
	}))
}

// Send POST /api/connections/:connectionId/messages
func (h *MessageHandler) Send(c *gin.Context) {
	subject := subjectFrom(c)

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if database.Redis != nil {
		if ok, _ := database.CheckRateLimit("send:"+subject, userSendLimit, userSendWindow); !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages, slow down"})
			return
		}
	}

	msg, appErr := h.messages.Send(c.Param("connectionId"), subject, req.Content)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusCreated, services.MessageToDTO(msg))
}
