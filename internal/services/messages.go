package services

import (
	stderrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/realtime"
	"github.com/ankit705yadav/skillCircle/pkg/errors"
)

// MessageService is the gated send path. Connection state and participancy
// are re-validated against the database on every call, never cached from a
// prior read.
type MessageService struct {
	db         *gorm.DB
	dispatcher *realtime.Dispatcher
}

func NewMessageService(db *gorm.DB, dispatcher *realtime.Dispatcher) *MessageService {
	return &MessageService{db: db, dispatcher: dispatcher}
}

// GetMessages returns a conversation's history, oldest first. Both parties
// keep access regardless of the connection's current status: messages could
// only ever have been created while it was ACCEPTED, and history stays
// visible after a later rejection.
func (s *MessageService) GetMessages(connectionID, callerSubject string) ([]models.Message, *errors.AppError) {
	conn, appErr := s.loadConnection(connectionID)
	if appErr != nil {
		return nil, appErr
	}

	if conn.Requester.ClerkUserID != callerSubject && conn.Approver.ClerkUserID != callerSubject {
		return nil, errors.Forbidden("Not authorized to view these messages")
	}

	var messages []models.Message
	err := s.db.Preload("Sender").
		Where("connection_id = ?", connectionID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Internal("Failed to load messages")
	}
	return messages, nil
}

// Send persists a message and routes it. Messaging is only ever permitted
// on an ACCEPTED connection; this is the single chokepoint enforcing that,
// and it runs on every send. Routing happens strictly after persistence and
// is best effort.
func (s *MessageService) Send(connectionID, senderSubject, content string) (*models.Message, *errors.AppError) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.BadRequest("Message content cannot be empty")
	}

	conn, appErr := s.loadConnection(connectionID)
	if appErr != nil {
		return nil, appErr
	}

	var sender models.User
	if err := s.db.First(&sender, "clerk_user_id = ?", senderSubject).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.InvalidOperation("Sender account not found")
		}
		return nil, errors.Internal("Failed to load sender")
	}

	if conn.Status != models.ConnectionAccepted {
		return nil, errors.InvalidOperation("Messages can only be sent in accepted connections")
	}
	if !conn.IsParticipant(sender.ID) {
		return nil, errors.Forbidden("Not a participant of this connection")
	}

	msg := models.Message{
		ConnectionID: conn.ID,
		SenderID:     sender.ID,
		Content:      content,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, errors.Internal("Failed to persist message")
	}
	msg.Sender = sender

	dto := MessageToDTO(&msg)

	// The other party gets a user-addressed notification; everyone
	// currently viewing the conversation gets the message itself.
	recipient := conn.Requester
	if recipient.ID == sender.ID {
		recipient = conn.Approver
	}
	s.dispatcher.SendToUser(recipient.ClerkUserID, realtime.NewEnvelope(
		realtime.KindNewMessage,
		msg.ID,
		"New message from "+dto.Sender.Username,
		dto,
	))
	s.dispatcher.SendToTopic(realtime.ConversationTopic(conn.ID), dto)

	return &msg, nil
}

func (s *MessageService) loadConnection(connectionID string) (*models.Connection, *errors.AppError) {
	var conn models.Connection
	err := s.db.Preload("Requester").Preload("Approver").
		First(&conn, "id = ?", connectionID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Connection not found")
		}
		return nil, errors.Internal("Failed to load connection")
	}
	return &conn, nil
}
