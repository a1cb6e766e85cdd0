package services

import (
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/realtime"
	"github.com/ankit705yadav/skillCircle/pkg/errors"
	"github.com/ankit705yadav/skillCircle/pkg/logger"
)

// ConnectionService owns the connection state machine. Every mutating call
// re-checks authorization against freshly loaded state, and the actual
// status flip is a WHERE-guarded update so concurrent accept/reject on the
// same pending connection has exactly one winner.
type ConnectionService struct {
	db         *gorm.DB
	dispatcher *realtime.Dispatcher
}

func NewConnectionService(db *gorm.DB, dispatcher *realtime.Dispatcher) *ConnectionService {
	return &ConnectionService{db: db, dispatcher: dispatcher}
}

// Request creates a PENDING connection from the caller to the author of a
// post. The approver is always the post's author; it is never settable.
func (s *ConnectionService) Request(postID, requesterSubject string) (*models.Connection, *errors.AppError) {
	var post models.SkillPost
	if err := s.db.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Skill post not found")
		}
		return nil, errors.Internal("Failed to load skill post")
	}

	var requester models.User
	if err := s.db.First(&requester, "clerk_user_id = ?", requesterSubject).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.InvalidOperation("Requester account not found")
		}
		return nil, errors.Internal("Failed to load requester")
	}

	if requester.ID == post.AuthorID {
		return nil, errors.InvalidOperation("You cannot connect with yourself")
	}

	conn := models.Connection{
		SkillPostID: post.ID,
		RequesterID: requester.ID,
		ApproverID:  post.AuthorID,
		Status:      models.ConnectionPending,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(&conn).Error; err != nil {
		return nil, errors.Internal("Failed to create connection")
	}

	loaded, appErr := s.load(conn.ID)
	if appErr != nil {
		return nil, appErr
	}

	// Best effort after persistence: a routing failure never fails the request.
	dto := ConnectionToDTO(loaded)
	s.dispatcher.SendToUser(loaded.Approver.ClerkUserID, realtime.NewEnvelope(
		realtime.KindConnectionRequest,
		loaded.ID,
		"New connection request from "+dto.Requester.Username,
		dto,
	))

	return loaded, nil
}

// Accept moves a PENDING connection to ACCEPTED. Only the approver may do
// this; a retry against an already-resolved connection is an error, not a
// silent success.
func (s *ConnectionService) Accept(connectionID, actorSubject string) (*models.Connection, *errors.AppError) {
	conn, appErr := s.transition(connectionID, actorSubject, models.ConnectionAccepted)
	if appErr != nil {
		return nil, appErr
	}

	dto := ConnectionToDTO(conn)
	s.dispatcher.SendToUser(conn.Requester.ClerkUserID, realtime.NewEnvelope(
		realtime.KindConnectionAccepted,
		conn.ID,
		dto.Approver.Username+" accepted your connection request",
		dto,
	))
	s.notifyStatusChanged(conn, dto)

	return conn, nil
}

// Reject moves a PENDING connection to REJECTED, with the same
// authorization and terminality rules as Accept.
func (s *ConnectionService) Reject(connectionID, actorSubject string) (*models.Connection, *errors.AppError) {
	conn, appErr := s.transition(connectionID, actorSubject, models.ConnectionRejected)
	if appErr != nil {
		return nil, appErr
	}

	s.notifyStatusChanged(conn, ConnectionToDTO(conn))
	return conn, nil
}

// ListPendingForApprover returns the PENDING requests awaiting a user's
// approval, oldest first.
func (s *ConnectionService) ListPendingForApprover(subject string) ([]models.Connection, *errors.AppError) {
	user, appErr := s.userBySubject(subject)
	if appErr != nil {
		return nil, appErr
	}

	var conns []models.Connection
	err := s.preloaded().
		Where("approver_id = ? AND status = ?", user.ID, models.ConnectionPending).
		Order("created_at asc").
		Find(&conns).Error
	if err != nil {
		return nil, errors.Internal("Failed to load pending connections")
	}
	return conns, nil
}

// ListActiveForUser returns the ACCEPTED connections where the user is
// either party.
func (s *ConnectionService) ListActiveForUser(subject string) ([]models.Connection, *errors.AppError) {
	user, appErr := s.userBySubject(subject)
	if appErr != nil {
		return nil, appErr
	}

	var conns []models.Connection
	err := s.preloaded().
		Where("status = ? AND (requester_id = ? OR approver_id = ?)", models.ConnectionAccepted, user.ID, user.ID).
		Order("created_at asc").
		Find(&conns).Error
	if err != nil {
		return nil, errors.Internal("Failed to load active connections")
	}
	return conns, nil
}

// AuthorizeParticipant fails unless the subject is a party of the
// connection. Used by the socket layer to gate conversation topics.
func (s *ConnectionService) AuthorizeParticipant(connectionID, subject string) error {
	conn, appErr := s.load(connectionID)
	if appErr != nil {
		return appErr
	}
	if conn.Requester.ClerkUserID != subject && conn.Approver.ClerkUserID != subject {
		return errors.Forbidden("Not a participant of this connection")
	}
	return nil
}

func (s *ConnectionService) transition(connectionID, actorSubject string, target models.ConnectionStatus) (*models.Connection, *errors.AppError) {
	conn, appErr := s.load(connectionID)
	if appErr != nil {
		return nil, appErr
	}

	if conn.Approver.ClerkUserID != actorSubject {
		return nil, errors.Forbidden("Only the approver can resolve this request")
	}
	if conn.Status != models.ConnectionPending {
		return nil, errors.InvalidOperation("Connection is not pending")
	}

	// Compare-and-swap on status: a concurrent accept/reject loses here
	// with zero rows affected instead of overwriting the winner.
	res := s.db.Model(&models.Connection{}).
		Where("id = ? AND status = ?", connectionID, models.ConnectionPending).
		Update("status", target)
	if res.Error != nil {
		return nil, errors.Internal("Failed to update connection")
	}
	if res.RowsAffected == 0 {
		return nil, errors.InvalidOperation("Connection is not pending")
	}

	conn.Status = target
	return conn, nil
}

func (s *ConnectionService) notifyStatusChanged(conn *models.Connection, dto ConnectionDTO) {
	env := realtime.NewEnvelope(
		realtime.KindConnectionStatusChanged,
		conn.ID,
		"Connection status updated",
		dto,
	)
	s.dispatcher.SendToUser(conn.Requester.ClerkUserID, env)
	s.dispatcher.SendToUser(conn.Approver.ClerkUserID, env)
}

func (s *ConnectionService) load(connectionID string) (*models.Connection, *errors.AppError) {
	var conn models.Connection
	if err := s.preloaded().First(&conn, "id = ?", connectionID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Connection not found")
		}
		logger.Error().Err(err).Str("connection", connectionID).Msg("Failed to load connection")
		return nil, errors.Internal("Failed to load connection")
	}
	return &conn, nil
}

func (s *ConnectionService) preloaded() *gorm.DB {
	return s.db.
		Preload("SkillPost").
		Preload("SkillPost.Author").
		Preload("Requester").
		Preload("Approver")
}

func (s *ConnectionService) userBySubject(subject string) (*models.User, *errors.AppError) {
	var user models.User
	if err := s.db.First(&user, "clerk_user_id = ?", subject).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("User not found")
		}
		return nil, errors.Internal("Failed to load user")
	}
	return &user, nil
}
