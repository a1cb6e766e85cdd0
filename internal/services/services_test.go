package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/realtime"
)

// Shared test harness: an isolated in-memory SQLite database plus a real
// registry/dispatcher pair so tests observe the actual dispatch calls.
type testEnv struct {
	db          *gorm.DB
	registry    *realtime.Registry
	dispatcher  *realtime.Dispatcher
	connections *ConnectionService
	messages    *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection serializes writes, which keeps concurrent test
	// cases off SQLite's busy errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SkillPost{},
		&models.Connection{},
		&models.Message{},
	))

	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry)

	return &testEnv{
		db:          db,
		registry:    registry,
		dispatcher:  dispatcher,
		connections: NewConnectionService(db, dispatcher),
		messages:    NewMessageService(db, dispatcher),
	}
}

type capturedEvent struct {
	Event   string
	Payload interface{}
}

// attachSession binds a fake live session for a subject and returns the
// channel its emissions land on.
func (e *testEnv) attachSession(t *testing.T, subject, sessionID string) chan capturedEvent {
	t.Helper()

	ch := make(chan capturedEvent, 32)
	s := realtime.NewSession(sessionID, 16, func(event string, payload interface{}) {
		ch <- capturedEvent{Event: event, Payload: payload}
	})
	t.Cleanup(s.Close)
	e.registry.Attach(subject, s)
	return ch
}

// subscribeTopic adds a fake session to a conversation topic.
func (e *testEnv) subscribeTopic(t *testing.T, topic, sessionID string) chan capturedEvent {
	t.Helper()

	ch := make(chan capturedEvent, 32)
	s := realtime.NewSession(sessionID, 16, func(event string, payload interface{}) {
		ch <- capturedEvent{Event: event, Payload: payload}
	})
	t.Cleanup(s.Close)
	e.registry.Subscribe(topic, s)
	return ch
}

func waitEvent(t *testing.T, ch chan capturedEvent) capturedEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatched event")
		return capturedEvent{}
	}
}

func assertNoEvent(t *testing.T, ch chan capturedEvent) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event dispatched: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func (e *testEnv) createUser(t *testing.T, subject, username string) models.User {
	t.Helper()

	user := models.User{ClerkUserID: subject, CreatedAt: time.Now()}
	if username != "" {
		user.Username = &username
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) createPost(t *testing.T, author models.User, postType models.PostType, title string) models.SkillPost {
	t.Helper()

	post := models.SkillPost{
		AuthorID:  author.ID,
		Type:      postType,
		Title:     title,
		CreatedAt: time.Now(),
	}
	require.NoError(t, e.db.Create(&post).Error)
	return post
}

// acceptedConnection fast-forwards a post + accepted connection between
// two fresh users.
func (e *testEnv) acceptedConnection(t *testing.T) (approver, requester models.User, conn *models.Connection) {
	t.Helper()

	approver = e.createUser(t, "subj_approver", "CleverFox42")
	requester = e.createUser(t, "subj_requester", "MightyPanda17")
	post := e.createPost(t, approver, models.PostTypeOffer, "Guitar lessons")

	created, appErr := e.connections.Request(post.ID, requester.ClerkUserID)
	require.Nil(t, appErr)
	conn, appErr = e.connections.Accept(created.ID, approver.ClerkUserID)
	require.Nil(t, appErr)
	return approver, requester, conn
}
