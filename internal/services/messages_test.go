package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/realtime"
)

func TestSendPersistsAndRoutes(t *testing.T) {
	env := newTestEnv(t)

	approver, requester, conn := env.acceptedConnection(t)

	approverCh := env.attachSession(t, approver.ClerkUserID, "sess-approver")
	requesterCh := env.attachSession(t, requester.ClerkUserID, "sess-requester")
	topicCh := env.subscribeTopic(t, realtime.ConversationTopic(conn.ID), "sess-viewer")

	msg, appErr := env.messages.Send(conn.ID, requester.ClerkUserID, "Hey, still up for lessons?")
	require.Nil(t, appErr)
	assert.Equal(t, conn.ID, msg.ConnectionID)
	assert.Equal(t, requester.ID, msg.SenderID)

	var stored models.Message
	require.NoError(t, env.db.First(&stored, "id = ?", msg.ID).Error)
	assert.Equal(t, "Hey, still up for lessons?", stored.Content)

	// The approver gets a user-addressed notification.
	ev := waitEvent(t, approverCh)
	assert.Equal(t, realtime.EventNotification, ev.Event)
	envlp := ev.Payload.(realtime.Envelope)
	assert.Equal(t, realtime.KindNewMessage, envlp.Type)
	assert.Equal(t, msg.ID, envlp.EntityID)
	assert.Contains(t, envlp.Message, "MightyPanda17")

	// The conversation topic gets the message DTO itself.
	ev = waitEvent(t, topicCh)
	assert.Equal(t, realtime.EventConversationMessage, ev.Event)
	dto, ok := ev.Payload.(MessageDTO)
	require.True(t, ok)
	assert.Equal(t, "Hey, still up for lessons?", dto.Content)
	assert.Equal(t, "MightyPanda17", dto.Sender.Username)

	// The sender is not notified about their own message.
	assertNoEvent(t, requesterCh)
}

func TestSendOnPendingConnectionIsRejected(t *testing.T) {
	env := newTestEnv(t)

	approver := env.createUser(t, "subj_approver", "CleverFox42")
	requester := env.createUser(t, "subj_requester", "MightyPanda17")
	post := env.createPost(t, approver, models.PostTypeOffer, "Guitar lessons")

	conn, appErr := env.connections.Request(post.ID, requester.ClerkUserID)
	require.Nil(t, appErr)

	for _, subject := range []string{requester.ClerkUserID, approver.ClerkUserID} {
		_, appErr := env.messages.Send(conn.ID, subject, "too early")
		require.NotNil(t, appErr)
		assert.Equal(t, 409, appErr.Code)
		assert.Equal(t, "Messages can only be sent in accepted connections", appErr.Message)
	}

	var count int64
	env.db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestSendOnRejectedConnectionIsRejected(t *testing.T) {
	env := newTestEnv(t)

	approver := env.createUser(t, "subj_approver", "CleverFox42")
	requester := env.createUser(t, "subj_requester", "MightyPanda17")
	post := env.createPost(t, approver, models.PostTypeOffer, "Guitar lessons")

	conn, appErr := env.connections.Request(post.ID, requester.ClerkUserID)
	require.Nil(t, appErr)
	_, appErr = env.connections.Reject(conn.ID, approver.ClerkUserID)
	require.Nil(t, appErr)

	_, appErr = env.messages.Send(conn.ID, requester.ClerkUserID, "please?")
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestSendByNonParticipantIsForbidden(t *testing.T) {
	env := newTestEnv(t)

	_, _, conn := env.acceptedConnection(t)
	env.createUser(t, "subj_stranger", "SwiftOtter3")

	_, appErr := env.messages.Send(conn.ID, "subj_stranger", "let me in")
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestSendValidation(t *testing.T) {
	env := newTestEnv(t)

	_, requester, conn := env.acceptedConnection(t)

	_, appErr := env.messages.Send(conn.ID, requester.ClerkUserID, "   ")
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	_, appErr = env.messages.Send("no-such-connection", requester.ClerkUserID, "hello")
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)

	_, appErr = env.messages.Send(conn.ID, "subj_ghost", "hello")
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "Sender account not found", appErr.Message)
}

func TestGetMessagesOldestFirst(t *testing.T) {
	env := newTestEnv(t)

	approver, requester, conn := env.acceptedConnection(t)

	for _, content := range []string{"first", "second", "third"} {
		_, appErr := env.messages.Send(conn.ID, requester.ClerkUserID, content)
		require.Nil(t, appErr)
	}
	_, appErr := env.messages.Send(conn.ID, approver.ClerkUserID, "fourth")
	require.Nil(t, appErr)

	history, appErr := env.messages.GetMessages(conn.ID, approver.ClerkUserID)
	require.Nil(t, appErr)
	require.Len(t, history, 4)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "fourth", history[3].Content)
	assert.Equal(t, "MightyPanda17", history[0].Sender.DisplayName())
	assert.Equal(t, "CleverFox42", history[3].Sender.DisplayName())
}

func TestGetMessagesByOutsiderIsForbidden(t *testing.T) {
	env := newTestEnv(t)

	_, requester, conn := env.acceptedConnection(t)
	env.createUser(t, "subj_stranger", "SwiftOtter3")

	_, appErr := env.messages.Send(conn.ID, requester.ClerkUserID, "private")
	require.Nil(t, appErr)

	_, appErr = env.messages.GetMessages(conn.ID, "subj_stranger")
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.Code)

	_, appErr = env.messages.GetMessages("no-such-connection", requester.ClerkUserID)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

// History stays readable after the connection leaves ACCEPTED, even though
// sending no longer works.
func TestHistorySurvivesStatusChange(t *testing.T) {
	env := newTestEnv(t)

	approver, requester, conn := env.acceptedConnection(t)

	_, appErr := env.messages.Send(conn.ID, requester.ClerkUserID, "see you tomorrow")
	require.Nil(t, appErr)

	// No service path leads out of ACCEPTED today; flip the row directly to
	// simulate a future lifecycle change.
	require.NoError(t, env.db.Model(&models.Connection{}).
		Where("id = ?", conn.ID).
		Update("status", models.ConnectionRejected).Error)

	for _, subject := range []string{approver.ClerkUserID, requester.ClerkUserID} {
		history, appErr := env.messages.GetMessages(conn.ID, subject)
		require.Nil(t, appErr)
		require.Len(t, history, 1)
		assert.Equal(t, "see you tomorrow", history[0].Content)
	}

	_, appErr = env.messages.Send(conn.ID, requester.ClerkUserID, "one more")
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.Code)
}
