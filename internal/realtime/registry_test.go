package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func noopSession(id string) *Session {
	return NewSession(id, 4, func(event string, payload interface{}) {})
}

func TestRegistryAttachResolve(t *testing.T) {
	r := NewRegistry()

	s1 := noopSession("s1")
	defer s1.Close()
	r.Attach("user_a", s1)

	sessions := r.Resolve("user_a")
	assert.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID())

	subject, ok := r.Subject("s1")
	assert.True(t, ok)
	assert.Equal(t, "user_a", subject)
}

func TestRegistryMultipleSessionsPerUser(t *testing.T) {
	r := NewRegistry()

	s1 := noopSession("s1")
	s2 := noopSession("s2")
	defer s1.Close()
	defer s2.Close()

	r.Attach("user_a", s1)
	r.Attach("user_a", s2)

	assert.Len(t, r.Resolve("user_a"), 2)

	r.Detach("s1")
	sessions := r.Resolve("user_a")
	assert.Len(t, sessions, 1)
	assert.Equal(t, "s2", sessions[0].ID())
}

// A live transport can re-authenticate as someone else; the old binding
// must not keep receiving that user's notifications.
func TestRegistryReattachAsDifferentSubject(t *testing.T) {
	r := NewRegistry()

	s1 := noopSession("s1")
	defer s1.Close()

	r.Attach("user_a", s1)
	r.Attach("user_b", s1)

	assert.Empty(t, r.Resolve("user_a"))
	sessions := r.Resolve("user_b")
	assert.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID())

	subject, ok := r.Subject("s1")
	assert.True(t, ok)
	assert.Equal(t, "user_b", subject)

	r.Detach("s1")
	assert.Empty(t, r.Resolve("user_a"))
	assert.Empty(t, r.Resolve("user_b"))
	_, ok = r.Subject("s1")
	assert.False(t, ok)
}

func TestRegistryResolveUnknownUserIsEmpty(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Resolve("nobody"))
}

func TestRegistryDetachWithoutAttach(t *testing.T) {
	r := NewRegistry()
	// Unauthenticated sessions close without ever attaching.
	r.Detach("never_attached")
	assert.Empty(t, r.Resolve(""))
}

func TestRegistryTopicSubscriptions(t *testing.T) {
	r := NewRegistry()

	s1 := noopSession("s1")
	s2 := noopSession("s2")
	defer s1.Close()
	defer s2.Close()

	topic := ConversationTopic("conn1")
	r.Subscribe(topic, s1)
	r.Subscribe(topic, s2)
	assert.Len(t, r.TopicSessions(topic), 2)

	r.Unsubscribe(topic, "s1")
	subs := r.TopicSessions(topic)
	assert.Len(t, subs, 1)
	assert.Equal(t, "s2", subs[0].ID())
}

func TestRegistryDetachRemovesTopicSubscriptions(t *testing.T) {
	r := NewRegistry()

	s1 := noopSession("s1")
	defer s1.Close()

	r.Attach("user_a", s1)
	r.Subscribe(ConversationTopic("conn1"), s1)
	r.Subscribe(ConversationTopic("conn2"), s1)

	r.Detach("s1")

	assert.Empty(t, r.Resolve("user_a"))
	assert.Empty(t, r.TopicSessions(ConversationTopic("conn1")))
	assert.Empty(t, r.TopicSessions(ConversationTopic("conn2")))
}
