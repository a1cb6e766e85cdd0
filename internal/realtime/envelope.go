package realtime

import "time"

// Kind is the closed set of notification variants the backend emits.
type Kind string

const (
	KindConnectionRequest       Kind = "CONNECTION_REQUEST"
	KindConnectionAccepted      Kind = "CONNECTION_ACCEPTED"
	KindConnectionStatusChanged Kind = "CONNECTION_STATUS_CHANGED"
	KindNewMessage              Kind = "NEW_MESSAGE"
)

// Valid reports whether k is one of the known notification kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindConnectionRequest, KindConnectionAccepted, KindConnectionStatusChanged, KindNewMessage:
		return true
	}
	return false
}

// Envelope is the wire shape of a user-addressed notification. It is built
// fresh per dispatch and never persisted; Data carries the DTO for the kind
// and Message the human-readable summary precomputed by the caller.
type Envelope struct {
	Type      Kind        `json:"type"`
	EntityID  string      `json:"entityId"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEnvelope stamps an envelope for dispatch. Unknown kinds are a
// programming error and are normalized to an empty type so they are easy
// to spot in client logs rather than silently passing.
func NewEnvelope(kind Kind, entityID, message string, data interface{}) Envelope {
	if !kind.Valid() {
		kind = ""
	}
	return Envelope{
		Type:      kind,
		EntityID:  entityID,
		Message:   message,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// UserQueue is the logical destination address for one user's notifications.
func UserQueue(subject string) string {
	return "user:" + subject
}

// ConversationTopic is the destination address for everyone currently
// viewing the conversation of a connection.
func ConversationTopic(connectionID string) string {
	return "conversation:" + connectionID
}
