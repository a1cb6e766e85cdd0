package realtime

import "github.com/ankit705yadav/skillCircle/pkg/logger"

// Socket event names, the transport-level framing of the two addressing modes.
const (
	EventNotification        = "notification"
	EventConversationMessage = "conversation_message"
)

// Dispatcher is the fan-out hub. It routes envelopes to live sessions via
// the registry and does nothing else: no persistence, no retry, no delivery
// acknowledgment. Delivery for a single destination is FIFO in call order;
// nothing is guaranteed across destinations.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// SendToUser pushes an envelope to every live session of a subject. With no
// session registered the notification is silently dropped.
func (d *Dispatcher) SendToUser(subject string, env Envelope) {
	sessions := d.registry.Resolve(subject)
	if len(sessions) == 0 {
		logger.Debug().
			Str("destination", UserQueue(subject)).
			Str("type", string(env.Type)).
			Msg("No live session, notification dropped")
		return
	}

	for _, s := range sessions {
		s.Send(EventNotification, env)
	}
}

// SendToTopic pushes a payload to every session subscribed to a topic,
// typically everyone currently viewing a conversation.
func (d *Dispatcher) SendToTopic(topic string, payload interface{}) {
	for _, s := range d.registry.TopicSessions(topic) {
		s.Send(EventConversationMessage, payload)
	}
}
