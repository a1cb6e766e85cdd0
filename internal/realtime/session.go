package realtime

import (
	"sync"
	"sync/atomic"

	"github.com/ankit705yadav/skillCircle/pkg/logger"
)

// DefaultQueueSize bounds the outbound queue of a session. A client that
// cannot drain this many events is already in trouble; overflow is dropped
// rather than stalling the dispatcher.
const DefaultQueueSize = 64

type outbound struct {
	event   string
	payload interface{}
}

// Session wraps one live transport connection with a bounded outbound
// queue drained by its own goroutine, so a slow or dead client never
// blocks dispatch to anyone else. The emit function is the raw transport
// write and is only ever called from the pump goroutine.
type Session struct {
	id      string
	emit    func(event string, payload interface{})
	queue   chan outbound
	done    chan struct{}
	once    sync.Once
	dropped atomic.Int64
}

func NewSession(id string, queueSize int, emit func(event string, payload interface{})) *Session {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	s := &Session{
		id:    id,
		emit:  emit,
		queue: make(chan outbound, queueSize),
		done:  make(chan struct{}),
	}
	go s.pump()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Send enqueues an event for delivery. On overflow the newest event is
// dropped; there is no offline queue and no retry.
func (s *Session) Send(event string, payload interface{}) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.queue <- outbound{event: event, payload: payload}:
	default:
		s.dropped.Add(1)
		logger.Warn().
			Str("session", s.id).
			Str("event", event).
			Msg("Outbound queue full, dropping event")
	}
}

// Dropped returns how many events overflowed the queue.
func (s *Session) Dropped() int64 {
	return s.dropped.Load()
}

// Close stops the pump. Safe to call more than once; queued events that
// were not yet written are discarded.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *Session) pump() {
	for {
		select {
		case <-s.done:
			return
		case out := <-s.queue:
			s.emit(out.event, out.payload)
		}
	}
}
