package realtime

import "sync"

// Registry tracks which authenticated subject owns which live sessions,
// and which sessions are subscribed to which conversation topics. It holds
// no durable state; everything here dies with the process.
//
// Attach/Detach/Resolve race freely with dispatch: a notification sent in
// the window of a session's attach or detach may be dropped, which is
// within contract (no offline delivery).
type Registry struct {
	mu sync.RWMutex

	// subject -> session id -> session
	users map[string]map[string]*Session
	// session id -> subject, for detach
	subjects map[string]string
	// topic -> session id -> session
	topics map[string]map[string]*Session
	// session id -> subscribed topics, for detach
	sessionTopics map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		users:         make(map[string]map[string]*Session),
		subjects:      make(map[string]string),
		topics:        make(map[string]map[string]*Session),
		sessionTopics: make(map[string]map[string]struct{}),
	}
}

// Attach binds an authenticated subject to a live session. A user may hold
// several concurrent sessions (multiple devices); all of them receive the
// same user-addressed notifications. Re-attaching a session as a different
// subject (re-authentication on a live transport) replaces the old binding.
func (r *Registry) Attach(subject string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.subjects[s.ID()]; ok && old != subject {
		if sessions, ok := r.users[old]; ok {
			delete(sessions, s.ID())
			if len(sessions) == 0 {
				delete(r.users, old)
			}
		}
	}

	sessions, ok := r.users[subject]
	if !ok {
		sessions = make(map[string]*Session)
		r.users[subject] = sessions
	}
	sessions[s.ID()] = s
	r.subjects[s.ID()] = subject
}

// Detach removes all user bindings and topic subscriptions of a session.
// Safe to call for sessions that never authenticated.
func (r *Registry) Detach(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if subject, ok := r.subjects[sessionID]; ok {
		delete(r.subjects, sessionID)
		if sessions, ok := r.users[subject]; ok {
			delete(sessions, sessionID)
			if len(sessions) == 0 {
				delete(r.users, subject)
			}
		}
	}

	for topic := range r.sessionTopics[sessionID] {
		if subs, ok := r.topics[topic]; ok {
			delete(subs, sessionID)
			if len(subs) == 0 {
				delete(r.topics, topic)
			}
		}
	}
	delete(r.sessionTopics, sessionID)
}

// Resolve returns the live sessions of a subject. The empty slice, never
// an error, when none are connected.
func (r *Registry) Resolve(subject string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, 0, len(r.users[subject]))
	for _, s := range r.users[subject] {
		sessions = append(sessions, s)
	}
	return sessions
}

// Subject returns the authenticated subject bound to a session, if any.
func (r *Registry) Subject(sessionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subject, ok := r.subjects[sessionID]
	return subject, ok
}

// Subscribe adds a session to a topic.
func (r *Registry) Subscribe(topic string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.topics[topic]
	if !ok {
		subs = make(map[string]*Session)
		r.topics[topic] = subs
	}
	subs[s.ID()] = s

	topics, ok := r.sessionTopics[s.ID()]
	if !ok {
		topics = make(map[string]struct{})
		r.sessionTopics[s.ID()] = topics
	}
	topics[topic] = struct{}{}
}

// Unsubscribe removes a session from a topic.
func (r *Registry) Unsubscribe(topic, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if subs, ok := r.topics[topic]; ok {
		delete(subs, sessionID)
		if len(subs) == 0 {
			delete(r.topics, topic)
		}
	}
	if topics, ok := r.sessionTopics[sessionID]; ok {
		delete(topics, topic)
		if len(topics) == 0 {
			delete(r.sessionTopics, sessionID)
		}
	}
}

// TopicSessions returns all sessions currently subscribed to a topic.
func (r *Registry) TopicSessions(topic string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, 0, len(r.topics[topic]))
	for _, s := range r.topics[topic] {
		sessions = append(sessions, s)
	}
	return sessions
}
