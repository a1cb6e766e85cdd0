package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"github.com/ankit705yadav/skillCircle/pkg/logger"
	"github.com/ankit705yadav/skillCircle/pkg/utils"
)

// TopicAuthorizer decides whether a subject may subscribe to a
// conversation topic. Wired to the connection service in main, as a
// function value to keep this package transport-only.
type TopicAuthorizer func(connectionID, subject string) error

// NewSocketServer wires the Socket.IO transport to the session registry.
//
// Auth is attempted from the `token` query parameter on connect. A missing
// or invalid token does NOT drop the transport: the session stays connected
// unauthenticated, identity-requiring events are rejected per call, and the
// client can retry over the same connection with an `authenticate` event.
func NewSocketServer(registry *Registry, canViewConversation TopicAuthorizer) *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		sess := NewSession(s.ID(), DefaultQueueSize, func(event string, payload interface{}) {
			s.Emit(event, payload)
		})
		s.SetContext(sess)

		url := s.URL()
		token := url.Query().Get("token")
		if token == "" {
			logger.Warn().Str("session", s.ID()).Msg("Socket connected without token, staying unauthenticated")
			return nil
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			// Degraded mode: keep the transport open so the client can
			// re-authenticate without reconnecting.
			logger.Warn().Str("session", s.ID()).Err(err).Msg("Socket auth failed, staying unauthenticated")
			s.Emit("auth_error", "invalid token")
			return nil
		}

		registry.Attach(claims.Subject, sess)
		logger.Info().Str("session", s.ID()).Str("subject", claims.Subject).Msg("Socket authenticated")
		s.Emit("authenticated", claims.Subject)
		return nil
	})

	// Retry path for sessions that connected unauthenticated or whose
	// token had expired.
	server.OnEvent("/", "authenticate", func(s socketio.Conn, token string) {
		sess, ok := s.Context().(*Session)
		if !ok {
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("session", s.ID()).Err(err).Msg("Socket re-auth failed")
			s.Emit("auth_error", "invalid token")
			return
		}

		registry.Attach(claims.Subject, sess)
		s.Emit("authenticated", claims.Subject)
	})

	server.OnEvent("/", "subscribe_conversation", func(s socketio.Conn, connectionID string) {
		sess, ok := s.Context().(*Session)
		if !ok {
			return
		}
		subject, authed := registry.Subject(s.ID())
		if !authed {
			s.Emit("subscribe_error", "authentication required")
			return
		}
		if err := canViewConversation(connectionID, subject); err != nil {
			logger.Warn().
				Str("session", s.ID()).
				Str("subject", subject).
				Str("connection", connectionID).
				Msg("Conversation subscribe denied")
			s.Emit("subscribe_error", err.Error())
			return
		}

		registry.Subscribe(ConversationTopic(connectionID), sess)
		s.Emit("subscribed", connectionID)
	})

	server.OnEvent("/", "unsubscribe_conversation", func(s socketio.Conn, connectionID string) {
		registry.Unsubscribe(ConversationTopic(connectionID), s.ID())
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		registry.Detach(s.ID())
		if sess, ok := s.Context().(*Session); ok {
			sess.Close()
		}
		logger.Debug().Str("session", s.ID()).Str("reason", reason).Msg("Socket closed")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Error().Err(e).Msg("Socket error")
	})

	go server.Serve()
	return server
}

// SocketHandler wraps the Socket.IO server for gin.
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
