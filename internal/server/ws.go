package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	notifydto "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/dto"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

var handshakeFeatures = []string{
	"Real-time reconstruction",
	"Uncertainty quantification",
	"Grammar analysis",
}

// wsConn adapts a websocket connection to the notifier's Conn. The write
// lock serializes hub publishes with handshake and echo replies.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) Send(event notifydto.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(event)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}
	conn := &wsConn{conn: raw}
	s.notifier.Attach(sessionID, conn)
	defer func() {
		s.notifier.Detach(sessionID, conn)
		conn.Close()
	}()

	if err := conn.Send(notifydto.Event{
		Type:     notifydto.TypeHandshake,
		Message:  "Connected to reconstruction engine",
		Features: handshakeFeatures,
	}); err != nil {
		return
	}

	// Inbound messages have no commands yet; everything echoes back so
	// clients can probe liveness.
	for {
		_, payload, err := raw.ReadMessage()
		if err != nil {
			return
		}
		var original any
		if err := json.Unmarshal(payload, &original); err != nil {
			original = string(payload)
		}
		if err := conn.Send(notifydto.Event{Type: notifydto.TypeEcho, Original: original}); err != nil {
			return
		}
	}
}
