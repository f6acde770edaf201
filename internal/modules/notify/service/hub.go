package service

import (
	"sync"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/notify/dto"
	notifyin "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/port/in"
)

// Hub keeps at most one live connection per session id. A new connection for
// the same id replaces and closes the previous one.
type Hub struct {
	mu    sync.Mutex
	conns map[string]notifyin.Conn
}

func NewHub() *Hub {
	return &Hub{conns: map[string]notifyin.Conn{}}
}

func (h *Hub) Attach(sessionID string, conn notifyin.Conn) {
	h.mu.Lock()
	previous := h.conns[sessionID]
	h.conns[sessionID] = conn
	h.mu.Unlock()
	if previous != nil {
		_ = previous.Close()
	}
}

func (h *Hub) Detach(sessionID string, conn notifyin.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[sessionID] == conn {
		delete(h.conns, sessionID)
	}
}

func (h *Hub) Publish(sessionID string, event dto.Event) {
	h.mu.Lock()
	conn := h.conns[sessionID]
	h.mu.Unlock()
	if conn == nil {
		return
	}
	if err := conn.Send(event); err != nil {
		h.Detach(sessionID, conn)
		_ = conn.Close()
	}
}
