package in

import "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/dto"

// Conn is one live client connection. Implemented by the transport adapter.
type Conn interface {
	Send(event dto.Event) error
	Close() error
}

// Usecase manages per-session live channels. Delivery is best-effort and
// lossy: publishing to a session with no listener is a no-op.
type Usecase interface {
	Attach(sessionID string, conn Conn)
	Detach(sessionID string, conn Conn)
	Publish(sessionID string, event dto.Event)
}
