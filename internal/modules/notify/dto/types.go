package dto

const (
	TypeProgress  = "reconstruction_progress"
	TypeError     = "error"
	TypeHandshake = "handshake_ack"
	TypeEcho      = "echo"
)

// Event is one message on a session's live channel. Progress values within a
// run are non-decreasing and end at 100, or are followed by a terminal error
// event.
type Event struct {
	Type     string   `json:"type"`
	Progress int      `json:"progress,omitempty"`
	Stage    string   `json:"stage,omitempty"`
	Message  string   `json:"message,omitempty"`
	Features []string `json:"features,omitempty"`
	Original any      `json:"original,omitempty"`
}
