package ports

import "encoding/json"

type EventType string

const (
	EventState EventType = "state"
	EventError EventType = "error"
	EventAck   EventType = "ack"
)

// Event goes out to connections of one session. Seat narrows it to the
// connections controlling that seat.
type Event struct {
	SessionID string          `json:"session_id"`
	Seat      string          `json:"seat,omitempty"`
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

type Broadcaster interface {
	Publish(event Event)
}

// BotKicker is told whenever a session changed so a bot may act.
type BotKicker interface {
	Kick(sessionID string)
}

type NopBroadcaster struct{}

func (NopBroadcaster) Publish(Event) {}

type NopKicker struct{}

func (NopKicker) Kick(string) {}
