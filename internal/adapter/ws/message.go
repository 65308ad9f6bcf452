package ws

import "encoding/json"

// Inbound message types that are not game commands. Every other type is
// decoded as a command kind.
const (
	TypeCreateSession = "create_session"
	TypeJoinSession   = "join_session"
	TypeRejoinSession = "rejoin_session"
	TypeListSessions  = "list_sessions"
	TypeAddBot        = "add_bot"
	TypeSetReady      = "set_ready"
	TypeStartGame     = "start_game"
)

type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type ackPayload struct {
	Request string `json:"request"`
	Data    any    `json:"data,omitempty"`
}

type errorPayload struct {
	Request string `json:"request,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createPayload struct {
	Name     string `json:"name"`
	HostName string `json:"host_name"`
}

type joinPayload struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

type rejoinPayload struct {
	Token string `json:"token"`
}

type addBotPayload struct {
	Name string `json:"name"`
}

type readyPayload struct {
	Ready *bool `json:"ready"`
}
