package lobby

type CreateRequest struct {
	Name     string `json:"name"`
	HostName string `json:"host_name"`
}

type JoinRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

type RejoinRequest struct {
	SessionID string `json:"session_id"`
	SeatID    string `json:"seat_id"`
}

type AddBotRequest struct {
	SessionID string `json:"session_id"`
	SeatID    string `json:"seat_id"`
	Name      string `json:"name"`
}

type ReadyRequest struct {
	SessionID string `json:"session_id"`
	SeatID    string `json:"seat_id"`
	Ready     bool   `json:"ready"`
}

type StartRequest struct {
	SessionID string `json:"session_id"`
	SeatID    string `json:"seat_id"`
}

// SeatGrant is what a client keeps to act for a seat.
type SeatGrant struct {
	SessionID string `json:"session_id"`
	SeatID    string `json:"seat_id"`
	Token     string `json:"token"`
}
