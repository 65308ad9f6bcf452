package status

import (
	"encoding/json"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type Request struct {
	SessionID string
}

type Response struct {
	SessionID   string          `json:"session_id"`
	Version     int64           `json:"version"`
	Phase       game.Phase      `json:"phase"`
	Round       int             `json:"round"`
	CurrentSeat string          `json:"current_seat,omitempty"`
	State       json.RawMessage `json:"state"`
}
