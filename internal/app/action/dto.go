package action

import (
	"encoding/json"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type Request struct {
	SessionID string
	SeatID    string
	Command   Command
}

type Response struct {
	SessionID string          `json:"session_id"`
	Version   int64           `json:"version"`
	Phase     game.Phase      `json:"phase"`
	State     json.RawMessage `json:"state"`
}
