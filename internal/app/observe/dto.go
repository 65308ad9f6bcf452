package observe

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

type Request struct {
	SessionID string
	// SeatID narrows the board to one seat and adds its ledger.
	SeatID string
}

type Response struct {
	SessionID string      `json:"session_id"`
	Round     int         `json:"round"`
	Phase     game.Phase  `json:"phase"`
	Seats     []SeatScore `json:"seats"`
}

type SeatScore struct {
	SeatID    string                     `json:"seat_id"`
	Name      string                     `json:"name"`
	Faction   game.FactionID             `json:"faction,omitempty"`
	Score     int                        `json:"score"`
	Starting  int                        `json:"starting"`
	Breakdown map[game.ScoreCategory]int `json:"breakdown"`
	Ledger    []game.LedgerEntry         `json:"ledger,omitempty"`
}
