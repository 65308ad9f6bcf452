package replay

import "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

type Request struct {
	SessionID string
	// Since returns entries with a sequence number above it.
	Since int
	Limit int
}

type Response struct {
	SessionID string          `json:"session_id"`
	LatestSeq int             `json:"latest_seq"`
	Entries   []game.LogEntry `json:"entries"`
	// Truncated is set when entries after Since were already dropped from
	// the bounded log.
	Truncated bool `json:"truncated"`
}
