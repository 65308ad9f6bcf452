package ports

import (
	"context"
	"time"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type SessionSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phase     game.Phase `json:"phase"`
	Seats     int        `json:"seats"`
	Round     int        `json:"round"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SessionRegistry owns live sessions. A session is only read or changed
// inside RunInSession, which serializes access per session.
type SessionRegistry interface {
	Create(ctx context.Context, s *game.Session) error
	List(ctx context.Context) ([]SessionSummary, error)
	RunInSession(ctx context.Context, sessionID string, fn func(s *game.Session) error) error

	BindSeat(ctx context.Context, seatID, sessionID string) error
	SessionForSeat(ctx context.Context, seatID string) (string, error)
	BindConnection(connID, seatID string)
	SeatForConnection(connID string) (string, bool)
	UnbindConnection(connID string)

	// EvictIdle drops sessions not touched since before.
	EvictIdle(ctx context.Context, before time.Time) ([]string, error)
}

type SeatResult struct {
	SeatID    string                     `json:"seat_id"`
	Name      string                     `json:"name"`
	Kind      game.SeatKind              `json:"kind"`
	Faction   game.FactionID             `json:"faction"`
	Score     int                        `json:"score"`
	Rank      int                        `json:"rank"`
	Breakdown map[game.ScoreCategory]int `json:"breakdown"`
}

type GameResult struct {
	SessionID  string       `json:"session_id"`
	Name       string       `json:"name"`
	Rounds     int          `json:"rounds"`
	FinishedAt time.Time    `json:"finished_at"`
	Seats      []SeatResult `json:"seats"`
}

type ResultArchive interface {
	Save(ctx context.Context, result GameResult) error
	Get(ctx context.Context, sessionID string) (GameResult, error)
	List(ctx context.Context, limit int) ([]GameResult, error)
}
