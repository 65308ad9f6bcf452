package ports

import (
	"context"
	"errors"
)

var ErrInvalidDocPath = errors.New("invalid rules doc path")

// RulesDocs serves the player-facing rules reference.
type RulesDocs interface {
	Index(ctx context.Context) ([]byte, error)
	File(ctx context.Context, path string) ([]byte, error)
}
