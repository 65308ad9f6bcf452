package results

import (
	"context"
	"errors"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid results request")

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type UseCase struct {
	Archive   ports.ResultArchive
	TxManager ports.TxManager
}

// Record stores a finished game. Saving the same session twice is a no-op
// for archives that treat the session id as key.
func (u UseCase) Record(ctx context.Context, result ports.GameResult) error {
	if u.Archive == nil {
		return nil
	}
	if strings.TrimSpace(result.SessionID) == "" {
		return ErrInvalidRequest
	}
	if u.TxManager == nil {
		return u.Archive.Save(ctx, result)
	}
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		return u.Archive.Save(txCtx, result)
	})
}

func (u UseCase) Get(ctx context.Context, sessionID string) (ports.GameResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ports.GameResult{}, ErrInvalidRequest
	}
	if u.Archive == nil {
		return ports.GameResult{}, ports.ErrNotFound
	}
	return u.Archive.Get(ctx, sessionID)
}

func (u UseCase) List(ctx context.Context, limit int) ([]ports.GameResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if u.Archive == nil {
		return []ports.GameResult{}, nil
	}
	return u.Archive.List(ctx, limit)
}
