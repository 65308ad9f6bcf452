package memory

import (
	"context"
	"sort"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
)

type ResultArchive struct {
	store *Store
}

func NewResultArchive(store *Store) ResultArchive {
	return ResultArchive{store: store}
}

func (a ResultArchive) Save(_ context.Context, result ports.GameResult) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	a.store.results[result.SessionID] = result
	return nil
}

func (a ResultArchive) Get(_ context.Context, sessionID string) (ports.GameResult, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	r, ok := a.store.results[sessionID]
	if !ok {
		return ports.GameResult{}, ports.ErrNotFound
	}
	return r, nil
}

// List returns the newest results first.
func (a ResultArchive) List(_ context.Context, limit int) ([]ports.GameResult, error) {
	a.store.mu.RLock()
	out := make([]ports.GameResult, 0, len(a.store.results))
	for _, r := range a.store.results {
		out = append(out, r)
	}
	a.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].FinishedAt.After(out[j].FinishedAt)
		}
		return out[i].SessionID < out[j].SessionID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
