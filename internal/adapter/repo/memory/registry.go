package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

type SessionRegistry struct {
	store *Store
}

func NewSessionRegistry(store *Store) SessionRegistry {
	return SessionRegistry{store: store}
}

func (r SessionRegistry) Create(_ context.Context, s *game.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.sessions[s.ID]; exists {
		return ports.ErrConflict
	}
	r.store.sessions[s.ID] = &entry{session: s}
	return nil
}

func (r SessionRegistry) List(_ context.Context) ([]ports.SessionSummary, error) {
	r.store.mu.RLock()
	entries := make([]*entry, 0, len(r.store.sessions))
	for _, e := range r.store.sessions {
		entries = append(entries, e)
	}
	r.store.mu.RUnlock()

	out := make([]ports.SessionSummary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if s := e.session; s != nil {
			out = append(out, ports.SessionSummary{
				ID:        s.ID,
				Name:      s.Name,
				Phase:     s.Phase,
				Seats:     len(s.JoinOrder),
				Round:     s.Round,
				UpdatedAt: s.UpdatedAt,
			})
		}
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r SessionRegistry) RunInSession(_ context.Context, sessionID string, fn func(s *game.Session) error) error {
	e, ok := r.store.lookup(sessionID)
	if !ok {
		return ports.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return ports.ErrNotFound
	}
	return fn(e.session)
}

func (r SessionRegistry) BindSeat(_ context.Context, seatID, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[sessionID]; !ok {
		return ports.ErrNotFound
	}
	if bound, ok := r.store.seats[seatID]; ok && bound != sessionID {
		return ports.ErrConflict
	}
	r.store.seats[seatID] = sessionID
	return nil
}

func (r SessionRegistry) SessionForSeat(_ context.Context, seatID string) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	id, ok := r.store.seats[seatID]
	if !ok {
		return "", ports.ErrNotFound
	}
	return id, nil
}

func (r SessionRegistry) BindConnection(connID, seatID string) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.conns[connID] = seatID
}

func (r SessionRegistry) SeatForConnection(connID string) (string, bool) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	id, ok := r.store.conns[connID]
	return id, ok
}

func (r SessionRegistry) UnbindConnection(connID string) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.conns, connID)
}

// EvictIdle drops sessions last touched before the cutoff together with
// their seat and connection bindings.
func (r SessionRegistry) EvictIdle(_ context.Context, before time.Time) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var evicted []string
	for id, e := range r.store.sessions {
		e.mu.Lock()
		if e.session != nil && e.session.UpdatedAt.Before(before) {
			e.session = nil
			delete(r.store.sessions, id)
			evicted = append(evicted, id)
		}
		e.mu.Unlock()
	}
	if len(evicted) == 0 {
		return nil, nil
	}
	gone := make(map[string]bool, len(evicted))
	for _, id := range evicted {
		gone[id] = true
	}
	for seatID, sessionID := range r.store.seats {
		if !gone[sessionID] {
			continue
		}
		delete(r.store.seats, seatID)
		for connID, bound := range r.store.conns {
			if bound == seatID {
				delete(r.store.conns, connID)
			}
		}
	}
	sort.Strings(evicted)
	return evicted, nil
}
