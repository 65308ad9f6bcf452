package memory

import (
	"sync"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

// Store keeps live sessions and finished results in process memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	seats    map[string]string
	conns    map[string]string
	results  map[string]ports.GameResult

	txMu sync.Mutex
}

// entry guards one session. A nil session means it was evicted while a
// caller waited for the lock.
type entry struct {
	mu      sync.Mutex
	session *game.Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		seats:    make(map[string]string),
		conns:    make(map[string]string),
		results:  make(map[string]ports.GameResult),
	}
}

func (s *Store) lookup(sessionID string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	return e, ok
}
