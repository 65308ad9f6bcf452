package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/action"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"
)

const (
	DefaultDelay = 600 * time.Millisecond
	// maxMovesPerKick bounds one wake-up so a stuck planner cannot spin.
	maxMovesPerKick = 200
)

type Executor interface {
	Execute(ctx context.Context, req action.Request) (action.Response, error)
}

// Scheduler runs at most one bot loop per session. Kicks while a loop is
// busy collapse into one pending wake-up.
type Scheduler struct {
	Registry ports.SessionRegistry
	Actions  Executor
	Planner  Planner
	Delay    time.Duration
	Logger   *zap.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	loops  map[string]*botLoop
	wg     sync.WaitGroup
}

type botLoop struct {
	wake   chan struct{}
	cancel context.CancelFunc
}

func NewScheduler(registry ports.SessionRegistry, delay time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		Registry: registry,
		Delay:    delay,
		Logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		loops:    map[string]*botLoop{},
	}
}

// Run blocks until ctx is done, then stops every loop.
func (s *Scheduler) Run(ctx context.Context) error {
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop ends all loops and waits for them. Later kicks are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Scheduler) Kick(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := s.ctx
	if ctx.Err() != nil {
		return
	}
	l, ok := s.loops[sessionID]
	if !ok {
		loopCtx, cancel := context.WithCancel(ctx)
		l = &botLoop{wake: make(chan struct{}, 1), cancel: cancel}
		s.loops[sessionID] = l
		s.wg.Add(1)
		go s.loop(loopCtx, sessionID, l)
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Forget stops the loop of a session that no longer exists, such as one
// evicted for being idle.
func (s *Scheduler) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.loops[sessionID]; ok {
		l.cancel()
		delete(s.loops, sessionID)
	}
}

func (s *Scheduler) loop(ctx context.Context, sessionID string, l *botLoop) {
	defer s.wg.Done()
	defer s.release(sessionID, l)
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
		for moves := 0; moves < maxMovesPerKick; moves++ {
			if !s.sleep(ctx) {
				return
			}
			acted, gone := s.tick(ctx, sessionID)
			if gone {
				return
			}
			if !acted {
				break
			}
		}
	}
}

// release drops the map entry unless a newer loop already replaced it.
func (s *Scheduler) release(sessionID string, l *botLoop) {
	l.cancel()
	s.mu.Lock()
	if s.loops[sessionID] == l {
		delete(s.loops, sessionID)
	}
	s.mu.Unlock()
}

func (s *Scheduler) sleep(ctx context.Context) bool {
	if s.Delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// tick plays one bot command. gone reports that the session no longer
// exists.
func (s *Scheduler) tick(ctx context.Context, sessionID string) (acted, gone bool) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("bot tick panic", zap.String("session_id", sessionID), zap.Any("panic", r), zap.Stack("stack"))
			acted = false
		}
	}()

	var turn Turn
	var found bool
	err := s.Registry.RunInSession(ctx, sessionID, func(sess *game.Session) error {
		turn, found = s.Planner.Next(sess)
		return nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return false, true
	}
	if err != nil {
		s.Logger.Warn("bot planning failed", zap.String("session_id", sessionID), zap.Error(err))
		return false, false
	}
	if !found {
		return false, false
	}

	for _, cmd := range turn.Candidates {
		_, err := s.Actions.Execute(ctx, action.Request{SessionID: sessionID, SeatID: turn.SeatID, Command: cmd})
		if err == nil {
			return true, false
		}
		if _, ok := game.AsRejection(err); !ok {
			s.Logger.Warn("bot command failed", zap.String("session_id", sessionID), zap.String("kind", string(cmd.Kind())), zap.Error(err))
			return false, false
		}
	}
	s.Logger.Debug("bot found no legal command", zap.String("session_id", sessionID), zap.String("seat_id", turn.SeatID))
	return false, false
}
