package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/memory"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/platform/config"
)

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Error, gormLogLevel(" ERROR "))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
	assert.Equal(t, logger.Warn, gormLogLevel("chatty"))
}

func TestBuildStorage_MemoryWithoutDSN(t *testing.T) {
	st, err := buildStorage(context.Background(), config.Config{}, memory.NewStore(), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, memory.ResultArchive{}, st.archive)
	assert.IsType(t, memory.TxManager{}, st.tx)
	assert.Nil(t, st.layouts)
}

type fakeEvicter struct {
	mu      sync.Mutex
	befores []time.Time
	err     error
}

func (f *fakeEvicter) EvictIdle(_ context.Context, before time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.befores = append(f.befores, before)
	if f.err != nil && len(f.befores) == 1 {
		return nil, f.err
	}
	return []string{"s1"}, nil
}

func (f *fakeEvicter) calls() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.befores...)
}

func TestEvictLoop_UsesIdleCutoffUntilCancelled(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := &fakeEvicter{err: errors.New("flaky")}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var forgotten sync.Map
	go func() {
		evictLoop(ctx, ev, 5*time.Millisecond, time.Hour, func() time.Time { return now }, func(id string) { forgotten.Store(id, true) }, zap.NewNop())
		close(done)
	}()

	require.Eventually(t, func() bool { return len(ev.calls()) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("evict loop did not stop")
	}
	for _, before := range ev.calls() {
		assert.Equal(t, now.Add(-time.Hour), before)
	}
	_, ok := forgotten.Load("s1")
	assert.True(t, ok)
}
