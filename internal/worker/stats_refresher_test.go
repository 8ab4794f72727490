package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heritage-explorer/internal/domain"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
)

type countingStats struct {
	calls atomic.Int32
	fail  bool
}

func (s *countingStats) RefreshStatistics(context.Context) (*domain.Statistics, error) {
	s.calls.Add(1)
	if s.fail {
		return nil, apperrors.ErrNetwork
	}
	return &domain.Statistics{Total: 100}, nil
}

func TestStatsRefresher_RefreshesOnTick(t *testing.T) {
	for _, fail := range []bool{false, true} {
		source := &countingStats{fail: fail}
		w := NewStatsRefresher(source, 10*time.Millisecond, zap.NewNop())

		done := make(chan error, 1)
		go func() { done <- w.Start(context.Background()) }()

		assert.Eventually(t, func() bool { return source.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		require.NoError(t, w.Stop())
		assert.NoError(t, <-done)
	}
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))

	source := &countingStats{}
	m.Register(NewStatsRefresher(source, time.Hour, zap.NewNop()))
	m.Register(NewBridgeDispatcher(make(chanSource), &MockMapInput{}, nil, zap.NewNop()))

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Start(context.Background()), "second start")

	late := &countingStats{}
	m.Register(NewStatsRefresher(late, time.Millisecond, zap.NewNop()))

	require.NoError(t, m.Stop())
	assert.Zero(t, source.calls.Load())
	assert.Zero(t, late.calls.Load())
}
