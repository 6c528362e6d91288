package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func targets(n int) []model.ScanTarget {
	out := make([]model.ScanTarget, n)
	for i := range out {
		out[i] = model.ScanTarget{
			Kind:           model.UnitContainer,
			SubscriptionID: "sub-1",
			AccountName:    "acct",
			UnitName:       fmt.Sprintf("unit-%02d", i),
		}
	}
	return out
}

func succeed(_ context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error) {
	return &model.UnitResult{
		Kind:        target.Kind,
		AccountName: target.AccountName,
		UnitName:    target.UnitName,
		ScannedAt:   now,
	}, nil
}

func TestScanAll_FailuresAreLoggedAndExcluded(t *testing.T) {
	logger, buf := newTestLogger()
	failing := map[string]bool{"unit-01": true, "unit-04": true, "unit-07": true}

	analyze := func(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error) {
		if failing[target.UnitName] {
			return nil, errors.New("access denied")
		}
		return succeed(ctx, target, now)
	}

	results := NewService(analyze, logger).ScanAll(context.Background(), targets(10), 4)

	assert.Len(t, results, 7)
	for _, r := range results {
		assert.False(t, failing[r.UnitName], "failed unit %s returned", r.UnitName)
	}
	assert.Equal(t, 3, strings.Count(buf.String(), "unit scan failed"))
	assert.Equal(t, 10, strings.Count(buf.String(), "scan progress"))
	assert.Contains(t, buf.String(), "failed=3")
}

func TestScanAll_NoTargets(t *testing.T) {
	var calls atomic.Int32
	analyze := func(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error) {
		calls.Add(1)
		return succeed(ctx, target, now)
	}
	logger, buf := newTestLogger()

	results := NewService(analyze, logger).ScanAll(context.Background(), nil, 5)

	require.NotNil(t, results)
	assert.Empty(t, results)
	assert.Zero(t, calls.Load())
	assert.NotContains(t, buf.String(), "scan started")
}

func TestScanAll_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	analyze := func(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return succeed(ctx, target, now)
	}
	logger, _ := newTestLogger()

	results := NewService(analyze, logger).ScanAll(context.Background(), targets(20), 3)

	assert.Len(t, results, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestScanAll_DefaultWorkers(t *testing.T) {
	logger, buf := newTestLogger()

	results := NewService(succeed, logger).ScanAll(context.Background(), targets(15), 0)

	assert.Len(t, results, 15)
	assert.Contains(t, buf.String(), fmt.Sprintf("workers=%d", DefaultWorkers))
}

func TestScanAll_UsesOneClock(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	logger, _ := newTestLogger()

	results := NewService(succeed, logger, WithClock(func() time.Time { return fixed })).
		ScanAll(context.Background(), targets(5), 2)

	require.Len(t, results, 5)
	for _, r := range results {
		assert.Equal(t, fixed, r.ScannedAt)
	}
}

func TestScanAll_ReportsProgress(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	progress := func(completed, total int, _ model.ScanTarget, _ error) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 6, total)
		seen = append(seen, completed)
	}
	logger, _ := newTestLogger()

	NewService(succeed, logger, WithProgress(progress)).ScanAll(context.Background(), targets(6), 2)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, seen)
}

func TestScanAll_StopsStartingUnitsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	analyze := func(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error) {
		calls.Add(1)
		cancel()
		return succeed(ctx, target, now)
	}
	logger, buf := newTestLogger()

	results := NewService(analyze, logger).ScanAll(ctx, targets(5), 1)

	assert.Len(t, results, 1)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, buf.String(), "skipped=4")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "failed", StateFailed.String())
}
