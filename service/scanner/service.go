package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
	"golang.org/x/sync/errgroup"
)

func NewService(analyze AnalyzeFunc, logger *slog.Logger, opts ...Option) *service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &service{
		analyze: analyze,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanAll analyzes every target with at most maxWorkers units in flight and
// returns the successful results in completion order. Failed units are
// logged and left out. Once ctx is done no further unit is started.
func (s *service) ScanAll(ctx context.Context, targets []model.ScanTarget, maxWorkers int) []model.UnitResult {
	results := make([]model.UnitResult, 0, len(targets))
	if len(targets) == 0 {
		return results
	}

	if maxWorkers < 1 {
		maxWorkers = DefaultWorkers
	}
	workers := min(maxWorkers, len(targets))
	now := s.now()

	queue := make(chan int, len(targets))
	for i := range targets {
		queue <- i
	}
	close(queue)

	// states[i] is written by the worker that owns i until it sends the
	// outcome, and by the collector afterwards.
	states := make([]State, len(targets))
	out := make(chan outcome)

	s.logger.Info("scan started", "units", len(targets), "workers", workers)

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for i := range queue {
				if ctx.Err() != nil {
					return nil
				}
				states[i] = StateRunning
				result, err := s.analyze(ctx, targets[i], now)
				out <- outcome{index: i, result: result, err: err}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(out)
	}()

	completed, failed := 0, 0
	for o := range out {
		target := targets[o.index]
		switch {
		case o.err != nil:
			states[o.index] = StateFailed
			failed++
			s.logger.Error("unit scan failed",
				"kind", target.Kind,
				"account", target.AccountName,
				"unit", target.UnitName,
				"error", o.err)
		case o.result == nil:
			states[o.index] = StateFailed
			failed++
			s.logger.Error("unit scan returned no result",
				"kind", target.Kind,
				"account", target.AccountName,
				"unit", target.UnitName)
		default:
			states[o.index] = StateCompleted
			completed++
			results = append(results, *o.result)
		}

		done := completed + failed
		s.logger.Info("scan progress", "completed", done, "total", len(targets), "unit", target.UnitName)
		if s.progress != nil {
			s.progress(done, len(targets), target, o.err)
		}
	}

	skipped := 0
	for _, state := range states {
		if state == StatePending {
			skipped++
		}
	}
	s.logger.Info("scan finished",
		"completed", completed,
		"failed", failed,
		"skipped", skipped,
		"total", len(targets))

	return results
}
