package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
)

// DefaultWorkers is used when the caller asks for fewer than one worker
const DefaultWorkers = 10

// AnalyzeFunc scans one target. It matches analyzer.AnalyzerService.Analyze.
type AnalyzeFunc func(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error)

// ProgressFunc is called from the collecting goroutine after every finished
// unit, failed or not.
type ProgressFunc func(completed, total int, target model.ScanTarget, err error)

type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Option func(*service)

// WithProgress registers a callback invoked after each unit
func WithProgress(fn ProgressFunc) Option {
	return func(s *service) {
		s.progress = fn
	}
}

// WithClock overrides the reference time used for age classification
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	analyze  AnalyzeFunc
	logger   *slog.Logger
	progress ProgressFunc
	now      func() time.Time
}

type ScannerService interface {
	ScanAll(ctx context.Context, targets []model.ScanTarget, maxWorkers int) []model.UnitResult
}

type outcome struct {
	index  int
	result *model.UnitResult
	err    error
}
