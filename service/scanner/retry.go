package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
)

// WithCredentialRefresh wraps analyze so that a unit failing with an
// authentication error gets exactly one retry after refresh succeeds.
func WithCredentialRefresh(analyze AnalyzeFunc, isAuthErr func(error) bool, refresh func() error) AnalyzeFunc {
	return func(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error) {
		result, err := analyze(ctx, target, now)
		if err == nil || !isAuthErr(err) {
			return result, err
		}

		if refreshErr := refresh(); refreshErr != nil {
			return nil, fmt.Errorf("failed to refresh credentials after %w: %v", err, refreshErr)
		}
		return analyze(ctx, target, now)
	}
}
