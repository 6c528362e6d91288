package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errExpired = errors.New("token expired")

func isExpired(err error) bool {
	return errors.Is(err, errExpired)
}

func TestWithCredentialRefresh_RetriesOnce(t *testing.T) {
	calls, refreshes := 0, 0
	analyze := func(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error) {
		calls++
		if calls == 1 {
			return nil, errExpired
		}
		return succeed(ctx, target, now)
	}
	refresh := func() error {
		refreshes++
		return nil
	}

	wrapped := WithCredentialRefresh(analyze, isExpired, refresh)
	result, err := wrapped(context.Background(), targets(1)[0], time.Now())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, refreshes)
}

func TestWithCredentialRefresh_GivesUpAfterSecondFailure(t *testing.T) {
	calls, refreshes := 0, 0
	analyze := func(context.Context, model.ScanTarget, time.Time) (*model.UnitResult, error) {
		calls++
		return nil, errExpired
	}
	refresh := func() error {
		refreshes++
		return nil
	}

	_, err := WithCredentialRefresh(analyze, isExpired, refresh)(context.Background(), targets(1)[0], time.Now())

	assert.ErrorIs(t, err, errExpired)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, refreshes)
}

func TestWithCredentialRefresh_IgnoresOtherErrors(t *testing.T) {
	calls, refreshes := 0, 0
	boom := errors.New("container not found")
	analyze := func(context.Context, model.ScanTarget, time.Time) (*model.UnitResult, error) {
		calls++
		return nil, boom
	}
	refresh := func() error {
		refreshes++
		return nil
	}

	_, err := WithCredentialRefresh(analyze, isExpired, refresh)(context.Background(), targets(1)[0], time.Now())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Zero(t, refreshes)
}

func TestWithCredentialRefresh_RefreshFailure(t *testing.T) {
	calls := 0
	analyze := func(context.Context, model.ScanTarget, time.Time) (*model.UnitResult, error) {
		calls++
		return nil, errExpired
	}
	refresh := func() error {
		return errors.New("no credential source")
	}

	_, err := WithCredentialRefresh(analyze, isExpired, refresh)(context.Background(), targets(1)[0], time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, errExpired)
	assert.Contains(t, err.Error(), "no credential source")
	assert.Equal(t, 1, calls)
}
