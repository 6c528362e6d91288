package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
)

const (
	// SmallObjectLimit is the inclusive upper bound of the small size class
	SmallObjectLimit int64 = 1024 * 1024
	// HugeFileLimit marks file share files that favour a Premium share
	HugeFileLimit int64 = 100 * 1024 * 1024

	HotAge  = 30 * 24 * time.Hour
	WarmAge = 90 * 24 * time.Hour
	ColdAge = 180 * 24 * time.Hour
)

type SizeClass int

const (
	SizeSmall SizeClass = iota
	SizeLarge
)

type AgeClass int

const (
	AgeHot AgeClass = iota
	AgeWarm
	AgeCold
	AgeArchive
)

func (a AgeClass) String() string {
	switch a {
	case AgeHot:
		return "hot"
	case AgeWarm:
		return "warm"
	case AgeCold:
		return "cold"
	case AgeArchive:
		return "archive"
	default:
		return "unknown"
	}
}

type service struct {
	logger *slog.Logger
}

type AnalyzerService interface {
	Analyze(ctx context.Context, target model.ScanTarget, now time.Time) (*model.UnitResult, error)
}

// UnitError reports a container or share that could not be scanned
type UnitError struct {
	Kind           model.UnitKind
	SubscriptionID string
	AccountName    string
	UnitName       string
	Err            error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("failed to scan %s %s/%s: %v", e.Kind, e.AccountName, e.UnitName, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

func newUnitError(target model.ScanTarget, err error) *UnitError {
	return &UnitError{
		Kind:           target.Kind,
		SubscriptionID: target.SubscriptionID,
		AccountName:    target.AccountName,
		UnitName:       target.UnitName,
		Err:            err,
	}
}
