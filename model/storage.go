package model

import (
	"context"
	"iter"
	"time"
)

// UnitKind distinguishes blob containers from file shares
type UnitKind string

const (
	UnitContainer UnitKind = "container"
	UnitShare     UnitKind = "share"
)

// ObjectRecord is a single blob or file observed during a scan
type ObjectRecord struct {
	Name         string
	Size         int64
	LastModified time.Time
	IsDirectory  bool
}

// ObjectSource streams the objects of one container or file share.
// Implementations must not buffer the whole listing.
type ObjectSource interface {
	Objects(ctx context.Context) iter.Seq2[ObjectRecord, error]
}

// ShareDetailer is implemented by sources that can report file share properties
type ShareDetailer interface {
	ShareDetails(ctx context.Context) (*ShareDetails, error)
}

// ScanTarget identifies one container or file share to analyze
type ScanTarget struct {
	Kind           UnitKind
	SubscriptionID string
	AccountName    string
	UnitName       string
	Source         ObjectSource
}

// ShareDetails carries file share properties that blobs do not have
type ShareDetails struct {
	QuotaGiB      int64
	AccessTier    string
	SnapshotCount int
	HugeFileCount int64 // files larger than 100 MiB
}

// UnitResult is the outcome of scanning one container or file share
type UnitResult struct {
	Kind           UnitKind
	SubscriptionID string
	AccountName    string
	UnitName       string
	ScannedAt      time.Time

	TotalCount     int64
	TotalSize      int64
	DirectoryCount int64

	SmallCount int64
	SmallSize  int64
	LargeCount int64
	LargeSize  int64

	HotCount     int64
	HotSize      int64
	WarmCount    int64
	WarmSize     int64
	ColdCount    int64
	ColdSize     int64
	ArchiveCount int64
	ArchiveSize  int64

	Over90Count  int64
	Over180Count int64

	HotPct     float64
	WarmPct    float64
	ColdPct    float64
	ArchivePct float64
	Over90Pct  float64
	Over180Pct float64

	HotSizePct     float64
	WarmSizePct    float64
	ColdSizePct    float64
	ArchiveSizePct float64

	SmallPct float64
	LargePct float64

	// RecommendedTiers places every object in the cheapest sensible tier
	// for its size and age.
	RecommendedTiers TierBreakdown

	Share *ShareDetails
}

// Percent returns part/whole*100, or 0 when whole is 0
func Percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// GiB converts bytes to gibibytes
func GiB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024 * 1024)
}
