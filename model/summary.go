package model

// AccountSummary folds every unit that belongs to one storage account
type AccountSummary struct {
	SubscriptionID string
	AccountName    string
	ContainerCount int
	ShareCount     int

	TotalCount int64
	TotalSize  int64

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

	HotPct     float64
	WarmPct    float64
	ColdPct    float64
	ArchivePct float64
}

// Totals is the global fold over all scanned units
type Totals struct {
	AccountCount   int
	ContainerCount int
	ShareCount     int

	TotalCount int64
	TotalSize  int64

	SmallCount   int64
	LargeCount   int64
	HotCount     int64
	WarmCount    int64
	ColdCount    int64
	ArchiveCount int64

	HotSize     int64
	WarmSize    int64
	ColdSize    int64
	ArchiveSize int64

	HotPct     float64
	WarmPct    float64
	ColdPct    float64
	ArchivePct float64
	SmallPct   float64

	RecommendedTiers TierBreakdown
}
