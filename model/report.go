package model

import "time"

// ScanReport bundles everything one run produces, for rendering and export
type ScanReport struct {
	GeneratedAt     time.Time
	Subscriptions   []AccountInfo
	Units           []UnitResult
	Accounts        []AccountSummary
	Totals          Totals
	Recommendations RecommendationSet
	Costs           []StorageCost
	SpendTrends     []SpendTrend
	Reservations    *ReservationReport
}
