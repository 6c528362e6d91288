package response

// AccountInfo represents an Azure subscription identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// AzureSubscription represents Azure subscription details
type AzureSubscription struct {
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	State          string `json:"state"`
}

// ShareDetails carries the Azure Files specific fields of a share
type ShareDetails struct {
	QuotaGiB      int64  `json:"quota_gib"`
	AccessTier    string `json:"access_tier"`
	SnapshotCount int    `json:"snapshot_count"`
	HugeFileCount int64  `json:"huge_file_count"`
}

// AgeDistribution is the share of objects per age bucket, in percent
type AgeDistribution struct {
	Hot     float64 `json:"hot_pct"`
	Warm    float64 `json:"warm_pct"`
	Cold    float64 `json:"cold_pct"`
	Archive float64 `json:"archive_pct"`
}

// UnitResult represents the scan of one container or file share
type UnitResult struct {
	Kind           string          `json:"kind"`
	SubscriptionID string          `json:"subscription_id"`
	AccountName    string          `json:"account_name"`
	Name           string          `json:"name"`
	Objects        int64           `json:"objects"`
	SizeBytes      int64           `json:"size_bytes"`
	Size           string          `json:"size"`
	Directories    int64           `json:"directories,omitempty"`
	SmallPct       float64         `json:"small_pct"`
	ByCount        AgeDistribution `json:"age_by_count"`
	BySize         AgeDistribution `json:"age_by_size"`
	Over90Pct      float64         `json:"over_90_days_pct"`
	Over180Pct     float64         `json:"over_180_days_pct"`
	Share          *ShareDetails   `json:"share,omitempty"`

	RecommendedTiers []TierUsage `json:"recommended_tiers,omitempty"`
}

// TierUsage is the data that belongs in one recommended access tier
type TierUsage struct {
	Tier      string `json:"tier"`
	Objects   int64  `json:"objects"`
	SizeBytes int64  `json:"size_bytes"`
}

// AccountSummary represents the totals of one storage account
type AccountSummary struct {
	SubscriptionID string          `json:"subscription_id"`
	AccountName    string          `json:"account_name"`
	Containers     int             `json:"containers"`
	Shares         int             `json:"shares"`
	Objects        int64           `json:"objects"`
	SizeBytes      int64           `json:"size_bytes"`
	Size           string          `json:"size"`
	ByCount        AgeDistribution `json:"age_by_count"`
}

// Totals aggregates every scanned unit
type Totals struct {
	Accounts   int             `json:"accounts"`
	Containers int             `json:"containers"`
	Shares     int             `json:"shares"`
	Objects    int64           `json:"objects"`
	SizeBytes  int64           `json:"size_bytes"`
	Size       string          `json:"size"`
	SmallPct   float64         `json:"small_pct"`
	ByCount    AgeDistribution `json:"age_by_count"`

	RecommendedTiers []TierUsage `json:"recommended_tiers"`
}

// Recommendation represents one optimization suggestion
type Recommendation struct {
	Category        string  `json:"category"`
	SubscriptionID  string  `json:"subscription_id"`
	AccountName     string  `json:"account_name"`
	UnitName        string  `json:"unit_name"`
	Description     string  `json:"description"`
	TargetTier      string  `json:"target_tier,omitempty"`
	AffectedObjects int64   `json:"affected_objects"`
	AffectedGiB     float64 `json:"affected_gib"`
	MonthlySavings  float64 `json:"monthly_savings"`
}

// CategorySummary totals the recommendations of one category
type CategorySummary struct {
	Category       string  `json:"category"`
	Count          int     `json:"count"`
	MonthlySavings float64 `json:"monthly_savings"`
}

// RecommendationSummary groups recommendations with their savings totals
type RecommendationSummary struct {
	Count                   int               `json:"count"`
	EstimatedMonthlySavings float64           `json:"estimated_monthly_savings"`
	EstimatedAnnualSavings  float64           `json:"estimated_annual_savings"`
	Categories              []CategorySummary `json:"categories"`
	Recommendations         []Recommendation  `json:"recommendations"`
}

// ScanSummary is the compact view of a scan
type ScanSummary struct {
	GeneratedAt   string           `json:"generated_at"`
	Subscriptions []AccountInfo    `json:"subscriptions"`
	Totals        Totals           `json:"totals"`
	Accounts      []AccountSummary `json:"accounts"`
	TopUnits      []UnitResult     `json:"top_units"`
	Savings       float64          `json:"estimated_monthly_savings"`
}

// ReservationRecommendation represents one reserved capacity purchase option
type ReservationRecommendation struct {
	SubscriptionID      string  `json:"subscription_id"`
	Service             string  `json:"service"`
	Tier                string  `json:"tier"`
	CapacityTB          int     `json:"capacity_tb"`
	Term                string  `json:"term"`
	MonthlyCostCurrent  float64 `json:"monthly_cost_current"`
	MonthlyCostReserved float64 `json:"monthly_cost_reserved"`
	MonthlySavings      float64 `json:"monthly_savings"`
	AnnualSavings       float64 `json:"annual_savings"`
	UpfrontCost         float64 `json:"upfront_cost"`
	PaybackMonths       int     `json:"payback_months"`
	SavingsPct          float64 `json:"savings_pct"`
	Consistency         float64 `json:"consistency"`
	Confidence          string  `json:"confidence"`
	Priority            string  `json:"priority"`
}

// ReservationSummary totals the reserved capacity options
type ReservationSummary struct {
	Count              int     `json:"count"`
	TotalAnnualSavings float64 `json:"total_annual_savings"`
	TotalUpfrontCost   float64 `json:"total_upfront_cost"`
	NetSavingsYearOne  float64 `json:"net_savings_year_one"`
	ROIPct             float64 `json:"roi_pct"`
	HighPriority       int     `json:"high_priority"`
	MediumPriority     int     `json:"medium_priority"`
	LowPriority        int     `json:"low_priority"`
	AverageSavingsPct  float64 `json:"average_savings_pct"`
}

// Reservation represents a reservation order already purchased
type Reservation struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Term            string `json:"term"`
	State           string `json:"state"`
	Status          string `json:"status"`
	ExpiryDate      string `json:"expiry_date,omitempty"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// ReservationReport combines purchase options with existing reservations
type ReservationReport struct {
	Recommendations []ReservationRecommendation `json:"recommendations"`
	Summary         ReservationSummary          `json:"summary"`
	Existing        []Reservation               `json:"existing"`
}

// MonthlySpend represents one month of storage spend for a subscription
type MonthlySpend struct {
	SubscriptionID string  `json:"subscription_id"`
	Month          string  `json:"month"`
	Blob           float64 `json:"blob"`
	Files          float64 `json:"files"`
	Total          float64 `json:"total"`
	Currency       string  `json:"currency"`
}

// SpendTrend represents the month over month change of one storage family
type SpendTrend struct {
	SubscriptionID       string  `json:"subscription_id"`
	Service              string  `json:"service"`
	Currency             string  `json:"currency"`
	CurrentMonth         string  `json:"current_month"`
	PreviousMonth        string  `json:"previous_month,omitempty"`
	Current              float64 `json:"current"`
	Previous             float64 `json:"previous"`
	Baseline             float64 `json:"baseline"`
	ChangeAmount         float64 `json:"change_amount"`
	ChangePct            float64 `json:"change_pct"`
	BaselineChangeAmount float64 `json:"baseline_change_amount"`
	BaselineChangePct    float64 `json:"baseline_change_pct"`
	Alert                string  `json:"alert,omitempty"`
}

// Report is the full export of one run
type Report struct {
	Summary         ScanSummary           `json:"summary"`
	Units           []UnitResult          `json:"units"`
	Recommendations RecommendationSummary `json:"recommendations"`
	Spend           []MonthlySpend        `json:"spend,omitempty"`
	SpendTrends     []SpendTrend          `json:"spend_trends,omitempty"`
	Reservations    *ReservationReport    `json:"reservations,omitempty"`
}
