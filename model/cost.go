package model

import "time"

// StorageFamily separates blob spend from Azure Files spend
type StorageFamily string

const (
	FamilyBlob  StorageFamily = "Azure Blob Storage"
	FamilyFiles StorageFamily = "Azure Files"
)

// StorageCost is one month of storage spend for a subscription
type StorageCost struct {
	SubscriptionID string
	Month          string // YYYY-MM
	ByFamily       map[StorageFamily]float64
	Currency       string
}

// Total sums every family of the month
func (c StorageCost) Total() float64 {
	var total float64
	for _, amount := range c.ByFamily {
		total += amount
	}
	return total
}

// SpendTrend compares the latest month of one spend family with the month
// before it and with the average of the older months.
type SpendTrend struct {
	SubscriptionID       string
	Family               StorageFamily
	Currency             string
	CurrentMonth         string
	PreviousMonth        string
	Current              float64
	Previous             float64
	Baseline             float64
	ChangeAmount         float64 // Current - Previous
	ChangePct            float64
	BaselineChangeAmount float64 // Previous - Baseline
	BaselineChangePct    float64
	Alert                string // High or Medium when spend grows fast, empty otherwise
}

// ReservationTerm is the commitment length of a reserved capacity purchase
type ReservationTerm string

const (
	TermOneYear   ReservationTerm = "1 Year"
	TermThreeYear ReservationTerm = "3 Years"
)

// ReservationRecommendation suggests buying reserved storage capacity
type ReservationRecommendation struct {
	SubscriptionID      string
	Family              StorageFamily
	Tier                string
	CapacityTB          int
	Term                ReservationTerm
	MonthlyCostCurrent  float64
	MonthlyCostReserved float64
	MonthlySavings      float64
	AnnualSavings       float64
	UpfrontCost         float64
	PaybackMonths       int
	SavingsPct          float64
	Consistency         float64
	Confidence          string
	Priority            string
}

// ReservationSummary rolls up all reservation recommendations
type ReservationSummary struct {
	Count              int
	TotalAnnualSavings float64
	TotalUpfrontCost   float64
	NetSavingsYearOne  float64
	ROIPct             float64
	HighPriority       int
	MediumPriority     int
	LowPriority        int
	AverageSavingsPct  float64
}

// ReservationReport is the output of the reservation analysis
type ReservationReport struct {
	Recommendations []ReservationRecommendation
	Summary         ReservationSummary
	Existing        []ExistingReservation
}

// ExistingReservation is a reservation order already purchased
type ExistingReservation struct {
	ID              string
	DisplayName     string
	Term            string
	State           string
	Status          string // active, expiring or expired
	ExpiryDate      time.Time
	DaysUntilExpiry int
}
