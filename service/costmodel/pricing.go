package costmodel

import (
	"math"

	"github.com/elC0mpa/storage-doctor/model"
)

// Blob storage prices in USD per GiB-month, general purpose v2, approximate.
var BlobPrices = map[model.Tier]float64{
	model.TierHot:     0.0184,
	model.TierCool:    0.01,
	model.TierCold:    0.005,
	model.TierArchive: 0.00099,
}

// File share prices in USD per GiB-month, approximate.
var SharePrices = map[string]float64{
	"Standard":             0.06,
	"Premium":              0.15,
	"TransactionOptimized": 0.0225,
}

const (
	PerRequestCost        = 0.0000004
	ConsolidationCap      = 20.0
	MinMonthlySavings     = 1.0
	MinShareTierSavings   = 5.0
	MinSnapshotCost       = 5.0
	LifecycleOldPct       = 20.0
	ConsolidationMinCount = 10000
)

// sharePrice falls back to the Standard price for tiers like Hot or Cool
func sharePrice(tier string) float64 {
	if price, ok := SharePrices[tier]; ok {
		return price
	}
	return SharePrices["Standard"]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
