package costmodel

import (
	"testing"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spend(sub string, blob ...float64) []model.StorageCost {
	var costs []model.StorageCost
	for _, amount := range blob {
		costs = append(costs, model.StorageCost{
			SubscriptionID: sub,
			ByFamily:       map[model.StorageFamily]float64{model.FamilyBlob: amount},
			Currency:       "USD",
		})
	}
	return costs
}

func TestAnalyzeReservations_SteadyBlobSpend(t *testing.T) {
	report := AnalyzeReservations(spend("sub-1", 500, 500, 500))

	require.Len(t, report.Recommendations, 2)

	threeYear := report.Recommendations[0]
	assert.Equal(t, model.TermThreeYear, threeYear.Term)
	assert.Equal(t, 23, threeYear.CapacityTB)
	assert.Equal(t, 224.0, threeYear.MonthlySavings)
	assert.Equal(t, "High", threeYear.Priority)

	oneYear := report.Recommendations[1]
	assert.Equal(t, model.TermOneYear, oneYear.Term)
	assert.Equal(t, 20, oneYear.CapacityTB)
	assert.Equal(t, 180.0, oneYear.MonthlySavings)
	assert.Equal(t, 2160.0, oneYear.AnnualSavings)
	assert.Equal(t, 3840.0, oneYear.UpfrontCost)
	assert.Equal(t, "High", oneYear.Confidence)
	assert.Equal(t, model.FamilyBlob, oneYear.Family)

	assert.Equal(t, 2, report.Summary.Count)
	assert.Equal(t, 4848.0, report.Summary.TotalAnnualSavings)
	assert.Equal(t, 13776.0, report.Summary.TotalUpfrontCost)
	assert.Equal(t, -8928.0, report.Summary.NetSavingsYearOne)
	assert.Equal(t, 2, report.Summary.HighPriority)
	assert.InDelta(t, 40.4, report.Summary.AverageSavingsPct, 1e-9)
}

func TestAnalyzeReservations_Skips(t *testing.T) {
	tests := []struct {
		name  string
		costs []model.StorageCost
	}{
		{"single month", spend("sub-1", 500)},
		{"erratic spend", spend("sub-1", 100, 900)},
		{"small spend", spend("sub-1", 90, 90, 90)},
		{"no data", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzeReservations(tt.costs)
			assert.Empty(t, report.Recommendations)
			assert.Zero(t, report.Summary.Count)
			assert.Zero(t, report.Summary.ROIPct)
		})
	}
}

func TestConsistency(t *testing.T) {
	assert.Equal(t, 1.0, Consistency([]float64{100, 100, 100}))
	assert.Zero(t, Consistency([]float64{100}))
	assert.Zero(t, Consistency([]float64{0, 0}))
	assert.InDelta(t, 0.2, Consistency([]float64{100, 900}), 1e-9)
	assert.Zero(t, Consistency([]float64{0, 0, 300}))
}
