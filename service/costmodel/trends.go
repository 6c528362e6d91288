package costmodel

import (
	"cmp"
	"maps"
	"slices"

	"github.com/elC0mpa/storage-doctor/model"
)

const (
	SpendAlertHighPct   = 20.0
	SpendAlertMediumPct = 10.0

	// HighSpendMonthly flags a family whose latest month alone costs more than this
	HighSpendMonthly = 1000.0
)

var spendFamilies = []model.StorageFamily{model.FamilyBlob, model.FamilyFiles}

// AnalyzeSpendTrends builds one trend per subscription and storage family.
// Families without any spend in the window are left out. With a single
// month there is nothing to compare and every delta stays 0.
func AnalyzeSpendTrends(costs []model.StorageCost) []model.SpendTrend {
	bySubscription := make(map[string][]model.StorageCost)
	for _, c := range costs {
		bySubscription[c.SubscriptionID] = append(bySubscription[c.SubscriptionID], c)
	}

	var trends []model.SpendTrend
	for _, sub := range slices.Sorted(maps.Keys(bySubscription)) {
		months := slices.Clone(bySubscription[sub])
		slices.SortStableFunc(months, func(a, b model.StorageCost) int {
			return cmp.Compare(a.Month, b.Month)
		})

		for _, family := range spendFamilies {
			if trend, ok := familyTrend(months, family); ok {
				trends = append(trends, trend)
			}
		}
	}
	return trends
}

func familyTrend(months []model.StorageCost, family model.StorageFamily) (model.SpendTrend, bool) {
	series := make([]float64, len(months))
	var spent bool
	for i, m := range months {
		series[i] = m.ByFamily[family]
		spent = spent || series[i] > 0
	}
	if !spent {
		return model.SpendTrend{}, false
	}

	last := months[len(months)-1]
	trend := model.SpendTrend{
		SubscriptionID: last.SubscriptionID,
		Family:         family,
		Currency:       last.Currency,
		CurrentMonth:   last.Month,
		Current:        round2(series[len(series)-1]),
	}

	if len(months) >= 2 {
		trend.PreviousMonth = months[len(months)-2].Month
		trend.Previous = round2(series[len(series)-2])
		trend.ChangeAmount = round2(trend.Current - trend.Previous)
		trend.ChangePct = round2(changePct(trend.Current, trend.Previous))
	}
	if len(months) >= 3 {
		trend.Baseline = round2(mean(series[:len(series)-2]))
		trend.BaselineChangeAmount = round2(trend.Previous - trend.Baseline)
		trend.BaselineChangePct = round2(changePct(trend.Previous, trend.Baseline))
	}

	switch {
	case trend.ChangePct > SpendAlertHighPct:
		trend.Alert = "High"
	case trend.ChangePct > SpendAlertMediumPct:
		trend.Alert = "Medium"
	}
	return trend, true
}

// changePct is the growth from previous to current in percent, 0 when
// there was no previous spend.
func changePct(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
