package costmodel

import (
	"math"
	"sort"

	"github.com/elC0mpa/storage-doctor/model"
)

type reservationPlan struct {
	tier           string
	perTBMonthly   float64 // reserved price per TB-month
	upfrontPerTB   float64
	term           model.ReservationTerm
	paybackMonths  int
	minTB          float64
	minCapacity    int
	capacityFactor float64
	highConfidence float64 // savings share of the current spend for High confidence
}

// Reserved capacity assumptions. Current usage is estimated from spend with
// a flat per-TB price because the scan does not know the billed capacity.
var (
	blobPerTBMonthly  = 20.0
	filesPerTBMonthly = 60.0

	blobPlans = []reservationPlan{
		{tier: "Hot", perTBMonthly: 16, upfrontPerTB: 192, term: model.TermOneYear, paybackMonths: 12, minTB: 1, minCapacity: 1, capacityFactor: 0.8, highConfidence: 0.15},
		{tier: "Hot", perTBMonthly: 12, upfrontPerTB: 432, term: model.TermThreeYear, paybackMonths: 36, minTB: 2, minCapacity: 2, capacityFactor: 0.9, highConfidence: 0.25},
	}
	filesPlans = []reservationPlan{
		{tier: "Premium", perTBMonthly: 48, upfrontPerTB: 576, term: model.TermOneYear, paybackMonths: 12, minTB: 0.5, minCapacity: 1, capacityFactor: 1, highConfidence: 0.15},
		{tier: "Premium", perTBMonthly: 36, upfrontPerTB: 1296, term: model.TermThreeYear, paybackMonths: 36, minTB: 1, minCapacity: 1, capacityFactor: 1, highConfidence: 0.25},
	}
)

const (
	minReservationMonths      = 2
	minReservationSpend       = 100.0
	minReservationConsistency = 0.7
)

// AnalyzeReservations looks for subscriptions whose storage spend is large
// and steady enough to justify reserved capacity.
func AnalyzeReservations(costs []model.StorageCost) model.ReservationReport {
	bySubscription := make(map[string][]model.StorageCost)
	var subscriptions []string
	for _, cost := range costs {
		if _, ok := bySubscription[cost.SubscriptionID]; !ok {
			subscriptions = append(subscriptions, cost.SubscriptionID)
		}
		bySubscription[cost.SubscriptionID] = append(bySubscription[cost.SubscriptionID], cost)
	}
	sort.Strings(subscriptions)

	var recs []model.ReservationRecommendation
	for _, subID := range subscriptions {
		months := bySubscription[subID]
		recs = append(recs, familyReservations(subID, model.FamilyBlob, months, blobPerTBMonthly, blobPlans)...)
		recs = append(recs, familyReservations(subID, model.FamilyFiles, months, filesPerTBMonthly, filesPlans)...)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		pi, pj := priorityRank(recs[i].Priority), priorityRank(recs[j].Priority)
		if pi != pj {
			return pi > pj
		}
		return recs[i].AnnualSavings > recs[j].AnnualSavings
	})

	return model.ReservationReport{
		Recommendations: recs,
		Summary:         summarizeReservations(recs),
	}
}

func familyReservations(subID string, family model.StorageFamily, months []model.StorageCost, perTB float64, plans []reservationPlan) []model.ReservationRecommendation {
	var spend []float64
	for _, month := range months {
		if cost := month.ByFamily[family]; cost > 0 {
			spend = append(spend, cost)
		}
	}
	if len(spend) < minReservationMonths {
		return nil
	}

	avg := mean(spend)
	consistency := Consistency(spend)
	if avg <= minReservationSpend || consistency <= minReservationConsistency {
		return nil
	}

	estimatedTB := avg / perTB
	var recs []model.ReservationRecommendation
	for _, plan := range plans {
		if estimatedTB < plan.minTB {
			continue
		}

		capacity := int(math.Max(float64(plan.minCapacity), math.Round(estimatedTB*plan.capacityFactor)))
		reserved := float64(capacity) * plan.perTBMonthly
		monthly := avg - reserved
		if monthly <= 0 {
			continue
		}

		confidence := "Medium"
		if monthly > avg*plan.highConfidence {
			confidence = "High"
		}

		rec := model.ReservationRecommendation{
			SubscriptionID:      subID,
			Family:              family,
			Tier:                plan.tier,
			CapacityTB:          capacity,
			Term:                plan.term,
			MonthlyCostCurrent:  round2(avg),
			MonthlyCostReserved: round2(reserved),
			MonthlySavings:      round2(monthly),
			AnnualSavings:       round2(monthly * 12),
			UpfrontCost:         float64(capacity) * plan.upfrontPerTB,
			PaybackMonths:       plan.paybackMonths,
			SavingsPct:          round2(monthly / avg * 100),
			Consistency:         round2(consistency),
			Confidence:          confidence,
		}
		rec.Priority = reservationPriority(rec)
		recs = append(recs, rec)
	}
	return recs
}

// Consistency scores how steady a spend series is, from 0 to 1, as one
// minus the coefficient of variation.
func Consistency(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	if m == 0 {
		return 0
	}

	var variance float64
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(values))

	score := 1 - math.Sqrt(variance)/m
	return math.Min(1, math.Max(0, score))
}

func reservationPriority(rec model.ReservationRecommendation) string {
	switch {
	case rec.Confidence == "High" && rec.SavingsPct > 20 && rec.MonthlySavings > 100:
		return "High"
	case rec.SavingsPct > 15 && rec.MonthlySavings > 50:
		return "Medium"
	default:
		return "Low"
	}
}

func priorityRank(priority string) int {
	switch priority {
	case "High":
		return 3
	case "Medium":
		return 2
	default:
		return 1
	}
}

func summarizeReservations(recs []model.ReservationRecommendation) model.ReservationSummary {
	summary := model.ReservationSummary{Count: len(recs)}
	if len(recs) == 0 {
		return summary
	}

	var pcts []float64
	for _, rec := range recs {
		summary.TotalAnnualSavings += rec.AnnualSavings
		summary.TotalUpfrontCost += rec.UpfrontCost
		switch rec.Priority {
		case "High":
			summary.HighPriority++
		case "Medium":
			summary.MediumPriority++
		default:
			summary.LowPriority++
		}
		if rec.SavingsPct > 0 {
			pcts = append(pcts, rec.SavingsPct)
		}
	}

	summary.TotalAnnualSavings = round2(summary.TotalAnnualSavings)
	summary.TotalUpfrontCost = round2(summary.TotalUpfrontCost)
	summary.NetSavingsYearOne = round2(summary.TotalAnnualSavings - summary.TotalUpfrontCost)
	if summary.TotalUpfrontCost > 0 {
		summary.ROIPct = round2(summary.NetSavingsYearOne / summary.TotalUpfrontCost * 100)
	}
	if len(pcts) > 0 {
		summary.AverageSavingsPct = round2(mean(pcts))
	}
	return summary
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
