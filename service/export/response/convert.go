package response

import (
	"time"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/utils"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

func ConvertAccountInfos(infos []model.AccountInfo) []AccountInfo {
	out := make([]AccountInfo, 0, len(infos))
	for i := range infos {
		out = append(out, *ConvertAccountInfo(&infos[i]))
	}
	return out
}

func ConvertUnitResult(r model.UnitResult) UnitResult {
	unit := UnitResult{
		Kind:           string(r.Kind),
		SubscriptionID: r.SubscriptionID,
		AccountName:    r.AccountName,
		Name:           r.UnitName,
		Objects:        r.TotalCount,
		SizeBytes:      r.TotalSize,
		Size:           utils.FormatBytes(r.TotalSize),
		Directories:    r.DirectoryCount,
		SmallPct:       r.SmallPct,
		ByCount:        AgeDistribution{Hot: r.HotPct, Warm: r.WarmPct, Cold: r.ColdPct, Archive: r.ArchivePct},
		BySize:         AgeDistribution{Hot: r.HotSizePct, Warm: r.WarmSizePct, Cold: r.ColdSizePct, Archive: r.ArchiveSizePct},
		Over90Pct:      r.Over90Pct,
		Over180Pct:     r.Over180Pct,
	}
	if r.Kind == model.UnitContainer {
		unit.RecommendedTiers = ConvertTierBreakdown(r.RecommendedTiers)
	}
	if r.Share != nil {
		unit.Share = &ShareDetails{
			QuotaGiB:      r.Share.QuotaGiB,
			AccessTier:    r.Share.AccessTier,
			SnapshotCount: r.Share.SnapshotCount,
			HugeFileCount: r.Share.HugeFileCount,
		}
	}
	return unit
}

func ConvertUnitResults(results []model.UnitResult) []UnitResult {
	out := make([]UnitResult, 0, len(results))
	for _, r := range results {
		out = append(out, ConvertUnitResult(r))
	}
	return out
}

func ConvertAccountSummaries(summaries []model.AccountSummary) []AccountSummary {
	out := make([]AccountSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, AccountSummary{
			SubscriptionID: s.SubscriptionID,
			AccountName:    s.AccountName,
			Containers:     s.ContainerCount,
			Shares:         s.ShareCount,
			Objects:        s.TotalCount,
			SizeBytes:      s.TotalSize,
			Size:           utils.FormatBytes(s.TotalSize),
			ByCount:        AgeDistribution{Hot: s.HotPct, Warm: s.WarmPct, Cold: s.ColdPct, Archive: s.ArchivePct},
		})
	}
	return out
}

func ConvertTotals(t model.Totals) Totals {
	return Totals{
		Accounts:   t.AccountCount,
		Containers: t.ContainerCount,
		Shares:     t.ShareCount,
		Objects:    t.TotalCount,
		SizeBytes:  t.TotalSize,
		Size:       utils.FormatBytes(t.TotalSize),
		SmallPct:   t.SmallPct,
		ByCount:    AgeDistribution{Hot: t.HotPct, Warm: t.WarmPct, Cold: t.ColdPct, Archive: t.ArchivePct},

		RecommendedTiers: ConvertTierBreakdown(t.RecommendedTiers),
	}
}

// ConvertTierBreakdown lists the tiers from hottest to coldest
func ConvertTierBreakdown(b model.TierBreakdown) []TierUsage {
	out := make([]TierUsage, 0, len(model.Tiers))
	for _, tier := range model.Tiers {
		usage := b.Usage(tier)
		out = append(out, TierUsage{Tier: string(tier), Objects: usage.Count, SizeBytes: usage.Size})
	}
	return out
}

// ConvertRecommendations flattens a set in category order and adds per
// category totals. Categories without recommendations are left out.
func ConvertRecommendations(set model.RecommendationSet) RecommendationSummary {
	summary := RecommendationSummary{
		Count:                   set.Count(),
		EstimatedMonthlySavings: set.EstimatedSavings,
		EstimatedAnnualSavings:  set.EstimatedSavings * 12,
		Categories:              []CategorySummary{},
		Recommendations:         []Recommendation{},
	}

	for _, category := range model.Categories {
		recs := set.ByCategory[category]
		if len(recs) == 0 {
			continue
		}
		summary.Categories = append(summary.Categories, CategorySummary{
			Category:       string(category),
			Count:          len(recs),
			MonthlySavings: set.CategorySavings(category),
		})
	}

	for _, rec := range set.All() {
		summary.Recommendations = append(summary.Recommendations, Recommendation{
			Category:        string(rec.Category),
			SubscriptionID:  rec.SubscriptionID,
			AccountName:     rec.AccountName,
			UnitName:        rec.UnitName,
			Description:     rec.Description,
			TargetTier:      string(rec.TargetTier),
			AffectedObjects: rec.AffectedObjects,
			AffectedGiB:     rec.AffectedGiB,
			MonthlySavings:  rec.MonthlySavings,
		})
	}
	return summary
}

func ConvertScanSummary(report model.ScanReport, topUnits []model.UnitResult) ScanSummary {
	return ScanSummary{
		GeneratedAt:   report.GeneratedAt.UTC().Format(time.RFC3339),
		Subscriptions: ConvertAccountInfos(report.Subscriptions),
		Totals:        ConvertTotals(report.Totals),
		Accounts:      ConvertAccountSummaries(report.Accounts),
		TopUnits:      ConvertUnitResults(topUnits),
		Savings:       report.Recommendations.EstimatedSavings,
	}
}

func ConvertReservationReport(report *model.ReservationReport) *ReservationReport {
	if report == nil {
		return nil
	}

	out := &ReservationReport{
		Recommendations: []ReservationRecommendation{},
		Summary: ReservationSummary{
			Count:              report.Summary.Count,
			TotalAnnualSavings: report.Summary.TotalAnnualSavings,
			TotalUpfrontCost:   report.Summary.TotalUpfrontCost,
			NetSavingsYearOne:  report.Summary.NetSavingsYearOne,
			ROIPct:             report.Summary.ROIPct,
			HighPriority:       report.Summary.HighPriority,
			MediumPriority:     report.Summary.MediumPriority,
			LowPriority:        report.Summary.LowPriority,
			AverageSavingsPct:  report.Summary.AverageSavingsPct,
		},
		Existing: []Reservation{},
	}

	for _, rec := range report.Recommendations {
		out.Recommendations = append(out.Recommendations, ReservationRecommendation{
			SubscriptionID:      rec.SubscriptionID,
			Service:             string(rec.Family),
			Tier:                rec.Tier,
			CapacityTB:          rec.CapacityTB,
			Term:                string(rec.Term),
			MonthlyCostCurrent:  rec.MonthlyCostCurrent,
			MonthlyCostReserved: rec.MonthlyCostReserved,
			MonthlySavings:      rec.MonthlySavings,
			AnnualSavings:       rec.AnnualSavings,
			UpfrontCost:         rec.UpfrontCost,
			PaybackMonths:       rec.PaybackMonths,
			SavingsPct:          rec.SavingsPct,
			Consistency:         rec.Consistency,
			Confidence:          rec.Confidence,
			Priority:            rec.Priority,
		})
	}

	for _, r := range report.Existing {
		reservation := Reservation{
			ID:              r.ID,
			DisplayName:     r.DisplayName,
			Term:            r.Term,
			State:           r.State,
			Status:          r.Status,
			DaysUntilExpiry: r.DaysUntilExpiry,
		}
		if !r.ExpiryDate.IsZero() {
			reservation.ExpiryDate = r.ExpiryDate.Format("2006-01-02")
		}
		out.Existing = append(out.Existing, reservation)
	}
	return out
}

// ConvertReport converts a whole run for JSON export
func ConvertReport(report model.ScanReport, topUnits []model.UnitResult) Report {
	return Report{
		Summary:         ConvertScanSummary(report, topUnits),
		Units:           ConvertUnitResults(report.Units),
		Recommendations: ConvertRecommendations(report.Recommendations),
		Spend:           ConvertStorageCosts(report.Costs),
		SpendTrends:     ConvertSpendTrends(report.SpendTrends),
		Reservations:    ConvertReservationReport(report.Reservations),
	}
}

func ConvertStorageCosts(costs []model.StorageCost) []MonthlySpend {
	var out []MonthlySpend
	for _, c := range costs {
		out = append(out, MonthlySpend{
			SubscriptionID: c.SubscriptionID,
			Month:          c.Month,
			Blob:           c.ByFamily[model.FamilyBlob],
			Files:          c.ByFamily[model.FamilyFiles],
			Total:          c.Total(),
			Currency:       c.Currency,
		})
	}
	return out
}

func ConvertSpendTrends(trends []model.SpendTrend) []SpendTrend {
	var out []SpendTrend
	for _, t := range trends {
		out = append(out, SpendTrend{
			SubscriptionID:       t.SubscriptionID,
			Service:              string(t.Family),
			Currency:             t.Currency,
			CurrentMonth:         t.CurrentMonth,
			PreviousMonth:        t.PreviousMonth,
			Current:              t.Current,
			Previous:             t.Previous,
			Baseline:             t.Baseline,
			ChangeAmount:         t.ChangeAmount,
			ChangePct:            t.ChangePct,
			BaselineChangeAmount: t.BaselineChangeAmount,
			BaselineChangePct:    t.BaselineChangePct,
			Alert:                t.Alert,
		})
	}
	return out
}
