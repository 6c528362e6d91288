package export

import (
	"fmt"
	"math"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/xuri/excelize/v2"
)

type sheet struct {
	name   string
	header []any
	rows   [][]any
	widths map[string]float64
}

// writeXLSX builds the workbook with one sheet per report section. Numbers
// are written raw so they stay sortable in Excel.
func writeXLSX(path string, report model.ScanReport) ([]string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []sheet{
		overviewSheet(report),
		unitsSheet(report.Units),
		tiersSheet(report.Units, report.Totals),
		accountsSheet(report.Accounts),
		recommendationsSheet(report.Recommendations),
	}
	if len(report.Costs) > 0 {
		sheets = append(sheets, spendSheet(report.Costs, report.SpendTrends))
	}
	if report.Reservations != nil {
		sheets = append(sheets, reservationsSheet(*report.Reservations))
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}

		if err := writeSheet(f, sh, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}
	return []string{path}, nil
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sh.name, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	for col, width := range sh.widths {
		if err := f.SetColWidth(sh.name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func overviewSheet(report model.ScanReport) sheet {
	t := report.Totals
	sh := sheet{
		name:   "Overview",
		header: []any{"Metric", "Value"},
		widths: map[string]float64{"A": 32, "B": 40},
	}
	for _, sub := range report.Subscriptions {
		sh.rows = append(sh.rows, []any{"Subscription", fmt.Sprintf("%s (%s)", sub.AccountName, sub.AccountID)})
	}
	sh.rows = append(sh.rows,
		[]any{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		[]any{"Storage accounts", t.AccountCount},
		[]any{"Containers", t.ContainerCount},
		[]any{"File shares", t.ShareCount},
		[]any{"Objects", t.TotalCount},
		[]any{"Total size (GiB)", round2(model.GiB(t.TotalSize))},
		[]any{"Small objects %", round2(t.SmallPct)},
		[]any{"Hot %", round2(t.HotPct)},
		[]any{"Warm %", round2(t.WarmPct)},
		[]any{"Cold %", round2(t.ColdPct)},
		[]any{"Archive %", round2(t.ArchivePct)},
		[]any{"Recommendations", report.Recommendations.Count()},
		[]any{"Estimated monthly savings (USD)", report.Recommendations.EstimatedSavings},
	)
	return sh
}

func unitsSheet(units []model.UnitResult) sheet {
	sh := sheet{
		name: "Units",
		header: []any{
			"Subscription", "Account", "Type", "Name", "Objects", "Size (GiB)", "Directories",
			"Small %", "Hot %", "Warm %", "Cold %", "Archive %", "90+ days %", "180+ days %",
			"Hot size %", "Warm size %", "Cold size %", "Archive size %",
			"Quota (GiB)", "Access tier", "Snapshots", "Files > 100 MiB",
		},
		widths: map[string]float64{"A": 38, "B": 24, "D": 30},
	}

	for _, u := range units {
		row := []any{
			u.SubscriptionID, u.AccountName, string(u.Kind), u.UnitName,
			u.TotalCount, round2(model.GiB(u.TotalSize)), u.DirectoryCount,
			round2(u.SmallPct), round2(u.HotPct), round2(u.WarmPct), round2(u.ColdPct), round2(u.ArchivePct),
			round2(u.Over90Pct), round2(u.Over180Pct),
			round2(u.HotSizePct), round2(u.WarmSizePct), round2(u.ColdSizePct), round2(u.ArchiveSizePct),
		}
		if u.Share != nil {
			row = append(row, u.Share.QuotaGiB, u.Share.AccessTier, u.Share.SnapshotCount, u.Share.HugeFileCount)
		}
		sh.rows = append(sh.rows, row)
	}
	return sh
}

// tiersSheet lists, per container, the objects and GiB that belong in each
// recommended access tier.
func tiersSheet(units []model.UnitResult, totals model.Totals) sheet {
	header := []any{"Subscription", "Account", "Container"}
	for _, tier := range model.Tiers {
		header = append(header, string(tier)+" objects", string(tier)+" GiB")
	}
	sh := sheet{
		name:   "Recommended Tiers",
		header: header,
		widths: map[string]float64{"A": 38, "B": 24, "C": 30},
	}

	for _, u := range units {
		if u.Kind != model.UnitContainer {
			continue
		}
		sh.rows = append(sh.rows, tierRow([]any{u.SubscriptionID, u.AccountName, u.UnitName}, u.RecommendedTiers))
	}
	sh.rows = append(sh.rows, tierRow([]any{"TOTAL", "", ""}, totals.RecommendedTiers))
	return sh
}

func tierRow(row []any, breakdown model.TierBreakdown) []any {
	for _, tier := range model.Tiers {
		usage := breakdown.Usage(tier)
		row = append(row, usage.Count, round2(model.GiB(usage.Size)))
	}
	return row
}

func accountsSheet(summaries []model.AccountSummary) sheet {
	sh := sheet{
		name:   "Accounts",
		header: []any{"Subscription", "Account", "Containers", "Shares", "Objects", "Size (GiB)", "Hot %", "Warm %", "Cold %", "Archive %"},
		widths: map[string]float64{"A": 38, "B": 24},
	}
	for _, s := range summaries {
		sh.rows = append(sh.rows, []any{
			s.SubscriptionID, s.AccountName, s.ContainerCount, s.ShareCount, s.TotalCount,
			round2(model.GiB(s.TotalSize)), round2(s.HotPct), round2(s.WarmPct), round2(s.ColdPct), round2(s.ArchivePct),
		})
	}
	return sh
}

func recommendationsSheet(set model.RecommendationSet) sheet {
	sh := sheet{
		name:   "Recommendations",
		header: []any{"Category", "Subscription", "Account", "Unit", "Recommendation", "Target tier", "Objects", "GiB", "Monthly savings (USD)"},
		widths: map[string]float64{"A": 18, "B": 38, "C": 24, "D": 24, "E": 70},
	}
	for _, rec := range set.All() {
		sh.rows = append(sh.rows, []any{
			string(rec.Category), rec.SubscriptionID, rec.AccountName, rec.UnitName, rec.Description,
			string(rec.TargetTier), rec.AffectedObjects, rec.AffectedGiB, rec.MonthlySavings,
		})
	}
	sh.rows = append(sh.rows, []any{"TOTAL", "", "", "", "", "", "", "", set.EstimatedSavings})
	return sh
}

// spendSheet holds the trend per family on top and the raw monthly spend below it
func spendSheet(costs []model.StorageCost, trends []model.SpendTrend) sheet {
	sh := sheet{
		name: "Spend",
		header: []any{
			"Subscription", "Service", "Month", "Baseline (USD)", "Previous (USD)", "Current (USD)",
			"Change (USD)", "Change %", "Baseline change (USD)", "Baseline change %", "Alert",
		},
		widths: map[string]float64{"A": 38, "B": 20},
	}
	for _, t := range trends {
		sh.rows = append(sh.rows, []any{
			t.SubscriptionID, string(t.Family), t.CurrentMonth, t.Baseline, t.Previous, t.Current,
			t.ChangeAmount, t.ChangePct, t.BaselineChangeAmount, t.BaselineChangePct, t.Alert,
		})
	}

	sh.rows = append(sh.rows,
		[]any{},
		[]any{"Subscription", "Month", string(model.FamilyBlob), string(model.FamilyFiles), "Total", "Currency"},
	)
	for _, c := range costs {
		sh.rows = append(sh.rows, []any{
			c.SubscriptionID, c.Month, round2(c.ByFamily[model.FamilyBlob]), round2(c.ByFamily[model.FamilyFiles]),
			round2(c.Total()), c.Currency,
		})
	}
	return sh
}

func reservationsSheet(report model.ReservationReport) sheet {
	sh := sheet{
		name: "Reservations",
		header: []any{
			"Subscription", "Service", "Tier", "Term", "Capacity (TB)", "Current (USD/month)", "Reserved (USD/month)",
			"Savings (USD/month)", "Savings (USD/year)", "Upfront (USD)", "Payback (months)", "Savings %",
			"Consistency", "Confidence", "Priority",
		},
		widths: map[string]float64{"A": 38, "B": 20},
	}
	for _, rec := range report.Recommendations {
		sh.rows = append(sh.rows, []any{
			rec.SubscriptionID, string(rec.Family), rec.Tier, string(rec.Term), rec.CapacityTB,
			rec.MonthlyCostCurrent, rec.MonthlyCostReserved, rec.MonthlySavings, rec.AnnualSavings,
			rec.UpfrontCost, rec.PaybackMonths, rec.SavingsPct, rec.Consistency, rec.Confidence, rec.Priority,
		})
	}

	summary := report.Summary
	sh.rows = append(sh.rows,
		[]any{},
		[]any{"Total annual savings", summary.TotalAnnualSavings},
		[]any{"Total upfront cost", summary.TotalUpfrontCost},
		[]any{"Net savings year one", summary.NetSavingsYearOne},
		[]any{"ROI %", summary.ROIPct},
	)
	for _, r := range report.Existing {
		expiry := ""
		if !r.ExpiryDate.IsZero() {
			expiry = r.ExpiryDate.Format("2006-01-02")
		}
		sh.rows = append(sh.rows, []any{"Existing reservation", r.DisplayName, r.Term, r.State, r.Status, expiry})
	}
	return sh
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
