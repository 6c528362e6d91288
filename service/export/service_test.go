package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elC0mpa/storage-doctor/logger"
	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/export/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() model.ScanReport {
	units := []model.UnitResult{
		{
			Kind: model.UnitContainer, SubscriptionID: "sub-1", AccountName: "acct", UnitName: "logs",
			TotalCount: 10, TotalSize: 10 << 30, HotPct: 40, ArchivePct: 60,
			RecommendedTiers: model.TierBreakdown{
				Hot:     model.TierUsage{Count: 4, Size: 4 << 30},
				Archive: model.TierUsage{Count: 6, Size: 6 << 30},
			},
		},
		{
			Kind: model.UnitShare, SubscriptionID: "sub-1", AccountName: "acct", UnitName: "team",
			TotalCount: 2, TotalSize: 1 << 30,
			Share: &model.ShareDetails{QuotaGiB: 100, AccessTier: "Hot", SnapshotCount: 1},
		},
	}

	return model.ScanReport{
		GeneratedAt:   time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		Subscriptions: []model.AccountInfo{{Provider: "azure", AccountID: "sub-1", AccountName: "Prod"}},
		Units:         units,
		Accounts: []model.AccountSummary{{
			SubscriptionID: "sub-1", AccountName: "acct", ContainerCount: 1, ShareCount: 1,
			TotalCount: 12, TotalSize: 11 << 30,
		}},
		Totals: model.Totals{
			AccountCount: 1, ContainerCount: 1, ShareCount: 1, TotalCount: 12, TotalSize: 11 << 30,
			RecommendedTiers: model.TierBreakdown{
				Hot:     model.TierUsage{Count: 4, Size: 4 << 30},
				Archive: model.TierUsage{Count: 6, Size: 6 << 30},
			},
		},
		Recommendations: model.RecommendationSet{
			ByCategory: map[model.Category][]model.Recommendation{
				model.CategoryLifecyclePolicy: {{
					Category: model.CategoryLifecyclePolicy, SubscriptionID: "sub-1", AccountName: "acct", UnitName: "logs",
					Description: "Implement lifecycle policy", TargetTier: model.TierArchive, AffectedObjects: 6,
					AffectedGiB: 6, MonthlySavings: 1.5,
				}},
			},
			EstimatedSavings: 1.5,
		},
		Costs: []model.StorageCost{
			{SubscriptionID: "sub-1", Month: "2024-03", ByFamily: map[model.StorageFamily]float64{model.FamilyBlob: 100}, Currency: "USD"},
			{SubscriptionID: "sub-1", Month: "2024-04", ByFamily: map[model.StorageFamily]float64{model.FamilyBlob: 125}, Currency: "USD"},
		},
		SpendTrends: []model.SpendTrend{{
			SubscriptionID: "sub-1", Family: model.FamilyBlob, Currency: "USD",
			CurrentMonth: "2024-04", PreviousMonth: "2024-03", Current: 125, Previous: 100,
			ChangeAmount: 25, ChangePct: 25, Alert: "High",
		}},
		Reservations: &model.ReservationReport{
			Existing: []model.ExistingReservation{{ID: "order-1", Status: "active"}},
		},
	}
}

func TestExport_AllFormats(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, 5, logger.Discard())

	paths, err := svc.Export(sampleReport(), []string{"csv", "html", "xlsx", "json"})
	require.NoError(t, err)

	base := filepath.Join(dir, "storage-report-20240501-083000")
	assert.Equal(t, []string{
		base + "-accounts.csv",
		base + "-recommendations.csv",
		base + "-reservations.csv",
		base + "-spend-trends.csv",
		base + "-spend.csv",
		base + "-units.csv",
		base + ".html",
		base + ".xlsx",
		base + ".json",
	}, paths)
	for _, path := range paths {
		assert.FileExists(t, path)
	}

	units, err := os.ReadFile(base + "-units.csv")
	require.NoError(t, err)
	assert.Contains(t, string(units), "acct,container,logs")
	assert.Contains(t, string(units), "acct,share,team")

	trends, err := os.ReadFile(base + "-spend-trends.csv")
	require.NoError(t, err)
	assert.Contains(t, string(trends), "sub-1,Azure Blob Storage,2024-04,$0.00,$100.00,$125.00,+$25.00,+25.0%,+0.0%,High")

	spend, err := os.ReadFile(base + "-spend.csv")
	require.NoError(t, err)
	assert.Contains(t, string(spend), "sub-1,2024-04,$125.00,$0.00,$125.00,USD")

	html, err := os.ReadFile(base + ".html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h2>Recommendations</h2>")
	assert.Contains(t, string(html), "Implement lifecycle policy")
	assert.Contains(t, string(html), "<h2>Existing Reservations</h2>")
	assert.Contains(t, string(html), "<h2>Recommended Access Tiers</h2>")
	assert.Contains(t, string(html), "<h2>Storage Spend Trends</h2>")
}

func TestExport_CSVWithoutCostsSkipsSpend(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()
	report.Costs = nil
	report.SpendTrends = nil

	paths, err := NewService(dir, 5, logger.Discard()).Export(report, []string{"csv"})
	require.NoError(t, err)

	for _, path := range paths {
		assert.NotContains(t, path, "spend")
	}
	assert.Len(t, paths, 4)
}

func TestExport_JSON(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewService(dir, 1, logger.Discard()).Export(sampleReport(), []string{"json"})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)

	var report response.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Len(t, report.Units, 2)
	assert.Equal(t, []response.TierUsage{
		{Tier: "Hot", Objects: 4, SizeBytes: 4 << 30},
		{Tier: "Cool"},
		{Tier: "Cold"},
		{Tier: "Archive", Objects: 6, SizeBytes: 6 << 30},
	}, report.Units[0].RecommendedTiers)
	assert.Nil(t, report.Units[1].RecommendedTiers)
	assert.Len(t, report.Summary.Totals.RecommendedTiers, 4)
	require.Len(t, report.Summary.TopUnits, 1)
	assert.Equal(t, "logs", report.Summary.TopUnits[0].Name)
	assert.Equal(t, 1.5, report.Recommendations.EstimatedMonthlySavings)
	require.NotNil(t, report.Reservations)
	assert.Equal(t, "order-1", report.Reservations.Existing[0].ID)
	assert.Len(t, report.Spend, 2)
	require.Len(t, report.SpendTrends, 1)
	assert.Equal(t, 25.0, report.SpendTrends[0].ChangeAmount)
	assert.Equal(t, "High", report.SpendTrends[0].Alert)
}

func TestExport_XLSX(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewService(dir, 5, logger.Discard()).Export(sampleReport(), []string{"xlsx"})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	f, err := excelize.OpenFile(paths[0])
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Overview", "Units", "Recommended Tiers", "Accounts", "Recommendations", "Spend", "Reservations"}, f.GetSheetList())

	spend, err := f.GetRows("Spend")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub-1", "Azure Blob Storage", "2024-04", "0", "100", "125", "25", "25", "0", "0", "High"}, spend[1])
	assert.Equal(t, []string{"sub-1", "2024-04", "125", "0", "125", "USD"}, spend[len(spend)-1])

	tiers, err := f.GetRows("Recommended Tiers")
	require.NoError(t, err)
	require.Len(t, tiers, 3, "header, the container and the total; shares are left out")
	assert.Equal(t, []string{"sub-1", "acct", "logs", "4", "4", "0", "0", "0", "0", "6", "6"}, tiers[1])
	assert.Equal(t, "TOTAL", tiers[2][0])

	rows, err := f.GetRows("Units")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Subscription", rows[0][0])
	assert.Equal(t, "logs", rows[1][3])
	assert.Equal(t, "10", rows[1][5])
	assert.Equal(t, "Hot", rows[2][19])

	recs, err := f.GetRows("Recommendations")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", recs[len(recs)-1][0])
}

func TestExport_NoFormats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	paths, err := NewService(dir, 5, logger.Discard()).Export(sampleReport(), nil)

	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.NoDirExists(t, dir)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := NewService(t.TempDir(), 5, logger.Discard()).Export(sampleReport(), []string{"pdf"})
	assert.ErrorContains(t, err, "unknown export format")
}
