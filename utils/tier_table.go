package utils

import (
	"fmt"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/costmodel"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TierSummary prices the blob data once as it is billed today, all in
// Hot, and once with every blob in its recommended tier.
type TierSummary struct {
	Breakdown  model.TierBreakdown
	HotCost    float64
	TieredCost float64
	TotalCount int64
	TotalSize  int64
}

func SummarizeTiers(breakdown model.TierBreakdown) TierSummary {
	summary := TierSummary{Breakdown: breakdown}
	for _, tier := range model.Tiers {
		usage := breakdown.Usage(tier)
		summary.TotalCount += usage.Count
		summary.TotalSize += usage.Size
		summary.TieredCost += model.GiB(usage.Size) * costmodel.BlobPrices[tier]
	}
	summary.HotCost = model.GiB(summary.TotalSize) * costmodel.BlobPrices[model.TierHot]
	return summary
}

// RecommendedTiersTable shows where blob data would sit if every object
// moved to its recommended access tier.
func RecommendedTiersTable(breakdown model.TierBreakdown) table.Writer {
	summary := SummarizeTiers(breakdown)

	tw := table.NewWriter()
	tw.SetTitle("Recommended Access Tiers")
	tw.AppendHeader(table.Row{"Tier", "Objects", "Size", "Share of size", "Monthly cost"})

	for _, tier := range model.Tiers {
		usage := breakdown.Usage(tier)
		tw.AppendRow(table.Row{
			string(tier),
			FormatCount(usage.Count),
			FormatBytes(usage.Size),
			FormatPct(model.Percent(usage.Size, summary.TotalSize)),
			FormatUSD(model.GiB(usage.Size) * costmodel.BlobPrices[tier]),
		})
	}

	tw.AppendFooter(table.Row{
		"TOTAL",
		FormatCount(summary.TotalCount),
		FormatBytes(summary.TotalSize),
		FormatPct(model.Percent(summary.TotalSize, summary.TotalSize)),
		FormatUSD(summary.TieredCost),
	})
	tw.SetCaption("All blob data in Hot: %s/month", FormatUSD(summary.HotCost))
	return tw
}

// DrawTierSummary prints the recommended tier table for the scanned containers
func DrawTierSummary(totals model.Totals) {
	if SummarizeTiers(totals.RecommendedTiers).TotalCount == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🧊 RECOMMENDED ACCESS TIERS"))
	render(RecommendedTiersTable(totals.RecommendedTiers), []table.ColumnConfig{
		{Number: 1, Colors: text.Colors{text.FgCyan}},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight, Colors: text.Colors{text.FgHiWhite}},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight, Colors: text.Colors{text.FgHiGreen}},
	})
}
