package utils

import (
	"fmt"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func RecommendationsTable(set model.RecommendationSet) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Optimization Recommendations")
	tw.AppendHeader(table.Row{"Category", "Account", "Unit", "Recommendation", "Target Tier", "Objects", "GiB", "Monthly Savings"})

	for _, rec := range set.All() {
		tw.AppendRow(table.Row{
			string(rec.Category),
			rec.AccountName,
			rec.UnitName,
			rec.Description,
			string(rec.TargetTier),
			FormatCount(rec.AffectedObjects),
			fmt.Sprintf("%.2f", rec.AffectedGiB),
			FormatUSD(rec.MonthlySavings),
		})
	}

	tw.AppendFooter(table.Row{"", "", "", "", "", "", "TOTAL", FormatUSD(set.EstimatedSavings)})
	return tw
}

// DrawRecommendations prints the recommendation table and the savings chart
func DrawRecommendations(set model.RecommendationSet) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💊 PRESCRIPTION"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if set.Count() == 0 {
		fmt.Println(text.FgHiGreen.Sprint(" ✅ No optimization opportunities found. Storage looks healthy."))
		return
	}

	render(RecommendationsTable(set), []table.ColumnConfig{
		{Number: 1, Colors: text.Colors{text.FgHiYellow}},
		{Number: 3, Colors: text.Colors{text.FgCyan}},
		{Number: 4, WidthMax: 60},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight, Colors: text.Colors{text.FgHiGreen}},
	})

	DrawSavingsChart(set)
}
