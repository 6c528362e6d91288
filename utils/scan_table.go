package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OverviewTable summarizes a run as label/value pairs
func OverviewTable(report model.ScanReport) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Storage Overview")
	tw.AppendHeader(table.Row{"Metric", "Value"})

	totals := report.Totals
	names := make([]string, 0, len(report.Subscriptions))
	for _, sub := range report.Subscriptions {
		names = append(names, sub.AccountName)
	}

	tw.AppendRows([]table.Row{
		{"Subscriptions", strings.Join(names, ", ")},
		{"Storage accounts", totals.AccountCount},
		{"Containers", totals.ContainerCount},
		{"File shares", totals.ShareCount},
		{"Objects", FormatCount(totals.TotalCount)},
		{"Total size", FormatBytes(totals.TotalSize)},
		{"Small objects (<= 1 MiB)", FormatPct(totals.SmallPct)},
		{"Hot (< 30 days)", FormatPct(totals.HotPct)},
		{"Warm (30-90 days)", FormatPct(totals.WarmPct)},
		{"Cold (90-180 days)", FormatPct(totals.ColdPct)},
		{"Archive (180+ days)", FormatPct(totals.ArchivePct)},
		{"Recommendations", report.Recommendations.Count()},
		{"Estimated monthly savings", FormatUSD(report.Recommendations.EstimatedSavings)},
	})
	return tw
}

// AccountsTable lists one row per storage account with a total row when
// there is more than one account.
func AccountsTable(summaries []model.AccountSummary, totals model.Totals) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Storage Accounts")
	tw.AppendHeader(table.Row{"Subscription", "Account", "Containers", "Shares", "Objects", "Size", "Hot", "Warm", "Cold", "Archive"})

	for _, s := range summaries {
		tw.AppendRow(table.Row{
			s.SubscriptionID,
			s.AccountName,
			s.ContainerCount,
			s.ShareCount,
			FormatCount(s.TotalCount),
			FormatBytes(s.TotalSize),
			FormatPct(s.HotPct),
			FormatPct(s.WarmPct),
			FormatPct(s.ColdPct),
			FormatPct(s.ArchivePct),
		})
	}

	if len(summaries) > 1 {
		tw.AppendFooter(table.Row{
			"TOTAL",
			fmt.Sprintf("%d accounts", totals.AccountCount),
			totals.ContainerCount,
			totals.ShareCount,
			FormatCount(totals.TotalCount),
			FormatBytes(totals.TotalSize),
			FormatPct(totals.HotPct),
			FormatPct(totals.WarmPct),
			FormatPct(totals.ColdPct),
			FormatPct(totals.ArchivePct),
		})
	}
	return tw
}

// UnitsTable lists containers and shares in the order given
func UnitsTable(title string, units []model.UnitResult) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Account", "Type", "Name", "Objects", "Size", "Small", "Hot", "Warm", "Cold", "Archive", "90+ days"})

	for _, u := range units {
		tw.AppendRow(table.Row{
			u.AccountName,
			string(u.Kind),
			u.UnitName,
			FormatCount(u.TotalCount),
			FormatBytes(u.TotalSize),
			FormatPct(u.SmallPct),
			FormatPct(u.HotPct),
			FormatPct(u.WarmPct),
			FormatPct(u.ColdPct),
			FormatPct(u.ArchivePct),
			FormatPct(u.Over90Pct),
		})
	}
	return tw
}

// DrawScanReport prints the overview, account and largest unit tables
func DrawScanReport(report model.ScanReport, topUnits []model.UnitResult) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🏥  STORAGE DOCTOR CHECKUP"))
	for _, sub := range report.Subscriptions {
		fmt.Printf(" Subscription: %s (%s)\n", text.FgBlue.Sprint(sub.AccountName), sub.AccountID)
	}
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	render(OverviewTable(report), []table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, Colors: text.Colors{text.FgHiGreen}},
	})

	if len(report.Accounts) == 0 {
		fmt.Println(text.FgHiYellow.Sprint(" No containers or file shares were scanned."))
		return
	}

	render(AccountsTable(report.Accounts, report.Totals), []table.ColumnConfig{
		{Number: 2, Colors: text.Colors{text.FgCyan}},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight, Colors: text.Colors{text.FgHiWhite}},
		{Number: 7, Align: text.AlignRight, Colors: text.Colors{text.FgRed}},
		{Number: 8, Align: text.AlignRight, Colors: text.Colors{text.FgYellow}},
		{Number: 9, Align: text.AlignRight, Colors: text.Colors{text.FgBlue}},
		{Number: 10, Align: text.AlignRight, Colors: text.Colors{text.FgHiBlue}},
	})

	if len(topUnits) > 0 {
		render(UnitsTable(fmt.Sprintf("Largest %d Units", len(topUnits)), topUnits), []table.ColumnConfig{
			{Number: 3, Colors: text.Colors{text.FgCyan}},
			{Number: 4, Align: text.AlignRight},
			{Number: 5, Align: text.AlignRight, Colors: text.Colors{text.FgHiWhite}},
			{Number: 6, Align: text.AlignRight},
			{Number: 7, Align: text.AlignRight},
			{Number: 8, Align: text.AlignRight},
			{Number: 9, Align: text.AlignRight},
			{Number: 10, Align: text.AlignRight},
			{Number: 11, Align: text.AlignRight, Colors: text.Colors{text.FgHiYellow}},
		})
	}
}

func render(tw table.Writer, columns []table.ColumnConfig) {
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs(columns)
	fmt.Println()
	tw.Render()
}
