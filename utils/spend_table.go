package utils

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/costmodel"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SpendHistoryTable lists the monthly storage spend of every subscription
func SpendHistoryTable(costs []model.StorageCost) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Monthly Storage Spend")
	tw.AppendHeader(table.Row{"Subscription", "Month", string(model.FamilyBlob), string(model.FamilyFiles), "Total", "Currency"})

	for _, c := range costs {
		tw.AppendRow(table.Row{
			c.SubscriptionID,
			c.Month,
			FormatUSD(c.ByFamily[model.FamilyBlob]),
			FormatUSD(c.ByFamily[model.FamilyFiles]),
			FormatUSD(c.Total()),
			c.Currency,
		})
	}
	return tw
}

// SpendTrendTable compares the latest month of each family with the month
// before it and with the baseline of the older months.
func SpendTrendTable(trends []model.SpendTrend) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Storage Spend Trends")
	tw.AppendHeader(table.Row{
		"Subscription", "Service", "Month",
		"Baseline", "Previous", "Current",
		"Difference", "Change", "vs Baseline", "Alert",
	})

	var previous, current float64
	for _, t := range trends {
		previous += t.Previous
		current += t.Current
		tw.AppendRow(table.Row{
			t.SubscriptionID,
			string(t.Family),
			t.CurrentMonth,
			FormatUSD(t.Baseline),
			previousAmount(t),
			FormatUSD(t.Current),
			FormatDeltaUSD(t.ChangeAmount),
			FormatDeltaPct(t.ChangePct),
			FormatDeltaPct(t.BaselineChangePct),
			t.Alert,
		})
	}

	if len(trends) > 1 {
		var pct float64
		if previous > 0 {
			pct = (current - previous) / previous * 100
		}
		tw.AppendFooter(table.Row{
			"TOTAL", "", "", "",
			FormatUSD(previous),
			FormatUSD(current),
			FormatDeltaUSD(current - previous),
			FormatDeltaPct(pct),
			"", "",
		})
	}
	return tw
}

// SpendAlerts describes every family whose spend grew fast or is high in
// absolute terms.
func SpendAlerts(trends []model.SpendTrend) []string {
	var alerts []string
	for _, t := range trends {
		switch t.Alert {
		case "High":
			alerts = append(alerts, fmt.Sprintf("Cost Alert: %s in %s grew %s (%s)",
				t.Family, t.SubscriptionID, FormatDeltaPct(t.ChangePct), FormatDeltaUSD(t.ChangeAmount)))
		case "Medium":
			alerts = append(alerts, fmt.Sprintf("Cost Warning: %s in %s grew %s (%s)",
				t.Family, t.SubscriptionID, FormatDeltaPct(t.ChangePct), FormatDeltaUSD(t.ChangeAmount)))
		}
		if t.Current > costmodel.HighSpendMonthly {
			alerts = append(alerts, fmt.Sprintf("High Spend Alert: %s in %s cost %s in %s",
				t.Family, t.SubscriptionID, FormatUSD(t.Current), t.CurrentMonth))
		}
	}
	return alerts
}

// DrawSpendTrends prints the month over month spend comparison and its alerts
func DrawSpendTrends(trends []model.SpendTrend) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📈 STORAGE SPEND"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(trends) == 0 {
		fmt.Println(text.FgHiYellow.Sprint(" No storage spend found for the selected months."))
		return
	}

	render(SpendTrendTable(trends), []table.ColumnConfig{
		{Number: 1, VAlignHeader: text.VAlignMiddle},
		{Number: 2, VAlignHeader: text.VAlignMiddle, Colors: text.Colors{text.FgCyan}},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight, Colors: text.Colors{text.FgYellow}},
		{Number: 6, Align: text.AlignRight, Colors: text.Colors{text.FgHiWhite}},
		{Number: 7, Align: text.AlignRight, Transformer: deltaColor},
		{Number: 8, Align: text.AlignRight, Transformer: deltaColor},
		{Number: 9, Align: text.AlignRight, Transformer: deltaColor},
		{Number: 10, Colors: text.Colors{text.FgHiRed}},
	})

	for _, alert := range SpendAlerts(trends) {
		fmt.Printf(" %s %s\n", text.FgHiRed.Sprint("⚠"), alert)
	}
}

func FormatDeltaUSD(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("+$%.2f", amount)
}

func FormatDeltaPct(p float64) string {
	return fmt.Sprintf("%+.1f%%", p)
}

func previousAmount(t model.SpendTrend) string {
	if t.PreviousMonth == "" {
		return "-"
	}
	return FormatUSD(t.Previous)
}

// deltaColor paints growth red and savings green
func deltaColor(val interface{}) string {
	s := fmt.Sprint(val)
	switch {
	case strings.HasPrefix(s, "+") && strings.Trim(s, "+$0.%") != "":
		return text.FgHiRed.Sprint(s)
	case strings.HasPrefix(s, "-"):
		return text.FgHiGreen.Sprint(s)
	}
	return s
}
