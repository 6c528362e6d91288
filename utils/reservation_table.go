package utils

import (
	"fmt"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func ReservationsTable(report model.ReservationReport) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Reserved Capacity Recommendations")
	tw.AppendHeader(table.Row{
		"Subscription", "Service", "Tier", "Term", "Capacity",
		"Current\n(month)", "Reserved\n(month)", "Savings\n(month)", "Savings\n(year)",
		"Upfront", "Payback", "Confidence", "Priority",
	})

	for _, rec := range report.Recommendations {
		tw.AppendRow(table.Row{
			rec.SubscriptionID,
			string(rec.Family),
			rec.Tier,
			string(rec.Term),
			fmt.Sprintf("%d TB", rec.CapacityTB),
			FormatUSD(rec.MonthlyCostCurrent),
			FormatUSD(rec.MonthlyCostReserved),
			FormatUSD(rec.MonthlySavings),
			FormatUSD(rec.AnnualSavings),
			FormatUSD(rec.UpfrontCost),
			fmt.Sprintf("%d months", rec.PaybackMonths),
			rec.Confidence,
			rec.Priority,
		})
	}

	summary := report.Summary
	if summary.Count > 0 {
		tw.AppendFooter(table.Row{
			"TOTAL", "", "", "", "", "", "", "",
			FormatUSD(summary.TotalAnnualSavings),
			FormatUSD(summary.TotalUpfrontCost),
			"",
			fmt.Sprintf("ROI %s", FormatPct(summary.ROIPct)),
			fmt.Sprintf("%d high", summary.HighPriority),
		})
	}
	return tw
}

func ExistingReservationsTable(reservations []model.ExistingReservation) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Existing Reservations")
	tw.AppendHeader(table.Row{"Order", "Name", "Term", "State", "Expiry", "Status"})

	for _, r := range reservations {
		expiry := "-"
		if !r.ExpiryDate.IsZero() {
			expiry = fmt.Sprintf("%s (%d days)", r.ExpiryDate.Format("2006-01-02"), r.DaysUntilExpiry)
		}
		tw.AppendRow(table.Row{r.ID, r.DisplayName, r.Term, r.State, expiry, r.Status})
	}
	return tw
}

// DrawReservationReport prints reservation recommendations next to the
// reservations already purchased.
func DrawReservationReport(report model.ReservationReport) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💰 RESERVED CAPACITY"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(report.Recommendations) == 0 {
		fmt.Println(text.FgHiYellow.Sprint(" Storage spend is too small or too irregular for reserved capacity."))
	} else {
		render(ReservationsTable(report), []table.ColumnConfig{
			{Number: 2, Colors: text.Colors{text.FgCyan}},
			{Number: 5, Align: text.AlignRight},
			{Number: 6, Align: text.AlignRight, Colors: text.Colors{text.FgYellow}},
			{Number: 7, Align: text.AlignRight},
			{Number: 8, Align: text.AlignRight, Colors: text.Colors{text.FgHiGreen}},
			{Number: 9, Align: text.AlignRight, Colors: text.Colors{text.FgHiGreen}},
			{Number: 10, Align: text.AlignRight, Colors: text.Colors{text.FgHiRed}},
			{Number: 11, Align: text.AlignRight},
		})
		fmt.Printf(" Net savings in the first year: %s\n", colorAmount(report.Summary.NetSavingsYearOne))
	}

	if len(report.Existing) > 0 {
		render(ExistingReservationsTable(report.Existing), []table.ColumnConfig{
			{Number: 6, Colors: text.Colors{text.FgHiYellow}},
		})
	}
}

func colorAmount(amount float64) string {
	if amount < 0 {
		return text.FgHiRed.Sprint(FormatUSD(amount))
	}
	return text.FgHiGreen.Sprint(FormatUSD(amount))
}
