package utils

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/storage-doctor/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
	ColorRank7 = "#006837"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

type chartBar struct {
	label string
	value float64
}

// DrawSavingsChart draws estimated monthly savings per category
func DrawSavingsChart(set model.RecommendationSet) {
	var bars []chartBar
	for _, category := range model.Categories {
		if savings := set.CategorySavings(category); savings > 0 {
			bars = append(bars, chartBar{
				label: fmt.Sprintf("%s: %s", category, FormatUSD(savings)),
				value: savings,
			})
		}
	}
	if len(bars) == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📉 SAVINGS BY CATEGORY (USD/month)"))
	drawBars(bars)
}

// DrawAgeChart draws how stored bytes spread over the age buckets
func DrawAgeChart(totals model.Totals) {
	if totals.TotalSize == 0 {
		return
	}

	bars := []chartBar{
		{label: "Hot: " + FormatBytes(totals.HotSize), value: model.GiB(totals.HotSize)},
		{label: "Warm: " + FormatBytes(totals.WarmSize), value: model.GiB(totals.WarmSize)},
		{label: "Cold: " + FormatBytes(totals.ColdSize), value: model.GiB(totals.ColdSize)},
		{label: "Archive: " + FormatBytes(totals.ArchiveSize), value: model.GiB(totals.ArchiveSize)},
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📊 DATA BY AGE (GiB)"))
	drawBars(bars)
}

func drawBars(bars []chartBar) {
	bc := barchart.New(130, 20)

	values := make([]float64, len(bars))
	for i, bar := range bars {
		values[i] = bar.value
	}
	colors := assignRankedColors(values)

	for idx, bar := range bars {
		bc.Push(barchart.BarData{
			Label: bar.label,
			Values: []barchart.BarValue{
				{
					Value: bar.value,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(colors[idx])),
				},
			},
		})
	}

	fmt.Println()
	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
}

// assignRankedColors colors the largest value red and walks down the palette
func assignRankedColors(values []float64) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6, ColorRank7}

	type valueWithIndex struct {
		index int
		value float64
	}

	toSort := make([]valueWithIndex, len(values))
	for i, v := range values {
		toSort[i] = valueWithIndex{index: i, value: v}
	}

	sort.SliceStable(toSort, func(i, j int) bool {
		return toSort[i].value > toSort[j].value
	})

	resultColors := make([]string, len(values))
	for rank, sorted := range toSort {
		if rank < len(palette) {
			resultColors[sorted.index] = palette[rank]
		} else {
			resultColors[sorted.index] = palette[len(palette)-1]
		}
	}
	return resultColors
}
