package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func FormatCount(n int64) string {
	return humanize.Comma(n)
}

func FormatPct(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
