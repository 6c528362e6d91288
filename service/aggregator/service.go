package aggregator

import (
	"cmp"
	"slices"

	"github.com/elC0mpa/storage-doctor/model"
)

// Aggregate groups unit results by storage account and folds everything
// into global totals. Summaries are ordered by total size, largest first,
// with ties broken by account name. The input is not modified.
func Aggregate(results []model.UnitResult) ([]model.AccountSummary, model.Totals) {
	byAccount := make(map[accountKey]*model.AccountSummary)
	var totals model.Totals

	for _, r := range results {
		key := accountKey{subscriptionID: r.SubscriptionID, accountName: r.AccountName}
		summary, ok := byAccount[key]
		if !ok {
			summary = &model.AccountSummary{SubscriptionID: r.SubscriptionID, AccountName: r.AccountName}
			byAccount[key] = summary
		}

		switch r.Kind {
		case model.UnitShare:
			summary.ShareCount++
			totals.ShareCount++
		default:
			summary.ContainerCount++
			totals.ContainerCount++
		}

		summary.TotalCount += r.TotalCount
		summary.TotalSize += r.TotalSize
		summary.SmallCount += r.SmallCount
		summary.SmallSize += r.SmallSize
		summary.LargeCount += r.LargeCount
		summary.LargeSize += r.LargeSize
		summary.HotCount += r.HotCount
		summary.HotSize += r.HotSize
		summary.WarmCount += r.WarmCount
		summary.WarmSize += r.WarmSize
		summary.ColdCount += r.ColdCount
		summary.ColdSize += r.ColdSize
		summary.ArchiveCount += r.ArchiveCount
		summary.ArchiveSize += r.ArchiveSize

		totals.TotalCount += r.TotalCount
		totals.TotalSize += r.TotalSize
		totals.SmallCount += r.SmallCount
		totals.LargeCount += r.LargeCount
		totals.HotCount += r.HotCount
		totals.HotSize += r.HotSize
		totals.WarmCount += r.WarmCount
		totals.WarmSize += r.WarmSize
		totals.ColdCount += r.ColdCount
		totals.ColdSize += r.ColdSize
		totals.ArchiveCount += r.ArchiveCount
		totals.ArchiveSize += r.ArchiveSize
		if r.Kind == model.UnitContainer {
			totals.RecommendedTiers.Merge(r.RecommendedTiers)
		}
	}

	summaries := make([]model.AccountSummary, 0, len(byAccount))
	for _, summary := range byAccount {
		summary.HotPct = model.Percent(summary.HotCount, summary.TotalCount)
		summary.WarmPct = model.Percent(summary.WarmCount, summary.TotalCount)
		summary.ColdPct = model.Percent(summary.ColdCount, summary.TotalCount)
		summary.ArchivePct = model.Percent(summary.ArchiveCount, summary.TotalCount)
		summaries = append(summaries, *summary)
	}

	slices.SortFunc(summaries, func(a, b model.AccountSummary) int {
		if c := cmp.Compare(b.TotalSize, a.TotalSize); c != 0 {
			return c
		}
		if c := cmp.Compare(a.AccountName, b.AccountName); c != 0 {
			return c
		}
		return cmp.Compare(a.SubscriptionID, b.SubscriptionID)
	})

	totals.AccountCount = len(summaries)
	totals.HotPct = model.Percent(totals.HotCount, totals.TotalCount)
	totals.WarmPct = model.Percent(totals.WarmCount, totals.TotalCount)
	totals.ColdPct = model.Percent(totals.ColdCount, totals.TotalCount)
	totals.ArchivePct = model.Percent(totals.ArchiveCount, totals.TotalCount)
	totals.SmallPct = model.Percent(totals.SmallCount, totals.TotalCount)

	return summaries, totals
}

// TopUnits returns the n largest units by size. n <= 0 returns all of them.
func TopUnits(results []model.UnitResult, n int) []model.UnitResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b model.UnitResult) int {
		if c := cmp.Compare(b.TotalSize, a.TotalSize); c != 0 {
			return c
		}
		return cmp.Compare(a.AccountName+"/"+a.UnitName, b.AccountName+"/"+b.UnitName)
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
