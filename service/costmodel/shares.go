package costmodel

import (
	"fmt"
	"math"

	"github.com/elC0mpa/storage-doctor/model"
)

const (
	premiumMaxHugeFiles   = 10
	premiumMaxGiB         = 100
	upgradeMinHugeFiles   = 100
	upgradeMinHugePct     = 50
	quotaLowUsagePct      = 20
	quotaHighUsagePct     = 90
	quotaMinGiB           = 100
	oldFilePct            = 30
	snapshotMinCount      = 5
	snapshotShareOfSize   = 0.1
	snapshotPriceDiscount = 0.5
)

// GenerateShareRecommendations applies the Azure Files checks to every
// scanned share. Blob containers in results are ignored.
func GenerateShareRecommendations(results []model.UnitResult) model.RecommendationSet {
	set := model.RecommendationSet{ByCategory: make(map[model.Category][]model.Recommendation)}

	for _, result := range results {
		if result.Kind != model.UnitShare || result.Share == nil {
			continue
		}
		for _, rec := range shareRecommendations(result) {
			set.ByCategory[rec.Category] = append(set.ByCategory[rec.Category], rec)
			set.EstimatedSavings += rec.MonthlySavings
		}
	}

	sortSet(&set)
	return set
}

func shareRecommendations(r model.UnitResult) []model.Recommendation {
	var recs []model.Recommendation

	tier := r.Share.AccessTier
	usedGiB := model.GiB(r.TotalSize)
	hugePct := model.Percent(r.Share.HugeFileCount, r.TotalCount)

	switch {
	case tier == "Premium" && r.Share.HugeFileCount < premiumMaxHugeFiles && usedGiB < premiumMaxGiB:
		savings := usedGiB * (SharePrices["Premium"] - SharePrices["Standard"])
		if savings > MinShareTierSavings {
			recs = append(recs, newRecommendation(r, model.CategoryShareTier,
				"Consider downgrading from Premium to Standard tier: few large files and small total size",
				"Standard", r.TotalCount, usedGiB, savings))
		}
	case tier != "Premium" && r.Share.HugeFileCount > upgradeMinHugeFiles && hugePct > upgradeMinHugePct:
		increase := usedGiB * (SharePrices["Premium"] - SharePrices["Standard"])
		recs = append(recs, newRecommendation(r, model.CategoryShareTier,
			fmt.Sprintf("Consider upgrading to Premium tier for %d large files (%.1f%% of total), adds about $%.2f/month",
				r.Share.HugeFileCount, hugePct, increase),
			"Premium", r.Share.HugeFileCount, usedGiB, 0))
	}

	if r.Share.QuotaGiB > 0 {
		usagePct := usedGiB / float64(r.Share.QuotaGiB) * 100
		switch {
		case usagePct < quotaLowUsagePct && r.Share.QuotaGiB > quotaMinGiB:
			recommended := int64(math.Max(float64(int64(usedGiB*2)), quotaMinGiB))
			if recommended < r.Share.QuotaGiB {
				recs = append(recs, newRecommendation(r, model.CategoryShareQuota,
					fmt.Sprintf("Reduce quota from %dGB to %dGB, only %.1f%% of the quota is used", r.Share.QuotaGiB, recommended, usagePct),
					"", 0, usedGiB, 0))
			}
		case usagePct > quotaHighUsagePct:
			recommended := int64(float64(r.Share.QuotaGiB) * 1.5)
			recs = append(recs, newRecommendation(r, model.CategoryShareQuota,
				fmt.Sprintf("Increase quota from %dGB to %dGB, %.1f%% of the quota is used", r.Share.QuotaGiB, recommended, usagePct),
				"", 0, usedGiB, 0))
		}
	}

	if r.Over180Pct > oldFilePct && r.TotalCount > 0 {
		oldGiB := float64(r.Over180Count) / float64(r.TotalCount) * usedGiB
		savings := oldGiB * sharePrice(tier)
		if savings > MinMonthlySavings {
			recs = append(recs, newRecommendation(r, model.CategoryShareCleanup,
				"Archive or delete files not modified in 180+ days",
				"", r.Over180Count, oldGiB, savings))
		}
	}

	if r.Share.SnapshotCount > snapshotMinCount {
		snapshotGiB := float64(r.Share.SnapshotCount) * usedGiB * snapshotShareOfSize
		cost := snapshotGiB * sharePrice(tier) * snapshotPriceDiscount
		if cost > MinSnapshotCost {
			recs = append(recs, newRecommendation(r, model.CategorySnapshotCleanup,
				fmt.Sprintf("Review and clean up old snapshots (%d snapshots)", r.Share.SnapshotCount),
				"", int64(r.Share.SnapshotCount), snapshotGiB, 0))
		}
	}

	return recs
}
