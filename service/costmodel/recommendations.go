package costmodel

import (
	"fmt"
	"math"
	"sort"

	"github.com/elC0mpa/storage-doctor/model"
)

// GenerateRecommendations applies the blob cost checks to every container
// and ranks each category by monthly savings. File shares are left to
// GenerateShareRecommendations.
func GenerateRecommendations(results []model.UnitResult) model.RecommendationSet {
	set := model.RecommendationSet{ByCategory: make(map[model.Category][]model.Recommendation)}

	for _, result := range results {
		if result.Kind != model.UnitContainer {
			continue
		}
		for _, rec := range unitRecommendations(result) {
			set.ByCategory[rec.Category] = append(set.ByCategory[rec.Category], rec)
			set.EstimatedSavings += rec.MonthlySavings
		}
	}

	sortSet(&set)
	return set
}

func unitRecommendations(r model.UnitResult) []model.Recommendation {
	var recs []model.Recommendation

	if rec, ok := lifecycleRecommendation(r); ok {
		recs = append(recs, rec)
	}
	if rec, ok := consolidationRecommendation(r); ok {
		recs = append(recs, rec)
	}
	if rec, ok := coolMigrationRecommendation(r); ok {
		recs = append(recs, rec)
	}
	if rec, ok := coldMigrationRecommendation(r); ok {
		recs = append(recs, rec)
	}

	return recs
}

// lifecycleRecommendation splits the cold bucket between Cold and Archive
// using the archive-age share of the object count. The split mixes a count
// ratio with a byte volume, so treat the estimate as approximate.
func lifecycleRecommendation(r model.UnitResult) (model.Recommendation, bool) {
	if r.Over90Pct <= LifecycleOldPct {
		return model.Recommendation{}, false
	}

	oldGiB := model.GiB(r.ColdSize)
	if oldGiB == 0 {
		oldGiB = model.GiB(r.TotalSize) * r.Over90Pct / 100
	}

	archiveGiB := 0.0
	if r.Over180Pct > 0 {
		archiveGiB = oldGiB * r.Over180Pct / 100
	}
	coldGiB := oldGiB - archiveGiB

	currentCost := oldGiB * BlobPrices[model.TierHot]
	newCost := archiveGiB*BlobPrices[model.TierArchive] + coldGiB*BlobPrices[model.TierCold]
	savings := currentCost - newCost
	if savings <= MinMonthlySavings {
		return model.Recommendation{}, false
	}

	primary, secondary := model.TierCold, model.TierArchive
	if archiveGiB > coldGiB {
		primary, secondary = model.TierArchive, model.TierCold
	}

	return newRecommendation(r, model.CategoryLifecyclePolicy,
		fmt.Sprintf("Implement lifecycle policy to transition blobs older than 90 days to %s tier and blobs older than 180 days to %s tier", primary, secondary),
		primary, r.Over90Count, oldGiB, savings), true
}

func consolidationRecommendation(r model.UnitResult) (model.Recommendation, bool) {
	if r.SmallCount <= ConsolidationMinCount {
		return model.Recommendation{}, false
	}

	savings := math.Min(float64(r.SmallCount)*PerRequestCost, ConsolidationCap)
	if savings <= MinMonthlySavings {
		return model.Recommendation{}, false
	}

	return newRecommendation(r, model.CategoryConsolidation,
		fmt.Sprintf("Consider consolidating %d small blobs into larger blobs", r.SmallCount),
		"", r.SmallCount, model.GiB(r.SmallSize), savings), true
}

func coolMigrationRecommendation(r model.UnitResult) (model.Recommendation, bool) {
	if r.WarmSize <= 0 {
		return model.Recommendation{}, false
	}

	warmGiB := model.GiB(r.WarmSize)
	savings := warmGiB * (BlobPrices[model.TierHot] - BlobPrices[model.TierCool])
	if savings <= MinMonthlySavings {
		return model.Recommendation{}, false
	}

	return newRecommendation(r, model.CategoryTierMigration,
		"Migrate infrequently accessed blobs (30-90 days old) to Cool tier",
		model.TierCool, r.WarmCount, warmGiB, savings), true
}

// coldMigrationRecommendation excludes the archive-age share so that the
// lifecycle and Cold savings are not counted for the same bytes.
func coldMigrationRecommendation(r model.UnitResult) (model.Recommendation, bool) {
	if r.ColdSize <= 0 {
		return model.Recommendation{}, false
	}

	keep := (100 - r.Over180Pct) / 100
	coldGiB := model.GiB(r.ColdSize) * keep
	if coldGiB <= 0 {
		return model.Recommendation{}, false
	}

	savings := coldGiB * (BlobPrices[model.TierHot] - BlobPrices[model.TierCold])
	if savings <= MinMonthlySavings {
		return model.Recommendation{}, false
	}

	return newRecommendation(r, model.CategoryTierMigration,
		"Migrate rarely accessed blobs (90-180 days old) to Cold tier",
		model.TierCold, int64(float64(r.ColdCount)*keep), coldGiB, savings), true
}

func newRecommendation(r model.UnitResult, category model.Category, description string, tier model.Tier, objects int64, gib, savings float64) model.Recommendation {
	return model.Recommendation{
		Category:        category,
		SubscriptionID:  r.SubscriptionID,
		AccountName:     r.AccountName,
		UnitName:        r.UnitName,
		Description:     description,
		TargetTier:      tier,
		AffectedObjects: objects,
		AffectedGiB:     round2(gib),
		MonthlySavings:  round2(savings),
	}
}

func sortSet(set *model.RecommendationSet) {
	for category, recs := range set.ByCategory {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].MonthlySavings > recs[j].MonthlySavings
		})
		set.ByCategory[category] = recs
	}
}

// Merge combines several sets, re-ranking every category
func Merge(sets ...model.RecommendationSet) model.RecommendationSet {
	merged := model.RecommendationSet{ByCategory: make(map[model.Category][]model.Recommendation)}
	for _, set := range sets {
		for category, recs := range set.ByCategory {
			merged.ByCategory[category] = append(merged.ByCategory[category], recs...)
		}
		merged.EstimatedSavings += set.EstimatedSavings
	}
	sortSet(&merged)
	return merged
}
