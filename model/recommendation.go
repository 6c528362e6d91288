package model

// Tier is an Azure Storage access tier
type Tier string

const (
	TierHot     Tier = "Hot"
	TierCool    Tier = "Cool"
	TierCold    Tier = "Cold"
	TierArchive Tier = "Archive"
)

// Tiers lists the access tiers from hottest to coldest
var Tiers = []Tier{TierHot, TierCool, TierCold, TierArchive}

// TierUsage counts the objects and bytes that belong in one access tier
type TierUsage struct {
	Count int64
	Size  int64
}

// TierBreakdown spreads objects over the tier each one is recommended for
type TierBreakdown struct {
	Hot     TierUsage
	Cool    TierUsage
	Cold    TierUsage
	Archive TierUsage
}

// Add counts one object of the given size in tier
func (b *TierBreakdown) Add(tier Tier, size int64) {
	if u := b.usage(tier); u != nil {
		u.Count++
		u.Size += size
	}
}

// Merge adds every tier of other to b
func (b *TierBreakdown) Merge(other TierBreakdown) {
	for _, tier := range Tiers {
		u, o := b.usage(tier), other.Usage(tier)
		u.Count += o.Count
		u.Size += o.Size
	}
}

func (b TierBreakdown) Usage(tier Tier) TierUsage {
	if u := b.usage(tier); u != nil {
		return *u
	}
	return TierUsage{}
}

func (b *TierBreakdown) usage(tier Tier) *TierUsage {
	switch tier {
	case TierHot:
		return &b.Hot
	case TierCool:
		return &b.Cool
	case TierCold:
		return &b.Cold
	case TierArchive:
		return &b.Archive
	default:
		return nil
	}
}

// Category groups recommendations of the same kind
type Category string

const (
	CategoryLifecyclePolicy Category = "lifecycle-policy"
	CategoryTierMigration   Category = "tier-migration"
	CategoryConsolidation   Category = "consolidation"
	CategoryShareTier       Category = "share-tier"
	CategoryShareQuota      Category = "share-quota"
	CategoryShareCleanup    Category = "share-cleanup"
	CategorySnapshotCleanup Category = "snapshot-cleanup"
)

// Categories lists every category in report order
var Categories = []Category{
	CategoryLifecyclePolicy,
	CategoryTierMigration,
	CategoryConsolidation,
	CategoryShareTier,
	CategoryShareQuota,
	CategoryShareCleanup,
	CategorySnapshotCleanup,
}

// Recommendation is one optimization suggestion for a container or share
type Recommendation struct {
	Category        Category
	SubscriptionID  string
	AccountName     string
	UnitName        string
	Description     string
	TargetTier      Tier
	AffectedObjects int64
	AffectedGiB     float64
	MonthlySavings  float64
}

// RecommendationSet holds recommendations keyed by category
type RecommendationSet struct {
	ByCategory       map[Category][]Recommendation
	EstimatedSavings float64
}

// All returns every recommendation in category order
func (s RecommendationSet) All() []Recommendation {
	var all []Recommendation
	for _, category := range Categories {
		all = append(all, s.ByCategory[category]...)
	}
	return all
}

// Count returns the number of recommendations across all categories
func (s RecommendationSet) Count() int {
	count := 0
	for _, recs := range s.ByCategory {
		count += len(recs)
	}
	return count
}

// CategorySavings returns the summed savings of one category
func (s RecommendationSet) CategorySavings(category Category) float64 {
	var total float64
	for _, rec := range s.ByCategory[category] {
		total += rec.MonthlySavings
	}
	return total
}
