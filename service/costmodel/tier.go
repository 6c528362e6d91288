package costmodel

import "github.com/elC0mpa/storage-doctor/model"

const (
	minTieringSize = 256 * 1024
	minArchiveSize = 1024 * 1024
)

// RecommendTier maps an object's size and age to the cheapest sensible
// access tier. Objects below 256 KiB stay Hot whatever their age.
func RecommendTier(sizeBytes int64, ageDays int) model.Tier {
	if sizeBytes < minTieringSize {
		return model.TierHot
	}

	switch {
	case ageDays > 180:
		if sizeBytes >= minArchiveSize {
			return model.TierArchive
		}
		return model.TierCold
	case ageDays > 90:
		return model.TierCold
	case ageDays > 30:
		return model.TierCool
	default:
		return model.TierHot
	}
}
