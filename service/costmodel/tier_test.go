package costmodel

import (
	"testing"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/stretchr/testify/assert"
)

func TestRecommendTier(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		ageDays int
		want    model.Tier
	}{
		{"tiny old object stays hot", 100_000, 200, model.TierHot},
		{"large very old object archives", 2_000_000, 200, model.TierArchive},
		{"medium very old object goes cold", 500_000, 200, model.TierCold},
		{"large 100 day object goes cold", 2_000_000, 100, model.TierCold},
		{"large 45 day object goes cool", 2_000_000, 45, model.TierCool},
		{"large fresh object stays hot", 2_000_000, 10, model.TierHot},
		{"just under 256 KiB", 262_143, 365, model.TierHot},
		{"exactly 256 KiB is tierable", 262_144, 365, model.TierCold},
		{"exactly 1 MiB archives", 1_048_576, 181, model.TierArchive},
		{"just under 1 MiB goes cold", 1_048_575, 181, model.TierCold},
		{"exactly 180 days is cold", 2_000_000, 180, model.TierCold},
		{"exactly 90 days is cool", 2_000_000, 90, model.TierCool},
		{"exactly 30 days is hot", 2_000_000, 30, model.TierHot},
		{"31 days is cool", 2_000_000, 31, model.TierCool},
		{"zero size zero age", 0, 0, model.TierHot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendTier(tt.size, tt.ageDays))
		})
	}
}

func TestRecommendTier_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, model.TierArchive, RecommendTier(5_000_000, 365))
	}
}
