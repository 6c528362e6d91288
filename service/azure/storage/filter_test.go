package azurestorage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterApply(t *testing.T) {
	names := []string{"backups", "logs-2023", "logs-2024", "media", "tmp"}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter keeps everything", Filter{}, names},
		{"explicit names", Filter{Names: []string{"tmp", "media", "missing"}}, []string{"media", "tmp"}},
		{"glob pattern", Filter{Pattern: "logs-*"}, []string{"logs-2023", "logs-2024"}},
		{"names and pattern", Filter{Names: []string{"logs-2024", "tmp"}, Pattern: "logs-*"}, []string{"logs-2024"}},
		{"max after filtering", Filter{Pattern: "*s*", Max: 2}, []string{"backups", "logs-2023"}},
		{"no match", Filter{Pattern: "x*"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Apply(names))
		})
	}
}

func TestFilterValidate(t *testing.T) {
	require.NoError(t, Filter{}.Validate())
	require.NoError(t, Filter{Pattern: "prod-?-*"}.Validate())

	err := Filter{Pattern: "[abc"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[abc")
}
