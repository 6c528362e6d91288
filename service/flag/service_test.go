package flag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "")
	t.Setenv("STORAGE_DOCTOR_WORKERS", "")
	t.Setenv("STORAGE_DOCTOR_OUTPUT_DIR", "")

	flags, err := parseFlags(nil)

	require.NoError(t, err)
	assert.Empty(t, flags.Subscriptions)
	assert.Equal(t, 10, flags.Workers)
	assert.Equal(t, 6, flags.CostMonths)
	assert.Equal(t, "storage-report", flags.OutputDir)
	assert.Equal(t, 10, flags.TopUnits)
	assert.Empty(t, flags.Formats)
}

func TestParseFlags_Values(t *testing.T) {
	t.Setenv("STORAGE_DOCTOR_WORKERS", "4")

	flags, err := parseFlags([]string{
		"-subscriptions", "sub-a, sub-b",
		"-accounts", "logs,media",
		"-container-pattern", "backup-*",
		"-max-units", "5",
		"-skip-shares",
		"-format", "CSV,xlsx",
		"-costs",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"sub-a", "sub-b"}, flags.Subscriptions)
	assert.Equal(t, []string{"logs", "media"}, flags.AccountNames)
	assert.Equal(t, "backup-*", flags.ContainerPattern)
	assert.Equal(t, 5, flags.MaxUnits)
	assert.True(t, flags.SkipShares)
	assert.True(t, flags.Costs)
	assert.Equal(t, 4, flags.Workers)
	assert.Equal(t, []string{"csv", "xlsx"}, flags.Formats)
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := map[string][]string{
		"nothing to scan": {"-skip-blobs", "-skip-shares"},
		"unknown format":  {"-format", "pdf"},
		"negative limit":  {"-max-units", "-1"},
		"short history":   {"-costs", "-cost-months", "1"},
		"unknown flag":    {"-region", "us-east-1"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseFlags(args)
			assert.Error(t, err)
		})
	}
}
