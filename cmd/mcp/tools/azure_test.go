package tools

import (
	"testing"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestScanFlags_Defaults(t *testing.T) {
	cfg := Config{SubscriptionIDs: []string{"sub-env"}, Workers: 8, CostMonths: 6, TopUnits: 10}

	flags := scanFlags(cfg, request(map[string]any{}))

	assert.Equal(t, model.Flags{
		Subscriptions: []string{"sub-env"},
		Workers:       8,
		CostMonths:    6,
		TopUnits:      10,
	}, flags)
}

func TestScanFlags_Arguments(t *testing.T) {
	cfg := Config{SubscriptionIDs: []string{"sub-env"}, Workers: 8, CostMonths: 6, TopUnits: 10}

	flags := scanFlags(cfg, request(map[string]any{
		"subscriptions":     "sub-1, sub-2",
		"accounts":          "a,b",
		"account_pattern":   "prod*",
		"max_accounts":      float64(2),
		"container_pattern": "logs-*",
		"shares":            "team",
		"max_units":         float64(5),
		"skip_blobs":        true,
		"top":               float64(3),
	}))

	assert.Equal(t, []string{"sub-1", "sub-2"}, flags.Subscriptions)
	assert.Equal(t, []string{"a", "b"}, flags.AccountNames)
	assert.Equal(t, "prod*", flags.AccountPattern)
	assert.Equal(t, 2, flags.MaxAccounts)
	assert.Equal(t, "logs-*", flags.ContainerPattern)
	assert.Equal(t, []string{"team"}, flags.ShareNames)
	assert.Equal(t, 5, flags.MaxUnits)
	assert.True(t, flags.SkipBlobs)
	assert.False(t, flags.SkipShares)
	assert.Equal(t, 3, flags.TopUnits)
	assert.Equal(t, 8, flags.Workers)
}

func TestJSONResult(t *testing.T) {
	result, err := jsonResult(map[string]int{"units": 2})

	assert.NoError(t, err)
	assert.False(t, result.IsError)
	if assert.Len(t, result.Content, 1) {
		text, ok := result.Content[0].(mcp.TextContent)
		assert.True(t, ok)
		assert.JSONEq(t, `{"units": 2}`, text.Text)
	}
}
