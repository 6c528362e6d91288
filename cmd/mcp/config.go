package main

import (
	"os"

	"github.com/elC0mpa/storage-doctor/cmd/mcp/tools"
	"github.com/elC0mpa/storage-doctor/utils"
)

// LoadConfig reads configuration from environment variables
func LoadConfig() tools.Config {
	return tools.Config{
		SubscriptionIDs: utils.SplitList(os.Getenv("AZURE_SUBSCRIPTION_ID")),
		Workers:         utils.GetEnvInt("STORAGE_DOCTOR_WORKERS", 10),
		CostMonths:      utils.GetEnvInt("STORAGE_DOCTOR_COST_MONTHS", 6),
		TopUnits:        utils.GetEnvInt("STORAGE_DOCTOR_TOP_UNITS", 10),
	}
}
