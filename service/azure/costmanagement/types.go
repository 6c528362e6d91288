package azurecostmanagement

import (
	"context"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/elC0mpa/storage-doctor/model"
)

// storageServiceNames are the ServiceName values Cost Management uses for
// storage meters.
var storageServiceNames = []string{"Storage", "Azure Storage", "Blob Storage", "Files"}

type service struct {
	client *armcostmanagement.QueryClient
	logger *slog.Logger
	now    func() time.Time
}

type monthWindow struct {
	label string
	start time.Time
	end   time.Time
}

type CostManagementService interface {
	GetMonthlyStorageCosts(ctx context.Context, subscriptionID string, months int) ([]model.StorageCost, error)
}
