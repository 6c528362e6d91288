package azurestorage

import (
	"context"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/elC0mpa/storage-doctor/model"
)

// Filter narrows a list of names. Names and Pattern both apply when set,
// and Max caps the result after filtering.
type Filter struct {
	Names   []string
	Pattern string
	Max     int
}

type DiscoveryOptions struct {
	Accounts   Filter
	Containers Filter
	Shares     Filter
	SkipBlobs  bool
	SkipShares bool
}

type service struct {
	credential azcore.TokenCredential
	logger     *slog.Logger
}

type StorageService interface {
	ListAccounts(ctx context.Context, subscriptionID string) ([]model.StorageAccount, error)
	DiscoverTargets(ctx context.Context, subscriptionIDs []string, opts DiscoveryOptions) ([]model.ScanTarget, error)
}
