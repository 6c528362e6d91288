package azurestorage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	fileservice "github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/service"
	"github.com/elC0mpa/storage-doctor/model"
)

func NewService(credential azcore.TokenCredential, logger *slog.Logger) *service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		credential: credential,
		logger:     logger,
	}
}

// ListAccounts returns every storage account in the subscription, sorted by name
func (s *service) ListAccounts(ctx context.Context, subscriptionID string) ([]model.StorageAccount, error) {
	client, err := armstorage.NewAccountsClient(subscriptionID, s.credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}

	var accounts []model.StorageAccount
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list storage accounts: %w", err)
		}
		for _, account := range page.Value {
			if account == nil || account.Name == nil {
				continue
			}
			accounts = append(accounts, accountFromARM(subscriptionID, account))
		}
	}

	slices.SortFunc(accounts, func(a, b model.StorageAccount) int {
		return strings.Compare(a.Name, b.Name)
	})
	return accounts, nil
}

// DiscoverTargets builds one scan target per selected container and share.
// Failures for a single subscription or account are logged and skipped; only
// cancellation of ctx aborts discovery.
func (s *service) DiscoverTargets(ctx context.Context, subscriptionIDs []string, opts DiscoveryOptions) ([]model.ScanTarget, error) {
	for _, f := range []Filter{opts.Accounts, opts.Containers, opts.Shares} {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	var targets []model.ScanTarget
	for _, subscriptionID := range subscriptionIDs {
		accounts, err := s.ListAccounts(ctx, subscriptionID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("skipping subscription", "subscription", subscriptionID, "error", err)
			continue
		}

		for _, account := range selectAccounts(accounts, opts.Accounts) {
			if !opts.SkipBlobs {
				containerTargets, err := s.containerTargets(ctx, account, opts.Containers)
				if err != nil {
					if ctx.Err() != nil {
						return nil, ctx.Err()
					}
					s.logger.Warn("skipping containers", "account", account.Name, "error", err)
				}
				targets = append(targets, containerTargets...)
			}
			if !opts.SkipShares {
				shareTargets, err := s.shareTargets(ctx, account, opts.Shares)
				if err != nil {
					if ctx.Err() != nil {
						return nil, ctx.Err()
					}
					s.logger.Warn("skipping file shares", "account", account.Name, "error", err)
				}
				targets = append(targets, shareTargets...)
			}
		}
	}

	s.logger.Info("discovery finished", "subscriptions", len(subscriptionIDs), "targets", len(targets))
	return targets, nil
}

func (s *service) containerTargets(ctx context.Context, account model.StorageAccount, filter Filter) ([]model.ScanTarget, error) {
	client, err := azblob.NewClient(account.BlobEndpoint, s.credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	var names []string
	pager := client.NewListContainersPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list containers: %w", err)
		}
		for _, item := range page.ContainerItems {
			if item != nil && item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	slices.Sort(names)

	var targets []model.ScanTarget
	for _, name := range filter.Apply(names) {
		targets = append(targets, model.ScanTarget{
			Kind:           model.UnitContainer,
			SubscriptionID: account.SubscriptionID,
			AccountName:    account.Name,
			UnitName:       name,
			Source:         &blobSource{client: client, container: name},
		})
	}
	return targets, nil
}

func (s *service) shareTargets(ctx context.Context, account model.StorageAccount, filter Filter) ([]model.ScanTarget, error) {
	key, err := s.accountKey(ctx, account)
	if err != nil {
		return nil, err
	}

	credential, err := fileservice.NewSharedKeyCredential(account.Name, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}
	client, err := fileservice.NewClientWithSharedKeyCredential(account.FileEndpoint, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create file service client: %w", err)
	}

	var items []*fileservice.Share
	pager := client.NewListSharesPager(&fileservice.ListSharesOptions{
		Include: fileservice.ListSharesInclude{Snapshots: true},
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list file shares: %w", err)
		}
		items = append(items, page.Shares...)
	}

	names, details := collectShares(items)

	var targets []model.ScanTarget
	for _, name := range filter.Apply(names) {
		targets = append(targets, model.ScanTarget{
			Kind:           model.UnitShare,
			SubscriptionID: account.SubscriptionID,
			AccountName:    account.Name,
			UnitName:       name,
			Source: &shareSource{
				client:  client.NewShareClient(name),
				name:    name,
				details: details[name],
			},
		})
	}
	return targets, nil
}

func (s *service) accountKey(ctx context.Context, account model.StorageAccount) (string, error) {
	client, err := armstorage.NewAccountsClient(account.SubscriptionID, s.credential, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create storage accounts client: %w", err)
	}

	resp, err := client.ListKeys(ctx, account.ResourceGroup, account.Name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list account keys: %w", err)
	}
	for _, key := range resp.Keys {
		if key != nil && key.Value != nil && *key.Value != "" {
			return *key.Value, nil
		}
	}
	return "", errors.New("storage account has no usable key")
}

func selectAccounts(accounts []model.StorageAccount, filter Filter) []model.StorageAccount {
	names := make([]string, len(accounts))
	for i, account := range accounts {
		names[i] = account.Name
	}

	selected := filter.Apply(names)
	out := make([]model.StorageAccount, 0, len(selected))
	for _, account := range accounts {
		if slices.Contains(selected, account.Name) {
			out = append(out, account)
		}
	}
	return out
}

func accountFromARM(subscriptionID string, account *armstorage.Account) model.StorageAccount {
	result := model.StorageAccount{
		SubscriptionID: subscriptionID,
		Name:           *account.Name,
		BlobEndpoint:   fmt.Sprintf("https://%s.blob.core.windows.net/", *account.Name),
		FileEndpoint:   fmt.Sprintf("https://%s.file.core.windows.net/", *account.Name),
	}
	if account.ID != nil {
		result.ResourceGroup = extractResourceGroup(*account.ID)
	}
	if account.Kind != nil {
		result.Kind = string(*account.Kind)
	}
	if account.Location != nil {
		result.Location = *account.Location
	}
	if account.SKU != nil && account.SKU.Name != nil {
		result.SKU = string(*account.SKU.Name)
	}
	if account.Properties != nil && account.Properties.PrimaryEndpoints != nil {
		endpoints := account.Properties.PrimaryEndpoints
		if endpoints.Blob != nil && *endpoints.Blob != "" {
			result.BlobEndpoint = *endpoints.Blob
		}
		if endpoints.File != nil && *endpoints.File != "" {
			result.FileEndpoint = *endpoints.File
		}
	}
	return result
}

// extractResourceGroup extracts the resource group from an Azure resource ID
func extractResourceGroup(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
