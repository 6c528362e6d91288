package azureidentity

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/storage-doctor/model"
)

func NewService(credential azcore.TokenCredential) (*service, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	return &service{
		client: client,
	}, nil
}

func (s *service) GetAccountInfo(ctx context.Context, subscriptionID string) (*model.AccountInfo, error) {
	subscription, err := s.GetSubscriptionInfo(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	displayName := subscriptionID
	if subscription.DisplayName != nil {
		displayName = *subscription.DisplayName
	}

	return &model.AccountInfo{
		Provider:    "azure",
		AccountID:   subscriptionID,
		AccountName: displayName,
	}, nil
}

// GetSubscriptionInfo returns detailed Azure subscription information
func (s *service) GetSubscriptionInfo(ctx context.Context, subscriptionID string) (*armsubscriptions.Subscription, error) {
	resp, err := s.client.Get(ctx, subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription info: %w", err)
	}

	return &resp.Subscription, nil
}

// ListSubscriptions returns every enabled subscription the credential can see
func (s *service) ListSubscriptions(ctx context.Context) ([]model.AccountInfo, error) {
	var subscriptions []*armsubscriptions.Subscription

	pager := s.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		subscriptions = append(subscriptions, page.Value...)
	}

	return enabledSubscriptions(subscriptions), nil
}

func enabledSubscriptions(subscriptions []*armsubscriptions.Subscription) []model.AccountInfo {
	var accounts []model.AccountInfo
	for _, sub := range subscriptions {
		if sub == nil || sub.SubscriptionID == nil {
			continue
		}
		if sub.State != nil && *sub.State != armsubscriptions.SubscriptionStateEnabled {
			continue
		}

		name := *sub.SubscriptionID
		if sub.DisplayName != nil {
			name = *sub.DisplayName
		}
		accounts = append(accounts, model.AccountInfo{
			Provider:    "azure",
			AccountID:   *sub.SubscriptionID,
			AccountName: name,
		})
	}

	slices.SortFunc(accounts, func(a, b model.AccountInfo) int {
		return strings.Compare(a.AccountName, b.AccountName)
	})
	return accounts
}
