package azureidentity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/storage-doctor/model"
)

type service struct {
	client *armsubscriptions.Client
}

type IdentityService interface {
	GetAccountInfo(ctx context.Context, subscriptionID string) (*model.AccountInfo, error)
	GetSubscriptionInfo(ctx context.Context, subscriptionID string) (*armsubscriptions.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]model.AccountInfo, error)
}
