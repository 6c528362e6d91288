package azureconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

func NewService(subscriptionID string) (*service, error) {
	// DefaultAzureCredential covers environment variables, managed identity,
	// the Azure CLI and azd logins.
	return newService(subscriptionID, func() (azcore.TokenCredential, error) {
		return azidentity.NewDefaultAzureCredential(nil)
	})
}

func newService(subscriptionID string, factory credentialFactory) (*service, error) {
	credential, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		newCredential:  factory,
		current:        credential,
		now:            time.Now,
	}, nil
}

// GetCredential returns a credential that always delegates to the most
// recently built one, so clients created before a Refresh pick it up.
func (s *service) GetCredential() azcore.TokenCredential {
	return s
}

func (s *service) GetSubscriptionID() string {
	return s.subscriptionID
}

// GetToken implements azcore.TokenCredential
func (s *service) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	s.mu.RLock()
	credential := s.current
	s.mu.RUnlock()

	return credential.GetToken(ctx, options)
}

// Refresh rebuilds the underlying credential. Calls arriving within
// refreshWindow of the last rebuild are no-ops.
func (s *service) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.refreshedAt.IsZero() && s.now().Sub(s.refreshedAt) < refreshWindow {
		return nil
	}

	credential, err := s.newCredential()
	if err != nil {
		return fmt.Errorf("failed to refresh Azure credential: %w", err)
	}
	s.current = credential
	s.refreshedAt = s.now()
	return nil
}
