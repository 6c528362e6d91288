package azureconfig

import (
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// refreshWindow suppresses repeated rebuilds when several workers hit an
// expired token at the same time.
const refreshWindow = 30 * time.Second

type credentialFactory func() (azcore.TokenCredential, error)

type service struct {
	subscriptionID string
	newCredential  credentialFactory

	mu          sync.RWMutex
	current     azcore.TokenCredential
	refreshedAt time.Time
	now         func() time.Time
}

type ConfigService interface {
	GetCredential() azcore.TokenCredential
	GetSubscriptionID() string
	Refresh() error
}
