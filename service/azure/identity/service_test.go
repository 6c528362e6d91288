package azureidentity

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabledSubscriptions(t *testing.T) {
	subs := []*armsubscriptions.Subscription{
		{SubscriptionID: to.Ptr("2"), DisplayName: to.Ptr("Production"), State: to.Ptr(armsubscriptions.SubscriptionStateEnabled)},
		{SubscriptionID: to.Ptr("3"), DisplayName: to.Ptr("Old"), State: to.Ptr(armsubscriptions.SubscriptionStateDisabled)},
		{SubscriptionID: to.Ptr("1")},
		nil,
		{DisplayName: to.Ptr("no id")},
	}

	accounts := enabledSubscriptions(subs)

	require.Len(t, accounts, 2)
	assert.Equal(t, "1", accounts[0].AccountName)
	assert.Equal(t, "Production", accounts[1].AccountName)
	assert.Equal(t, "2", accounts[1].AccountID)
	assert.Equal(t, "azure", accounts[1].Provider)
}
