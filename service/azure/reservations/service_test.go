package azurereservations

import (
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(name string, expiry *time.Time) *armreservations.ReservationOrderResponse {
	return &armreservations.ReservationOrderResponse{
		Name: to.Ptr(name),
		Properties: &armreservations.ReservationOrderProperties{
			DisplayName:       to.Ptr(name + "-display"),
			Term:              to.Ptr(armreservations.ReservationTermP1Y),
			ProvisioningState: to.Ptr(armreservations.ProvisioningStateSucceeded),
			ExpiryDate:        expiry,
		},
	}
}

func TestToReservations(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	soon := now.Add(10 * 24 * time.Hour)
	later := now.Add(200 * 24 * time.Hour)
	recent := now.Add(-5 * 24 * time.Hour)
	ancient := now.Add(-400 * 24 * time.Hour)

	orders := []*armreservations.ReservationOrderResponse{
		order("later", &later),
		order("soon", &soon),
		order("recent", &recent),
		order("ancient", &ancient),
		order("open", nil),
		{Name: to.Ptr("no-properties")},
		nil,
	}

	reservations := toReservations(orders, now)

	require.Len(t, reservations, 4)
	assert.Equal(t, "open", reservations[0].ID, "orders without expiry sort first")
	assert.Equal(t, "active", reservations[0].Status)
	assert.Equal(t, "recent", reservations[1].ID)
	assert.Equal(t, "expired", reservations[1].Status)
	assert.Equal(t, "soon", reservations[2].ID)
	assert.Equal(t, "expiring", reservations[2].Status)
	assert.Equal(t, 10, reservations[2].DaysUntilExpiry)
	assert.Equal(t, "later", reservations[3].ID)
	assert.Equal(t, "active", reservations[3].Status)
	assert.Equal(t, "P1Y", reservations[3].Term)
	assert.Equal(t, "Succeeded", reservations[3].State)
	assert.Equal(t, "later-display", reservations[3].DisplayName)
}

func TestExpiryStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "active", expiryStatus(now.Add(expiryWindow), now))
	assert.Equal(t, "expiring", expiryStatus(now.Add(time.Hour), now))
	assert.Equal(t, "expired", expiryStatus(now.Add(-time.Hour), now))
	assert.Equal(t, "", expiryStatus(now.Add(-expiryWindow-time.Hour), now))
}
