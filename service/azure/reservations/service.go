package azurereservations

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/elC0mpa/storage-doctor/model"
)

func NewService(credential azcore.TokenCredential, logger *slog.Logger) (*service, error) {
	client, err := armreservations.NewReservationOrderClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservations client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		client: client,
		logger: logger,
		now:    time.Now,
	}, nil
}

// ListReservations returns the reservation orders visible to the credential,
// soonest expiry first. Orders that expired more than expiryWindow ago are
// dropped.
func (s *service) ListReservations(ctx context.Context) ([]model.ExistingReservation, error) {
	var orders []*armreservations.ReservationOrderResponse

	pager := s.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			// The reservations API needs billing permissions most readers lack
			s.logger.Warn("failed to list reservation orders", "error", err)
			break
		}
		orders = append(orders, page.Value...)
	}

	return toReservations(orders, s.now()), nil
}

func toReservations(orders []*armreservations.ReservationOrderResponse, now time.Time) []model.ExistingReservation {
	var result []model.ExistingReservation
	for _, order := range orders {
		if order == nil || order.Properties == nil {
			continue
		}

		reservation := model.ExistingReservation{}
		if order.Name != nil {
			reservation.ID = *order.Name
		}
		if order.Properties.DisplayName != nil {
			reservation.DisplayName = *order.Properties.DisplayName
		}
		if order.Properties.Term != nil {
			reservation.Term = string(*order.Properties.Term)
		}
		if order.Properties.ProvisioningState != nil {
			reservation.State = string(*order.Properties.ProvisioningState)
		}

		if order.Properties.ExpiryDate != nil {
			reservation.ExpiryDate = *order.Properties.ExpiryDate
			reservation.DaysUntilExpiry = int(reservation.ExpiryDate.Sub(now).Hours() / 24)
			reservation.Status = expiryStatus(reservation.ExpiryDate, now)
			if reservation.Status == "" {
				continue
			}
		} else {
			reservation.Status = "active"
		}

		result = append(result, reservation)
	}

	slices.SortStableFunc(result, func(a, b model.ExistingReservation) int {
		return a.ExpiryDate.Compare(b.ExpiryDate)
	})
	return result
}

// expiryStatus returns an empty string for orders that expired long ago
func expiryStatus(expiry, now time.Time) string {
	switch {
	case expiry.Before(now.Add(-expiryWindow)):
		return ""
	case expiry.Before(now):
		return "expired"
	case expiry.Before(now.Add(expiryWindow)):
		return "expiring"
	default:
		return "active"
	}
}
