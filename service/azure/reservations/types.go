package azurereservations

import (
	"context"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/elC0mpa/storage-doctor/model"
)

// expiryWindow is how close to expiry an order counts as expiring, and how
// long after expiry it is still reported.
const expiryWindow = 30 * 24 * time.Hour

type service struct {
	client *armreservations.ReservationOrderClient
	logger *slog.Logger
	now    func() time.Time
}

type ReservationsService interface {
	ListReservations(ctx context.Context) ([]model.ExistingReservation, error)
}
