package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
	azurecostmanagement "github.com/elC0mpa/storage-doctor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/storage-doctor/service/azure/identity"
	azurereservations "github.com/elC0mpa/storage-doctor/service/azure/reservations"
	azurestorage "github.com/elC0mpa/storage-doctor/service/azure/storage"
	"github.com/elC0mpa/storage-doctor/service/export"
	"github.com/elC0mpa/storage-doctor/service/scanner"
)

type service struct {
	identityService     azureidentity.IdentityService
	storageService      azurestorage.StorageService
	costService         azurecostmanagement.CostManagementService
	reservationsService azurereservations.ReservationsService
	scannerService      scanner.ScannerService
	exportService       export.ExportService
	logger              *slog.Logger
	now                 func() time.Time
}

type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
	Scan(ctx context.Context, flags model.Flags) (*model.ScanReport, error)
	Reservations(ctx context.Context, subscriptions []model.AccountInfo, months int) (*model.ReservationReport, error)
}
