package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/aggregator"
	azurecostmanagement "github.com/elC0mpa/storage-doctor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/storage-doctor/service/azure/identity"
	azurereservations "github.com/elC0mpa/storage-doctor/service/azure/reservations"
	azurestorage "github.com/elC0mpa/storage-doctor/service/azure/storage"
	"github.com/elC0mpa/storage-doctor/service/costmodel"
	"github.com/elC0mpa/storage-doctor/service/export"
	"github.com/elC0mpa/storage-doctor/service/scanner"
	"github.com/elC0mpa/storage-doctor/utils"
)

var ErrNoSubscriptions = errors.New("no enabled subscriptions found for the current credential")

func NewService(
	identityService azureidentity.IdentityService,
	storageService azurestorage.StorageService,
	costService azurecostmanagement.CostManagementService,
	reservationsService azurereservations.ReservationsService,
	scannerService scanner.ScannerService,
	exportService export.ExportService,
	logger *slog.Logger,
) *service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		identityService:     identityService,
		storageService:      storageService,
		costService:         costService,
		reservationsService: reservationsService,
		scannerService:      scannerService,
		exportService:       exportService,
		logger:              logger,
		now:                 time.Now,
	}
}

func (s *service) Orchestrate(ctx context.Context, flags model.Flags) error {
	if flags.SkipBlobs && flags.SkipShares {
		return s.costsWorkflow(ctx, flags)
	}
	return s.defaultWorkflow(ctx, flags)
}

func (s *service) defaultWorkflow(ctx context.Context, flags model.Flags) error {
	report, err := s.Scan(ctx, flags)
	if err != nil {
		return err
	}

	if flags.Costs {
		utils.UpdateSpinner("Querying storage spend")
		if err := s.addSpend(ctx, report, flags.CostMonths); err != nil {
			return err
		}
	}

	utils.StopSpinner()

	utils.DrawScanReport(*report, aggregator.TopUnits(report.Units, flags.TopUnits))
	utils.DrawAgeChart(report.Totals)
	utils.DrawTierSummary(report.Totals)
	utils.DrawRecommendations(report.Recommendations)
	if report.Reservations != nil {
		utils.DrawSpendTrends(report.SpendTrends)
		utils.DrawReservationReport(*report.Reservations)
	}

	return s.export(*report, flags.Formats)
}

func (s *service) costsWorkflow(ctx context.Context, flags model.Flags) error {
	subscriptions, err := s.resolveSubscriptions(ctx, flags.Subscriptions)
	if err != nil {
		return err
	}

	report := model.ScanReport{
		GeneratedAt:   s.now(),
		Subscriptions: subscriptions,
	}

	utils.UpdateSpinner("Querying storage spend")
	if err := s.addSpend(ctx, &report, flags.CostMonths); err != nil {
		return err
	}

	utils.StopSpinner()
	utils.DrawSpendTrends(report.SpendTrends)
	utils.DrawReservationReport(*report.Reservations)

	return s.export(report, flags.Formats)
}

// Scan discovers every container and share in scope, scans them and folds
// the results into summaries and recommendations.
func (s *service) Scan(ctx context.Context, flags model.Flags) (*model.ScanReport, error) {
	subscriptions, err := s.resolveSubscriptions(ctx, flags.Subscriptions)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		ids = append(ids, sub.AccountID)
	}

	utils.UpdateSpinner("Discovering storage accounts")
	targets, err := s.storageService.DiscoverTargets(ctx, ids, discoveryOptions(flags))
	if err != nil {
		return nil, fmt.Errorf("failed to discover storage: %w", err)
	}

	utils.UpdateSpinner(fmt.Sprintf("Scanning %d units", len(targets)))
	results := s.scannerService.ScanAll(ctx, targets, flags.Workers)
	if ctx.Err() != nil {
		s.logger.Warn("scan interrupted, report is partial", "scanned", len(results), "total", len(targets))
	}

	accounts, totals := aggregator.Aggregate(results)
	recommendations := costmodel.Merge(
		costmodel.GenerateRecommendations(results),
		costmodel.GenerateShareRecommendations(results),
	)

	return &model.ScanReport{
		GeneratedAt:     s.now(),
		Subscriptions:   subscriptions,
		Units:           results,
		Accounts:        accounts,
		Totals:          totals,
		Recommendations: recommendations,
	}, nil
}

// Reservations builds purchase options from the storage spend of every
// subscription and lists the reservations already owned. A subscription
// whose spend cannot be read is left out.
func (s *service) Reservations(ctx context.Context, subscriptions []model.AccountInfo, months int) (*model.ReservationReport, error) {
	costs, err := s.storageCosts(ctx, subscriptions, months)
	if err != nil {
		return nil, err
	}
	return s.reservationReport(ctx, costs), nil
}

// addSpend attaches monthly spend, its trends and reservation options to report.
func (s *service) addSpend(ctx context.Context, report *model.ScanReport, months int) error {
	costs, err := s.storageCosts(ctx, report.Subscriptions, months)
	if err != nil {
		return err
	}
	report.Costs = costs
	report.SpendTrends = costmodel.AnalyzeSpendTrends(costs)
	report.Reservations = s.reservationReport(ctx, costs)
	return nil
}

func (s *service) storageCosts(ctx context.Context, subscriptions []model.AccountInfo, months int) ([]model.StorageCost, error) {
	var costs []model.StorageCost
	for _, sub := range subscriptions {
		subCosts, err := s.costService.GetMonthlyStorageCosts(ctx, sub.AccountID, months)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("skipping subscription costs", "subscription", sub.AccountID, "error", err)
			continue
		}
		costs = append(costs, subCosts...)
	}
	return costs, nil
}

func (s *service) reservationReport(ctx context.Context, costs []model.StorageCost) *model.ReservationReport {
	report := costmodel.AnalyzeReservations(costs)

	existing, err := s.reservationsService.ListReservations(ctx)
	if err != nil {
		s.logger.Warn("failed to list existing reservations", "error", err)
	} else {
		report.Existing = existing
	}

	return &report
}

func (s *service) resolveSubscriptions(ctx context.Context, requested []string) ([]model.AccountInfo, error) {
	if len(requested) == 0 {
		subscriptions, err := s.identityService.ListSubscriptions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		if len(subscriptions) == 0 {
			return nil, ErrNoSubscriptions
		}
		return subscriptions, nil
	}

	subscriptions := make([]model.AccountInfo, 0, len(requested))
	for _, id := range requested {
		info, err := s.identityService.GetAccountInfo(ctx, id)
		if err != nil {
			s.logger.Warn("failed to read subscription details", "subscription", id, "error", err)
			info = &model.AccountInfo{Provider: "azure", AccountID: id, AccountName: id}
		}
		subscriptions = append(subscriptions, *info)
	}
	return subscriptions, nil
}

func (s *service) export(report model.ScanReport, formats []string) error {
	paths, err := s.exportService.Export(report, formats)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Printf(" Report written to %s\n", path)
	}
	return nil
}

func discoveryOptions(flags model.Flags) azurestorage.DiscoveryOptions {
	return azurestorage.DiscoveryOptions{
		Accounts: azurestorage.Filter{
			Names:   flags.AccountNames,
			Pattern: flags.AccountPattern,
			Max:     flags.MaxAccounts,
		},
		Containers: azurestorage.Filter{
			Names:   flags.ContainerNames,
			Pattern: flags.ContainerPattern,
			Max:     flags.MaxUnits,
		},
		Shares: azurestorage.Filter{
			Names:   flags.ShareNames,
			Pattern: flags.SharePattern,
			Max:     flags.MaxUnits,
		},
		SkipBlobs:  flags.SkipBlobs,
		SkipShares: flags.SkipShares,
	}
}
