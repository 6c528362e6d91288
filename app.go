package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/elC0mpa/storage-doctor/logger"
	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/analyzer"
	azureconfig "github.com/elC0mpa/storage-doctor/service/azure/config"
	azurecostmanagement "github.com/elC0mpa/storage-doctor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/storage-doctor/service/azure/identity"
	azurereservations "github.com/elC0mpa/storage-doctor/service/azure/reservations"
	azurestorage "github.com/elC0mpa/storage-doctor/service/azure/storage"
	"github.com/elC0mpa/storage-doctor/service/export"
	"github.com/elC0mpa/storage-doctor/service/flag"
	"github.com/elC0mpa/storage-doctor/service/orchestrator"
	"github.com/elC0mpa/storage-doctor/service/scanner"
	"github.com/elC0mpa/storage-doctor/utils"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	log := logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	utils.DrawBanner()
	utils.StartSpinner()

	if err := run(ctx, flags, log); err != nil {
		utils.StopSpinner()
		log.Error("storage checkup failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, flags model.Flags, log *slog.Logger) error {
	subscriptionID := ""
	if len(flags.Subscriptions) > 0 {
		subscriptionID = flags.Subscriptions[0]
	}

	cfgService, err := azureconfig.NewService(subscriptionID)
	if err != nil {
		return err
	}
	credential := cfgService.GetCredential()

	identityService, err := azureidentity.NewService(credential)
	if err != nil {
		return err
	}
	costService, err := azurecostmanagement.NewService(credential, log)
	if err != nil {
		return err
	}
	reservationsService, err := azurereservations.NewService(credential, log)
	if err != nil {
		return err
	}
	storageService := azurestorage.NewService(credential, log)

	analyzerService := analyzer.NewService(log)
	scannerService := scanner.NewService(
		scanner.WithCredentialRefresh(analyzerService.Analyze, azurestorage.IsAuthError, cfgService.Refresh),
		log,
		scanner.WithProgress(func(completed, total int, target model.ScanTarget, _ error) {
			utils.UpdateSpinner(fmt.Sprintf("Scanned %d/%d units (%s/%s)", completed, total, target.AccountName, target.UnitName))
		}),
	)
	exportService := export.NewService(flags.OutputDir, flags.TopUnits, log)

	orchestratorService := orchestrator.NewService(
		identityService,
		storageService,
		costService,
		reservationsService,
		scannerService,
		exportService,
		log,
	)

	return orchestratorService.Orchestrate(ctx, flags)
}
