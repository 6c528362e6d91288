package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/aggregator"
	"github.com/elC0mpa/storage-doctor/service/analyzer"
	azureconfig "github.com/elC0mpa/storage-doctor/service/azure/config"
	azurecostmanagement "github.com/elC0mpa/storage-doctor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/storage-doctor/service/azure/identity"
	azurereservations "github.com/elC0mpa/storage-doctor/service/azure/reservations"
	azurestorage "github.com/elC0mpa/storage-doctor/service/azure/storage"
	"github.com/elC0mpa/storage-doctor/service/export"
	"github.com/elC0mpa/storage-doctor/service/export/response"
	"github.com/elC0mpa/storage-doctor/service/orchestrator"
	"github.com/elC0mpa/storage-doctor/service/scanner"
	"github.com/elC0mpa/storage-doctor/utils"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Config holds the environment based defaults of the MCP server
type Config struct {
	SubscriptionIDs []string
	Workers         int
	CostMonths      int
	TopUnits        int
}

type services struct {
	identity     azureidentity.IdentityService
	orchestrator orchestrator.OrchestratorService
}

// RegisterAzureTools registers the storage checkup tools with the MCP server
func RegisterAzureTools(s *server.MCPServer, cfg Config, log *slog.Logger) {
	s.AddTool(
		mcp.NewTool("azure_list_subscriptions",
			mcp.WithDescription("List the enabled Azure subscriptions the current credential has access to"),
		),
		makeListSubscriptionsHandler(cfg, log),
	)

	s.AddTool(
		mcp.NewTool("storage_scan_summary",
			append([]mcp.ToolOption{
				mcp.WithDescription("Scan blob containers and file shares and summarize object counts, sizes and age distribution per storage account, with the largest units. Scans every enabled subscription unless subscriptions or AZURE_SUBSCRIPTION_ID are set."),
				mcp.WithNumber("top", mcp.Description("Number of largest units to include")),
			}, scopeOptions()...)...,
		),
		makeScanSummaryHandler(cfg, log),
	)

	s.AddTool(
		mcp.NewTool("storage_recommendations",
			append([]mcp.ToolOption{
				mcp.WithDescription("Scan storage and return ranked cost optimization recommendations (lifecycle policies, tier migrations, small blob consolidation and file share checks) with estimated monthly savings in USD."),
			}, scopeOptions()...)...,
		),
		makeRecommendationsHandler(cfg, log),
	)

	s.AddTool(
		mcp.NewTool("storage_reservations",
			mcp.WithDescription("Analyze monthly Azure Storage spend from Cost Management and recommend reserved capacity purchases, next to the reservations already owned."),
			mcp.WithString("subscriptions", mcp.Description("Comma separated subscription IDs")),
			mcp.WithNumber("months", mcp.Description("Months of spend history to analyze (at least 2)")),
		),
		makeReservationsHandler(cfg, log),
	)
}

func scopeOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("subscriptions", mcp.Description("Comma separated subscription IDs")),
		mcp.WithString("accounts", mcp.Description("Comma separated storage account names")),
		mcp.WithString("account_pattern", mcp.Description("Glob pattern for storage account names")),
		mcp.WithNumber("max_accounts", mcp.Description("Maximum storage accounts per subscription")),
		mcp.WithString("containers", mcp.Description("Comma separated container names")),
		mcp.WithString("container_pattern", mcp.Description("Glob pattern for container names")),
		mcp.WithString("shares", mcp.Description("Comma separated file share names")),
		mcp.WithString("share_pattern", mcp.Description("Glob pattern for file share names")),
		mcp.WithNumber("max_units", mcp.Description("Maximum containers and shares per account")),
		mcp.WithBoolean("skip_blobs", mcp.Description("Do not scan blob containers")),
		mcp.WithBoolean("skip_shares", mcp.Description("Do not scan file shares")),
	}
}

func makeListSubscriptionsHandler(cfg Config, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, err := newServices(cfg, log)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		subscriptions, err := svc.identity.ListSubscriptions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
		}

		return jsonResult(response.ConvertAccountInfos(subscriptions))
	}
}

func makeScanSummaryHandler(cfg Config, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, err := newServices(cfg, log)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		flags := scanFlags(cfg, request)
		report, err := svc.orchestrator.Scan(ctx, flags)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to scan storage: %v", err)), nil
		}

		return jsonResult(response.ConvertScanSummary(*report, aggregator.TopUnits(report.Units, flags.TopUnits)))
	}
}

func makeRecommendationsHandler(cfg Config, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, err := newServices(cfg, log)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		report, err := svc.orchestrator.Scan(ctx, scanFlags(cfg, request))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to scan storage: %v", err)), nil
		}

		return jsonResult(response.ConvertRecommendations(report.Recommendations))
	}
}

func makeReservationsHandler(cfg Config, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		months := request.GetInt("months", cfg.CostMonths)
		if months < 2 {
			return mcp.NewToolResultError("months must be at least 2"), nil
		}

		svc, err := newServices(cfg, log)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var subscriptions []model.AccountInfo
		ids := requestedSubscriptions(cfg, request)
		if len(ids) == 0 {
			subscriptions, err = svc.identity.ListSubscriptions(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
			}
		}
		for _, id := range ids {
			subscriptions = append(subscriptions, model.AccountInfo{Provider: "azure", AccountID: id, AccountName: id})
		}

		report, err := svc.orchestrator.Reservations(ctx, subscriptions, months)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze reservations: %v", err)), nil
		}

		return jsonResult(response.ConvertReservationReport(report))
	}
}

// newServices wires the same pipeline as the CLI. Nothing is exported from
// the MCP server, so the export service only backs the interface.
func newServices(cfg Config, log *slog.Logger) (*services, error) {
	subscriptionID := ""
	if len(cfg.SubscriptionIDs) > 0 {
		subscriptionID = cfg.SubscriptionIDs[0]
	}

	cfgSvc, err := azureconfig.NewService(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure config: %w", err)
	}
	credential := cfgSvc.GetCredential()

	identitySvc, err := azureidentity.NewService(credential)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure identity service: %w", err)
	}
	costSvc, err := azurecostmanagement.NewService(credential, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure cost management service: %w", err)
	}
	reservationsSvc, err := azurereservations.NewService(credential, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure reservations service: %w", err)
	}

	analyzerSvc := analyzer.NewService(log)
	scannerSvc := scanner.NewService(
		scanner.WithCredentialRefresh(analyzerSvc.Analyze, azurestorage.IsAuthError, cfgSvc.Refresh),
		log,
	)

	return &services{
		identity: identitySvc,
		orchestrator: orchestrator.NewService(
			identitySvc,
			azurestorage.NewService(credential, log),
			costSvc,
			reservationsSvc,
			scannerSvc,
			export.NewService("", cfg.TopUnits, log),
			log,
		),
	}, nil
}

func scanFlags(cfg Config, request mcp.CallToolRequest) model.Flags {
	return model.Flags{
		Subscriptions:    requestedSubscriptions(cfg, request),
		AccountNames:     utils.SplitList(request.GetString("accounts", "")),
		AccountPattern:   request.GetString("account_pattern", ""),
		MaxAccounts:      request.GetInt("max_accounts", 0),
		ContainerNames:   utils.SplitList(request.GetString("containers", "")),
		ContainerPattern: request.GetString("container_pattern", ""),
		ShareNames:       utils.SplitList(request.GetString("shares", "")),
		SharePattern:     request.GetString("share_pattern", ""),
		MaxUnits:         request.GetInt("max_units", 0),
		SkipBlobs:        request.GetBool("skip_blobs", false),
		SkipShares:       request.GetBool("skip_shares", false),
		Workers:          cfg.Workers,
		CostMonths:       cfg.CostMonths,
		TopUnits:         request.GetInt("top", cfg.TopUnits),
	}
}

func requestedSubscriptions(cfg Config, request mcp.CallToolRequest) []string {
	if ids := utils.SplitList(request.GetString("subscriptions", "")); len(ids) > 0 {
		return ids
	}
	return cfg.SubscriptionIDs
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
