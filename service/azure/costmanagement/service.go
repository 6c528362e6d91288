package azurecostmanagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/elC0mpa/storage-doctor/model"
)

func NewService(credential azcore.TokenCredential, logger *slog.Logger) (*service, error) {
	client, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
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

// GetMonthlyStorageCosts returns the storage spend of the last complete
// months, oldest first. Months that cannot be queried are skipped.
func (s *service) GetMonthlyStorageCosts(ctx context.Context, subscriptionID string, months int) ([]model.StorageCost, error) {
	if months < 1 {
		return nil, errors.New("months must be at least 1")
	}

	scope := fmt.Sprintf("/subscriptions/%s", subscriptionID)
	var costs []model.StorageCost

	for _, window := range lastMonths(s.now(), months) {
		resp, err := s.client.Usage(ctx, scope, storageQuery(window), nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("failed to query storage costs",
				"subscription", subscriptionID,
				"month", window.label,
				"error", err)
			continue
		}

		cost := model.StorageCost{
			SubscriptionID: subscriptionID,
			Month:          window.label,
			ByFamily:       make(map[model.StorageFamily]float64),
			Currency:       "USD",
		}
		if resp.Properties != nil {
			cost.ByFamily, cost.Currency = parseStorageRows(resp.Properties.Columns, resp.Properties.Rows)
		}
		costs = append(costs, cost)
	}

	return costs, nil
}

func storageQuery(window monthWindow) armcostmanagement.QueryDefinition {
	serviceNames := make([]*string, len(storageServiceNames))
	for i, name := range storageServiceNames {
		serviceNames[i] = to.Ptr(name)
	}

	return armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(window.start),
			To:   to.Ptr(window.end),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
					Name: to.Ptr("ServiceName"),
				},
				{
					Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
					Name: to.Ptr("MeterSubCategory"),
				},
			},
			Filter: &armcostmanagement.QueryFilter{
				Dimensions: &armcostmanagement.QueryComparisonExpression{
					Name:     to.Ptr("ServiceName"),
					Operator: to.Ptr(armcostmanagement.QueryOperatorTypeIn),
					Values:   serviceNames,
				},
			},
		},
	}
}

// parseStorageRows sums the cost rows into blob and files families. Column
// positions are read from the response rather than assumed.
func parseStorageRows(columns []*armcostmanagement.QueryColumn, rows [][]any) (map[model.StorageFamily]float64, string) {
	index := make(map[string]int)
	for i, column := range columns {
		if column != nil && column.Name != nil {
			index[strings.ToLower(*column.Name)] = i
		}
	}

	costIdx, ok := index["cost"]
	if !ok {
		if costIdx, ok = index["pretaxcost"]; !ok {
			costIdx = 0
		}
	}

	byFamily := make(map[model.StorageFamily]float64)
	currency := "USD"
	for _, row := range rows {
		amount, ok := cell[float64](row, costIdx)
		if !ok || amount <= 0 {
			continue
		}

		serviceName, _ := cellAt[string](row, index, "servicename")
		meter, _ := cellAt[string](row, index, "metersubcategory")
		if c, ok := cellAt[string](row, index, "currency"); ok && c != "" {
			currency = c
		}

		byFamily[familyOf(serviceName, meter)] += amount
	}
	return byFamily, currency
}

func familyOf(serviceName, meterSubCategory string) model.StorageFamily {
	if strings.Contains(strings.ToLower(serviceName), "file") ||
		strings.Contains(strings.ToLower(meterSubCategory), "file") {
		return model.FamilyFiles
	}
	return model.FamilyBlob
}

func cell[T any](row []any, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(row) {
		return zero, false
	}
	v, ok := row[i].(T)
	return v, ok
}

func cellAt[T any](row []any, index map[string]int, column string) (T, bool) {
	i, ok := index[column]
	if !ok {
		var zero T
		return zero, false
	}
	return cell[T](row, i)
}

// lastMonths returns the n complete calendar months before now, oldest first
func lastMonths(now time.Time, n int) []monthWindow {
	windows := make([]monthWindow, 0, n)
	for i := n; i >= 1; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		windows = append(windows, monthWindow{
			label: month.Format("2006-01"),
			start: getFirstDayOfMonth(month),
			end:   getLastDayOfMonth(month),
		})
	}
	return windows
}

func getFirstDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func getLastDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month()+1, 0, 23, 59, 59, 0, time.UTC)
}
