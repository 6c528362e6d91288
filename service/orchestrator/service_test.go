package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/storage-doctor/logger"
	"github.com/elC0mpa/storage-doctor/model"
	azurestorage "github.com/elC0mpa/storage-doctor/service/azure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	subscriptions []model.AccountInfo
	listErr       error
	infoErr       error
}

func (f *fakeIdentity) GetAccountInfo(_ context.Context, id string) (*model.AccountInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &model.AccountInfo{Provider: "azure", AccountID: id, AccountName: "Name of " + id}, nil
}

func (f *fakeIdentity) GetSubscriptionInfo(context.Context, string) (*armsubscriptions.Subscription, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeIdentity) ListSubscriptions(context.Context) ([]model.AccountInfo, error) {
	return f.subscriptions, f.listErr
}

type fakeStorage struct {
	called        bool
	subscriptions []string
	opts          azurestorage.DiscoveryOptions
	targets       []model.ScanTarget
}

func (f *fakeStorage) ListAccounts(context.Context, string) ([]model.StorageAccount, error) {
	return nil, nil
}

func (f *fakeStorage) DiscoverTargets(_ context.Context, ids []string, opts azurestorage.DiscoveryOptions) ([]model.ScanTarget, error) {
	f.called = true
	f.subscriptions = ids
	f.opts = opts
	return f.targets, nil
}

type fakeCosts struct {
	costs map[string][]model.StorageCost
	errs  map[string]error
}

func (f *fakeCosts) GetMonthlyStorageCosts(_ context.Context, id string, _ int) ([]model.StorageCost, error) {
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	return f.costs[id], nil
}

type fakeReservations struct {
	existing []model.ExistingReservation
	err      error
}

func (f *fakeReservations) ListReservations(context.Context) ([]model.ExistingReservation, error) {
	return f.existing, f.err
}

type fakeScanner struct {
	workers int
	results []model.UnitResult
}

func (f *fakeScanner) ScanAll(_ context.Context, _ []model.ScanTarget, maxWorkers int) []model.UnitResult {
	f.workers = maxWorkers
	return f.results
}

type fakeExport struct {
	report  *model.ScanReport
	formats []string
}

func (f *fakeExport) Export(report model.ScanReport, formats []string) ([]string, error) {
	f.report = &report
	f.formats = formats
	return nil, nil
}

type fixture struct {
	identity     *fakeIdentity
	storage      *fakeStorage
	costs        *fakeCosts
	reservations *fakeReservations
	scanner      *fakeScanner
	export       *fakeExport
}

func newFixture() *fixture {
	return &fixture{
		identity:     &fakeIdentity{},
		storage:      &fakeStorage{},
		costs:        &fakeCosts{},
		reservations: &fakeReservations{},
		scanner:      &fakeScanner{},
		export:       &fakeExport{},
	}
}

func (f *fixture) service() *service {
	svc := NewService(f.identity, f.storage, f.costs, f.reservations, f.scanner, f.export, logger.Discard())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func oldContainer(sub, account, name string) model.UnitResult {
	return model.UnitResult{
		Kind:           model.UnitContainer,
		SubscriptionID: sub,
		AccountName:    account,
		UnitName:       name,
		TotalCount:     100,
		TotalSize:      100 << 30,
		ColdCount:      100,
		ColdSize:       100 << 30,
		ColdPct:        100,
		Over90Count:    100,
		Over90Pct:      100,
	}
}

func steadySpend(sub string) []model.StorageCost {
	var costs []model.StorageCost
	for _, month := range []string{"2024-02", "2024-03", "2024-04"} {
		costs = append(costs, model.StorageCost{
			SubscriptionID: sub,
			Month:          month,
			ByFamily:       map[model.StorageFamily]float64{model.FamilyBlob: 500},
			Currency:       "USD",
		})
	}
	return costs
}

func TestScan_ListsSubscriptionsAndBuildsReport(t *testing.T) {
	f := newFixture()
	f.identity.subscriptions = []model.AccountInfo{
		{Provider: "azure", AccountID: "sub-1", AccountName: "Prod"},
		{Provider: "azure", AccountID: "sub-2", AccountName: "Dev"},
	}
	f.scanner.results = []model.UnitResult{
		oldContainer("sub-1", "acct", "logs"),
		oldContainer("sub-2", "other", "backups"),
	}

	flags := model.Flags{
		AccountPattern: "prod*",
		MaxAccounts:    3,
		ContainerNames: []string{"logs"},
		SharePattern:   "team-*",
		MaxUnits:       7,
		SkipShares:     true,
		Workers:        4,
	}
	report, err := f.service().Scan(context.Background(), flags)
	require.NoError(t, err)

	assert.Equal(t, []string{"sub-1", "sub-2"}, f.storage.subscriptions)
	assert.Equal(t, azurestorage.DiscoveryOptions{
		Accounts:   azurestorage.Filter{Pattern: "prod*", Max: 3},
		Containers: azurestorage.Filter{Names: []string{"logs"}, Max: 7},
		Shares:     azurestorage.Filter{Pattern: "team-*", Max: 7},
		SkipShares: true,
	}, f.storage.opts)
	assert.Equal(t, 4, f.scanner.workers)

	assert.Len(t, report.Units, 2)
	assert.Len(t, report.Accounts, 2)
	assert.Equal(t, 2, report.Totals.AccountCount)
	assert.Equal(t, int64(200), report.Totals.TotalCount)
	assert.Len(t, report.Recommendations.ByCategory[model.CategoryLifecyclePolicy], 2)
	assert.InDelta(t, 5.36, report.Recommendations.EstimatedSavings, 1e-9)
	assert.Nil(t, report.Reservations)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), report.GeneratedAt)
}

func TestScan_NoSubscriptions(t *testing.T) {
	f := newFixture()

	_, err := f.service().Scan(context.Background(), model.Flags{})

	assert.ErrorIs(t, err, ErrNoSubscriptions)
	assert.False(t, f.storage.called)
}

func TestScan_ListSubscriptionsFailure(t *testing.T) {
	f := newFixture()
	f.identity.listErr = errors.New("forbidden")

	_, err := f.service().Scan(context.Background(), model.Flags{})

	assert.ErrorContains(t, err, "failed to list subscriptions: forbidden")
}

func TestScan_RequestedSubscriptionFallsBackToID(t *testing.T) {
	f := newFixture()
	f.identity.infoErr = errors.New("not found")

	report, err := f.service().Scan(context.Background(), model.Flags{Subscriptions: []string{"sub-9"}})
	require.NoError(t, err)

	assert.Equal(t, []model.AccountInfo{{Provider: "azure", AccountID: "sub-9", AccountName: "sub-9"}}, report.Subscriptions)
	assert.Equal(t, []string{"sub-9"}, f.storage.subscriptions)
	assert.Empty(t, report.Accounts)
}

func TestReservations_SkipsFailingSubscriptions(t *testing.T) {
	f := newFixture()
	f.costs.costs = map[string][]model.StorageCost{"sub-1": steadySpend("sub-1")}
	f.costs.errs = map[string]error{"sub-2": errors.New("throttled")}
	f.reservations.existing = []model.ExistingReservation{{ID: "order-1", Status: "active"}}

	report, err := f.service().Reservations(context.Background(), []model.AccountInfo{
		{AccountID: "sub-1"},
		{AccountID: "sub-2"},
	}, 3)
	require.NoError(t, err)

	require.Len(t, report.Recommendations, 2)
	for _, rec := range report.Recommendations {
		assert.Equal(t, "sub-1", rec.SubscriptionID)
	}
	assert.Equal(t, f.reservations.existing, report.Existing)
}

func TestReservations_ExistingListFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.reservations.err = errors.New("no access")

	report, err := f.service().Reservations(context.Background(), []model.AccountInfo{{AccountID: "sub-1"}}, 3)

	require.NoError(t, err)
	assert.Empty(t, report.Recommendations)
	assert.Nil(t, report.Existing)
}

func TestOrchestrate_CostsOnlySkipsScan(t *testing.T) {
	f := newFixture()
	f.costs.costs = map[string][]model.StorageCost{"sub-1": steadySpend("sub-1")}

	err := f.service().Orchestrate(context.Background(), model.Flags{
		Subscriptions: []string{"sub-1"},
		SkipBlobs:     true,
		SkipShares:    true,
		Costs:         true,
		CostMonths:    3,
		Formats:       []string{"json"},
	})
	require.NoError(t, err)

	assert.False(t, f.storage.called)
	require.NotNil(t, f.export.report)
	assert.Equal(t, []string{"json"}, f.export.formats)
	require.NotNil(t, f.export.report.Reservations)
	assert.Len(t, f.export.report.Reservations.Recommendations, 2)
	assert.Empty(t, f.export.report.Units)

	assert.Len(t, f.export.report.Costs, 3)
	require.Len(t, f.export.report.SpendTrends, 1)
	trend := f.export.report.SpendTrends[0]
	assert.Equal(t, "2024-04", trend.CurrentMonth)
	assert.Equal(t, 500.0, trend.Baseline)
	assert.Equal(t, 0.0, trend.ChangePct)
}

func TestOrchestrate_ScanWithCosts(t *testing.T) {
	f := newFixture()
	f.scanner.results = []model.UnitResult{oldContainer("sub-1", "acct", "logs")}
	f.costs.costs = map[string][]model.StorageCost{"sub-1": steadySpend("sub-1")}

	err := f.service().Orchestrate(context.Background(), model.Flags{
		Subscriptions: []string{"sub-1"},
		Costs:         true,
		CostMonths:    3,
		TopUnits:      5,
	})
	require.NoError(t, err)

	assert.True(t, f.storage.called)
	require.NotNil(t, f.export.report)
	assert.Len(t, f.export.report.Units, 1)
	assert.NotNil(t, f.export.report.Reservations)
	assert.Len(t, f.export.report.Costs, 3)
	assert.Len(t, f.export.report.SpendTrends, 1)
}

func TestOrchestrate_ScanWithoutCostsLeavesSpendEmpty(t *testing.T) {
	f := newFixture()
	f.scanner.results = []model.UnitResult{oldContainer("sub-1", "acct", "logs")}
	f.costs.costs = map[string][]model.StorageCost{"sub-1": steadySpend("sub-1")}

	err := f.service().Orchestrate(context.Background(), model.Flags{Subscriptions: []string{"sub-1"}})
	require.NoError(t, err)

	require.NotNil(t, f.export.report)
	assert.Nil(t, f.export.report.Costs)
	assert.Nil(t, f.export.report.SpendTrends)
	assert.Nil(t, f.export.report.Reservations)
}
