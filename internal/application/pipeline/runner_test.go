package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartretail/pipeline/internal/application/federate"
	"github.com/smartretail/pipeline/internal/application/normalize"
	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

type fakeLoader struct {
	orders    []source.RawOrder
	campaigns []source.RawCampaign
	traffic   []source.RawTraffic
	iot       []source.RawIoT

	ordersErr error
}

func (f *fakeLoader) LoadOrders(ctx context.Context) ([]source.RawOrder, error) {
	return f.orders, f.ordersErr
}

func (f *fakeLoader) LoadCampaigns(ctx context.Context) ([]source.RawCampaign, error) {
	return f.campaigns, nil
}

func (f *fakeLoader) LoadWebTraffic(ctx context.Context) ([]source.RawTraffic, error) {
	return f.traffic, nil
}

func (f *fakeLoader) LoadIoT(ctx context.Context) ([]source.RawIoT, error) {
	return f.iot, nil
}

type fakePublisher struct {
	published *federate.Result
	manifest  *normalize.Manifest
	runID     uuid.UUID
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, result *federate.Result, manifest *normalize.Manifest, runID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.published = result
	f.manifest = manifest
	f.runID = runID
	return nil
}

func testLoader() *fakeLoader {
	return &fakeLoader{
		orders: []source.RawOrder{
			{OrderID: 1, OrderDate: "2024-01-05", Country: "UK", ProductID: 3, Quantity: "2", TotalAmount: "100"},
			{OrderID: 2, OrderDate: "2024-01-20", Country: "France", ProductID: 3, Quantity: "1", TotalAmount: "300"},
		},
		campaigns: []source.RawCampaign{
			{CampaignName: "January Push", ProductID: "3", StartDate: "2024-01-01", EndDate: "2024-01-15"},
		},
		traffic: []source.RawTraffic{
			{Date: "2024-01-05", Pageviews: "50", Sessions: "20", Source: "organic"},
		},
		iot: []source.RawIoT{
			{Timestamp: "2024-01-05 09:00:00", Footfall: "12", Temperature: "20.5"},
		},
	}
}

func newTestRunner(loader Loader, publisher Publisher) *Runner {
	window := retail.Window{
		From: retail.MustDate("2024-01-01"),
		To:   retail.MustDate("2024-12-31"),
	}
	logger := zap.NewNop()
	return NewRunner(
		loader,
		normalize.New(window, logger),
		federate.New(logger),
		publisher,
		logger,
	)
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("runs load, normalize, federate, publish end to end", func(t *testing.T) {
		publisher := &fakePublisher{}
		r := newTestRunner(testLoader(), publisher)

		result, err := r.Run(ctx)
		require.NoError(t, err)
		require.NotNil(t, result)

		require.Len(t, result.Facts, 2)
		require.NotNil(t, result.Facts[0].Campaign)
		assert.Equal(t, "January Push", result.Facts[0].Campaign.Name)
		assert.Nil(t, result.Facts[1].Campaign)

		// The publisher saw the same result and a populated manifest.
		assert.Same(t, result, publisher.published)
		require.NotNil(t, publisher.manifest)
		assert.Equal(t, 2, publisher.manifest.Orders.Processed)
		assert.NotEqual(t, uuid.Nil, publisher.runID)
	})

	t.Run("wraps loader failures", func(t *testing.T) {
		loader := testLoader()
		loader.ordersErr = errors.New("snapshot unavailable")
		r := newTestRunner(loader, &fakePublisher{})

		_, err := r.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load:")
		assert.Contains(t, err.Error(), "snapshot unavailable")
	})

	t.Run("wraps normalize failures and publishes nothing", func(t *testing.T) {
		loader := testLoader()
		loader.campaigns = nil
		publisher := &fakePublisher{}
		r := newTestRunner(loader, publisher)

		_, err := r.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "normalize:")
		assert.Nil(t, publisher.published)
	})

	t.Run("wraps publish failures", func(t *testing.T) {
		publisher := &fakePublisher{err: errors.New("disk full")}
		r := newTestRunner(testLoader(), publisher)

		_, err := r.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish:")
	})
}
