package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/domain/shared"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

func testRawInputs() *RawInputs {
	return &RawInputs{
		Orders: []source.RawOrder{
			{OrderID: 1, OrderDate: "2024-01-05", Country: "UK", ProductID: 3, Quantity: "2", TotalAmount: "100"},
			{OrderID: 2, OrderDate: "2024-01-06", Country: "France", ProductID: 4, Quantity: "1", TotalAmount: "bad"},
		},
		Campaigns: []source.RawCampaign{
			{CampaignName: "Spring Sale", ProductID: "3", StartDate: "2024-01-01", EndDate: "2024-01-31"},
		},
		WebTraffic: []source.RawTraffic{
			{Date: "2024-01-05", Pageviews: "50", Sessions: "20", Source: "organic"},
		},
		IoT: []source.RawIoT{
			{Timestamp: "2024-01-05 09:00:00", Footfall: "12", Temperature: "20.5"},
		},
	}
}

func TestNormalizerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes all four sources and fills the manifest", func(t *testing.T) {
		n := New(testWindow(), zap.NewNop())
		out, err := n.Run(ctx, testRawInputs())
		require.NoError(t, err)

		assert.Len(t, out.Orders, 1)
		assert.Len(t, out.Campaigns, 1)
		assert.Len(t, out.WebTraffic, 1)
		assert.Len(t, out.IoT, 1)

		assert.Equal(t, 1, out.Manifest.Orders.Rejected)
		assert.Equal(t, 1, out.Manifest.TotalRejected())
		assert.Equal(t, 4, out.Manifest.TotalProcessed())
	})

	t.Run("fails when the run window is inverted", func(t *testing.T) {
		w := retail.Window{From: retail.MustDate("2024-06-01"), To: retail.MustDate("2024-01-01")}
		n := New(w, zap.NewNop())
		_, err := n.Run(ctx, testRawInputs())
		assert.ErrorIs(t, err, shared.ErrInvalidWindow)
	})

	t.Run("fails when any source is empty", func(t *testing.T) {
		for _, tt := range []struct {
			name   string
			mutate func(*RawInputs)
		}{
			{"orders", func(r *RawInputs) { r.Orders = nil }},
			{"campaigns", func(r *RawInputs) { r.Campaigns = nil }},
			{"web_traffic", func(r *RawInputs) { r.WebTraffic = nil }},
			{"iot", func(r *RawInputs) { r.IoT = nil }},
		} {
			t.Run(tt.name, func(t *testing.T) {
				raw := testRawInputs()
				tt.mutate(raw)
				n := New(testWindow(), zap.NewNop())
				_, err := n.Run(ctx, raw)
				require.ErrorIs(t, err, shared.ErrEmptySource)
				assert.Contains(t, err.Error(), tt.name)
			})
		}
	})

	t.Run("fails when every order is rejected or out of window", func(t *testing.T) {
		raw := testRawInputs()
		raw.Orders = []source.RawOrder{
			{OrderID: 1, OrderDate: "2023-06-01", ProductID: 3, Quantity: "1", TotalAmount: "10"},
			{OrderID: 2, OrderDate: "nope", ProductID: 3, Quantity: "1", TotalAmount: "10"},
		}
		n := New(testWindow(), zap.NewNop())
		_, err := n.Run(ctx, raw)
		assert.ErrorIs(t, err, shared.ErrEmptySource)
	})
}
