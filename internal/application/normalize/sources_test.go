package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

func TestNormalizeCampaigns(t *testing.T) {
	t.Run("keeps valid campaigns and drops invalid ones", func(t *testing.T) {
		raw := []source.RawCampaign{
			{CampaignName: "Spring Sale", ProductID: "7", StartDate: "2024-03-01", EndDate: "2024-03-31"},
			{CampaignName: "", ProductID: "7", StartDate: "2024-03-01", EndDate: "2024-03-31"},
			{CampaignName: "Bad Product", ProductID: "zero", StartDate: "2024-03-01", EndDate: "2024-03-31"},
			{CampaignName: "Negative Product", ProductID: "-2", StartDate: "2024-03-01", EndDate: "2024-03-31"},
			{CampaignName: "Bad Start", ProductID: "7", StartDate: "soon", EndDate: "2024-03-31"},
			{CampaignName: "Inverted", ProductID: "7", StartDate: "2024-04-01", EndDate: "2024-03-01"},
		}
		campaigns, manifest := NormalizeCampaigns(raw)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "Spring Sale", campaigns[0].Name)
		assert.Equal(t, 7, campaigns[0].ProductID)

		assert.Equal(t, 1, manifest.Processed)
		assert.Equal(t, 5, manifest.Rejected)
		assert.Equal(t, 1, manifest.Reasons[ReasonMissingKey])
		assert.Equal(t, 2, manifest.Reasons[ReasonBadProductID])
		assert.Equal(t, 1, manifest.Reasons[ReasonBadDate])
		assert.Equal(t, 1, manifest.Reasons[ReasonInvalidWindow])
	})

	t.Run("keeps a single-day window", func(t *testing.T) {
		raw := []source.RawCampaign{
			{CampaignName: "Flash", ProductID: "1", StartDate: "2024-05-05", EndDate: "2024-05-05"},
		}
		campaigns, manifest := NormalizeCampaigns(raw)
		require.Len(t, campaigns, 1)
		assert.Equal(t, 0, manifest.Rejected)
	})
}

func TestNormalizeTraffic(t *testing.T) {
	t.Run("sums duplicate dates and sorts the result", func(t *testing.T) {
		raw := []source.RawTraffic{
			{Date: "2024-01-06", Pageviews: "100", Sessions: "40", Source: "organic"},
			{Date: "2024-01-05", Pageviews: "50", Sessions: "20", Source: "organic"},
			{Date: "2024-01-05", Pageviews: "30", Sessions: "10", Source: "paid"},
		}
		days, manifest := NormalizeTraffic(raw)
		require.Len(t, days, 2)

		assert.Equal(t, retail.MustDate("2024-01-05"), days[0].Date)
		assert.Equal(t, int64(80), days[0].Pageviews)
		assert.Equal(t, int64(30), days[0].Sessions)
		assert.Equal(t, retail.MustDate("2024-01-06"), days[1].Date)

		assert.Equal(t, 3, manifest.Processed)
		assert.Equal(t, 0, manifest.Rejected)
	})

	t.Run("rejects bad dates and negative counts", func(t *testing.T) {
		raw := []source.RawTraffic{
			{Date: "someday", Pageviews: "100", Sessions: "40"},
			{Date: "2024-01-05", Pageviews: "-1", Sessions: "40"},
			{Date: "2024-01-05", Pageviews: "ten", Sessions: "40"},
		}
		days, manifest := NormalizeTraffic(raw)
		assert.Empty(t, days)
		assert.Equal(t, 1, manifest.Reasons[ReasonBadDate])
		assert.Equal(t, 1, manifest.Reasons[ReasonNegativeValue])
		assert.Equal(t, 1, manifest.Reasons[ReasonBadNumber])
	})
}

func TestNormalizeIoT(t *testing.T) {
	t.Run("keeps readings at timestamp granularity", func(t *testing.T) {
		raw := []source.RawIoT{
			{Timestamp: "2024-01-05 09:00:00", Footfall: "12", Temperature: "20.5"},
			{Timestamp: "2024-01-05 10:00:00", Footfall: "8", Temperature: "21.0"},
		}
		readings, manifest := NormalizeIoT(raw)
		require.Len(t, readings, 2)
		assert.Equal(t, int64(12), readings[0].Footfall)
		assert.Equal(t, 20.5, readings[0].Temperature)
		assert.Equal(t, retail.MustDate("2024-01-05"), readings[0].Date())
		assert.Equal(t, 2, manifest.Processed)
	})

	t.Run("rejects bad timestamps, bad numbers, and negative footfall", func(t *testing.T) {
		raw := []source.RawIoT{
			{Timestamp: "dawn", Footfall: "12", Temperature: "20.5"},
			{Timestamp: "2024-01-05 09:00:00", Footfall: "-4", Temperature: "20.5"},
			{Timestamp: "2024-01-05 09:00:00", Footfall: "12", Temperature: "warm"},
		}
		readings, manifest := NormalizeIoT(raw)
		assert.Empty(t, readings)
		assert.Equal(t, 3, manifest.Rejected)
		assert.Equal(t, 1, manifest.Reasons[ReasonBadDate])
		assert.Equal(t, 1, manifest.Reasons[ReasonNegativeValue])
		assert.Equal(t, 1, manifest.Reasons[ReasonBadNumber])
	})
}

func TestSourceManifestReasonCounts(t *testing.T) {
	m := newSourceManifest("orders")
	m.reject(ReasonBadNumber)
	m.reject(ReasonBadDate)
	m.reject(ReasonBadDate)

	counts := m.ReasonCounts()
	require.Len(t, counts, 2)
	assert.Equal(t, ReasonCount{Reason: ReasonBadDate, Count: 2}, counts[0])
	assert.Equal(t, ReasonCount{Reason: ReasonBadNumber, Count: 1}, counts[1])
}
