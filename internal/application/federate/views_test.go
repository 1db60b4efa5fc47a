package federate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartretail/pipeline/internal/domain/retail"
)

func fact(o retail.Order, campaignName string) retail.FactRow {
	row := retail.FactRow{Order: o}
	if campaignName != "" {
		row.Campaign = &retail.CampaignRef{Name: campaignName}
	}
	return row
}

func TestBuildDailySales(t *testing.T) {
	facts := []retail.FactRow{
		fact(order(3, "2024-01-10", "UK", 1, 1, "50"), ""),
		fact(order(1, "2024-01-05", "UK", 1, 2, "100"), ""),
		fact(order(2, "2024-01-05", "France", 2, 3, "25.50"), ""),
	}

	rows := buildDailySales(facts)
	require.Len(t, rows, 2)

	// Chronological, not revenue-ordered.
	assert.Equal(t, retail.MustDate("2024-01-05"), rows[0].Date)
	assert.True(t, rows[0].Revenue.Equal(decimal.RequireFromString("125.50")))
	assert.Equal(t, int64(2), rows[0].Orders)
	assert.Equal(t, int64(5), rows[0].Quantity)

	assert.Equal(t, retail.MustDate("2024-01-10"), rows[1].Date)
	assert.Equal(t, int64(1), rows[1].Orders)
}

func TestBuildCampaignPerformance(t *testing.T) {
	facts := []retail.FactRow{
		fact(order(1, "2024-01-05", "UK", 1, 1, "100"), "Beta"),
		fact(order(2, "2024-01-06", "UK", 1, 1, "100"), "Alpha"),
		fact(order(3, "2024-01-07", "UK", 1, 1, "300"), "Gamma"),
		fact(order(4, "2024-01-08", "UK", 1, 1, "40"), ""),
	}

	rows := buildCampaignPerformance(facts)
	require.Len(t, rows, 3)

	// Revenue descending; equal revenue breaks on name ascending. The
	// unmatched order contributes to no campaign.
	assert.Equal(t, "Gamma", rows[0].Name)
	assert.Equal(t, "Alpha", rows[1].Name)
	assert.Equal(t, "Beta", rows[2].Name)
	total := rows[0].Revenue.Add(rows[1].Revenue).Add(rows[2].Revenue)
	assert.True(t, total.Equal(decimal.NewFromInt(500)))
}

func TestBuildProductPerformance(t *testing.T) {
	facts := []retail.FactRow{
		fact(order(1, "2024-01-05", "UK", 9, 2, "100"), ""),
		fact(order(2, "2024-01-06", "UK", 2, 1, "100"), ""),
		fact(order(3, "2024-01-07", "UK", 5, 4, "250"), ""),
	}

	rows := buildProductPerformance(facts)
	require.Len(t, rows, 3)
	assert.Equal(t, 5, rows[0].ProductID)
	// Products 2 and 9 tie on revenue; the smaller id comes first.
	assert.Equal(t, 2, rows[1].ProductID)
	assert.Equal(t, 9, rows[2].ProductID)
	assert.Equal(t, int64(4), rows[0].Quantity)
}

func TestBuildCountryPerformance(t *testing.T) {
	facts := []retail.FactRow{
		fact(order(1, "2024-01-05", "UK", 1, 1, "100"), ""),
		fact(order(2, "2024-01-06", "France", 1, 1, "100"), ""),
		fact(order(3, "2024-01-07", "UK", 1, 1, "50"), ""),
	}

	rows := buildCountryPerformance(facts)
	require.Len(t, rows, 2)
	assert.Equal(t, "UK", rows[0].Country)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(2), rows[0].Orders)
	assert.Equal(t, "France", rows[1].Country)
}
