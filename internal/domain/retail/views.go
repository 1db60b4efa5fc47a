package retail

import "github.com/shopspring/decimal"

// DailySalesRow is one day of the daily-sales view. Rows are ordered
// chronologically for time-series consumers.
type DailySalesRow struct {
	Date     Date
	Revenue  decimal.Decimal
	Orders   int64
	Quantity int64
}

// CampaignPerformanceRow is one campaign of the campaign view. Orders without
// a matched campaign are excluded from this view only. Rows are ordered by
// revenue descending, name ascending on ties.
type CampaignPerformanceRow struct {
	Name    string
	Revenue decimal.Decimal
	Orders  int64
}

// ProductPerformanceRow is one product of the product view, ordered by
// revenue descending, product id ascending on ties.
type ProductPerformanceRow struct {
	ProductID int
	Revenue   decimal.Decimal
	Quantity  int64
}

// CountryPerformanceRow is one country of the country view, ordered by
// revenue descending, country ascending on ties.
type CountryPerformanceRow struct {
	Country string
	Revenue decimal.Decimal
	Orders  int64
}
