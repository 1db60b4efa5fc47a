// Package source reads the four raw retail feeds: the relational orders
// snapshot, the marketing-campaign CSV, the web-traffic JSON export, and the
// IoT sensor CSV. Loaders return string-typed rows with source-native field
// names; all type coercion and validation belongs to the normalizer.
package source

// RawOrder is one row of the orders snapshot. The date and the numeric
// columns are kept textual because the snapshot mixes representations
// (currency symbols in amounts, varying date layouts).
type RawOrder struct {
	OrderID     int64
	OrderDate   string
	Country     string
	ProductID   int64
	Quantity    string
	TotalAmount string
}

// RawCampaign is one row of the marketing CSV.
type RawCampaign struct {
	CampaignName string
	ProductID    string
	StartDate    string
	EndDate      string
}

// RawTraffic is one entry of the web-traffic JSON export.
type RawTraffic struct {
	Date      string
	Pageviews string
	Sessions  string
	Source    string
}

// RawIoT is one row of the IoT sensor CSV.
type RawIoT struct {
	Timestamp   string
	Footfall    string
	Temperature string
}
