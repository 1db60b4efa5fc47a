package retail

// CampaignRef is the campaign slice of a fact row. It carries the window so
// the fact table is self-describing without re-joining the campaign source.
type CampaignRef struct {
	Name      string
	StartDate Date
	EndDate   Date
}

// TrafficRef is the web-traffic slice of a fact row.
type TrafficRef struct {
	Pageviews int64
	Sessions  int64
}

// IoTRef is the per-day sensor slice of a fact row.
type IoTRef struct {
	Footfall       int64
	AvgTemperature float64
}

// FactRow is one denormalized row of the fact table: exactly one order,
// enriched with the matched campaign and the order date's traffic and sensor
// aggregates. Enrichment references are nil when the corresponding source has
// nothing for the order's date; a missing join never drops the order.
type FactRow struct {
	Order    Order
	Campaign *CampaignRef
	Traffic  *TrafficRef
	IoT      *IoTRef
}

// InCampaign reports whether the order matched an active campaign.
func (f *FactRow) InCampaign() bool {
	return f.Campaign != nil
}
