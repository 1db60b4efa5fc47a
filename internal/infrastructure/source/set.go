package source

import (
	"context"

	"gorm.io/gorm"
)

// Set bundles the four loaders of a deployment: the orders snapshot plus the
// three flat-file feeds.
type Set struct {
	orders   *OrderLoader
	campaign *CampaignLoader
	traffic  *TrafficLoader
	iot      *IoTLoader
}

// Paths locates the flat-file feeds.
type Paths struct {
	MarketingCSV   string
	WebTrafficJSON string
	IoTStreamCSV   string
}

// NewSet creates a loader set over an open orders database and file paths.
func NewSet(db *gorm.DB, table string, paths Paths) *Set {
	return &Set{
		orders:   NewOrderLoader(db, table),
		campaign: NewCampaignLoader(paths.MarketingCSV),
		traffic:  NewTrafficLoader(paths.WebTrafficJSON),
		iot:      NewIoTLoader(paths.IoTStreamCSV),
	}
}

// LoadOrders reads the orders snapshot.
func (s *Set) LoadOrders(ctx context.Context) ([]RawOrder, error) {
	return s.orders.Load(ctx)
}

// LoadCampaigns reads the marketing CSV.
func (s *Set) LoadCampaigns(ctx context.Context) ([]RawCampaign, error) {
	return s.campaign.Load(ctx)
}

// LoadWebTraffic reads the web-traffic JSON export.
func (s *Set) LoadWebTraffic(ctx context.Context) ([]RawTraffic, error) {
	return s.traffic.Load(ctx)
}

// LoadIoT reads the IoT sensor CSV.
func (s *Set) LoadIoT(ctx context.Context) ([]RawIoT, error) {
	return s.iot.Load(ctx)
}
