package normalize

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/domain/shared"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

// RawInputs is the Loader → Normalizer contract: the four raw collections of
// one run snapshot.
type RawInputs struct {
	Orders     []source.RawOrder
	Campaigns  []source.RawCampaign
	WebTraffic []source.RawTraffic
	IoT        []source.RawIoT
}

// Inputs is the Normalizer → Federator contract: cleaned, fully typed record
// collections plus the rejection manifest.
type Inputs struct {
	Orders     []retail.Order
	Campaigns  []retail.Campaign
	WebTraffic []retail.WebTrafficDay
	IoT        []retail.IoTReading
	Manifest   Manifest
}

// Normalizer cleans the four sources of a run.
type Normalizer struct {
	window retail.Window
	logger *zap.Logger
}

// New creates a Normalizer for the given run window.
func New(window retail.Window, logger *zap.Logger) *Normalizer {
	return &Normalizer{window: window, logger: logger}
}

// Run normalizes all four sources. The sources are independent, so they are
// cleaned concurrently; each goroutine writes only its own result slot.
// A source that arrives entirely empty is a structural error: federating a
// subset of sources would silently skew every aggregate.
func (n *Normalizer) Run(ctx context.Context, raw *RawInputs) (*Inputs, error) {
	if !n.window.Valid() {
		return nil, shared.ErrInvalidWindow
	}
	if err := checkNonEmpty(raw); err != nil {
		return nil, err
	}

	out := &Inputs{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.Orders, out.Manifest.Orders = NormalizeOrders(raw.Orders, n.window)
		return nil
	})
	g.Go(func() error {
		out.Campaigns, out.Manifest.Campaigns = NormalizeCampaigns(raw.Campaigns)
		return nil
	})
	g.Go(func() error {
		out.WebTraffic, out.Manifest.WebTraffic = NormalizeTraffic(raw.WebTraffic)
		return nil
	})
	g.Go(func() error {
		out.IoT, out.Manifest.IoT = NormalizeIoT(raw.IoT)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.logManifest(&out.Manifest)

	if len(out.Orders) == 0 {
		// Every order was rejected or out of window. There is no fact table
		// to build; surface it rather than publishing empty aggregates.
		return nil, fmt.Errorf("orders: all %d records rejected or out of window: %w",
			len(raw.Orders), shared.ErrEmptySource)
	}

	return out, nil
}

func checkNonEmpty(raw *RawInputs) error {
	named := []struct {
		name string
		n    int
	}{
		{"orders", len(raw.Orders)},
		{"campaigns", len(raw.Campaigns)},
		{"web_traffic", len(raw.WebTraffic)},
		{"iot", len(raw.IoT)},
	}
	for _, s := range named {
		if s.n == 0 {
			return fmt.Errorf("%s: %w", s.name, shared.ErrEmptySource)
		}
	}
	return nil
}

func (n *Normalizer) logManifest(m *Manifest) {
	for _, s := range []*SourceManifest{m.Orders, m.Campaigns, m.WebTraffic, m.IoT} {
		fields := []zap.Field{
			zap.String("source", s.Source),
			zap.Int("processed", s.Processed),
			zap.Int("rejected", s.Rejected),
		}
		if s.OutOfWindow > 0 {
			fields = append(fields, zap.Int("out_of_window", s.OutOfWindow))
		}
		for _, rc := range s.ReasonCounts() {
			fields = append(fields, zap.Int("reason_"+string(rc.Reason), rc.Count))
		}
		n.logger.Info("source normalized", fields...)
	}
}
