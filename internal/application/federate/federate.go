// Package federate joins the normalized sources into the denormalized fact
// table and derives the four aggregate views. Federation is a pure function
// of its inputs: identical normalized inputs always produce byte-identical
// outputs, which is what makes daily re-runs and orchestrator retries safe.
package federate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartretail/pipeline/internal/application/normalize"
	"github.com/smartretail/pipeline/internal/domain/retail"
)

// RunCounters are the run-level figures handed to the orchestrator for
// logging and notification. They are not consumed computationally.
type RunCounters struct {
	OrdersProcessed int           `json:"orders_processed"`
	RowsRejected    int           `json:"rows_rejected"`
	MatchedOrders   int           `json:"matched_orders"`
	MatchRate       float64       `json:"match_rate"`
	Duration        time.Duration `json:"duration"`
}

// Result is the full federation output: the fact table, the four views, and
// the run counters. This is the sole contract handed to the reporter.
type Result struct {
	Facts     []retail.FactRow
	Daily     []retail.DailySalesRow
	Campaigns []retail.CampaignPerformanceRow
	Products  []retail.ProductPerformanceRow
	Countries []retail.CountryPerformanceRow
	Counters  RunCounters
}

// Federator builds fact tables and aggregate views.
type Federator struct {
	logger *zap.Logger
}

// New creates a Federator.
func New(logger *zap.Logger) *Federator {
	return &Federator{logger: logger}
}

// Run federates the normalized inputs. The campaign index build completes
// before any matching starts; once the fact table exists, the four view
// reductions run concurrently, each a read-only fold over it.
func (f *Federator) Run(ctx context.Context, in *normalize.Inputs) (*Result, error) {
	started := time.Now()

	index := NewCampaignIndex(in.Campaigns)
	trafficByDate := trafficIndex(in.WebTraffic)
	iotByDate := aggregateIoTDays(in.IoT)

	facts := make([]retail.FactRow, 0, len(in.Orders))
	matched := 0
	for i := range in.Orders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := buildFactRow(&in.Orders[i], index, trafficByDate, iotByDate)
		if row.InCampaign() {
			matched++
		}
		facts = append(facts, row)
	}

	result := &Result{Facts: facts}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Daily = buildDailySales(facts)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Campaigns = buildCampaignPerformance(facts)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Products = buildProductPerformance(facts)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Countries = buildCountryPerformance(facts)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Counters = RunCounters{
		OrdersProcessed: len(facts),
		RowsRejected:    in.Manifest.TotalRejected(),
		MatchedOrders:   matched,
		MatchRate:       matchRate(matched, len(facts)),
		Duration:        time.Since(started),
	}

	f.logger.Info("federation complete",
		zap.Int("fact_rows", len(facts)),
		zap.Int("matched_orders", matched),
		zap.Float64("match_rate", result.Counters.MatchRate),
		zap.Int("daily_rows", len(result.Daily)),
		zap.Int("campaign_rows", len(result.Campaigns)),
		zap.Int("product_rows", len(result.Products)),
		zap.Int("country_rows", len(result.Countries)),
		zap.Duration("duration", result.Counters.Duration),
	)

	return result, nil
}

func buildFactRow(
	order *retail.Order,
	index *CampaignIndex,
	traffic map[retail.Date]retail.WebTrafficDay,
	iot map[retail.Date]retail.IoTDay,
) retail.FactRow {
	row := retail.FactRow{Order: *order}

	if c := index.Match(order.ProductID, order.OrderDate); c != nil {
		row.Campaign = &retail.CampaignRef{
			Name:      c.Name,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
		}
	}
	if day, ok := traffic[order.OrderDate]; ok {
		row.Traffic = &retail.TrafficRef{
			Pageviews: day.Pageviews,
			Sessions:  day.Sessions,
		}
	}
	if day, ok := iot[order.OrderDate]; ok {
		row.IoT = &retail.IoTRef{
			Footfall:       day.Footfall,
			AvgTemperature: day.AvgTemperature,
		}
	}
	return row
}

// trafficIndex keys the traffic days by date for the exact-date join.
func trafficIndex(days []retail.WebTrafficDay) map[retail.Date]retail.WebTrafficDay {
	byDate := make(map[retail.Date]retail.WebTrafficDay, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}
	return byDate
}

// aggregateIoTDays folds timestamped readings into per-date aggregates:
// footfall summed, temperature averaged. A date only appears when it has at
// least one reading, so the mean never divides by zero.
func aggregateIoTDays(readings []retail.IoTReading) map[retail.Date]retail.IoTDay {
	type acc struct {
		footfall int64
		tempSum  float64
		count    int
	}
	accs := make(map[retail.Date]*acc)
	for i := range readings {
		date := readings[i].Date()
		a, ok := accs[date]
		if !ok {
			a = &acc{}
			accs[date] = a
		}
		a.footfall += readings[i].Footfall
		a.tempSum += readings[i].Temperature
		a.count++
	}

	days := make(map[retail.Date]retail.IoTDay, len(accs))
	for date, a := range accs {
		days[date] = retail.IoTDay{
			Date:           date,
			Footfall:       a.footfall,
			AvgTemperature: a.tempSum / float64(a.count),
			Readings:       a.count,
		}
	}
	return days
}

func matchRate(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
