// Package pipeline orchestrates one batch run: load all four sources into
// memory, normalize, federate, and atomically publish the outputs. The run is
// a pure function of the source snapshots and the as-of window, so the
// scheduler may re-invoke it freely on failure.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartretail/pipeline/internal/application/federate"
	"github.com/smartretail/pipeline/internal/application/normalize"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

// Loader supplies the four raw record collections of one run snapshot.
type Loader interface {
	LoadOrders(ctx context.Context) ([]source.RawOrder, error)
	LoadCampaigns(ctx context.Context) ([]source.RawCampaign, error)
	LoadWebTraffic(ctx context.Context) ([]source.RawTraffic, error)
	LoadIoT(ctx context.Context) ([]source.RawIoT, error)
}

// Publisher persists a complete run output set atomically.
type Publisher interface {
	Publish(ctx context.Context, result *federate.Result, manifest *normalize.Manifest, runID uuid.UUID) error
}

// Runner executes pipeline runs.
type Runner struct {
	loader     Loader
	normalizer *normalize.Normalizer
	federator  *federate.Federator
	publisher  Publisher
	logger     *zap.Logger
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(
	loader Loader,
	normalizer *normalize.Normalizer,
	federator *federate.Federator,
	publisher Publisher,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		loader:     loader,
		normalizer: normalizer,
		federator:  federator,
		publisher:  publisher,
		logger:     logger,
	}
}

// Run executes one complete run and returns the federation result. On any
// error no outputs are published.
func (r *Runner) Run(ctx context.Context) (*federate.Result, error) {
	runID := uuid.New()
	started := time.Now()
	log := r.logger.With(zap.String("run_id", runID.String()))
	log.Info("pipeline run starting")

	raw, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	inputs, err := r.normalizer.Run(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	result, err := r.federator.Run(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("federate: %w", err)
	}

	if err := r.publisher.Publish(ctx, result, &inputs.Manifest, runID); err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}

	log.Info("pipeline run complete",
		zap.Int("fact_rows", len(result.Facts)),
		zap.Int("rows_rejected", result.Counters.RowsRejected),
		zap.Float64("match_rate", result.Counters.MatchRate),
		zap.Duration("duration", time.Since(started)),
	)
	return result, nil
}

// load reads all four sources fully into memory before federation starts.
// The reads are independent and run concurrently.
func (r *Runner) load(ctx context.Context) (*normalize.RawInputs, error) {
	raw := &normalize.RawInputs{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		raw.Orders, err = r.loader.LoadOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		raw.Campaigns, err = r.loader.LoadCampaigns(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		raw.WebTraffic, err = r.loader.LoadWebTraffic(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		raw.IoT, err = r.loader.LoadIoT(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raw, nil
}
