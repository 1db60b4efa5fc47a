package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartretail/pipeline/internal/application/federate"
	"github.com/smartretail/pipeline/internal/application/normalize"
	"github.com/smartretail/pipeline/internal/domain/shared"
)

// Publisher writes a run's complete output set. Files are staged into a
// temporary sibling directory and renamed into place in one step, so a
// consumer either sees the previous complete run or the new complete run,
// never a partial mix.
type Publisher struct {
	dir    string
	logger *zap.Logger
}

// NewPublisher creates a Publisher targeting the given directory.
func NewPublisher(dir string, logger *zap.Logger) *Publisher {
	return &Publisher{dir: dir, logger: logger}
}

// Dir returns the publish target directory.
func (p *Publisher) Dir() string {
	return p.dir
}

// Publish stages and atomically publishes the result, the manifest, and the
// run summary. A cancelled context aborts before anything is renamed.
func (p *Publisher) Publish(ctx context.Context, result *federate.Result, manifest *normalize.Manifest, runID uuid.UUID) error {
	parent := filepath.Dir(p.dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create output parent: %w", err)
	}

	staging := filepath.Join(parent, fmt.Sprintf(".%s.staging-%s", filepath.Base(p.dir), runID))
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := writeAll(staging, result); err != nil {
		return err
	}
	if err := writeSummary(staging, result, manifest, runID); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishAborted, err)
	}

	// Swap the staged directory into place. Removing the previous run first
	// is the only non-atomic step; the staged set itself is always complete.
	if err := os.RemoveAll(p.dir); err != nil {
		return fmt.Errorf("remove previous output: %w", err)
	}
	if err := os.Rename(staging, p.dir); err != nil {
		return fmt.Errorf("publish output: %w", err)
	}

	p.logger.Info("outputs published",
		zap.String("dir", p.dir),
		zap.String("run_id", runID.String()),
		zap.Int("fact_rows", len(result.Facts)),
	)
	return nil
}
