// Package scheduler drives repeated daily pipeline runs. Retries and run
// repetition live here, outside the federation core, which stays a pure
// function safe to re-invoke.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a single pipeline run invocation.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface.
type JobFunc func(ctx context.Context) error

// Run implements Job.
func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// Config holds the daily trigger settings. Times are UTC, matching the
// reference deployment's 15:00 GMT schedule.
type Config struct {
	Hour          int
	Minute        int
	CheckInterval time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns the reference deployment's schedule.
func DefaultConfig() Config {
	return Config{
		Hour:          15,
		Minute:        0,
		CheckInterval: time.Minute,
		RetryAttempts: 3,
		RetryDelay:    5 * time.Minute,
	}
}

// DailyTrigger runs a job once per calendar day at the configured UTC time.
type DailyTrigger struct {
	config Config
	job    Job
	logger *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a daily trigger for the given job.
func NewDailyTrigger(config Config, job Job, logger *zap.Logger) *DailyTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &DailyTrigger{
		config: config,
		job:    job,
		logger: logger,
	}
}

// Start begins the trigger loop. Calling Start on a running trigger is a
// no-op.
func (t *DailyTrigger) Start(ctx context.Context) {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("daily trigger started",
		zap.Int("hour", t.config.Hour),
		zap.Int("minute", t.config.Minute),
		zap.Duration("check_interval", t.config.CheckInterval),
	)
}

// Stop halts the trigger and waits for an in-flight run to finish or the
// context to expire.
func (t *DailyTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("daily trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *DailyTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndRun(ctx)
		}
	}
}

func (t *DailyTrigger) checkAndRun(ctx context.Context) {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	t.mu.Lock()
	alreadyRan := t.lastRunDate == today
	t.mu.Unlock()
	if alreadyRan {
		return
	}

	if now.Hour() != t.config.Hour || now.Minute() != t.config.Minute {
		return
	}

	t.mu.Lock()
	t.lastRunDate = today
	t.mu.Unlock()

	t.runWithRetries(ctx)
}

// runWithRetries invokes the job, retrying on failure. Retrying is safe:
// a failed run publishes nothing, and the pipeline is idempotent.
func (t *DailyTrigger) runWithRetries(ctx context.Context) {
	attempts := t.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		err := t.job.Run(ctx)
		if err == nil {
			return
		}
		t.logger.Error("scheduled run failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
		if attempt == attempts {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(t.config.RetryDelay):
		}
	}
}

// RunNow triggers one immediate run outside the schedule.
func (t *DailyTrigger) RunNow(ctx context.Context) error {
	return t.job.Run(ctx)
}
