package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smartretail/pipeline/internal/application/federate"
	"github.com/smartretail/pipeline/internal/application/normalize"
	"github.com/smartretail/pipeline/internal/application/pipeline"
	"github.com/smartretail/pipeline/internal/infrastructure/config"
	"github.com/smartretail/pipeline/internal/infrastructure/logger"
	"github.com/smartretail/pipeline/internal/infrastructure/output"
	"github.com/smartretail/pipeline/internal/infrastructure/scheduler"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (defaults to ./config.toml)")
	daemon := flag.Bool("daemon", false, "keep running and execute the pipeline on the daily schedule")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting smart retail pipeline",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Bool("daemon", *daemon),
	)

	db, err := source.OpenDatabase(source.DatabaseConfig{
		Driver: cfg.Sources.OrdersDriver,
		DSN:    cfg.Sources.OrdersDSN,
		Table:  cfg.Sources.OrdersTable,
	})
	if err != nil {
		log.Fatal("failed to open orders database", zap.Error(err))
	}
	defer func() { _ = source.CloseDatabase(db) }()

	window, err := cfg.RunWindow()
	if err != nil {
		log.Fatal("invalid run window", zap.Error(err))
	}

	loaders := source.NewSet(db, cfg.Sources.OrdersTable, source.Paths{
		MarketingCSV:   cfg.Sources.MarketingCSV,
		WebTrafficJSON: cfg.Sources.WebTrafficJSON,
		IoTStreamCSV:   cfg.Sources.IoTStreamCSV,
	})

	runner := pipeline.NewRunner(
		loaders,
		normalize.New(window, log.Named("normalize")),
		federate.New(log.Named("federate")),
		output.NewPublisher(cfg.Output.Dir, log.Named("output")),
		log.Named("pipeline"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !*daemon && !cfg.Scheduler.Enabled {
		if _, err := runner.Run(ctx); err != nil {
			log.Error("pipeline run failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	trigger := scheduler.NewDailyTrigger(
		scheduler.Config{
			Hour:          cfg.Scheduler.Hour,
			Minute:        cfg.Scheduler.Minute,
			CheckInterval: cfg.Scheduler.CheckInterval,
			RetryAttempts: 3,
			RetryDelay:    5 * time.Minute,
		},
		scheduler.JobFunc(func(ctx context.Context) error {
			_, err := runner.Run(ctx)
			return err
		}),
		log.Named("scheduler"),
	)
	trigger.Start(ctx)

	<-ctx.Done()
	log.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := trigger.Stop(stopCtx); err != nil {
		log.Error("trigger shutdown timed out", zap.Error(err))
	}
}
