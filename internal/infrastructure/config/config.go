package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/smartretail/pipeline/internal/domain/retail"
)

// Config holds all pipeline configuration.
type Config struct {
	App       AppConfig
	Sources   SourcesConfig
	Window    WindowConfig
	Output    OutputConfig
	Scheduler SchedulerConfig
	Log       LogConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name string
	Env  string
}

// SourcesConfig locates the four raw sources.
type SourcesConfig struct {
	OrdersDriver   string // sqlite or postgres
	OrdersDSN      string // file path for sqlite, DSN for postgres
	OrdersTable    string
	MarketingCSV   string
	WebTrafficJSON string
	IoTStreamCSV   string
}

// WindowConfig bounds which orders are in scope for a run.
type WindowConfig struct {
	From string // 2006-01-02
	To   string
}

// OutputConfig holds the publish target.
type OutputConfig struct {
	Dir string
}

// SchedulerConfig holds the daily trigger settings (UTC).
type SchedulerConfig struct {
	Enabled       bool
	Hour          int
	Minute        int
	CheckInterval time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with RETAIL_ prefix (e.g. RETAIL_OUTPUT_DIR)
// 2. config.toml
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/smartretail")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Missing default config file is fine; defaults and env vars apply.
	}

	v.SetEnvPrefix("RETAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Sources: SourcesConfig{
			OrdersDriver:   v.GetString("sources.orders_driver"),
			OrdersDSN:      v.GetString("sources.orders_dsn"),
			OrdersTable:    v.GetString("sources.orders_table"),
			MarketingCSV:   v.GetString("sources.marketing_csv"),
			WebTrafficJSON: v.GetString("sources.web_traffic_json"),
			IoTStreamCSV:   v.GetString("sources.iot_stream_csv"),
		},
		Window: WindowConfig{
			From: v.GetString("window.from"),
			To:   v.GetString("window.to"),
		},
		Output: OutputConfig{
			Dir: v.GetString("output.dir"),
		},
		Scheduler: SchedulerConfig{
			Enabled:       v.GetBool("scheduler.enabled"),
			Hour:          v.GetInt("scheduler.hour"),
			Minute:        v.GetInt("scheduler.minute"),
			CheckInterval: v.GetDuration("scheduler.check_interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "smartretail-pipeline"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Sources.OrdersDriver == "" {
		cfg.Sources.OrdersDriver = "sqlite"
	}
	if cfg.Sources.OrdersDSN == "" {
		cfg.Sources.OrdersDSN = "data/raw/retail.db"
	}
	if cfg.Sources.OrdersTable == "" {
		cfg.Sources.OrdersTable = "orders"
	}
	if cfg.Sources.MarketingCSV == "" {
		cfg.Sources.MarketingCSV = "data/raw/marketing_campaigns.csv"
	}
	if cfg.Sources.WebTrafficJSON == "" {
		cfg.Sources.WebTrafficJSON = "data/raw/web_traffic.json"
	}
	if cfg.Sources.IoTStreamCSV == "" {
		cfg.Sources.IoTStreamCSV = "data/raw/iot_stream.csv"
	}
	// The reference deployment processes all of 2024.
	if cfg.Window.From == "" {
		cfg.Window.From = "2024-01-01"
	}
	if cfg.Window.To == "" {
		cfg.Window.To = "2024-12-31"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "data/processed"
	}
	// 15:00 GMT matches the reference deployment's daily schedule.
	if cfg.Scheduler.Hour == 0 && cfg.Scheduler.Minute == 0 {
		cfg.Scheduler.Hour = 15
	}
	if cfg.Scheduler.CheckInterval == 0 {
		cfg.Scheduler.CheckInterval = time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// validate performs validation on the configuration.
func (c *Config) validate() error {
	switch c.Sources.OrdersDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("sources.orders_driver must be sqlite or postgres, got %q", c.Sources.OrdersDriver)
	}

	window, err := c.RunWindow()
	if err != nil {
		return err
	}
	if !window.Valid() {
		return fmt.Errorf("window.from (%s) must not be after window.to (%s)", c.Window.From, c.Window.To)
	}

	if c.Scheduler.Hour < 0 || c.Scheduler.Hour > 23 {
		return fmt.Errorf("scheduler.hour must be 0-23, got %d", c.Scheduler.Hour)
	}
	if c.Scheduler.Minute < 0 || c.Scheduler.Minute > 59 {
		return fmt.Errorf("scheduler.minute must be 0-59, got %d", c.Scheduler.Minute)
	}
	return nil
}

// RunWindow parses the configured as-of window.
func (c *Config) RunWindow() (retail.Window, error) {
	from, err := retail.ParseDate(c.Window.From)
	if err != nil {
		return retail.Window{}, fmt.Errorf("window.from: %w", err)
	}
	to, err := retail.ParseDate(c.Window.To)
	if err != nil {
		return retail.Window{}, fmt.Errorf("window.to: %w", err)
	}
	return retail.Window{From: from, To: to}, nil
}
