package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayushi-gajendra/restaurant-insights/pkg/database"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/envconfig"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

// Config is the full configuration for one reporting run. Values are
// layered: code defaults, then the optional YAML file, then
// environment variables, then command-line flags.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
	Logging logger.Config `yaml:"logging"`

	Database DatabaseConfig `yaml:"database"`
}

// SourceConfig selects where the two tables are loaded from.
type SourceConfig struct {
	MenuPath   string `yaml:"menu"`
	OrdersPath string `yaml:"orders"`
	FromDB     bool   `yaml:"from_db"`
}

// ReportConfig holds the report parameters.
type ReportConfig struct {
	TopOrders      int    `yaml:"top_orders"`
	LeastOrdered   int    `yaml:"least_ordered"`
	BulkThreshold  int    `yaml:"bulk_threshold"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// OutputConfig selects the rendering of the report.
type OutputConfig struct {
	Format string `yaml:"format"` // markdown, text, json
	Path   string `yaml:"path"`   // empty writes to stdout
}

// DatabaseConfig mirrors the connection settings the YAML file may
// carry. Pool tuning stays environment-only.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Path     string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: SourceConfig{
			MenuPath:   "data/menu_items.csv",
			OrdersPath: "data/order_details.csv",
		},
		Report: ReportConfig{
			TopOrders:      5,
			LeastOrdered:   5,
			BulkThreshold:  12,
			CurrencySymbol: "$",
		},
		Output: OutputConfig{
			Format: "markdown",
		},
		Logging: logger.DefaultConfig(),
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment variables onto the configuration.
// The environment wins over the file but loses to explicit flags.
func (c *Config) ApplyEnv() {
	if v := envconfig.GetEnv("LOG_LEVEL", ""); v != "" {
		c.Logging.Level = envconfig.GetLogLevel()
	}
	if v := envconfig.GetEnv("LOG_FORMAT", ""); v != "" {
		c.Logging.Format = v
	}
	if v := envconfig.GetEnv("LOG_OUTPUT", ""); v != "" {
		c.Logging.Output = v
	}
	if v := envconfig.GetEnv("ENVIRONMENT", ""); v != "" {
		c.Logging.Environment = v
	}
	if v := envconfig.GetEnv("MENU_FILE", ""); v != "" {
		c.Source.MenuPath = v
	}
	if v := envconfig.GetEnv("ORDERS_FILE", ""); v != "" {
		c.Source.OrdersPath = v
	}
	c.Source.FromDB = envconfig.GetEnvBool("FROM_DB", c.Source.FromDB)
}

// DatabaseConfig resolves the effective connection settings: package
// defaults, then the config file, then DB_* environment variables.
func (c Config) DatabaseConfig() database.Config {
	dbc := database.DefaultConfig()

	if c.Database.Driver != "" {
		dbc.Driver = c.Database.Driver
	}
	if c.Database.Host != "" {
		dbc.Host = c.Database.Host
	}
	if c.Database.Port != 0 {
		dbc.Port = c.Database.Port
	}
	if c.Database.User != "" {
		dbc.User = c.Database.User
	}
	if c.Database.Password != "" {
		dbc.Password = c.Database.Password
	}
	if c.Database.Name != "" {
		dbc.DBName = c.Database.Name
	}
	if c.Database.SSLMode != "" {
		dbc.SSLMode = c.Database.SSLMode
	}
	if c.Database.Path != "" {
		dbc.Path = c.Database.Path
	}

	return envconfig.ApplyDatabaseEnv(dbc)
}

// Validate checks the configuration before a run.
func (c Config) Validate() error {
	if !c.Source.FromDB {
		if c.Source.MenuPath == "" {
			return fmt.Errorf("menu file path cannot be empty")
		}
		if c.Source.OrdersPath == "" {
			return fmt.Errorf("orders file path cannot be empty")
		}
	}
	if c.Report.TopOrders <= 0 {
		return fmt.Errorf("top_orders must be positive, got %d", c.Report.TopOrders)
	}
	if c.Report.LeastOrdered <= 0 {
		return fmt.Errorf("least_ordered must be positive, got %d", c.Report.LeastOrdered)
	}
	if c.Report.BulkThreshold <= 0 {
		return fmt.Errorf("bulk_threshold must be positive, got %d", c.Report.BulkThreshold)
	}
	switch c.Output.Format {
	case "markdown", "md", "text", "txt", "plain", "json":
	default:
		return fmt.Errorf("unknown output format %q (allowed: markdown, text, json)", c.Output.Format)
	}
	return nil
}
