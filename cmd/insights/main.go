package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayushi-gajendra/restaurant-insights/internal/config"
	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/envconfig"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

var (
	// Global flags
	configPath string
	envFile    string
	menuPath   string
	ordersPath string
	fromDB     bool
	verbose    bool

	cfg config.Config
	log *logger.Logger
)

// errIntegrity marks a run that completed but found referential
// violations. It maps onto its own exit code.
var errIntegrity = errors.New("dataset failed integrity checks")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "One-shot analytical reports over a restaurant order dataset",
	Long: `insights loads a restaurant menu and its order log, validates both
tables, and computes a fixed set of sales and spending reports.

The two tables come from CSV files (--menu, --orders) or from a
relational database (--from-db with DB_* settings). All aggregation
happens in memory; the run is batch and stateless.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Close()
		}
	},
}

// setup layers the configuration (defaults, file, environment, flags)
// and builds the logger every command shares.
func setup(cmd *cobra.Command) error {
	if envFile != "" {
		if err := envconfig.LoadEnvFile(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	// Flags win over file and environment.
	if cmd.Flags().Changed("menu") {
		cfg.Source.MenuPath = menuPath
	}
	if cmd.Flags().Changed("orders") {
		cfg.Source.OrdersPath = ordersPath
	}
	if cmd.Flags().Changed("from-db") {
		cfg.Source.FromDB = fromDB
	}
	if verbose {
		cfg.Logging.Level = logger.LevelDebug
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log = logger.New(cfg.Logging)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file to load")
	rootCmd.PersistentFlags().StringVar(&menuPath, "menu", "data/menu_items.csv", "path to the menu items CSV")
	rootCmd.PersistentFlags().StringVar(&ordersPath, "orders", "data/order_details.csv", "path to the order details CSV")
	rootCmd.PersistentFlags().BoolVar(&fromDB, "from-db", false, "load the tables from a database instead of CSV files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errIntegrity) {
			os.Exit(2)
		}

		var loadErr *models.LoadError
		switch {
		case errors.As(err, &loadErr):
			fmt.Fprintf(os.Stderr, "insights: dataset error: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "insights: %v\n", err)
		}
		os.Exit(1)
	}
}
