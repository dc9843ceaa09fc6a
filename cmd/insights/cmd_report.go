package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ayushi-gajendra/restaurant-insights/internal/narrator"
	"github.com/ayushi-gajendra/restaurant-insights/internal/service"
)

var (
	reportFormat  string
	reportOut     string
	topOrders     int
	leastOrdered  int
	bulkThreshold int
)

// reportCmd renders the full narrative report
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute and render the full narrative report",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = reportFormat
		}
		if cmd.Flags().Changed("out") {
			cfg.Output.Path = reportOut
		}
		if cmd.Flags().Changed("top") {
			cfg.Report.TopOrders = topOrders
		}
		if cmd.Flags().Changed("least") {
			cfg.Report.LeastOrdered = leastOrdered
		}
		if cmd.Flags().Changed("bulk-threshold") {
			cfg.Report.BulkThreshold = bulkThreshold
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		format, err := narrator.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		log = log.WithContext("run_id", runID)
		log.Info("Starting report run")

		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		defer ds.cleanup()

		report, err := ds.reports.BuildReport(service.ReportParams{
			TopOrders:     cfg.Report.TopOrders,
			LeastOrdered:  cfg.Report.LeastOrdered,
			BulkThreshold: cfg.Report.BulkThreshold,
			RunID:         runID,
			Source:        ds.source,
		})
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if cfg.Output.Path != "" {
			file, err := os.Create(cfg.Output.Path)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer file.Close()
			out = file
		}

		n := narrator.New(cfg.Report.CurrencySymbol, log)
		if err := n.Render(out, report, format); err != nil {
			return err
		}

		log.Info("Report run complete", "format", string(format))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "markdown", "report format: markdown, text, json")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the report to a file instead of stdout")
	reportCmd.Flags().IntVar(&topOrders, "top", 5, "number of top spending orders to list")
	reportCmd.Flags().IntVar(&leastOrdered, "least", 5, "number of least ordered items to list")
	reportCmd.Flags().IntVar(&bulkThreshold, "bulk-threshold", 12, "line count above which an order counts as bulk")
}
