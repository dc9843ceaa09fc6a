package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportDir string

// exportCmd re-serializes the loaded tables as normalized CSV
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-serialize the loaded, validated tables as normalized CSV",
	Long: `export loads both tables from the configured source and writes them
back out as CSV with canonical headers, ISO dates, and two-decimal
prices. Useful for normalizing a dataset that arrived with header or
date-format variants, or for snapshotting a database into files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("Starting export run", "dir", exportDir)

		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		defer ds.cleanup()

		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}

		menuOut := filepath.Join(exportDir, "menu_items.csv")
		if err := writeTable(menuOut, ds.menuRepo.WriteCSV); err != nil {
			return err
		}

		ordersOut := filepath.Join(exportDir, "order_details.csv")
		if err := writeTable(ordersOut, ds.orderRepo.WriteCSV); err != nil {
			return err
		}

		fmt.Printf("wrote %s (%d rows)\n", menuOut, ds.menuRepo.Size())
		fmt.Printf("wrote %s (%d rows)\n", ordersOut, ds.orderRepo.Size())
		return nil
	},
}

func writeTable(path string, write func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "export", "directory to write the normalized CSV files into")
}
