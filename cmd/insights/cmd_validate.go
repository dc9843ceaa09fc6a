package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// validateCmd loads both tables and reports integrity violations
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load both tables and check referential integrity",
	Long: `validate loads the menu and the order log, applying the same row
validation a report run does, then lists every order line whose item
id resolves to no menu item. The exit code is 0 for a clean dataset,
2 when violations exist, and 1 when the tables cannot be loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("Starting validation run")

		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		defer ds.cleanup()

		violations, err := ds.reports.CheckIntegrity()
		if err != nil {
			return err
		}

		fmt.Printf("menu_items:    %d rows\n", ds.menuRepo.Size())
		fmt.Printf("order_details: %d rows across %d orders\n", ds.orderRepo.Size(), ds.orderRepo.OrderCount())

		if len(violations) == 0 {
			fmt.Println("referential integrity: OK")
			return nil
		}

		fmt.Fprintf(os.Stderr, "referential integrity: %d violations\n", len(violations))
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "  line %d (order %d) references unknown menu item %d\n",
				v.LineID, v.OrderID, v.ItemID)
		}
		return errIntegrity
	},
}
