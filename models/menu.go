package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MenuItem is one distinct dish on the menu. Rows are immutable once
// loaded; prices stay decimal so revenue sums are exact.
type MenuItem struct {
	ID       int64           `json:"menu_item_id" db:"menu_item_id"`
	Name     string          `json:"item_name" db:"item_name"`
	Category string          `json:"category" db:"category"`
	Price    decimal.Decimal `json:"price" db:"price"`
}

// Validate checks the row-level constraints enforced at load time.
func (m MenuItem) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("menu item id must be positive, got %d", m.ID)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("menu item %d: name cannot be empty", m.ID)
	}
	if strings.TrimSpace(m.Category) == "" {
		return fmt.Errorf("menu item %d: category cannot be empty", m.ID)
	}
	if m.Price.IsNegative() {
		return fmt.Errorf("menu item %d: price cannot be negative", m.ID)
	}
	return nil
}
