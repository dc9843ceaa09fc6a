package models

import (
	"fmt"
	"time"
)

// OrderLine is a single ordered line item. Several lines share an
// order id; the line id is unique per row. OrderTime carries only the
// clock portion of the timestamp.
type OrderLine struct {
	LineID    int64     `json:"order_details_id" db:"order_details_id"`
	OrderID   int64     `json:"order_id" db:"order_id"`
	OrderDate time.Time `json:"order_date" db:"order_date"`
	OrderTime time.Time `json:"order_time" db:"order_time"`
	ItemID    int64     `json:"item_id" db:"item_id"`
}

// Validate checks the row-level constraints enforced at load time.
func (l OrderLine) Validate() error {
	if l.LineID <= 0 {
		return fmt.Errorf("order line id must be positive, got %d", l.LineID)
	}
	if l.OrderID <= 0 {
		return fmt.Errorf("order line %d: order id must be positive, got %d", l.LineID, l.OrderID)
	}
	if l.OrderDate.IsZero() {
		return fmt.Errorf("order line %d: order date is missing", l.LineID)
	}
	if l.ItemID <= 0 {
		return fmt.Errorf("order line %d: item id must be positive, got %d", l.LineID, l.ItemID)
	}
	return nil
}
