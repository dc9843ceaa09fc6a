package models

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned when a repository is queried before Load.
var ErrNotLoaded = errors.New("dataset not loaded")

// LoadError reports a malformed row, a missing required field, or a
// duplicate id found while loading a table. Load errors are fatal for
// the run; no partial table is kept.
type LoadError struct {
	Source string // file path or table name
	Line   int    // 1-based line number, 0 when not applicable
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %s", e.Source, e.Line, e.Reason)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ReferenceViolation is one order line whose item id resolves to no
// menu item.
type ReferenceViolation struct {
	LineID  int64 `json:"order_details_id"`
	OrderID int64 `json:"order_id"`
	ItemID  int64 `json:"item_id"`
}

// ReferentialIntegrityError lists every order line referencing an
// unknown menu item. Computations that join the two tables fail with
// it instead of quietly dropping the offending lines.
type ReferentialIntegrityError struct {
	Violations []ReferenceViolation
}

func (e *ReferentialIntegrityError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("order line %d (order %d) references unknown menu item %d", v.LineID, v.OrderID, v.ItemID)
	}
	return fmt.Sprintf("%d order lines reference unknown menu items", len(e.Violations))
}

// EmptyDatasetError marks a query that has no meaningful answer over
// an empty table, such as a date range or price extremes.
type EmptyDatasetError struct {
	Op string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: dataset is empty", e.Op)
}
