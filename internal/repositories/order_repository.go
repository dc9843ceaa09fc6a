package repositories

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

// ordersTable is the logical table name used in load errors raised by
// the repository itself, regardless of the underlying source.
const ordersTable = "order_details"

type OrderRepositoryInterface interface {
	Load(ctx context.Context, src OrderSource) error
	Loaded() bool
	All() []models.OrderLine
	Size() int
	OrderCount() int
	DateRange() (time.Time, time.Time, error)
	LineCountPerOrder() map[int64]int
	OrdersAbove(threshold int) int
	OrdersByHour() map[int]int
	WriteCSV(w io.Writer) error
}

// OrderRepository holds the immutable order log. Load runs once at
// startup; every query afterwards reads the same snapshot.
type OrderRepository struct {
	lines  []models.OrderLine
	loaded bool
	logger *logger.Logger
}

func NewOrderRepository(log *logger.Logger) *OrderRepository {
	return &OrderRepository{
		logger: log.WithComponent("order_repository"),
	}
}

// Load fills the log from src. A row failing validation or a
// duplicate line id aborts the load; no partial log is kept.
func (r *OrderRepository) Load(ctx context.Context, src OrderSource) error {
	r.logger.Debug("Loading order log")

	rows, err := src.OrderLines(ctx)
	if err != nil {
		r.logger.Error("Failed to read order lines", "error", err)
		return err
	}

	lines := make([]models.OrderLine, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	for _, line := range rows {
		if err := line.Validate(); err != nil {
			r.logger.Error("Invalid order line", "error", err, "line_id", line.LineID)
			return &models.LoadError{Source: ordersTable, Reason: err.Error(), Err: err}
		}
		if _, exists := seen[line.LineID]; exists {
			r.logger.Error("Duplicate order line id", "line_id", line.LineID)
			return &models.LoadError{Source: ordersTable, Reason: fmt.Sprintf("duplicate order line id %d", line.LineID)}
		}
		seen[line.LineID] = struct{}{}
		lines = append(lines, line)
	}

	r.lines = lines
	r.loaded = true
	r.logger.Info("Loaded order log", "lines", len(lines), "orders", r.OrderCount())
	return nil
}

// Loaded reports whether Load has completed successfully.
func (r *OrderRepository) Loaded() bool {
	return r.loaded
}

// All returns every order line in load order.
func (r *OrderRepository) All() []models.OrderLine {
	out := make([]models.OrderLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// Size returns the number of order lines.
func (r *OrderRepository) Size() int {
	return len(r.lines)
}

// OrderCount returns the number of distinct orders in the log.
func (r *OrderRepository) OrderCount() int {
	return len(r.LineCountPerOrder())
}

// DateRange returns the first and last order dates in the log.
func (r *OrderRepository) DateRange() (time.Time, time.Time, error) {
	if !r.loaded {
		return time.Time{}, time.Time{}, models.ErrNotLoaded
	}
	if len(r.lines) == 0 {
		return time.Time{}, time.Time{}, &models.EmptyDatasetError{Op: "date range"}
	}

	min := r.lines[0].OrderDate
	max := r.lines[0].OrderDate
	for _, line := range r.lines[1:] {
		if line.OrderDate.Before(min) {
			min = line.OrderDate
		}
		if line.OrderDate.After(max) {
			max = line.OrderDate
		}
	}
	return min, max, nil
}

// LineCountPerOrder counts the lines of every order. The counts sum
// to Size().
func (r *OrderRepository) LineCountPerOrder() map[int64]int {
	counts := make(map[int64]int)
	for _, line := range r.lines {
		counts[line.OrderID]++
	}
	return counts
}

// OrdersAbove counts orders with strictly more than threshold lines.
func (r *OrderRepository) OrdersAbove(threshold int) int {
	count := 0
	for _, n := range r.LineCountPerOrder() {
		if n > threshold {
			count++
		}
	}
	return count
}

// OrdersByHour buckets distinct orders by the hour of their first
// line's order time.
func (r *OrderRepository) OrdersByHour() map[int]int {
	seen := make(map[int64]bool)
	hours := make(map[int]int)
	for _, line := range r.lines {
		if seen[line.OrderID] {
			continue
		}
		seen[line.OrderID] = true
		hours[line.OrderTime.Hour()]++
	}
	return hours
}

// WriteCSV re-serializes the log in normalized column order.
func (r *OrderRepository) WriteCSV(w io.Writer) error {
	if !r.loaded {
		return models.ErrNotLoaded
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"order_details_id", "order_id", "order_date", "order_time", "item_id"}); err != nil {
		return fmt.Errorf("failed to write orders header: %w", err)
	}
	for _, line := range r.lines {
		record := []string{
			strconv.FormatInt(line.LineID, 10),
			strconv.FormatInt(line.OrderID, 10),
			line.OrderDate.Format("2006-01-02"),
			line.OrderTime.Format("15:04:05"),
			strconv.FormatInt(line.ItemID, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write order line %d: %w", line.LineID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush orders csv: %w", err)
	}

	r.logger.Info("Wrote order log", "lines", len(r.lines))
	return nil
}
