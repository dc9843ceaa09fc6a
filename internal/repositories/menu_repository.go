package repositories

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

// menuTable is the logical table name used in load errors raised by
// the repository itself, regardless of the underlying source.
const menuTable = "menu_items"

type MenuRepositoryInterface interface {
	Load(ctx context.Context, src MenuSource) error
	Loaded() bool
	Get(id int64) (models.MenuItem, bool)
	All() []models.MenuItem
	Size() int
	PriceExtremes() (models.PriceExtremes, error)
	ByCategory() map[string]models.CategoryStat
	Categories() []string
	WriteCSV(w io.Writer) error
}

// MenuRepository holds the immutable menu catalog. Load runs once at
// startup; every query afterwards reads the same snapshot.
type MenuRepository struct {
	items  []models.MenuItem
	byID   map[int64]int
	loaded bool
	logger *logger.Logger
}

func NewMenuRepository(log *logger.Logger) *MenuRepository {
	return &MenuRepository{
		byID:   make(map[int64]int),
		logger: log.WithComponent("menu_repository"),
	}
}

// Load fills the catalog from src. A row failing validation or a
// duplicate id aborts the load; no partial catalog is kept.
func (r *MenuRepository) Load(ctx context.Context, src MenuSource) error {
	r.logger.Debug("Loading menu catalog")

	rows, err := src.MenuItems(ctx)
	if err != nil {
		r.logger.Error("Failed to read menu items", "error", err)
		return err
	}

	items := make([]models.MenuItem, 0, len(rows))
	byID := make(map[int64]int, len(rows))
	for _, item := range rows {
		if err := item.Validate(); err != nil {
			r.logger.Error("Invalid menu item", "error", err, "item_id", item.ID)
			return &models.LoadError{Source: menuTable, Reason: err.Error(), Err: err}
		}
		if _, exists := byID[item.ID]; exists {
			r.logger.Error("Duplicate menu item id", "item_id", item.ID)
			return &models.LoadError{Source: menuTable, Reason: fmt.Sprintf("duplicate menu item id %d", item.ID)}
		}
		byID[item.ID] = len(items)
		items = append(items, item)
	}

	r.items = items
	r.byID = byID
	r.loaded = true
	r.logger.Info("Loaded menu catalog", "count", len(items))
	return nil
}

// Loaded reports whether Load has completed successfully.
func (r *MenuRepository) Loaded() bool {
	return r.loaded
}

// Get returns the menu item with the given id.
func (r *MenuRepository) Get(id int64) (models.MenuItem, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return r.items[idx], true
}

// All returns every menu item in load order.
func (r *MenuRepository) All() []models.MenuItem {
	out := make([]models.MenuItem, len(r.items))
	copy(out, r.items)
	return out
}

// Size returns the number of menu items.
func (r *MenuRepository) Size() int {
	return len(r.items)
}

// PriceExtremes returns every item tied at the maximum price and
// every item tied at the minimum. All winners are kept; ties are
// never broken arbitrarily.
func (r *MenuRepository) PriceExtremes() (models.PriceExtremes, error) {
	if !r.loaded {
		return models.PriceExtremes{}, models.ErrNotLoaded
	}
	if len(r.items) == 0 {
		return models.PriceExtremes{}, &models.EmptyDatasetError{Op: "price extremes"}
	}

	max := r.items[0].Price
	min := r.items[0].Price
	for _, item := range r.items[1:] {
		if item.Price.GreaterThan(max) {
			max = item.Price
		}
		if item.Price.LessThan(min) {
			min = item.Price
		}
	}

	var extremes models.PriceExtremes
	for _, item := range r.items {
		if item.Price.Equal(max) {
			extremes.Max = append(extremes.Max, item)
		}
		if item.Price.Equal(min) {
			extremes.Min = append(extremes.Min, item)
		}
	}

	r.logger.Debug("Computed price extremes",
		"max_price", max.StringFixed(2),
		"min_price", min.StringFixed(2),
		"max_ties", len(extremes.Max),
		"min_ties", len(extremes.Min))
	return extremes, nil
}

// ByCategory aggregates the catalog per cuisine category. Averages
// are computed in decimal and rounded to cents.
func (r *MenuRepository) ByCategory() map[string]models.CategoryStat {
	stats := make(map[string]models.CategoryStat)
	sums := make(map[string]decimal.Decimal)

	for _, item := range r.items {
		stat := stats[item.Category]
		stat.Category = item.Category
		stat.Count++
		stats[item.Category] = stat
		sums[item.Category] = sums[item.Category].Add(item.Price)
	}

	for category, stat := range stats {
		stat.AvgPrice = sums[category].Div(decimal.NewFromInt(int64(stat.Count))).Round(2)
		stats[category] = stat
	}
	return stats
}

// Categories returns the category names in sorted order, for
// deterministic rendering.
func (r *MenuRepository) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range r.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// WriteCSV re-serializes the catalog in normalized column order.
func (r *MenuRepository) WriteCSV(w io.Writer) error {
	if !r.loaded {
		return models.ErrNotLoaded
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"menu_item_id", "item_name", "category", "price"}); err != nil {
		return fmt.Errorf("failed to write menu header: %w", err)
	}
	for _, item := range r.items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			item.Category,
			item.Price.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write menu item %d: %w", item.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush menu csv: %w", err)
	}

	r.logger.Info("Wrote menu catalog", "count", len(r.items))
	return nil
}
