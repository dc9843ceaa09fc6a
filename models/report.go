package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStat is the per-item slice of the sales report. Rank is dense:
// items tied on TimesOrdered share a rank and the next distinct count
// gets the following rank.
type ItemStat struct {
	Item         MenuItem        `json:"item"`
	TimesOrdered int             `json:"times_ordered"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Rank         int             `json:"rank"`
}

// OrderTotal aggregates one order: how many lines it holds and what
// they cost in total.
type OrderTotal struct {
	OrderID    int64           `json:"order_id"`
	LineCount  int             `json:"line_count"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// CategoryStat summarizes one cuisine category. Count and AvgPrice
// come from the menu alone; TotalRevenue is filled once order data is
// joined in.
type CategoryStat struct {
	Category     string          `json:"category"`
	Count        int             `json:"count"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// PriceExtremes holds every menu item tied at the maximum price and
// every item tied at the minimum. Ties are never broken arbitrarily.
type PriceExtremes struct {
	Max []MenuItem `json:"max"`
	Min []MenuItem `json:"min"`
}

// DetailLine is one order line joined with the menu item it ordered.
type DetailLine struct {
	Line OrderLine `json:"line"`
	Item MenuItem  `json:"item"`
}

// OrderDetail is the line-by-line view of a single order.
type OrderDetail struct {
	OrderID    int64           `json:"order_id"`
	Date       time.Time       `json:"date"`
	Lines      []DetailLine    `json:"lines"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// ActivityStats summarizes the shape of the order log.
type ActivityStats struct {
	Orders           int         `json:"orders"`
	Lines            int         `json:"lines"`
	AvgLinesPerOrder float64     `json:"avg_lines_per_order"`
	BulkOrders       int         `json:"bulk_orders"`
	BulkThreshold    int         `json:"bulk_threshold"`
	FirstDate        time.Time   `json:"first_date"`
	LastDate         time.Time   `json:"last_date"`
	OrdersByHour     map[int]int `json:"orders_by_hour"`
}

// MenuSection is the menu half of the report.
type MenuSection struct {
	Items      int            `json:"items"`
	Extremes   PriceExtremes  `json:"price_extremes"`
	Categories []CategoryStat `json:"categories"`
}

// Report is the full document the narrator renders. Every field is
// recomputed from the two loaded tables on each run.
type Report struct {
	RunID         string          `json:"run_id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Source        string          `json:"source"`
	Menu          MenuSection     `json:"menu"`
	Activity      ActivityStats   `json:"activity"`
	Items         []ItemStat      `json:"item_stats"`
	LeastOrdered  []ItemStat      `json:"least_ordered"`
	TopOrders     []OrderTotal    `json:"top_orders"`
	MaxOrderValue decimal.Decimal `json:"max_order_value"`
	HighestOrder  OrderDetail     `json:"highest_order"`
}
