package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayushi-gajendra/restaurant-insights/internal/repositories"
	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

type ReportServiceInterface interface {
	ItemStats() ([]models.ItemStat, error)
	LeastOrderedItems(n int) ([]models.ItemStat, error)
	OrderTotals() (map[int64]models.OrderTotal, error)
	TopSpendingOrders(n int) ([]models.OrderTotal, error)
	HighestOrderDetail() (models.OrderDetail, error)
	MaxOrderValue() (decimal.Decimal, error)
	CategoryRevenue() (map[string]decimal.Decimal, error)
	CheckIntegrity() ([]models.ReferenceViolation, error)
	BuildReport(params ReportParams) (*models.Report, error)
}

// ReportParams carries the per-run report knobs.
type ReportParams struct {
	TopOrders     int
	LeastOrdered  int
	BulkThreshold int
	RunID         string
	Source        string
}

// ReportService computes the fixed report set over the two loaded
// tables. Every method is a pure function of the snapshot: no state
// is kept between calls and results are re-derivable at any time.
type ReportService struct {
	menuRepo        repositories.MenuRepositoryInterface
	orderRepo       repositories.OrderRepositoryInterface
	aggregationRepo repositories.AggregationRepositoryInterface
	logger          *logger.Logger
}

func NewReportService(
	menuRepo repositories.MenuRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	aggregationRepo repositories.AggregationRepositoryInterface,
	log *logger.Logger,
) *ReportService {
	return &ReportService{
		menuRepo:        menuRepo,
		orderRepo:       orderRepo,
		aggregationRepo: aggregationRepo,
		logger:          log.WithComponent("report_service"),
	}
}

// resolveLines joins every order line to its menu item. A single pass
// collects all unresolved references so the resulting error lists
// every violation instead of stopping at the first.
func (s *ReportService) resolveLines() ([]models.OrderLine, map[int64]models.MenuItem, error) {
	lines, menuItems, err := s.aggregationRepo.GetAggregationData()
	if err != nil {
		return nil, nil, err
	}

	menuMap := make(map[int64]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		menuMap[item.ID] = item
	}

	var violations []models.ReferenceViolation
	for _, line := range lines {
		if _, ok := menuMap[line.ItemID]; !ok {
			violations = append(violations, models.ReferenceViolation{
				LineID:  line.LineID,
				OrderID: line.OrderID,
				ItemID:  line.ItemID,
			})
		}
	}
	if len(violations) > 0 {
		s.logger.Error("Order lines reference unknown menu items", "violations", len(violations))
		return nil, nil, &models.ReferentialIntegrityError{Violations: violations}
	}

	return lines, menuMap, nil
}

// orderTotalsFrom folds resolved lines into per-order aggregates.
func orderTotalsFrom(lines []models.OrderLine, menuMap map[int64]models.MenuItem) map[int64]models.OrderTotal {
	totals := make(map[int64]models.OrderTotal)
	for _, line := range lines {
		total := totals[line.OrderID]
		total.OrderID = line.OrderID
		total.LineCount++
		total.TotalSpend = total.TotalSpend.Add(menuMap[line.ItemID].Price)
		totals[line.OrderID] = total
	}
	return totals
}

// ItemStats reports how often each menu item was ordered and the
// revenue it brought in, most ordered first. Items never ordered are
// included with zero counts. Ranks are dense: ties share a rank.
func (s *ReportService) ItemStats() ([]models.ItemStat, error) {
	s.logger.Info("Calculating item sales report")

	lines, menuMap, err := s.resolveLines()
	if err != nil {
		s.logger.Error("Failed to resolve order lines for item stats", "error", err)
		return nil, err
	}

	counts := make(map[int64]int, len(menuMap))
	for _, line := range lines {
		counts[line.ItemID]++
	}

	stats := make([]models.ItemStat, 0, len(menuMap))
	for _, item := range menuMap {
		n := counts[item.ID]
		stats = append(stats, models.ItemStat{
			Item:         item,
			TimesOrdered: n,
			TotalRevenue: item.Price.Mul(decimal.NewFromInt(int64(n))),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TimesOrdered != stats[j].TimesOrdered {
			return stats[i].TimesOrdered > stats[j].TimesOrdered
		}
		return stats[i].Item.ID < stats[j].Item.ID
	})

	rank := 0
	prev := -1
	for i := range stats {
		if stats[i].TimesOrdered != prev {
			rank++
			prev = stats[i].TimesOrdered
		}
		stats[i].Rank = rank
	}

	s.logger.Info("Item sales report calculated", "items", len(stats))
	return stats, nil
}

// LeastOrderedItems returns the n items ordered least often,
// ascending. Ranks carry over from the full standing.
func (s *ReportService) LeastOrderedItems(n int) ([]models.ItemStat, error) {
	stats, err := s.ItemStats()
	if err != nil {
		return nil, err
	}

	least := make([]models.ItemStat, len(stats))
	copy(least, stats)
	sort.Slice(least, func(i, j int) bool {
		if least[i].TimesOrdered != least[j].TimesOrdered {
			return least[i].TimesOrdered < least[j].TimesOrdered
		}
		return least[i].Item.ID < least[j].Item.ID
	})

	if n > 0 && n < len(least) {
		least = least[:n]
	}
	return least, nil
}

// OrderTotals reports every order's line count and total spend.
func (s *ReportService) OrderTotals() (map[int64]models.OrderTotal, error) {
	s.logger.Debug("Calculating order totals")

	lines, menuMap, err := s.resolveLines()
	if err != nil {
		s.logger.Error("Failed to resolve order lines for order totals", "error", err)
		return nil, err
	}

	return orderTotalsFrom(lines, menuMap), nil
}

// TopSpendingOrders returns up to n orders by total spend, highest
// first. Orders tied on spend are listed by ascending order id.
func (s *ReportService) TopSpendingOrders(n int) ([]models.OrderTotal, error) {
	s.logger.Info("Calculating top spending orders", "n", n)

	totals, err := s.OrderTotals()
	if err != nil {
		return nil, err
	}

	ranked := make([]models.OrderTotal, 0, len(totals))
	for _, total := range totals {
		ranked = append(ranked, total)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalSpend.Equal(ranked[j].TotalSpend) {
			return ranked[i].TotalSpend.GreaterThan(ranked[j].TotalSpend)
		}
		return ranked[i].OrderID < ranked[j].OrderID
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}

	s.logger.Info("Top spending orders calculated", "returned", len(ranked))
	return ranked, nil
}

// HighestOrderDetail expands the single highest-spending order line
// by line. Orders tied at the maximum resolve to the lowest order id.
func (s *ReportService) HighestOrderDetail() (models.OrderDetail, error) {
	s.logger.Info("Calculating highest order detail")

	lines, menuMap, err := s.resolveLines()
	if err != nil {
		s.logger.Error("Failed to resolve order lines for highest order", "error", err)
		return models.OrderDetail{}, err
	}
	if len(lines) == 0 {
		return models.OrderDetail{}, &models.EmptyDatasetError{Op: "highest order detail"}
	}

	var best models.OrderTotal
	first := true
	for _, total := range orderTotalsFrom(lines, menuMap) {
		switch {
		case first:
			best = total
			first = false
		case total.TotalSpend.GreaterThan(best.TotalSpend):
			best = total
		case total.TotalSpend.Equal(best.TotalSpend) && total.OrderID < best.OrderID:
			best = total
		}
	}

	detail := models.OrderDetail{
		OrderID:    best.OrderID,
		TotalSpend: best.TotalSpend,
	}
	for _, line := range lines {
		if line.OrderID != best.OrderID {
			continue
		}
		if detail.Date.IsZero() {
			detail.Date = line.OrderDate
		}
		detail.Lines = append(detail.Lines, models.DetailLine{
			Line: line,
			Item: menuMap[line.ItemID],
		})
	}

	s.logger.Info("Highest order detail calculated",
		"order_id", detail.OrderID,
		"lines", len(detail.Lines),
		"total_spend", detail.TotalSpend.StringFixed(2))
	return detail, nil
}

// MaxOrderValue returns the largest total spend across all orders.
func (s *ReportService) MaxOrderValue() (decimal.Decimal, error) {
	lines, menuMap, err := s.resolveLines()
	if err != nil {
		s.logger.Error("Failed to resolve order lines for max order value", "error", err)
		return decimal.Zero, err
	}
	if len(lines) == 0 {
		return decimal.Zero, &models.EmptyDatasetError{Op: "max order value"}
	}

	max := decimal.Zero
	first := true
	for _, total := range orderTotalsFrom(lines, menuMap) {
		if first || total.TotalSpend.GreaterThan(max) {
			max = total.TotalSpend
			first = false
		}
	}
	return max, nil
}

// CategoryRevenue sums the revenue of every cuisine category.
func (s *ReportService) CategoryRevenue() (map[string]decimal.Decimal, error) {
	lines, menuMap, err := s.resolveLines()
	if err != nil {
		s.logger.Error("Failed to resolve order lines for category revenue", "error", err)
		return nil, err
	}

	revenue := make(map[string]decimal.Decimal)
	for _, line := range lines {
		item := menuMap[line.ItemID]
		revenue[item.Category] = revenue[item.Category].Add(item.Price)
	}
	return revenue, nil
}

// CheckIntegrity enumerates unresolved item references without
// failing, for the validate command.
func (s *ReportService) CheckIntegrity() ([]models.ReferenceViolation, error) {
	s.logger.Info("Checking referential integrity")

	lines, menuItems, err := s.aggregationRepo.GetAggregationData()
	if err != nil {
		return nil, err
	}

	menuMap := make(map[int64]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		menuMap[item.ID] = item
	}

	violations := []models.ReferenceViolation{}
	for _, line := range lines {
		if _, ok := menuMap[line.ItemID]; !ok {
			violations = append(violations, models.ReferenceViolation{
				LineID:  line.LineID,
				OrderID: line.OrderID,
				ItemID:  line.ItemID,
			})
		}
	}

	s.logger.Info("Integrity check complete", "lines", len(lines), "violations", len(violations))
	return violations, nil
}

// BuildReport assembles the full report document for the narrator.
func (s *ReportService) BuildReport(params ReportParams) (*models.Report, error) {
	s.logger.Info("Building report",
		"top_orders", params.TopOrders,
		"least_ordered", params.LeastOrdered,
		"bulk_threshold", params.BulkThreshold)

	report := &models.Report{
		RunID:       params.RunID,
		GeneratedAt: time.Now().UTC(),
		Source:      params.Source,
	}

	extremes, err := s.menuRepo.PriceExtremes()
	if err != nil {
		s.logger.Error("Failed to compute price extremes", "error", err)
		return nil, err
	}

	categoryRevenue, err := s.CategoryRevenue()
	if err != nil {
		return nil, err
	}

	byCategory := s.menuRepo.ByCategory()
	categories := s.menuRepo.Categories()
	categoryStats := make([]models.CategoryStat, 0, len(categories))
	for _, category := range categories {
		stat := byCategory[category]
		stat.TotalRevenue = categoryRevenue[category]
		categoryStats = append(categoryStats, stat)
	}

	report.Menu = models.MenuSection{
		Items:      s.menuRepo.Size(),
		Extremes:   extremes,
		Categories: categoryStats,
	}

	first, last, err := s.orderRepo.DateRange()
	if err != nil {
		s.logger.Error("Failed to compute date range", "error", err)
		return nil, err
	}

	lineCounts := s.orderRepo.LineCountPerOrder()
	orders := len(lineCounts)
	lineTotal := s.orderRepo.Size()
	avgLines := 0.0
	if orders > 0 {
		avgLines = float64(lineTotal) / float64(orders)
	}

	report.Activity = models.ActivityStats{
		Orders:           orders,
		Lines:            lineTotal,
		AvgLinesPerOrder: avgLines,
		BulkOrders:       s.orderRepo.OrdersAbove(params.BulkThreshold),
		BulkThreshold:    params.BulkThreshold,
		FirstDate:        first,
		LastDate:         last,
		OrdersByHour:     s.orderRepo.OrdersByHour(),
	}

	report.Items, err = s.ItemStats()
	if err != nil {
		return nil, err
	}

	report.LeastOrdered, err = s.LeastOrderedItems(params.LeastOrdered)
	if err != nil {
		return nil, err
	}

	report.TopOrders, err = s.TopSpendingOrders(params.TopOrders)
	if err != nil {
		return nil, err
	}

	report.MaxOrderValue, err = s.MaxOrderValue()
	if err != nil {
		return nil, err
	}

	report.HighestOrder, err = s.HighestOrderDetail()
	if err != nil {
		return nil, err
	}

	s.logger.Info("Report built",
		"menu_items", report.Menu.Items,
		"orders", report.Activity.Orders,
		"lines", report.Activity.Lines)
	return report, nil
}
