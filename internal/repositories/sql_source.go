package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/database"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

// SQLSource loads both tables from a relational database. The queries
// are plain full-table selects; all aggregation happens in memory so
// the report logic is identical across sources.
type SQLSource struct {
	db     *database.DB
	logger *logger.Logger
}

func NewSQLSource(db *database.DB, log *logger.Logger) *SQLSource {
	return &SQLSource{
		db:     db,
		logger: log.WithComponent("sql_source"),
	}
}

func (s *SQLSource) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	s.logger.Debug("Querying menu items")

	query := `
        SELECT menu_item_id, item_name, category, price
        FROM menu_items
        ORDER BY menu_item_id
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error("Failed to query menu items", "error", err)
		return nil, &models.LoadError{Source: "menu_items", Reason: fmt.Sprintf("query failed: %v", err), Err: err}
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price); err != nil {
			s.logger.Error("Failed to scan menu item", "error", err)
			return nil, &models.LoadError{Source: "menu_items", Reason: fmt.Sprintf("scan failed: %v", err), Err: err}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("Error iterating menu rows", "error", err)
		return nil, &models.LoadError{Source: "menu_items", Reason: fmt.Sprintf("row iteration failed: %v", err), Err: err}
	}

	s.logger.Info("Queried menu items", "count", len(items))
	return items, nil
}

func (s *SQLSource) OrderLines(ctx context.Context) ([]models.OrderLine, error) {
	s.logger.Debug("Querying order lines")

	query := `
        SELECT order_details_id, order_id, order_date, order_time, item_id
        FROM order_details
        ORDER BY order_details_id
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error("Failed to query order details", "error", err)
		return nil, &models.LoadError{Source: "order_details", Reason: fmt.Sprintf("query failed: %v", err), Err: err}
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		var rawDate, rawTime interface{}

		if err := rows.Scan(&line.LineID, &line.OrderID, &rawDate, &rawTime, &line.ItemID); err != nil {
			s.logger.Error("Failed to scan order line", "error", err)
			return nil, &models.LoadError{Source: "order_details", Reason: fmt.Sprintf("scan failed: %v", err), Err: err}
		}

		line.OrderDate, err = coerceDate(rawDate)
		if err != nil {
			return nil, &models.LoadError{Source: "order_details", Reason: fmt.Sprintf("line %d: %v", line.LineID, err), Err: err}
		}

		line.OrderTime, err = coerceClock(rawTime)
		if err != nil {
			return nil, &models.LoadError{Source: "order_details", Reason: fmt.Sprintf("line %d: %v", line.LineID, err), Err: err}
		}

		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("Error iterating order rows", "error", err)
		return nil, &models.LoadError{Source: "order_details", Reason: fmt.Sprintf("row iteration failed: %v", err), Err: err}
	}

	s.logger.Info("Queried order lines", "count", len(lines))
	return lines, nil
}

// coerceDate converts whatever the driver hands back for a DATE
// column. Postgres and MySQL (with parseTime) return time.Time;
// SQLite returns text.
func coerceDate(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), nil
	case []byte:
		return parseDate(string(v))
	case string:
		return parseDate(v)
	case nil:
		return time.Time{}, fmt.Errorf("order date is missing")
	default:
		return time.Time{}, fmt.Errorf("unsupported date value of type %T", value)
	}
}

// coerceClock converts whatever the driver hands back for a TIME
// column. MySQL returns TIME columns as text even with parseTime.
func coerceClock(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return time.Date(0, time.January, 1, v.Hour(), v.Minute(), v.Second(), 0, time.UTC), nil
	case []byte:
		return parseClock(string(v))
	case string:
		return parseClock(v)
	case nil:
		return time.Time{}, fmt.Errorf("order time is missing")
	default:
		return time.Time{}, fmt.Errorf("unsupported time value of type %T", value)
	}
}
