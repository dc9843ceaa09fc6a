package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

// Accepted spellings for each column, normalized to lower snake case.
// The dataset has shipped under a few header variants.
var menuHeaderAliases = map[string]string{
	"menu_item_id": "id",
	"item_id":      "id",
	"id":           "id",
	"item_name":    "name",
	"name":         "name",
	"category":     "category",
	"cuisine":      "category",
	"price":        "price",
}

var orderHeaderAliases = map[string]string{
	"order_details_id": "line_id",
	"line_id":          "line_id",
	"id":               "line_id",
	"order_id":         "order_id",
	"order_date":       "order_date",
	"date":             "order_date",
	"order_time":       "order_time",
	"time":             "order_time",
	"item_id":          "item_id",
	"menu_item_id":     "item_id",
}

var dateLayouts = []string{"2006-01-02", "1/2/2006", "1/2/06"}

var clockLayouts = []string{"15:04:05", "3:04:05 PM", "15:04"}

// CSVSource loads both tables from delimited files.
type CSVSource struct {
	MenuPath   string
	OrdersPath string
	logger     *logger.Logger
}

func NewCSVSource(menuPath, ordersPath string, log *logger.Logger) *CSVSource {
	return &CSVSource{
		MenuPath:   menuPath,
		OrdersPath: ordersPath,
		logger:     log.WithComponent("csv_source"),
	}
}

// MenuItems parses the menu file. Any malformed field fails the load
// with a *models.LoadError carrying the file and line number.
func (s *CSVSource) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("Reading menu items", "path", s.MenuPath)

	file, err := os.Open(s.MenuPath)
	if err != nil {
		s.logger.Error("Failed to open menu file", "error", err, "path", s.MenuPath)
		return nil, &models.LoadError{Source: s.MenuPath, Reason: fmt.Sprintf("cannot open file: %v", err), Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	columns, err := readHeader(reader, s.MenuPath, menuHeaderAliases, []string{"id", "name", "category", "price"})
	if err != nil {
		return nil, err
	}

	var items []models.MenuItem
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &models.LoadError{Source: s.MenuPath, Line: parseErrorLine(err), Reason: fmt.Sprintf("malformed row: %v", err), Err: err}
		}
		line, _ := reader.FieldPos(0)

		item := models.MenuItem{
			Name:     strings.TrimSpace(record[columns["name"]]),
			Category: strings.TrimSpace(record[columns["category"]]),
		}

		item.ID, err = parseID(record[columns["id"]])
		if err != nil {
			return nil, &models.LoadError{Source: s.MenuPath, Line: line, Reason: fmt.Sprintf("invalid menu item id %q", record[columns["id"]]), Err: err}
		}

		item.Price, err = decimal.NewFromString(strings.TrimSpace(record[columns["price"]]))
		if err != nil {
			return nil, &models.LoadError{Source: s.MenuPath, Line: line, Reason: fmt.Sprintf("invalid price %q", record[columns["price"]]), Err: err}
		}

		items = append(items, item)
	}

	s.logger.Info("Read menu items", "path", s.MenuPath, "count", len(items))
	return items, nil
}

// OrderLines parses the order details file.
func (s *CSVSource) OrderLines(ctx context.Context) ([]models.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("Reading order lines", "path", s.OrdersPath)

	file, err := os.Open(s.OrdersPath)
	if err != nil {
		s.logger.Error("Failed to open orders file", "error", err, "path", s.OrdersPath)
		return nil, &models.LoadError{Source: s.OrdersPath, Reason: fmt.Sprintf("cannot open file: %v", err), Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	columns, err := readHeader(reader, s.OrdersPath, orderHeaderAliases, []string{"line_id", "order_id", "order_date", "order_time", "item_id"})
	if err != nil {
		return nil, err
	}

	var lines []models.OrderLine
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &models.LoadError{Source: s.OrdersPath, Line: parseErrorLine(err), Reason: fmt.Sprintf("malformed row: %v", err), Err: err}
		}
		line, _ := reader.FieldPos(0)

		var ol models.OrderLine

		ol.LineID, err = parseID(record[columns["line_id"]])
		if err != nil {
			return nil, &models.LoadError{Source: s.OrdersPath, Line: line, Reason: fmt.Sprintf("invalid line id %q", record[columns["line_id"]]), Err: err}
		}

		ol.OrderID, err = parseID(record[columns["order_id"]])
		if err != nil {
			return nil, &models.LoadError{Source: s.OrdersPath, Line: line, Reason: fmt.Sprintf("invalid order id %q", record[columns["order_id"]]), Err: err}
		}

		ol.OrderDate, err = parseDate(record[columns["order_date"]])
		if err != nil {
			return nil, &models.LoadError{Source: s.OrdersPath, Line: line, Reason: fmt.Sprintf("invalid order date %q", record[columns["order_date"]]), Err: err}
		}

		ol.OrderTime, err = parseClock(record[columns["order_time"]])
		if err != nil {
			return nil, &models.LoadError{Source: s.OrdersPath, Line: line, Reason: fmt.Sprintf("invalid order time %q", record[columns["order_time"]]), Err: err}
		}

		ol.ItemID, err = parseID(record[columns["item_id"]])
		if err != nil {
			return nil, &models.LoadError{Source: s.OrdersPath, Line: line, Reason: fmt.Sprintf("invalid item id %q", record[columns["item_id"]]), Err: err}
		}

		lines = append(lines, ol)
	}

	s.logger.Info("Read order lines", "path", s.OrdersPath, "count", len(lines))
	return lines, nil
}

// readHeader maps the header row onto column indexes via the alias
// table and checks that every required column is present.
func readHeader(reader *csv.Reader, source string, aliases map[string]string, required []string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, &models.LoadError{Source: source, Line: 1, Reason: fmt.Sprintf("cannot read header: %v", err), Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		if canonical, ok := aliases[normalized]; ok {
			if _, dup := columns[canonical]; !dup {
				columns[canonical] = i
			}
		}
	}

	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, &models.LoadError{Source: source, Line: 1, Reason: fmt.Sprintf("missing required column %q", name)}
		}
	}
	return columns, nil
}

// parseErrorLine pulls the line number out of a csv parse error.
func parseErrorLine(err error) int {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Line
	}
	return 0
}

func parseID(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

// parseDate accepts the calendar date spellings the dataset has used.
func parseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseClock accepts the time-of-day spellings the dataset has used.
func parseClock(value string) (time.Time, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
