package narrator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ayushi-gajendra/restaurant-insights/models"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/logger"
)

// Format selects the rendering of a report.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q (allowed: markdown, text, json)", s)
	}
}

// recommendations is the fixed strategic text closing every narrative
// report. It does not depend on the data.
var recommendations = []string{
	"Keep the broadest categories broad: they drive both order volume and revenue, so protect their variety before trimming anywhere else.",
	"Review the least-ordered dishes for retirement or a recipe refresh before the next menu cycle; they occupy kitchen capacity without earning it.",
	"Staff against the peak ordering hours shown above rather than a flat schedule; the busiest hours carry a disproportionate share of orders.",
	"Study the highest-spending orders as bundle templates and promote those combinations to lift the average order toward the top-spender basket.",
}

// Narrator turns a report document into human-readable output.
type Narrator struct {
	currency string
	logger   *logger.Logger
}

func New(currency string, log *logger.Logger) *Narrator {
	if currency == "" {
		currency = "$"
	}
	return &Narrator{
		currency: currency,
		logger:   log.WithComponent("narrator"),
	}
}

// Render writes the report to w in the requested format.
func (n *Narrator) Render(w io.Writer, report *models.Report, format Format) error {
	n.logger.Debug("Rendering report", "format", string(format))

	switch format {
	case FormatMarkdown:
		return n.renderMarkdown(w, report)
	case FormatText:
		return n.renderText(w, report)
	case FormatJSON:
		return n.renderJSON(w, report)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func (n *Narrator) renderJSON(w io.Writer, report *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// money renders a decimal amount with the configured currency symbol.
func (n *Narrator) money(d decimal.Decimal) string {
	return n.currency + d.StringFixed(2)
}

// itemList renders tied menu items as "Name (price), Name (price)".
func (n *Narrator) itemList(items []models.MenuItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%s)", item.Name, n.money(item.Price)))
	}
	return strings.Join(parts, ", ")
}

// sortedHours returns the hours present in the histogram, ascending.
func sortedHours(byHour map[int]int) []int {
	hours := make([]int, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	return hours
}
