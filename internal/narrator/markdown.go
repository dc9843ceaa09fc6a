package narrator

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ayushi-gajendra/restaurant-insights/models"
)

const dateLayout = "2006-01-02"

func (n *Narrator) renderMarkdown(w io.Writer, report *models.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Restaurant Order Insights\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", report.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Source: %s\n\n", report.Source)

	n.markdownMenu(&b, report)
	n.markdownActivity(&b, report)
	n.markdownSales(&b, report)
	n.markdownSpending(&b, report)

	fmt.Fprintf(&b, "## Recommendations\n\n")
	for _, r := range recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func (n *Narrator) markdownMenu(b *strings.Builder, report *models.Report) {
	fmt.Fprintf(b, "## Menu\n\n")
	fmt.Fprintf(b, "The menu carries %d dishes across %d categories.\n\n",
		report.Menu.Items, len(report.Menu.Categories))
	fmt.Fprintf(b, "- Most expensive: %s\n", n.itemList(report.Menu.Extremes.Max))
	fmt.Fprintf(b, "- Least expensive: %s\n\n", n.itemList(report.Menu.Extremes.Min))

	fmt.Fprintf(b, "| Category | Dishes | Avg price | Revenue |\n")
	fmt.Fprintf(b, "|---|---:|---:|---:|\n")
	for _, c := range report.Menu.Categories {
		fmt.Fprintf(b, "| %s | %d | %s | %s |\n",
			c.Category, c.Count, n.money(c.AvgPrice), n.money(c.TotalRevenue))
	}
	b.WriteString("\n")
}

func (n *Narrator) markdownActivity(b *strings.Builder, report *models.Report) {
	a := report.Activity

	fmt.Fprintf(b, "## Order activity\n\n")
	fmt.Fprintf(b, "- Orders: %d across %d line items (%.2f lines per order).\n",
		a.Orders, a.Lines, a.AvgLinesPerOrder)
	fmt.Fprintf(b, "- Date range: %s to %s.\n",
		a.FirstDate.Format(dateLayout), a.LastDate.Format(dateLayout))
	fmt.Fprintf(b, "- Bulk orders (more than %d line items): %d.\n\n",
		a.BulkThreshold, a.BulkOrders)

	if len(a.OrdersByHour) > 0 {
		fmt.Fprintf(b, "| Hour | Orders |\n")
		fmt.Fprintf(b, "|---:|---:|\n")
		for _, hour := range sortedHours(a.OrdersByHour) {
			fmt.Fprintf(b, "| %02d:00 | %d |\n", hour, a.OrdersByHour[hour])
		}
		b.WriteString("\n")
	}
}

func (n *Narrator) markdownSales(b *strings.Builder, report *models.Report) {
	fmt.Fprintf(b, "## What sells\n\n")
	fmt.Fprintf(b, "| Rank | Item | Category | Times ordered | Revenue |\n")
	fmt.Fprintf(b, "|---:|---|---|---:|---:|\n")
	for _, stat := range report.Items {
		fmt.Fprintf(b, "| %d | %s | %s | %d | %s |\n",
			stat.Rank, stat.Item.Name, stat.Item.Category,
			stat.TimesOrdered, n.money(stat.TotalRevenue))
	}
	b.WriteString("\n")

	if len(report.LeastOrdered) > 0 {
		fmt.Fprintf(b, "### Least ordered\n\n")
		fmt.Fprintf(b, "| Item | Category | Times ordered |\n")
		fmt.Fprintf(b, "|---|---|---:|\n")
		for _, stat := range report.LeastOrdered {
			fmt.Fprintf(b, "| %s | %s | %d |\n",
				stat.Item.Name, stat.Item.Category, stat.TimesOrdered)
		}
		b.WriteString("\n")
	}
}

func (n *Narrator) markdownSpending(b *strings.Builder, report *models.Report) {
	fmt.Fprintf(b, "## Spending\n\n")
	fmt.Fprintf(b, "The largest single order came to %s.\n\n", n.money(report.MaxOrderValue))

	fmt.Fprintf(b, "| Order | Lines | Total |\n")
	fmt.Fprintf(b, "|---:|---:|---:|\n")
	for _, total := range report.TopOrders {
		fmt.Fprintf(b, "| %d | %d | %s |\n",
			total.OrderID, total.LineCount, n.money(total.TotalSpend))
	}
	b.WriteString("\n")

	highest := report.HighestOrder
	if len(highest.Lines) > 0 {
		fmt.Fprintf(b, "### Inside order %d (%s, %s)\n\n",
			highest.OrderID, highest.Date.Format(dateLayout), n.money(highest.TotalSpend))
		fmt.Fprintf(b, "| Item | Category | Price |\n")
		fmt.Fprintf(b, "|---|---|---:|\n")
		for _, line := range highest.Lines {
			fmt.Fprintf(b, "| %s | %s | %s |\n",
				line.Item.Name, line.Item.Category, n.money(line.Item.Price))
		}
		b.WriteString("\n")
	}
}
