package narrator

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ayushi-gajendra/restaurant-insights/models"
)

func (n *Narrator) renderText(w io.Writer, report *models.Report) error {
	var b strings.Builder

	heading(&b, "RESTAURANT ORDER INSIGHTS")
	fmt.Fprintf(&b, "Run:       %s\n", report.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Source:    %s\n\n", report.Source)

	n.textMenu(&b, report)
	n.textActivity(&b, report)
	n.textSales(&b, report)
	n.textSpending(&b, report)

	heading(&b, "Recommendations")
	for _, r := range recommendations {
		fmt.Fprintf(&b, "  * %s\n", r)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

// heading writes a section title underlined to its own width.
func heading(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(title)))
	b.WriteString("\n\n")
}

func (n *Narrator) textMenu(b *strings.Builder, report *models.Report) {
	heading(b, "Menu")
	fmt.Fprintf(b, "The menu carries %d dishes across %d categories.\n",
		report.Menu.Items, len(report.Menu.Categories))
	fmt.Fprintf(b, "Most expensive:  %s\n", n.itemList(report.Menu.Extremes.Max))
	fmt.Fprintf(b, "Least expensive: %s\n\n", n.itemList(report.Menu.Extremes.Min))

	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tDISHES\tAVG PRICE\tREVENUE")
	for _, c := range report.Menu.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			c.Category, c.Count, n.money(c.AvgPrice), n.money(c.TotalRevenue))
	}
	tw.Flush()
	b.WriteByte('\n')
}

func (n *Narrator) textActivity(b *strings.Builder, report *models.Report) {
	a := report.Activity

	heading(b, "Order activity")
	fmt.Fprintf(b, "Orders: %d across %d line items (%.2f lines per order).\n",
		a.Orders, a.Lines, a.AvgLinesPerOrder)
	fmt.Fprintf(b, "Date range: %s to %s.\n",
		a.FirstDate.Format(dateLayout), a.LastDate.Format(dateLayout))
	fmt.Fprintf(b, "Bulk orders (more than %d line items): %d.\n\n",
		a.BulkThreshold, a.BulkOrders)

	if len(a.OrdersByHour) > 0 {
		tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "HOUR\tORDERS")
		for _, hour := range sortedHours(a.OrdersByHour) {
			fmt.Fprintf(tw, "%02d:00\t%d\n", hour, a.OrdersByHour[hour])
		}
		tw.Flush()
		b.WriteByte('\n')
	}
}

func (n *Narrator) textSales(b *strings.Builder, report *models.Report) {
	heading(b, "What sells")
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tITEM\tCATEGORY\tTIMES ORDERED\tREVENUE")
	for _, stat := range report.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			stat.Rank, stat.Item.Name, stat.Item.Category,
			stat.TimesOrdered, n.money(stat.TotalRevenue))
	}
	tw.Flush()
	b.WriteByte('\n')

	if len(report.LeastOrdered) > 0 {
		heading(b, "Least ordered")
		tw = tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ITEM\tCATEGORY\tTIMES ORDERED")
		for _, stat := range report.LeastOrdered {
			fmt.Fprintf(tw, "%s\t%s\t%d\n",
				stat.Item.Name, stat.Item.Category, stat.TimesOrdered)
		}
		tw.Flush()
		b.WriteByte('\n')
	}
}

func (n *Narrator) textSpending(b *strings.Builder, report *models.Report) {
	heading(b, "Spending")
	fmt.Fprintf(b, "The largest single order came to %s.\n\n", n.money(report.MaxOrderValue))

	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tLINES\tTOTAL")
	for _, total := range report.TopOrders {
		fmt.Fprintf(tw, "%d\t%d\t%s\n",
			total.OrderID, total.LineCount, n.money(total.TotalSpend))
	}
	tw.Flush()
	b.WriteByte('\n')

	highest := report.HighestOrder
	if len(highest.Lines) > 0 {
		heading(b, fmt.Sprintf("Inside order %d (%s, %s)",
			highest.OrderID, highest.Date.Format(dateLayout), n.money(highest.TotalSpend)))
		tw = tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ITEM\tCATEGORY\tPRICE")
		for _, line := range highest.Lines {
			fmt.Fprintf(tw, "%s\t%s\t%s\n",
				line.Item.Name, line.Item.Category, n.money(line.Item.Price))
		}
		tw.Flush()
		b.WriteByte('\n')
	}
}
