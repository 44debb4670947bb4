// ABOUTME: Income versus expenses view across recent months
// ABOUTME: Displays monthly columns, net result, and month-over-month deltas

package comparison

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
	"github.com/Depaula010/meusecretariofront/internal/tui/widgets"
)

// Comparison displays the income and expense series
type Comparison struct {
	series *client.IncomeExpenseSeries
	width  int
}

// New creates a new comparison view
func New(series *client.IncomeExpenseSeries, width int) *Comparison {
	return &Comparison{
		series: series,
		width:  width,
	}
}

// Month is one row of the comparison
type Month struct {
	Label    string
	Receitas float64
	Despesas float64
}

// Net is income minus expenses
func (m Month) Net() float64 { return m.Receitas - m.Despesas }

// Months zips the series into rows, stopping at the shortest slice
func Months(s *client.IncomeExpenseSeries) []Month {
	if s == nil {
		return nil
	}
	n := min(len(s.Labels), len(s.Receitas), len(s.Despesas))
	months := make([]Month, n)
	for i := 0; i < n; i++ {
		months[i] = Month{Label: s.Labels[i], Receitas: s.Receitas[i], Despesas: s.Despesas[i]}
	}
	return months
}

// View renders the comparison
func (c *Comparison) View() string {
	months := Months(c.series)
	if len(months) == 0 {
		return "No comparison data"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Income vs expenses"))
	sb.WriteString("\n")

	header := fmt.Sprintf("%-8s %14s %14s %14s", "Month", "Income", "Expenses", "Net")
	sb.WriteString(styles.Subtitle.Render(header))
	sb.WriteString("\n")

	for _, m := range months {
		net := fmt.Sprintf("%14s", styles.Money(m.Net()))
		if m.Net() < 0 {
			net = styles.StatusCritical.Render(net)
		} else {
			net = styles.StatusOK.Render(net)
		}
		fmt.Fprintf(&sb, "%-8s %14s %14s %s\n", m.Label, styles.Money(m.Receitas), styles.Money(m.Despesas), net)
	}

	if len(months) >= 2 {
		last, prev := months[len(months)-1], months[len(months)-2]
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Changes vs " + prev.Label))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  Income:   %s %s\n",
			widgets.TrendIndicator(last.Receitas, prev.Receitas),
			widgets.DeltaBadge(last.Receitas-prev.Receitas, false))
		fmt.Fprintf(&sb, "  Expenses: %s %s\n",
			widgets.TrendIndicator(last.Despesas, prev.Despesas),
			widgets.DeltaBadge(last.Despesas-prev.Despesas, true))
	}

	var deficits []string
	for _, m := range months {
		if m.Net() < 0 {
			deficits = append(deficits, m.Label)
		}
	}
	if len(deficits) > 0 {
		sb.WriteString("\n")
		sb.WriteString(widgets.StatusText("Expenses exceeded income in "+strings.Join(deficits, ", "), widgets.StatusWarning))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(c.width).Render(strings.TrimRight(sb.String(), "\n"))
}
