// ABOUTME: Dashboard component displaying the period's finances
// ABOUTME: Shows KPI blocks, spending ratio, top categories, and recent transactions

package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/tui/icons"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
	"github.com/Depaula010/meusecretariofront/internal/tui/widgets"
)

const (
	maxCategories = 5
	maxRecent     = 5
	blockWidth    = 24
)

// Dashboard displays dashboard data
type Dashboard struct {
	data   *client.Dashboard
	width  int
	height int
}

// New creates a new dashboard
func New(data *client.Dashboard, width, height int) *Dashboard {
	return &Dashboard{
		data:   data,
		width:  width,
		height: height,
	}
}

// Update replaces the dashboard data after a refresh
func (d *Dashboard) Update(data *client.Dashboard) {
	d.data = data
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.data == nil {
		return lipgloss.NewStyle().Width(d.width).Render("Loading dashboard...")
	}

	sections := []string{d.renderSummary()}
	if s := d.renderCategories(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, d.renderRecent())

	return lipgloss.NewStyle().
		Width(d.width).
		MaxHeight(d.height).
		Render(strings.Join(sections, "\n\n"))
}

func (d *Dashboard) renderSummary() string {
	if d.data.SummaryErr != nil {
		return sectionError("summary", d.data.SummaryErr)
	}
	s := d.data.Summary
	if s == nil {
		return styles.Subtitle.Render("No summary available")
	}

	cfg := widgets.DefaultMetricBlockConfig()
	cfg.Width = blockWidth

	var spark []float64
	if d.data.Charts != nil {
		spark = d.data.Charts.EvolucaoSaldo.Valores
	}

	balanceCfg := cfg
	balanceCfg.ValueColor = styles.Income
	if s.SaldoAtual < 0 {
		balanceCfg.ValueColor = styles.Expense
	}
	incomeCfg := cfg
	incomeCfg.ValueColor = styles.Income
	expenseCfg := cfg
	expenseCfg.ValueColor = styles.Expense
	cardCfg := cfg
	cardCfg.ValueColor = styles.Card

	blocks := []string{
		widgets.MetricBlockWithSparkline(icons.Wallet, "Balance", styles.Money(s.SaldoAtual), spark, s.Periodo, balanceCfg),
		widgets.MetricBlock(icons.Income, "Income", styles.Money(s.TotalReceitas), "this period", incomeCfg),
		widgets.MetricBlock(icons.Expense, "Expenses", styles.Money(s.TotalDespesas), "this period", expenseCfg),
		widgets.MetricBlock(icons.Card, "Credit card", styles.Money(s.CartaoDeCredito), "open bill", cardCfg),
	}

	perRow := max(1, d.width/(blockWidth+1))
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, interleave(blocks[i:end], " ")...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	pct, level := widgets.SpendingLevel(s.TotalReceitas, s.TotalDespesas)
	barCfg := widgets.DefaultProgressBarConfig()
	barCfg.Width = min(30, max(10, d.width-30))
	spending := fmt.Sprintf("%s  %s %s",
		styles.Subtitle.Render("Spent of income"),
		widgets.ProgressBarWithLabel(pct, barCfg),
		widgets.StatusIcon(level),
	)

	return grid + "\n" + spending + "  " + widgets.BalanceBadge(s.TotalReceitas-s.TotalDespesas)
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

type categoryShare struct {
	name  string
	value float64
}

// topCategories returns the largest categories by value, largest first
func topCategories(dist client.CategoryDistribution, n int) ([]categoryShare, float64) {
	var total float64
	shares := make([]categoryShare, 0, len(dist.Categorias))
	for i, name := range dist.Categorias {
		if i >= len(dist.Valores) {
			break
		}
		shares = append(shares, categoryShare{name: name, value: dist.Valores[i]})
		total += dist.Valores[i]
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].value > shares[j].value })
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares, total
}

func (d *Dashboard) renderCategories() string {
	if d.data.ChartsErr != nil {
		return sectionError("charts", d.data.ChartsErr)
	}
	if d.data.Charts == nil {
		return ""
	}
	shares, total := topCategories(d.data.Charts.DistribuicaoCategorias, maxCategories)
	if len(shares) == 0 || total <= 0 {
		return ""
	}

	nameWidth := 0
	for _, s := range shares {
		nameWidth = max(nameWidth, lipgloss.Width(s.name))
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Category.String() + " Expenses by category"))
	sb.WriteString("\n")
	for _, s := range shares {
		pct := s.value / total * 100
		fmt.Fprintf(&sb, "%-*s %s %5.1f%%  %s\n", nameWidth, s.name,
			widgets.ShareBar(pct, 16, styles.Expense), pct, styles.Money(s.value))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (d *Dashboard) renderRecent() string {
	if d.data.RecentErr != nil {
		return sectionError("recent transactions", d.data.RecentErr)
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Calendar.String() + " Recent transactions"))
	sb.WriteString("\n")
	if len(d.data.Recent) == 0 {
		sb.WriteString(styles.Subtitle.Render("No transactions yet"))
		return sb.String()
	}
	for i, tx := range d.data.Recent {
		if i == maxRecent {
			break
		}
		fmt.Fprintf(&sb, "%s  %-24s %s\n",
			styles.Subtitle.Render(tx.Data),
			truncate(tx.Descricao, 24),
			styles.Amount(tx.Valor, tx.Tipo),
		)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sectionError(section string, err error) string {
	return widgets.StatusText(fmt.Sprintf("Could not load %s: %v", section, err), widgets.StatusCritical)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
