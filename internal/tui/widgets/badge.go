// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for balances and period deltas

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/tui/icons"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Spending thresholds as a share of income
const (
	SpendingWarnPct = 80
	SpendingCritPct = 100
)

var badgeColors = map[StatusLevel][2]lipgloss.Color{
	StatusOK:       {styles.Secondary, "#FFFFFF"},
	StatusWarning:  {styles.Warning, "#000000"},
	StatusCritical: {styles.Danger, "#FFFFFF"},
	StatusInfo:     {styles.Primary, "#FFFFFF"},
	StatusNeutral:  {styles.Muted, "#FFFFFF"},
}

func colorsFor(level StatusLevel) (bg, fg lipgloss.Color) {
	c, ok := badgeColors[level]
	if !ok {
		c = badgeColors[StatusNeutral]
	}
	return c[0], c[1]
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colorsFor(level)
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusIcon returns the icon for a status level in its color
func StatusIcon(level StatusLevel) string {
	bg, _ := colorsFor(level)
	icon := "•"
	switch level {
	case StatusOK:
		icon = icons.CheckOK.String()
	case StatusWarning:
		icon = icons.Warning.String()
	case StatusCritical:
		icon = icons.Critical.String()
	case StatusInfo:
		icon = icons.Info.String()
	}
	return lipgloss.NewStyle().Foreground(bg).Render(icon)
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := colorsFor(level)
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}

// SpendingLevel rates expenses against income for the period. Spending with
// no income at all is critical.
func SpendingLevel(receitas, despesas float64) (float64, StatusLevel) {
	if receitas <= 0 {
		if despesas > 0 {
			return SpendingCritPct, StatusCritical
		}
		return 0, StatusNeutral
	}
	pct := despesas / receitas * 100
	switch {
	case pct >= SpendingCritPct:
		return pct, StatusCritical
	case pct >= SpendingWarnPct:
		return pct, StatusWarning
	default:
		return pct, StatusOK
	}
}

// BalanceBadge labels a period balance
func BalanceBadge(saldo float64) string {
	switch {
	case saldo > 0:
		return Badge("Positive", StatusOK)
	case saldo < 0:
		return Badge("Negative", StatusCritical)
	default:
		return Badge("Even", StatusNeutral)
	}
}

// DeltaBadge renders a change between two periods. With invert set a rise
// is bad, as for expenses.
func DeltaBadge(delta float64, invert bool) string {
	level := StatusNeutral
	switch {
	case delta > 0 && invert, delta < 0 && !invert:
		level = StatusWarning
	case delta != 0:
		level = StatusOK
	}
	return Badge(fmt.Sprintf("%+.2f", delta), level)
}

// TrendIndicator returns an arrow for the direction from previous to current
func TrendIndicator(current, previous float64) string {
	switch {
	case current > previous:
		return lipgloss.NewStyle().Foreground(styles.Income).Render(icons.TrendUp.String())
	case current < previous:
		return lipgloss.NewStyle().Foreground(styles.Expense).Render(icons.TrendDown.String())
	}
	return lipgloss.NewStyle().Foreground(styles.Muted).Render("→")
}
