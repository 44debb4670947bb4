// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines the palette, panels, and amount styling used across screens

package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Surface   = lipgloss.Color("#374151") // Elevated surface background
	Accent    = lipgloss.Color("#60A5FA") // Lighter blue for highlights

	// Money
	Income  = Secondary
	Expense = Danger
	Card    = lipgloss.Color("#A855F7") // Purple

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Money formats an amount as "R$ 1234.56"; negative values keep their sign
func Money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if strings.HasPrefix(s, "-") {
		return "-R$ " + s[1:]
	}
	return "R$ " + s
}

// Amount renders a transaction amount colored by type: expenses red with a
// minus sign, income green with a plus sign
func Amount(v float64, tipo string) string {
	if tipo == "despesa" {
		return lipgloss.NewStyle().Foreground(Expense).Render("-" + Money(v))
	}
	return lipgloss.NewStyle().Foreground(Income).Render("+" + Money(v))
}

// Balance renders a balance green when non-negative and red otherwise
func Balance(v float64) string {
	color := Income
	if v < 0 {
		color = Expense
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(Money(v))
}
