// ABOUTME: Compact metric block widget for dashboard KPIs
// ABOUTME: Combines icon, value, optional sparkline, and a subtitle in a bordered box

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/tui/icons"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       24,
		BorderColor: styles.Muted,
		TitleColor:  styles.Primary,
		ValueColor:  styles.Text,
	}
}

// MetricBlock renders a compact KPI box with the title set into the top border
func MetricBlock(icon icons.Icon, title, value, subtitle string, config MetricBlockConfig) string {
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	return box(icon, title, config, valueStyle.Render(value), subtleLine(subtitle, config))
}

// MetricBlockWithSparkline renders a KPI box with a trend line beside the value
func MetricBlockWithSparkline(icon icons.Icon, title, value string, spark []float64, subtitle string, config MetricBlockConfig) string {
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	line := valueStyle.Render(value)
	if len(spark) > 0 {
		line += "  " + Sparkline(spark, sparkWidth(config), styles.Accent)
	}
	return box(icon, title, config, line, subtleLine(subtitle, config))
}

func sparkWidth(config MetricBlockConfig) int {
	return max(4, min(12, innerWidth(config)/3))
}

func innerWidth(config MetricBlockConfig) int {
	if config.Width <= 0 {
		config.Width = DefaultMetricBlockConfig().Width
	}
	return config.Width - 4
}

func subtleLine(s string, config MetricBlockConfig) string {
	return lipgloss.NewStyle().Foreground(styles.Muted).Render(truncate(s, innerWidth(config)))
}

// box draws the bordered block; lines are padded by display width so
// styled content keeps the right border aligned
func box(icon icons.Icon, title string, config MetricBlockConfig, lines ...string) string {
	inner := innerWidth(config)
	width := inner + 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), inner-1)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	out := []string{
		borderStyle.Render("┌─ ") + titleStyle.Render(titleStr) + " " +
			borderStyle.Render(strings.Repeat("─", max(0, width-5-lipgloss.Width(titleStr)))+"┐"),
	}
	for _, l := range lines {
		pad := max(0, inner-lipgloss.Width(l))
		out = append(out, borderStyle.Render("│  ")+l+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}
	out = append(out, borderStyle.Render("└"+strings.Repeat("─", width-2)+"┘"))
	return strings.Join(out, "\n")
}

// truncate shortens a string to maxLen runes with an ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}
