// ABOUTME: Progress bars for shares and spending ratios
// ABOUTME: Shows green/amber/red zones for spending against income

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width         int
	WarnThreshold float64
	CritThreshold float64
	OKColor       lipgloss.Color
	WarnColor     lipgloss.Color
	CritColor     lipgloss.Color
	EmptyColor    lipgloss.Color
}

// DefaultProgressBarConfig returns the spending thresholds
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:         20,
		WarnThreshold: SpendingWarnPct,
		CritThreshold: SpendingCritPct,
		OKColor:       styles.Secondary,
		WarnColor:     styles.Warning,
		CritColor:     styles.Danger,
		EmptyColor:    styles.Surface,
	}
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ProgressBar renders a bar whose filled cells take the color of the zone
// they fall in
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	filled := int(clampPercent(percent) / 100.0 * float64(config.Width))
	warnPos := int(config.WarnThreshold / 100.0 * float64(config.Width))
	critPos := int(config.CritThreshold / 100.0 * float64(config.Width))

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < config.Width; i++ {
		if i >= filled {
			bar.WriteString(lipgloss.NewStyle().Foreground(config.EmptyColor).Render("░"))
			continue
		}
		color := config.OKColor
		if i >= critPos {
			color = config.CritColor
		} else if i >= warnPos {
			color = config.WarnColor
		}
		bar.WriteString(lipgloss.NewStyle().Foreground(color).Render("█"))
	}
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel appends the percentage, colored by zone. The label
// shows the real value even past 100%.
func ProgressBarWithLabel(percent float64, config ProgressBarConfig) string {
	color := config.OKColor
	switch {
	case percent >= config.CritThreshold:
		color = config.CritColor
	case percent >= config.WarnThreshold:
		color = config.WarnColor
	}
	label := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%3.0f%%", percent))
	return ProgressBar(percent, config) + " " + label
}

// ShareBar renders a single-color bar for a share of a total, such as one
// category's part of the month's expenses
func ShareBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	filled := int(clampPercent(percent) / 100.0 * float64(width))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("░", width-filled))
}
