// ABOUTME: Sparkline widget renders mini trend charts using block characters
// ABOUTME: Used for the balance evolution on the dashboard

package widgets

import (
	"github.com/charmbracelet/lipgloss"
)

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values (most recent last) scaled between their own
// minimum and maximum, resampled to width characters
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	result := make([]rune, len(sampled))
	for i, v := range sampled {
		result[i] = valueToBlock(v, lo, hi)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(string(result))
}

// SignedSparkline colors each block by sign, for balances that may dip
// below zero
func SignedSparkline(values []float64, width int, pos, neg lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	var out string
	for _, v := range sampled {
		color := pos
		if v < 0 {
			color = neg
		}
		out += lipgloss.NewStyle().Foreground(color).Render(string(valueToBlock(v, lo, hi)))
	}
	return out
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// sampleValues resamples values to width. Short series are left-padded by
// repeating the first value so padding does not read as a drop to zero.
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)
	if len(values) < width {
		padding := width - len(values)
		for i := 0; i < padding; i++ {
			result[i] = values[0]
		}
		copy(result[padding:], values)
		return result
	}

	ratio := float64(len(values)) / float64(width)
	for i := 0; i < width; i++ {
		idx := min(int(float64(i)*ratio), len(values)-1)
		result[i] = values[idx]
	}
	return result
}

func valueToBlock(value, lo, hi float64) rune {
	if hi == lo {
		return SparklineBlocks[len(SparklineBlocks)/2]
	}
	idx := int((value - lo) / (hi - lo) * float64(len(SparklineBlocks)-1))
	idx = max(0, min(idx, len(SparklineBlocks)-1))
	return SparklineBlocks[idx]
}
