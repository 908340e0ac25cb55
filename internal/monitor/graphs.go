package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
)

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// findMinMax returns the minimum and maximum values in a slice.
func findMinMax(data []float64) (minVal, maxVal float64) {
	if len(data) == 0 {
		return 0, 0
	}
	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// chartRange picks the vertical scale for concentration charts. The floor is
// zero for non-negative data and the ceiling always clears DirtyThreshold, so
// bars are comparable across refreshes and the threshold is never off-chart.
func chartRange(data []float64) (lo, hi float64) {
	minVal, maxVal := findMinMax(data)
	lo = 0
	if minVal < 0 {
		lo = minVal
	}
	hi = telemetry.DirtyThreshold
	if maxVal > hi {
		hi = maxVal
	}
	return lo, hi
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RenderMiniSparkline renders a single-row sparkline using block characters,
// scaled to the data's own min/max.
func RenderMiniSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	minVal, maxVal := findMinMax(data)
	resampled := resampleData(data, width)

	var result strings.Builder
	for _, val := range resampled {
		normalized := normalizeValue(val, minVal, maxVal)
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}

	return result.String()
}

// RenderTrendSparkline renders a single-row sparkline on the concentration
// scale, so it lines up with the chart above it.
func RenderTrendSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	lo, hi := chartRange(data)
	resampled := resampleData(data, width)

	var result strings.Builder
	for _, val := range resampled {
		normalized := normalizeValue(val, lo, hi)
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(ColorTrend).Render(result.String())
}

// RenderTimeSeriesGraph renders a multi-row bar chart. Each column is one
// (resampled) reading, filled from the bottom and colored by its own level.
func RenderTimeSeriesGraph(data []float64, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := chartRange(data)
	resampled := resampleData(data, width)

	rows := make([]strings.Builder, height)
	fillChars := []rune{'█', '▓', '▒', '░'}

	for _, val := range resampled {
		normalized := normalizeValue(val, lo, hi)
		if normalized > 1 {
			normalized = 1
		}
		if normalized < 0 {
			normalized = 0
		}

		filledRows := int(normalized*float64(height) + 0.5)
		style := lipgloss.NewStyle().Foreground(ValueColor(val))

		for row := 0; row < height; row++ {
			rowFromBottom := height - 1 - row

			if rowFromBottom < filledRows {
				// Gradient: bottom rows are denser
				charIdx := 0
				if filledRows > 1 {
					gradientPos := float64(rowFromBottom) / float64(filledRows)
					charIdx = int(gradientPos * float64(len(fillChars)-1))
				}
				rows[row].WriteString(style.Render(string(fillChars[len(fillChars)-1-charIdx])))
			} else {
				rows[row].WriteRune(' ')
			}
		}
	}

	lines := make([]string, height)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// resampleData resamples data to the target size.
// When downsampling (compressing), uses max-based sampling to preserve peaks/spikes.
// When upsampling (expanding), repeats each point across its share of columns
// so individual readings stay visible as distinct bars.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}

	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			if start < 0 {
				start = 0
			}

			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	for i := 0; i < targetSize; i++ {
		idx := i * len(data) / targetSize
		result[i] = data[idx]
	}
	return result
}
