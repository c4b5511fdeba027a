package output

import (
	"fmt"
	"math"
	"strings"
)

// IntensityBar renders a 0-10 pain intensity.
// Example: "██████░░░░ 6/10"
func IntensityBar(intensity int, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := int(math.Round(float64(intensity) / 10.0 * float64(width)))
	filled = clampInt(filled, 0, width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", intensityStyle(intensity)(bar), StyleMuted.Render(fmt.Sprintf("%d/10", intensity)))
}

func intensityStyle(intensity int) func(...string) string {
	switch {
	case intensity >= 7:
		return StyleError.Render
	case intensity >= 4:
		return StyleWarning.Render
	default:
		return StyleSuccess.Render
	}
}

// CorrelationBar renders r in [-1,1] as a bar growing left or right from a
// centre mark.
// Example: "     ▕███   +0.62"
func CorrelationBar(r float64, halfWidth int) string {
	if halfWidth <= 0 {
		halfWidth = 10
	}
	n := clampInt(int(math.Round(math.Abs(r)*float64(halfWidth))), 0, halfWidth)

	var left, right string
	if r < 0 {
		left = strings.Repeat(" ", halfWidth-n) + strings.Repeat("█", n)
		right = strings.Repeat(" ", halfWidth)
	} else {
		left = strings.Repeat(" ", halfWidth)
		right = strings.Repeat("█", n) + strings.Repeat(" ", halfWidth-n)
	}

	style := StyleMuted.Render
	switch a := math.Abs(r); {
	case a >= 0.5:
		style = StyleError.Render
	case a >= 0.3:
		style = StyleWarning.Render
	}
	return fmt.Sprintf("%s%s%s %s", style(left), StyleMuted.Render("▕"), style(right), StyleBold.Render(fmt.Sprintf("%+.2f", r)))
}

// Strength describes the magnitude of a correlation coefficient.
func Strength(r float64) string {
	switch a := math.Abs(r); {
	case a >= 0.7:
		return "strong"
	case a >= 0.4:
		return "moderate"
	case a >= 0.2:
		return "weak"
	default:
		return "none"
	}
}

// Percent formats a 0-1 fraction as a whole percentage.
func Percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
