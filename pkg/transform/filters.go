package transform

import (
	"strings"

	"github.com/matzehuels/tldrviz/pkg/graph"
)

// IsTestFile reports whether path looks like a test file: it contains
// ".test.", ".spec." or "__tests__".
func IsTestFile(path string) bool {
	return strings.Contains(path, ".test.") ||
		strings.Contains(path, ".spec.") ||
		strings.Contains(path, "__tests__")
}

const (
	heatLowBound    = 0.33
	heatMediumBound = 0.66
)

// HeatFor bands count relative to max: below 0.33 is low, below 0.66 is
// medium, anything else high. A non-positive max is treated as 1.
func HeatFor(count, max int) graph.Heat {
	if max < 1 {
		max = 1
	}
	switch intensity := float64(count) / float64(max); {
	case intensity < heatLowBound:
		return graph.HeatLow
	case intensity < heatMediumBound:
		return graph.HeatMedium
	default:
		return graph.HeatHigh
	}
}
