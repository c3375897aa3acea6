package ml

import (
	"math"

	"golang.org/x/text/unicode/norm"
)

// StandardizeFeature applies a fitted standard scaler to a single value.
func StandardizeFeature(value, mean, scale float64) float64 {
	if scale == 0 {
		scale = 1
	}
	return (value - mean) / scale
}

// OneHot sets the slot of the matched category in dst. Unknown categories
// (index < 0) leave the block zeroed.
func OneHot(dst []float64, index int) {
	for i := range dst {
		dst[i] = 0
	}
	if index >= 0 && index < len(dst) {
		dst[index] = 1
	}
}

func normalizeCategory(value string) string {
	return norm.NFC.String(value)
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
