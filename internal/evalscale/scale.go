// Package evalscale maps raw engine evaluations onto a bounded display
// fraction. The mapping is defined in absolute terms (high favours White)
// with presentation-side inversion applied last.
package evalscale

import (
	"math"

	"github.com/kapu/chess-replay-go/internal/timeline"
)

const (
	// Linear band: |eval| up to 5.5 pawns maps onto [0.05, 0.95].
	linearRangePawns = 5.5
	linearSpan       = 0.45

	// Beyond the band a tanh tail contributes up to another 5% toward
	// the bound, so finite evaluations never reach 0 or 1.
	tailSpan    = 0.05
	excessScale = 10.0

	minFraction = 0.02
	maxFraction = 0.98

	// Neutral is the display fraction for an even or unknown evaluation.
	Neutral = 0.5
)

// Fraction converts a centipawn evaluation (or mate distance) plus board
// orientation into a display fraction in [0, 1]. Mate saturates fully
// toward the winning side; orientation inversion applies after saturation.
func Fraction(rawCentipawns float64, orientation timeline.Color, isMate bool, mateInN int) float64 {
	var f float64
	switch {
	case isMate:
		if mateInN > 0 {
			f = 1.0
		} else {
			f = 0.0
		}
	default:
		pawns := rawCentipawns / 100.0
		mag := math.Abs(pawns)
		if mag <= linearRangePawns {
			f = Neutral + (pawns/linearRangePawns)*linearSpan
		} else {
			tail := tailSpan * math.Tanh((mag-linearRangePawns)/excessScale)
			f = Neutral + math.Copysign(linearSpan+tail, pawns)
		}
		f = clamp(f, minFraction, maxFraction)
	}

	if orientation == timeline.Black {
		f = 1.0 - f
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
