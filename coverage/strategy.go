package coverage

import (
	"fmt"
	"math"
	"strings"
)

// Strategy selects how the next probe radius is chosen.
type Strategy int

const (
	// Bisect probes the midpoint of the interval.
	Bisect Strategy = iota

	// Interpolate fits count ≈ a·r² + b·r through both interval ends and
	// probes where the fit reaches the target. Every second probe bisects.
	Interpolate
)

func (s Strategy) String() string {
	switch s {
	case Bisect:
		return "bisect"
	case Interpolate:
		return "interpolate"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses "bisect" or "interpolate".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bisect", "":
		return Bisect, nil
	case "interpolate":
		return Interpolate, nil
	default:
		return Bisect, fmt.Errorf("coverage: unknown strategy %q", s)
	}
}

// next returns the radius to probe on the given (1-based) iteration.
func (s Strategy) next(iteration int, lo float64, countLo int, hi float64, countHi int, target int) float64 {
	mid := lo + (hi-lo)/2

	if s != Interpolate || iteration%2 == 0 {
		return mid
	}

	est := interpolate(lo, float64(countLo), hi, float64(countHi), float64(target))
	if !(est > lo && est < hi) {
		return mid
	}
	return est
}

// interpolate returns x such that the parabola through the origin,
// (x1, y1) and (x2, y2) has value y. The result is NaN when no such
// parabola exists.
func interpolate(x1, y1, x2, y2, y float64) float64 {
	if x1 == 0 {
		if y2 <= 0 {
			return math.NaN()
		}
		return x2 * math.Sqrt(y/y2)
	}

	d := x1 * x2 * (x2 - x1)
	if d == 0 {
		return math.NaN()
	}

	a := (x1*y2 - x2*y1) / d
	b := (x2*x2*y1 - x1*x1*y2) / d

	if a == 0 {
		if b == 0 {
			return math.NaN()
		}
		return y / b
	}

	return (math.Sqrt(4*a*y+b*b) - b) / (2 * a)
}
