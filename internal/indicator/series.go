// Package indicator derives moving averages and oscillators from price
// history. All functions are pure: they never mutate their input and the
// returned series is never mutated after being handed out.
//
// Every output carries its own alignment metadata (StartDay), so callers
// translate indicator indices to calendar days without re-deriving window
// offsets. The edge policy is uniform across all indicators: the output
// always covers the maximal valid span, and a window larger than the
// available history shrinks to the largest effective window (recorded in
// the Window field) instead of failing.
package indicator

import "errors"

var (
	ErrInvalidWindow = errors.New("indicator: window must be at least 1")
	ErrEmptySeries   = errors.New("indicator: price series too short")
	ErrWeightLength  = errors.New("indicator: weights length must equal window")
	ErrWeightSum     = errors.New("indicator: weights must not sum to zero")
)

// Series is an indicator output aligned to the price series it was
// derived from.
type Series struct {
	// Values holds one value per covered calendar day.
	Values []float64
	// StartDay is the calendar day of Values[0] in the source series.
	StartDay int
	// Window is the effective window actually used. It is smaller than
	// the requested window only when the source series was shorter.
	Window int
}

func (s Series) Len() int {
	return len(s.Values)
}

// Day maps an output index to its calendar day.
func (s Series) Day(i int) int {
	return s.StartDay + i
}

// At returns the value for a calendar day, and whether the series
// covers that day.
func (s Series) At(day int) (float64, bool) {
	i := day - s.StartDay
	if i < 0 || i >= len(s.Values) {
		return 0, false
	}
	return s.Values[i], true
}
