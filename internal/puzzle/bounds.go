package puzzle

import "fmt"

// Interval is a closed range of integers used both for hit-testing and for
// validating configuration values.
type Interval struct {
	Min int
	Max int
}

// Inside reports whether v lies strictly between Min and Max.
// Points on either end are outside, so clicks on the board's edge never
// resolve to a tile.
func (i Interval) Inside(v int) bool {
	return v > i.Min && v < i.Max
}

// Check returns an error if v falls outside [Min, Max].
func (i Interval) Check(v int) error {
	if v < i.Min {
		return fmt.Errorf("%w: %d is below the minimum bound of %d", ErrBelowMinimum, v, i.Min)
	}
	if v > i.Max {
		return fmt.Errorf("%w: %d is above the maximum bound of %d", ErrAboveMaximum, v, i.Max)
	}
	return nil
}

// Length returns Max - Min.
func (i Interval) Length() int {
	return i.Max - i.Min
}

// Bounds is a pair of intervals, one per axis.
type Bounds struct {
	X Interval
	Y Interval
}

// Inside reports whether p lies strictly inside both intervals.
func (b Bounds) Inside(p Coord) bool {
	return b.X.Inside(p.X) && b.Y.Inside(p.Y)
}
