package rangeset

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Range is the half-open interval [Start, End).
type Range[T constraints.Integer] struct {
	Start T
	End   T
}

func RangeFrom[T constraints.Integer](start, end T) Range[T] {
	return Range[T]{Start: start, End: end}
}

// RangeOfLength returns [start, start+length).
func RangeOfLength[T constraints.Integer](start, length T) Range[T] {
	return Range[T]{Start: start, End: start + length}
}

// ParseRange parses a range in the "start..end" notation used by String.
func ParseRange[T constraints.Integer](s string) (Range[T], error) {
	var r Range[T]
	h := strings.Index(s, "..")
	if h == -1 {
		return r, fmt.Errorf("no separator in range %q", s)
	}
	from, to := strings.TrimSpace(s[:h]), strings.TrimSpace(s[h+2:])
	start, err := parseInt[T](from)
	if err != nil {
		return r, fmt.Errorf("invalid start %q in range %q", from, s)
	}
	end, err := parseInt[T](to)
	if err != nil {
		return r, fmt.Errorf("invalid end %q in range %q", to, s)
	}
	r = Range[T]{Start: start, End: end}
	if !r.IsValid() {
		return r, fmt.Errorf("start after end in range %q", s)
	}
	return r, nil
}

// parseInt parses s into T, rejecting values that do not fit.
func parseInt[T constraints.Integer](s string) (T, error) {
	var zero T
	if isSigned[T]() {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, err
		}
		if int64(T(v)) != v {
			return zero, strconv.ErrRange
		}
		return T(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return zero, err
	}
	if uint64(T(v)) != v {
		return zero, strconv.ErrRange
	}
	return T(v), nil
}

func isSigned[T constraints.Integer]() bool {
	var zero T
	return zero-1 < zero
}

func (r Range[T]) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

func (r Range[T]) IsValid() bool { return r.Start <= r.End }

// IsEmpty reports whether r holds no scalars. Inverted ranges are empty.
func (r Range[T]) IsEmpty() bool { return r.Start >= r.End }

func (r Range[T]) IsZero() bool { return r == Range[T]{} }

// Len returns the number of scalars in r, zero for empty ranges.
func (r Range[T]) Len() T {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

func (r Range[T]) Contains(x T) bool {
	return r.Start <= x && x < r.End
}

// Less orders ranges by start, then by end.
func (r Range[T]) Less(other Range[T]) bool {
	if r.Start != other.Start {
		return r.Start < other.Start
	}
	return r.End < other.End
}

// Overlaps returns whether r and other share at least one scalar.
func (r Range[T]) Overlaps(other Range[T]) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Start < other.End && other.Start < r.End
}

// CoveredBy returns whether r is entirely contained within other.
func (r Range[T]) CoveredBy(other Range[T]) bool {
	return other.Start <= r.Start && r.End <= other.End
}

// Covers returns whether other is entirely contained within r.
func (r Range[T]) Covers(other Range[T]) bool {
	return other.CoveredBy(r)
}

// EntirelyBefore returns whether r ends at or before the start of other.
func (r Range[T]) EntirelyBefore(other Range[T]) bool {
	return r.End <= other.Start
}

// InMiddleOf returns whether r is inside other, but not touching the
// edges of other.
func (r Range[T]) InMiddleOf(other Range[T]) bool {
	return other.Start < r.Start && r.End < other.End
}

// OverlapsStartOf returns whether r overlaps the start of other, but
// not all of other.
func (r Range[T]) OverlapsStartOf(other Range[T]) bool {
	return r.Start <= other.Start && r.End < other.End
}

// OverlapsEndOf returns whether r overlaps the end of other, but not
// all of other.
func (r Range[T]) OverlapsEndOf(other Range[T]) bool {
	return other.Start < r.Start && other.End <= r.End
}

// Intersect returns the scalars shared by r and other. ok is false when
// they do not overlap.
func (r Range[T]) Intersect(other Range[T]) (Range[T], bool) {
	if !r.Overlaps(other) {
		return Range[T]{}, false
	}
	return Range[T]{Start: max(r.Start, other.Start), End: min(r.End, other.End)}, true
}

// Shift moves both bounds of r by offset. The addition wraps, so an
// unsigned offset computed as dst-src shifts downwards too.
func (r Range[T]) Shift(offset T) Range[T] {
	return Range[T]{Start: r.Start + offset, End: r.End + offset}
}
