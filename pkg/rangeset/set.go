// Package rangeset implements sets of integers stored as normalized
// lists of half-open ranges.
package rangeset

import (
	"iter"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// Set is an immutable set of scalars. A nil *Set is the empty set.
type Set[T constraints.Integer] struct {
	// rr is the set of ranges that belong to this Set. The ranges are
	// normalized according to mergeRanges, meaning they are a sorted,
	// minimal representation (no empty ranges, no overlapping ranges,
	// no touching ranges). The implementation of various methods rely
	// on this property.
	rr []Range[T]
}

// New returns the normalized set covering rr. Empty and inverted ranges
// contribute nothing and are dropped. rr is not retained.
func New[T constraints.Integer](rr []Range[T]) *Set[T] {
	return &Set[T]{rr: mergeRanges(rr)}
}

// Ranges returns the minimum and sorted set of ranges that covers s.
func (s *Set[T]) Ranges() []Range[T] {
	if s == nil {
		return []Range[T]{}
	}
	return append([]Range[T]{}, s.rr...)
}

// All iterates over the ranges of s in ascending order.
func (s *Set[T]) All() iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		if s == nil {
			return
		}
		for _, r := range s.rr {
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of ranges in s.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rr)
}

func (s *Set[T]) IsEmpty() bool { return s.Len() == 0 }

// Size returns the number of scalars in s.
func (s *Set[T]) Size() T {
	var n T
	for r := range s.All() {
		n += r.Len()
	}
	return n
}

// Min returns the smallest scalar in s.
func (s *Set[T]) Min() (T, bool) {
	if s.IsEmpty() {
		var zero T
		return zero, false
	}
	return s.rr[0].Start, true
}

// Extent returns the smallest range covering every scalar in s.
func (s *Set[T]) Extent() (Range[T], bool) {
	if s.IsEmpty() {
		return Range[T]{}, false
	}
	return Range[T]{Start: s.rr[0].Start, End: s.rr[len(s.rr)-1].End}, true
}

// Includes reports whether x is in s.
func (s *Set[T]) Includes(x T) bool {
	if s == nil {
		return false
	}
	i := sort.Search(len(s.rr), func(i int) bool { return s.rr[i].End > x })
	return i < len(s.rr) && s.rr[i].Contains(x)
}

func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.rr[i] != other.rr[i] {
			return false
		}
	}
	return true
}

// Union returns a new set holding the scalars of s and other.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	var b SetBuilder[T]
	b.AddSet(s)
	b.AddSet(other)
	u, _ := b.Set()
	return u
}

// Difference returns a new set holding the scalars of s that are not
// in other.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	var b SetBuilder[T]
	b.AddSet(s)
	b.RemoveSet(other)
	d, _ := b.Set()
	return d
}

// Intersection returns a new set holding the scalars present in both s
// and other.
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	a, b := s.Ranges(), other.Ranges()
	out := make([]Range[T], 0, max(len(a), len(b)))
	for len(a) > 0 && len(b) > 0 {
		if r, ok := a[0].Intersect(b[0]); ok {
			out = append(out, r)
		}
		// drop whichever range ends first, the other may still
		// overlap the next one.
		if a[0].End <= b[0].End {
			a = a[1:]
		} else {
			b = b[1:]
		}
	}
	return New(out)
}

func (s *Set[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	i := 0
	for r := range s.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.String())
		i++
	}
	sb.WriteByte('}')
	return sb.String()
}
