package rangeset

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

// SetBuilder collects ranges to add and remove and produces a
// normalized Set. The zero value is ready to use.
type SetBuilder[T constraints.Integer] struct {
	in   []Range[T]
	out  []Range[T]
	errs error
}

func (s *SetBuilder[T]) AddRange(r Range[T]) {
	if !r.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("addRange(%v)", r))
		return
	}
	if len(s.out) > 0 {
		s.normalize()
	}
	s.in = append(s.in, r)
}

// RemoveRange removes all scalars in r from s.
func (s *SetBuilder[T]) RemoveRange(r Range[T]) {
	if !r.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("removeRange(%v)", r))
		return
	}
	s.out = append(s.out, r)
}

// AddSet adds all scalars in b to s.
func (s *SetBuilder[T]) AddSet(b *Set[T]) {
	if b == nil {
		return
	}
	for _, r := range b.rr {
		s.AddRange(r)
	}
}

// RemoveSet removes all scalars in b from s.
func (s *SetBuilder[T]) RemoveSet(b *Set[T]) {
	if b == nil {
		return
	}
	s.out = append(s.out, b.rr...)
}

// normalize normalizes s: s.in becomes the minimal sorted list of
// ranges required to describe s, and s.out becomes empty.
func (s *SetBuilder[T]) normalize() {
	in := mergeRanges(s.in)
	out := mergeRanges(s.out)

	// in and out are sorted in ascending range order, and have no
	// overlaps within each other. We can run a merge of the two lists
	// in one pass.
	min := make([]Range[T], 0, len(in))
	for len(in) > 0 && len(out) > 0 {
		rin, rout := in[0], out[0]

		switch {
		case rout.EntirelyBefore(rin):
			//    out         in
			// s-------e   s-------e
			out = out[1:]
		case rin.EntirelyBefore(rout):
			//    in         out
			// s------e   s-------e
			min = append(min, rin)
			in = in[1:]
		case rin.CoveredBy(rout):
			//       out
			// s-------------e
			//    s------e
			//       in
			in = in[1:]
		case rout.InMiddleOf(rin):
			//       in
			// s-------------e
			//    s------e
			//       out
			min = append(min, Range[T]{Start: rin.Start, End: rout.Start})
			// Adjust in[0], not rin, because we want to consider the
			// mutated range on the next iteration.
			in[0].Start = rout.End
			out = out[1:]
		case rout.OverlapsStartOf(rin):
			//   out
			// s------e
			//    s------e
			//       in
			// Can't move rin onto min yet, a later out might trim it
			// further.
			in[0].Start = rout.End
			out = out[1:]
		case rout.OverlapsEndOf(rin):
			//           out
			//        s------e
			//    s------e
			//       in
			min = append(min, Range[T]{Start: rin.Start, End: rout.Start})
			in = in[1:]
		default:
			// The above accounts for all combinations of in and out
			// overlapping.
			panic(fmt.Sprintf("unexpected overlap scenario: in %v, out %v", rin, rout))
		}
	}
	if len(in) > 0 {
		// Ran out of removals before the end of in.
		min = append(min, in...)
	}

	s.in = min
	s.out = nil
}

// Set returns the normalized set of everything added and not removed.
// Invalid ranges passed to the builder are reported in the error, the
// returned set holds the valid ones either way.
func (s *SetBuilder[T]) Set() (*Set[T], error) {
	s.normalize()
	set := &Set[T]{
		rr: append([]Range[T]{}, s.in...),
	}
	errs := s.errs
	s.errs = nil
	return set, errs
}

// mergeRanges returns the minimal sorted list of ranges that covers rr.
// Empty and inverted ranges are dropped. Touching ranges are merged.
func mergeRanges[T constraints.Integer](rr []Range[T]) []Range[T] {
	// Always work on a copy of rr, to avoid aliasing slice memory in
	// the caller.
	sorted := make([]Range[T], 0, len(rr))
	for _, r := range rr {
		if !r.IsEmpty() {
			sorted = append(sorted, r)
		}
	}
	if len(sorted) <= 1 {
		return sorted
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	out := make([]Range[T], 1, len(sorted))
	out[0] = sorted[0]
	for _, r := range sorted[1:] {
		prev := &out[len(out)-1]
		switch {
		case prev.End < r.Start:
			// No overlap and not adjacent.
			//
			//   prev       r
			// s------e  s-----e
			out = append(out, r)
		case prev.End < r.End:
			// Partial overlap or touching, extend prev.
			//
			//   prev
			// s------e
			//     s-----e
			//        r
			prev.End = r.End
		default:
			// r entirely contained in prev, nothing to do.
		}
	}
	return out
}
