package remap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangemap/pkg/rangeset"
	"golang.org/x/exp/constraints"
)

// Rule shifts every scalar of its source range onto the destination
// range of the same length.
type Rule[T constraints.Integer] struct {
	source      rangeset.Range[T]
	destination rangeset.Range[T]
	offset      T
}

// NewRule returns the rule mapping [source, source+length) onto
// [destination, destination+length).
func NewRule[T constraints.Integer](destination, source, length T) (Rule[T], error) {
	src := rangeset.RangeOfLength(source, length)
	if !src.IsValid() {
		return Rule[T]{}, fmt.Errorf("source %d with length %d overflows", source, length)
	}
	dst := rangeset.RangeOfLength(destination, length)
	if !dst.IsValid() {
		return Rule[T]{}, fmt.Errorf("destination %d with length %d overflows", destination, length)
	}
	return Rule[T]{
		source:      src,
		destination: dst,
		offset:      destination - source,
	}, nil
}

// ParseRule parses a "destination source length" line.
func ParseRule[T constraints.Integer](s string) (Rule[T], error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Rule[T]{}, fmt.Errorf("expected 3 fields in rule %q, got %d", s, len(fields))
	}
	var v [3]T
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return Rule[T]{}, fmt.Errorf("invalid number %q in rule %q", f, s)
		}
		if uint64(T(n)) != n || T(n) < 0 {
			return Rule[T]{}, fmt.Errorf("number %q out of range in rule %q", f, s)
		}
		v[i] = T(n)
	}
	r, err := NewRule(v[0], v[1], v[2])
	if err != nil {
		return Rule[T]{}, fmt.Errorf("rule %q: %w", s, err)
	}
	return r, nil
}

func (r Rule[T]) Source() rangeset.Range[T] { return r.source }

func (r Rule[T]) Destination() rangeset.Range[T] { return r.destination }

// Offset is destination.Start - source.Start, wrapping for unsigned T.
func (r Rule[T]) Offset() T { return r.offset }

func (r Rule[T]) String() string {
	return fmt.Sprintf("%v->%v", r.source, r.destination)
}

// Map returns the destination of x, ok is false when x is outside the
// source range.
func (r Rule[T]) Map(x T) (T, bool) {
	if !r.source.Contains(x) {
		return x, false
	}
	return x + r.offset, true
}

// Shift moves rng into the destination range. ok is false unless the
// source range covers rng.
func (r Rule[T]) Shift(rng rangeset.Range[T]) (rangeset.Range[T], bool) {
	if !r.source.Covers(rng) {
		return rng, false
	}
	return rng.Shift(r.offset), true
}
