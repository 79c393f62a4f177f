// Package remap pushes scalars and range sets through piecewise offset
// rules without enumerating the scalars.
package remap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/henderiw/rangemap/pkg/rangeset"
	"golang.org/x/exp/constraints"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	LabelSource      = "source"
	LabelDestination = "destination"
)

var (
	// ErrUnattributedRange is returned by MapSet when part of a mapped
	// range is not claimed by exactly one rule.
	ErrUnattributedRange = errors.New("range not attributable to a single rule")
	// ErrOverlappingRules is returned by Validate when two rule sources
	// share scalars.
	ErrOverlappingRules = errors.New("overlapping rule sources")
)

// Remapper maps one domain onto another. Scalars outside every rule
// source map onto themselves.
type Remapper[T constraints.Integer] struct {
	labels labels.Set
	rules  []Rule[T]
	domain *rangeset.Set[T]
}

func New[T constraints.Integer](source, destination string, rules ...Rule[T]) *Remapper[T] {
	rr := make([]rangeset.Range[T], 0, len(rules))
	for _, r := range rules {
		rr = append(rr, r.Source())
	}
	return &Remapper[T]{
		labels: labels.Set{
			LabelSource:      source,
			LabelDestination: destination,
		},
		rules:  append([]Rule[T]{}, rules...),
		domain: rangeset.New(rr),
	}
}

func (r *Remapper[T]) Source() string      { return r.labels[LabelSource] }
func (r *Remapper[T]) Destination() string { return r.labels[LabelDestination] }

// Labels returns a copy of the source and destination labels.
func (r *Remapper[T]) Labels() labels.Set {
	return labels.Merge(labels.Set{}, r.labels)
}

func (r *Remapper[T]) Rules() []Rule[T] {
	return append([]Rule[T]{}, r.rules...)
}

// Domain returns the union of all rule sources.
func (r *Remapper[T]) Domain() *rangeset.Set[T] { return r.domain }

func (r *Remapper[T]) String() string {
	return fmt.Sprintf("%s-to-%s", r.Source(), r.Destination())
}

// MapScalar maps x through the first rule whose source contains it.
func (r *Remapper[T]) MapScalar(x T) T {
	for _, rule := range r.rules {
		if v, ok := rule.Map(x); ok {
			return v
		}
	}
	return x
}

// MapSet returns the image of s. Parts of s outside the domain pass
// through unchanged, the rest is shifted by the rule that covers it.
// Rule sources must not overlap; when they do, MapSet returns an error
// wrapping ErrUnattributedRange instead of a wrong result.
func (r *Remapper[T]) MapSet(s *rangeset.Set[T]) (*rangeset.Set[T], error) {
	covered := s.Intersection(r.domain)
	uncovered := s.Difference(covered)

	var shifted []rangeset.Range[T]
	for c := range covered.All() {
		var claimed T
		for _, rule := range r.rules {
			// The domain merges touching sources, so c may span more
			// than one rule.
			piece, ok := c.Intersect(rule.Source())
			if !ok {
				continue
			}
			out, _ := rule.Shift(piece)
			shifted = append(shifted, out)
			claimed += piece.Len()
		}
		if claimed != c.Len() {
			return nil, fmt.Errorf("%w: %s mapping %v in %v", ErrUnattributedRange, r, c, r.domain)
		}
	}
	return uncovered.Union(rangeset.New(shifted)), nil
}

// Validate checks that no two rule sources overlap.
func (r *Remapper[T]) Validate() error {
	rules := r.Rules()
	sort.Slice(rules, func(i, j int) bool { return rules[i].Source().Less(rules[j].Source()) })

	var errm error
	var prev *Rule[T]
	for i := range rules {
		rule := &rules[i]
		if rule.Source().IsEmpty() {
			continue
		}
		if prev != nil && rule.Source().Start < prev.Source().End {
			errm = errors.Join(errm, fmt.Errorf("%w: %s: %v and %v", ErrOverlappingRules, r, *prev, *rule))
		}
		if prev == nil || rule.Source().End > prev.Source().End {
			prev = rule
		}
	}
	return errm
}
