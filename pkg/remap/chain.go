package remap

import (
	"errors"
	"fmt"

	"github.com/henderiw/rangemap/pkg/rangeset"
	"golang.org/x/exp/constraints"
	"k8s.io/apimachinery/pkg/labels"
)

// Chain applies remappers in order, the output of each stage feeding
// the next one.
type Chain[T constraints.Integer] struct {
	stages []*Remapper[T]
}

func NewChain[T constraints.Integer](stages ...*Remapper[T]) *Chain[T] {
	return &Chain[T]{stages: append([]*Remapper[T]{}, stages...)}
}

func (c *Chain[T]) Stages() []*Remapper[T] {
	return append([]*Remapper[T]{}, c.stages...)
}

func (c *Chain[T]) Len() int { return len(c.stages) }

func (c *Chain[T]) MapScalar(x T) T {
	for _, stage := range c.stages {
		x = stage.MapScalar(x)
	}
	return x
}

// MapSet returns the image of s under the composition of all stages.
func (c *Chain[T]) MapSet(s *rangeset.Set[T]) (*rangeset.Set[T], error) {
	for _, stage := range c.stages {
		next, err := stage.MapSet(s)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		s = next
	}
	return s, nil
}

// Select returns the stages whose labels match selector.
func (c *Chain[T]) Select(selector labels.Selector) []*Remapper[T] {
	var out []*Remapper[T]
	for _, stage := range c.stages {
		if selector.Matches(stage.labels) {
			out = append(out, stage)
		}
	}
	return out
}

// Route returns the chain of stages leading from domain from to domain
// to, following the source and destination labels.
func (c *Chain[T]) Route(from, to string) (*Chain[T], error) {
	route := &Chain[T]{}
	visited := map[string]struct{}{}
	for current := from; current != to; {
		if _, ok := visited[current]; ok {
			return nil, fmt.Errorf("cycle at %q routing %s to %s", current, from, to)
		}
		visited[current] = struct{}{}

		next := c.Select(labels.SelectorFromSet(labels.Set{LabelSource: current}))
		switch len(next) {
		case 0:
			return nil, fmt.Errorf("no stage from %q routing %s to %s", current, from, to)
		case 1:
		default:
			return nil, fmt.Errorf("%d stages from %q routing %s to %s", len(next), current, from, to)
		}
		route.stages = append(route.stages, next[0])
		current = next[0].Destination()
	}
	return route, nil
}

// Validate validates every stage.
func (c *Chain[T]) Validate() error {
	var errm error
	for _, stage := range c.stages {
		if err := stage.Validate(); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return errm
}
