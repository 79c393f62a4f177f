// Package almanac solves seed location puzzles on top of the remap
// engine.
package almanac

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/henderiw/rangemap/pkg/rangeset"
	"github.com/henderiw/rangemap/pkg/remap"
)

const (
	SeedDomain     = "seed"
	LocationDomain = "location"
)

var ErrNoSeeds = errors.New("no seeds")

type Almanac struct {
	seeds []uint64
	chain *remap.Chain[uint64]
}

// Parse reads a "seeds:" line followed by blank line separated
// "<source>-to-<destination> map:" blocks of rules.
func Parse(r io.Reader) (*Almanac, error) {
	var (
		a       = &Almanac{}
		stages  []*remap.Remapper[uint64]
		current *stage
		lineNo  int
		seen    bool
	)
	flush := func() {
		if current != nil {
			stages = append(stages, remap.New(current.source, current.destination, current.rules...))
			current = nil
		}
	}

	s := bufio.NewScanner(r)
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "seeds:"):
			if seen {
				return nil, fmt.Errorf("line %d: duplicate seeds", lineNo)
			}
			seen = true
			for _, f := range strings.Fields(strings.TrimPrefix(line, "seeds:")) {
				v, err := strconv.ParseUint(f, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid seed %q", lineNo, f)
				}
				a.seeds = append(a.seeds, v)
			}
		case strings.HasSuffix(line, "map:"):
			flush()
			source, destination, err := parseHeader(strings.TrimSpace(strings.TrimSuffix(line, "map:")))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = &stage{source: source, destination: destination}
		default:
			if current == nil {
				return nil, fmt.Errorf("line %d: rule %q outside of a map", lineNo, line)
			}
			rule, err := remap.ParseRule[uint64](line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.rules = append(current.rules, rule)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	flush()
	if !seen {
		return nil, ErrNoSeeds
	}
	a.chain = remap.NewChain(stages...)
	return a, nil
}

type stage struct {
	source      string
	destination string
	rules       []remap.Rule[uint64]
}

func parseHeader(s string) (string, string, error) {
	source, destination, ok := strings.Cut(s, "-to-")
	if !ok || source == "" || destination == "" {
		return "", "", fmt.Errorf("invalid map header %q", s)
	}
	return source, destination, nil
}

func (a *Almanac) Seeds() []uint64 {
	return append([]uint64{}, a.seeds...)
}

// Chain returns every map in the order they were read.
func (a *Almanac) Chain() *remap.Chain[uint64] { return a.chain }

// Route returns the maps leading from seeds to locations.
func (a *Almanac) Route() (*remap.Chain[uint64], error) {
	return a.chain.Route(SeedDomain, LocationDomain)
}

// LowestLocation maps every seed on its own and returns the lowest
// location.
func (a *Almanac) LowestLocation() (uint64, error) {
	if len(a.seeds) == 0 {
		return 0, ErrNoSeeds
	}
	route, err := a.Route()
	if err != nil {
		return 0, err
	}
	best := route.MapScalar(a.seeds[0])
	for _, seed := range a.seeds[1:] {
		best = min(best, route.MapScalar(seed))
	}
	return best, nil
}

// SeedRanges reads the seeds as "start length" pairs.
func (a *Almanac) SeedRanges() ([]rangeset.Range[uint64], error) {
	if len(a.seeds)%2 != 0 {
		return nil, fmt.Errorf("odd number of seed values: %d", len(a.seeds))
	}
	rr := make([]rangeset.Range[uint64], 0, len(a.seeds)/2)
	for i := 0; i < len(a.seeds); i += 2 {
		r := rangeset.RangeOfLength(a.seeds[i], a.seeds[i+1])
		if !r.IsValid() {
			return nil, fmt.Errorf("seed range %d with length %d overflows", a.seeds[i], a.seeds[i+1])
		}
		rr = append(rr, r)
	}
	return rr, nil
}

// LowestRangeLocation maps all seed ranges at once and returns the
// lowest location.
func (a *Almanac) LowestRangeLocation() (uint64, error) {
	rr, err := a.SeedRanges()
	if err != nil {
		return 0, err
	}
	route, err := a.Route()
	if err != nil {
		return 0, err
	}
	return lowest(route, rangeset.New(rr))
}

func lowest(route *remap.Chain[uint64], s *rangeset.Set[uint64]) (uint64, error) {
	out, err := route.MapSet(s)
	if err != nil {
		return 0, err
	}
	v, ok := out.Min()
	if !ok {
		return 0, ErrNoSeeds
	}
	return v, nil
}
