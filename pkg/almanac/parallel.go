package almanac

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangemap/pkg/rangeset"
	"golang.org/x/sync/errgroup"
)

// LowestRangeLocationParallel maps every seed range on its own worker,
// at most workers at a time, and returns the lowest location. A
// workers value below one means no limit.
func (a *Almanac) LowestRangeLocationParallel(ctx context.Context, workers int) (uint64, error) {
	log := logr.FromContextOrDiscard(ctx)

	rr, err := a.SeedRanges()
	if err != nil {
		return 0, err
	}
	if len(rr) == 0 {
		return 0, ErrNoSeeds
	}
	route, err := a.Route()
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	// each worker owns one slot, nothing else is shared
	results := make([]uint64, len(rr))
	for i, r := range rr {
		if r.IsEmpty() {
			// maps to nothing
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			v, err := lowest(route, rangeset.New([]rangeset.Range[uint64]{r}))
			if err != nil {
				return err
			}
			log.V(1).Info("mapped seed range", "range", r.String(), "lowest", v, "took", time.Since(start))
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var (
		best  uint64
		found bool
	)
	for i, v := range results {
		if rr[i].IsEmpty() {
			continue
		}
		if !found || v < best {
			best, found = v, true
		}
	}
	if !found {
		return 0, ErrNoSeeds
	}
	log.Info("lowest location", "seedRanges", len(rr), "workers", workers, "location", best)
	return best, nil
}
