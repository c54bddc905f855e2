package sim

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/bouncebox/internal/config"
)

// Ensemble runs the same config under several seeds concurrently. Each run
// owns its own simulation and renderer; nothing is shared between them.
type Ensemble struct {
	newMetrics func() []Metric
	limit      int
}

// NewEnsemble takes a factory so every run gets fresh metric instances.
// limit caps concurrent runs; 0 means unbounded.
func NewEnsemble(newMetrics func() []Metric, limit int) *Ensemble {
	return &Ensemble{newMetrics: newMetrics, limit: limit}
}

// Run executes one simulation per seed. A zero seed is replaced by a
// distinct time-based seed before any run starts.
func (e *Ensemble) Run(ctx context.Context, cfg *config.Config, seeds []uint64) ([]*Result, error) {
	results := make([]*Result, len(seeds))
	seeds = resolveSeeds(seeds, uint64(time.Now().UnixNano()))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, seed := range seeds {
		g.Go(func() error {
			cfgCopy := *cfg
			cfgCopy.Seed = seed

			s := New()
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, &cfgCopy)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func resolveSeeds(seeds []uint64, base uint64) []uint64 {
	out := make([]uint64, len(seeds))
	for i, seed := range seeds {
		if seed == 0 {
			seed = base + uint64(i)
			if seed == 0 {
				seed = 1
			}
		}
		out[i] = seed
	}
	return out
}
