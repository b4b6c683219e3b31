package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent simulators concurrently. Each simulator owns its
// world; nothing is shared between runs.
type Ensemble struct {
	runs []*Simulator
}

func NewEnsemble(runs ...*Simulator) *Ensemble {
	return &Ensemble{runs: runs}
}

func (e *Ensemble) Len() int { return len(e.runs) }

// Run returns results in the order the simulators were given. The first
// failing run cancels the others.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(e.runs))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range e.runs {
		i, s := i, s
		g.Go(func() error {
			res, err := s.Run(ctx, cfg)
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
