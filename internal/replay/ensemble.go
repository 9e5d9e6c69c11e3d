package replay

import (
	"context"
	"log/slog"
	"sync"

	"github.com/san-kum/tiltball/internal/tilt"
)

// Variant is one configuration in an ensemble.
type Variant struct {
	Name  string
	Integ *tilt.Integrator
}

// Ensemble replays the same samples under several configurations at once.
type Ensemble struct {
	variants []Variant
	logger   *slog.Logger
}

func NewEnsemble(logger *slog.Logger, variants ...Variant) *Ensemble {
	return &Ensemble{variants: variants, logger: logger}
}

// Run returns one result per variant in input order.
func (e *Ensemble) Run(ctx context.Context, samples []tilt.Sample) ([]*Result, error) {
	results := make([]*Result, len(e.variants))
	errs := make([]error, len(e.variants))

	var wg sync.WaitGroup
	for i, v := range e.variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()
			results[idx], errs[idx] = Run(ctx, v.Integ, samples, e.logger)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
