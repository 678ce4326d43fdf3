// Package optimizer grid-searches the algorithm parameter space using the
// backtester as its fitness function.
package optimizer

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"golang.org/x/sync/errgroup"

	"github.com/arbinova/fxquant/internal/algorithm"
	"github.com/arbinova/fxquant/internal/backtest"
	"github.com/arbinova/fxquant/internal/types"
	"github.com/arbinova/fxquant/pkg/errors"
)

// The search grid. Coarse on purpose: 25 cells evaluated on the same data
// the search selects over, so the result over-fits by construction and makes
// no claim of global optimality.
var (
	sentimentWeights = []float64{0.2, 0.3, 0.4, 0.5, 0.6}
	thresholds       = []float64{0.2, 0.25, 0.3, 0.35, 0.4}
)

// Fitness weights applied to the backtest metrics of each cell.
const (
	returnWeight   = 0.4
	winRateWeight  = 0.3
	sharpeWeight   = 0.2
	drawdownWeight = 0.1
)

// Optimizer evaluates every cell of the parameter grid against a historical
// price series. Each trial runs on its own cloned config; the shared config
// is never mutated, so trials are transactional and may run in parallel.
type Optimizer struct {
	backtester  *backtest.Backtester
	parallelism int
	progress    func()
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithParallelism bounds how many grid cells evaluate concurrently.
// Values below 2 keep the search sequential.
func WithParallelism(n int) Option {
	return func(o *Optimizer) {
		o.parallelism = n
	}
}

// WithProgress registers a callback invoked once per completed grid cell.
// Under parallel evaluation it may be called from multiple goroutines.
func WithProgress(fn func()) Option {
	return func(o *Optimizer) {
		o.progress = fn
	}
}

// New creates an optimizer with its own backtester.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		backtester:  backtest.NewBacktester(),
		parallelism: 1,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Optimize searches the grid and returns the best-scoring parameter set.
// The base config supplies everything the grid does not vary (the indicator
// windows). The search is deterministic: cells are reduced in grid order
// with a strict improvement rule, so repeated runs on the same series return
// the same result regardless of parallelism. Cancelling ctx aborts the
// search.
func (o *Optimizer) Optimize(ctx context.Context, points []types.PricePoint, base algorithm.Config) (types.OptimizationResult, error) {
	if err := base.Validate(); err != nil {
		return types.OptimizationResult{}, err
	}

	cells := buildGrid()
	fitnesses := make([]float64, len(cells))

	if o.parallelism > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(o.parallelism)

		for i, cell := range cells {
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}

				fitnesses[i] = o.evaluate(points, base, cell)
				o.reportProgress()

				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return types.OptimizationResult{}, errors.Wrap(errors.ErrCodeOptimizationCancelled, "grid search aborted", err)
		}
	} else {
		for i, cell := range cells {
			if err := ctx.Err(); err != nil {
				return types.OptimizationResult{}, errors.Wrap(errors.ErrCodeOptimizationCancelled, "grid search aborted", err)
			}

			fitnesses[i] = o.evaluate(points, base, cell)
			o.reportProgress()
		}
	}

	// Reduce in grid order with strict > so ties keep the earliest cell.
	bestParams := base.Params()
	bestFitness := math.Inf(-1)

	for i, fitness := range fitnesses {
		if fitness > bestFitness {
			bestFitness = fitness
			bestParams = cells[i]
		}
	}

	return types.OptimizationResult{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		BestParams:  bestParams,
		BestFitness: bestFitness,
		Evaluations: len(cells),
	}, nil
}

// evaluate scores one grid cell. A cell that cannot produce a valid config
// or that panics mid-backtest is scored minimally fit instead of aborting
// the whole search.
func (o *Optimizer) evaluate(points []types.PricePoint, base algorithm.Config, cell types.ParameterSet) (fitness float64) {
	defer func() {
		if r := recover(); r != nil {
			fitness = math.Inf(-1)
		}
	}()

	candidate, err := base.WithParams(cell)
	if err != nil {
		return math.Inf(-1)
	}

	result := o.backtester.Run(points, optional.None[types.SentimentSummary](), candidate)

	return result.TotalReturn*returnWeight +
		result.WinRate*winRateWeight +
		result.SharpeRatio*sharpeWeight -
		result.MaxDrawdown*drawdownWeight
}

func (o *Optimizer) reportProgress() {
	if o.progress != nil {
		o.progress()
	}
}

func buildGrid() []types.ParameterSet {
	cells := make([]types.ParameterSet, 0, len(sentimentWeights)*len(thresholds))

	for _, weight := range sentimentWeights {
		for _, threshold := range thresholds {
			cells = append(cells, types.ParameterSet{
				SentimentWeight: weight,
				TechnicalWeight: 1 - weight,
				BuyThreshold:    threshold,
				SellThreshold:   -threshold,
			})
		}
	}

	return cells
}

// GridSize is the number of cells a single search evaluates.
func GridSize() int {
	return len(sentimentWeights) * len(thresholds)
}
