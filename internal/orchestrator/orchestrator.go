// Package orchestrator runs independent simulation replicas and summarizes them.
// Flow: replicas (concurrent, one seed each) → per-run aggregates → cross-run summary
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/metrics"
	"options-strategy-lab/internal/simulation"
)

// ErrNoReplicas is returned when fewer than one replica is requested.
var ErrNoReplicas = errors.New("replicas must be >= 1")

// Orchestrator coordinates replica execution.
type Orchestrator struct {
	runner   *simulation.Runner
	config   domain.SimulationConfig
	replicas int
	parallel int
	log      zerolog.Logger
}

// Options for creating Orchestrator.
type Options struct {
	Runner *simulation.Runner
	Config domain.SimulationConfig

	// Replicas is the number of runs; replica i uses seed Config.Seed+i.
	Replicas int

	// Parallel bounds concurrent runs. Values < 1 mean one per replica.
	Parallel int

	Logger *zerolog.Logger
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		runner:   opts.Runner,
		config:   opts.Config,
		replicas: opts.Replicas,
		parallel: opts.Parallel,
		log:      zerolog.Nop(),
	}
	if o.runner == nil {
		o.runner = simulation.NewRunner(simulation.RunnerOptions{})
	}
	if opts.Logger != nil {
		o.log = *opts.Logger
	}
	return o
}

// Replica is one finished run.
type Replica struct {
	Index      int
	Result     *simulation.Result
	Aggregates []*domain.StrategyAggregate
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	Replicas []*Replica // ordered by replica index
	Summary  Summary
}

// Summary describes the distribution of PnL across replicas.
type Summary struct {
	Replicas    int
	TotalPnL    metrics.Summary
	StrategyPnL map[domain.StrategyID]metrics.Summary
}

// Run executes all replicas.
// Phases:
//  1. Resolve seeds (a zero base seed is resolved by the first replica)
//  2. Run replicas concurrently, stopping at the first error
//  3. Aggregate each replica's trade journal
//  4. Summarize across replicas
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	if o.replicas < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoReplicas, o.replicas)
	}
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Phase 1: seeds
	base := o.config.Seed
	replicas := make([]*Replica, o.replicas)
	start := 0
	if base == 0 {
		o.log.Debug().Msg("resolving base seed from first replica")
		rep, err := o.runReplica(ctx, 0, o.config)
		if err != nil {
			return nil, err
		}
		replicas[0] = rep
		base = rep.Result.Seed
		start = 1
	}

	// Phase 2 + 3: replicas
	o.log.Info().
		Int("replicas", o.replicas).
		Int("parallel", o.parallel).
		Uint64("base_seed", base).
		Msg("running replicas")

	g, gctx := errgroup.WithContext(ctx)
	if o.parallel > 0 {
		g.SetLimit(o.parallel)
	}
	for i := start; i < o.replicas; i++ {
		cfg := o.config
		cfg.Strategies = append([]domain.StrategyID(nil), o.config.Strategies...)
		cfg.Seed = base + uint64(i)
		g.Go(func() error {
			rep, err := o.runReplica(gctx, i, cfg)
			if err != nil {
				return err
			}
			replicas[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 4: summary
	summary := summarize(replicas, o.config.EnabledStrategies())
	o.log.Info().
		Int("replicas", summary.Replicas).
		Float64("mean_total_pnl", summary.TotalPnL.Mean).
		Float64("stddev_total_pnl", summary.TotalPnL.Stddev).
		Msg("replicas completed")

	return &RunResult{Replicas: replicas, Summary: summary}, nil
}

func (o *Orchestrator) runReplica(ctx context.Context, index int, cfg domain.SimulationConfig) (*Replica, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := o.runner.Run(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("replica %d (seed %d): %w", index, cfg.Seed, err)
	}

	aggs, err := metrics.NewAggregator(res.Trades).ComputeAll(ctx, cfg.EnabledStrategies())
	if err != nil {
		return nil, fmt.Errorf("replica %d aggregates: %w", index, err)
	}

	o.log.Debug().
		Int("replica", index).
		Uint64("seed", res.Seed).
		Float64("total_pnl", res.Total).
		Msg("replica finished")

	return &Replica{Index: index, Result: res, Aggregates: aggs}, nil
}

func summarize(replicas []*Replica, ids []domain.StrategyID) Summary {
	totals := make([]float64, len(replicas))
	perStrategy := make(map[domain.StrategyID][]float64, len(ids))
	for i, rep := range replicas {
		totals[i] = rep.Result.Total
		for _, id := range ids {
			perStrategy[id] = append(perStrategy[id], rep.Result.PnL[id])
		}
	}

	s := Summary{
		Replicas:    len(replicas),
		TotalPnL:    metrics.Summarize(totals),
		StrategyPnL: make(map[domain.StrategyID]metrics.Summary, len(ids)),
	}
	for id, values := range perStrategy {
		s.StrategyPnL[id] = metrics.Summarize(values)
	}
	return s
}
