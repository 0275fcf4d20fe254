// Package simulation drives one run of the options-strategy market simulator:
// price step, indicators, signals, then ledger transitions, once per tick.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/idhash"
	"options-strategy-lab/internal/indicator"
	"options-strategy-lab/internal/ledger"
	"options-strategy-lab/internal/observability"
	"options-strategy-lab/internal/pricepath"
	"options-strategy-lab/internal/storage"
	"options-strategy-lab/internal/storage/memory"
	"options-strategy-lab/internal/strategy"
)

// Runner executes simulation runs.
type Runner struct {
	newStore  func() storage.TradeRecordStore
	newSource func(seed uint64) pricepath.NormalSource
	metrics   *observability.Metrics
	log       zerolog.Logger
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	// NewStore creates the trade journal for each run. Defaults to an in-memory store.
	NewStore func() storage.TradeRecordStore

	// NewSource creates the normal draw stream for a seed. Defaults to pricepath.NewSource.
	NewSource func(seed uint64) pricepath.NormalSource

	Metrics *observability.Metrics
	Logger  *zerolog.Logger
}

// NewRunner creates a simulation runner.
func NewRunner(opts RunnerOptions) *Runner {
	r := &Runner{
		newStore:  opts.NewStore,
		newSource: opts.NewSource,
		metrics:   opts.Metrics,
		log:       zerolog.Nop(),
	}
	if r.newStore == nil {
		r.newStore = func() storage.TradeRecordStore { return memory.NewTradeRecordStore() }
	}
	if r.newSource == nil {
		r.newSource = pricepath.NewSource
	}
	if opts.Logger != nil {
		r.log = *opts.Logger
	}
	return r
}

// Result is the outcome of one run.
type Result struct {
	RunID      string
	Config     domain.SimulationConfig // as run, with the resolved seed
	Seed       uint64
	Ticks      int
	FinalPrice float64
	Path       []float64

	PnL        map[domain.StrategyID]float64
	Total      float64
	Counts     map[domain.StrategyID]ledger.Counts
	OpenTrades []*domain.Trade

	// Trades is the run's closed-trade journal.
	Trades   storage.TradeRecordStore
	Duration time.Duration
}

// Run executes a full simulation for cfg.
// Steps:
//  1. Validate config and resolve the seed
//  2. Build descriptors, ledger and price generator
//  3. For ticks 1..TotalTicks-1: step price, compute indicators, derive signals, step ledger
//  4. Collect cumulative PnL and end-of-run state
//
// A zero seed is replaced by a time-derived one, reported in Result.Seed.
func (r *Runner) Run(ctx context.Context, cfg domain.SimulationConfig) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 1. Validate and resolve seed
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	start := time.Now()
	result, err := r.run(ctx, cfg)
	duration := time.Since(start)
	if err != nil {
		r.metrics.RecordRun(observability.StatusError, duration.Seconds(), 0)
		return nil, err
	}
	result.Duration = duration
	r.metrics.RecordRun(observability.StatusOK, duration.Seconds(), result.Total)

	r.log.Info().
		Str("run_id", result.RunID).
		Uint64("seed", result.Seed).
		Int("ticks", result.Ticks).
		Float64("final_price", result.FinalPrice).
		Float64("total_pnl", result.Total).
		Dur("duration", duration).
		Msg("simulation finished")

	return result, nil
}

func (r *Runner) run(ctx context.Context, cfg domain.SimulationConfig) (*Result, error) {
	// 2. Build components
	descs, err := strategy.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	runID := idhash.ComputeRunID(cfg)
	store := r.newStore()
	runLog := r.log.With().Str("run_id", runID[:12]).Logger()

	book := ledger.New(descs, ledger.Options{
		RunID:        runID,
		HoldPeriod:   cfg.HoldPeriod,
		StrikeOffset: cfg.StrikeOffset,
		Volume:       cfg.Volume,
		Store:        store,
		Metrics:      r.metrics,
		Logger:       &runLog,
	})

	path := pricepath.NewPath(cfg.InitialPrice, cfg.TotalTicks)
	gen := pricepath.NewGenerator(pricepath.Params{
		Drift:      cfg.Drift,
		Volatility: cfg.Volatility,
		TimeStep:   cfg.TimeStep,
	}, r.newSource(cfg.Seed))

	runLog.Info().
		Uint64("seed", cfg.Seed).
		Int("ticks", cfg.TotalTicks).
		Int("strategies", len(descs)).
		Msg("simulation started")

	// 3. Tick loop
	for tick := 1; tick < cfg.TotalTicks; tick++ {
		price := gen.Next(path.Last())
		path.Append(price)
		r.metrics.RecordTick(price)

		snap := indicator.Compute(path.History(), tick, cfg.Windows)
		signals := strategy.Evaluate(descs, snap, cfg.Thresholds)

		if err := book.Step(ctx, tick, price, signals); err != nil {
			return nil, err
		}
	}

	// 4. Collect
	counts := make(map[domain.StrategyID]ledger.Counts, len(descs))
	for _, id := range book.Strategies() {
		counts[id] = book.Counts(id)
	}

	return &Result{
		RunID:      runID,
		Config:     cfg,
		Seed:       cfg.Seed,
		Ticks:      path.Len(),
		FinalPrice: path.Last(),
		Path:       path.History(),
		PnL:        book.PnL(),
		Total:      book.Total(),
		Counts:     counts,
		OpenTrades: book.OpenTrades(),
		Trades:     store,
	}, nil
}
