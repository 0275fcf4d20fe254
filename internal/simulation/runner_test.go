package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/observability"
)

func defaultConfig() domain.SimulationConfig {
	return domain.SimulationConfig{
		InitialPrice: 100,
		Drift:        0.0001,
		Volatility:   0.01,
		TimeStep:     1,
		TotalTicks:   10000,
		HoldPeriod:   10,
		StrikeOffset: 0.05,
		Volume:       10,
		Thresholds: domain.Thresholds{
			VolHigh:         0.01,
			VolLow:          0.005,
			StrangleVolHigh: 0.012,
			StrangleVolLow:  0.007,
		},
		Windows: domain.Windows{Short: 5, Long: 20, Volatility: 5},
		Seed:    42,
	}
}

func TestRunner_ZeroVolatility(t *testing.T) {
	cfg := defaultConfig()
	cfg.Drift = 0
	cfg.Volatility = 0

	res, err := NewRunner(RunnerOptions{}).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 10000, res.Ticks)
	assert.InDelta(t, 100.0, res.FinalPrice, 1e-9)

	for _, id := range []domain.StrategyID{
		domain.StrategyStraddle,
		domain.StrategyStrangle,
		domain.StrategyBullSpread,
		domain.StrategyBearSpread,
	} {
		assert.Equal(t, 0.0, res.PnL[id], "%s pnl", id)
		assert.Equal(t, 0, res.Counts[id].Opens, "%s opens", id)
	}

	// Volatility 0 is below VolLow, so the butterfly churns: entries at ticks
	// 1, 12, 23, ... each held 10 ticks and settled at the middle strike.
	bf := res.Counts[domain.StrategyButterflySpread]
	assert.Equal(t, 909, bf.Closes)
	assert.Equal(t, 909, bf.Opens)
	assert.InDelta(t, 45450.0, res.PnL[domain.StrategyButterflySpread], 1e-6)
	assert.Empty(t, res.OpenTrades)

	trades, err := res.Trades.GetByStrategy(context.Background(), domain.StrategyButterflySpread)
	require.NoError(t, err)
	require.Len(t, trades, 909)
	assert.Equal(t, 1, trades[0].EntryTick)
	assert.Equal(t, 11, trades[0].ExitTick)
	assert.Equal(t, 12, trades[1].EntryTick)
	assert.Equal(t, domain.ExitReasonHoldPeriod, trades[0].ExitReason)
}

func TestRunner_ZeroVolatilityWithoutButterfly(t *testing.T) {
	cfg := defaultConfig()
	cfg.Drift = 0
	cfg.Volatility = 0
	cfg.Strategies = []domain.StrategyID{
		domain.StrategyStraddle,
		domain.StrategyStrangle,
		domain.StrategyBullSpread,
		domain.StrategyBearSpread,
	}

	res, err := NewRunner(RunnerOptions{}).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Total)
	assert.Len(t, res.PnL, 4)
	all, err := res.Trades.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunner_Deterministic(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalTicks = 2000
	r := NewRunner(RunnerOptions{})

	first, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)

	// Run multiple times, verify same output
	for run := 0; run < 3; run++ {
		res, err := r.Run(context.Background(), cfg)
		require.NoError(t, err)
		if res.RunID != first.RunID {
			t.Errorf("run %d: run id changed", run)
		}
		if res.FinalPrice != first.FinalPrice {
			t.Errorf("run %d: final price %v != %v", run, res.FinalPrice, first.FinalPrice)
		}
		for id, pnl := range first.PnL {
			if res.PnL[id] != pnl {
				t.Errorf("run %d: %s pnl %v != %v", run, id, res.PnL[id], pnl)
			}
		}
	}

	cfg.Seed = 43
	other, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first.FinalPrice, other.FinalPrice)
}

func TestRunner_Invariants(t *testing.T) {
	r := NewRunner(RunnerOptions{})
	for seed := uint64(1); seed <= 5; seed++ {
		cfg := defaultConfig()
		cfg.TotalTicks = 3000
		cfg.Seed = seed

		res, err := r.Run(context.Background(), cfg)
		require.NoError(t, err)

		for _, p := range res.Path {
			if p <= 0 {
				t.Fatalf("seed %d: non-positive price %v", seed, p)
			}
		}

		trades, err := res.Trades.List(context.Background())
		require.NoError(t, err)

		closes := 0
		for _, id := range domain.AllStrategies {
			c := res.Counts[id]
			if c.Opens != c.Closes && c.Opens != c.Closes+1 {
				t.Errorf("seed %d %s: opens=%d closes=%d", seed, id, c.Opens, c.Closes)
			}
			closes += c.Closes

			sum := 0.0
			for _, tr := range trades {
				if tr.StrategyID == id {
					sum += tr.PnL
					if tr.HoldTicks() > cfg.HoldPeriod || tr.HoldTicks() < 1 {
						t.Errorf("seed %d %s: hold ticks %d", seed, id, tr.HoldTicks())
					}
				}
			}
			assert.InDelta(t, res.PnL[id], sum, 1e-6)
		}
		assert.Len(t, trades, closes)
	}
}

func TestRunner_SingleTick(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalTicks = 1

	res, err := NewRunner(RunnerOptions{}).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Ticks)
	assert.Equal(t, 100.0, res.FinalPrice)
	assert.Equal(t, 0.0, res.Total)
}

func TestRunner_ZeroSeedResolved(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalTicks = 50
	cfg.Seed = 0

	res, err := NewRunner(RunnerOptions{}).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotZero(t, res.Seed)
	assert.Equal(t, res.Seed, res.Config.Seed)
}

func TestRunner_InvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.InitialPrice = 0

	_, err := NewRunner(RunnerOptions{}).Run(context.Background(), cfg)
	if !errors.Is(err, domain.ErrInvalidInitialPrice) {
		t.Fatalf("expected ErrInvalidInitialPrice, got %v", err)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(RunnerOptions{}).Run(ctx, defaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunner_RecordsMetrics(t *testing.T) {
	m := observability.NewMetrics("test", prometheus.NewRegistry())
	cfg := defaultConfig()
	cfg.TotalTicks = 100

	_, err := NewRunner(RunnerOptions{Metrics: m}).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 99.0, testutil.ToFloat64(m.TicksSimulated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(observability.StatusOK)))
}
