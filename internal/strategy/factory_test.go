package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-strategy-lab/internal/domain"
)

func TestFromConfig_AllByDefault(t *testing.T) {
	descs, err := FromConfig(domain.SimulationConfig{})
	require.NoError(t, err)
	require.Len(t, descs, len(domain.AllStrategies))
	for i, d := range descs {
		assert.Equal(t, domain.AllStrategies[i], d.ID)
		assert.NotNil(t, d.Strikes)
		assert.NotNil(t, d.Payoff)
		assert.NotNil(t, d.Signal)
	}
}

func TestFromConfig_Subset(t *testing.T) {
	cfg := domain.SimulationConfig{
		Strategies: []domain.StrategyID{domain.StrategyBearSpread, domain.StrategyStraddle},
	}
	descs, err := FromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, domain.StrategyBearSpread, descs[0].ID)
	assert.Equal(t, domain.StrategyStraddle, descs[1].ID)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("IRON_CONDOR")
	if !errors.Is(err, ErrUnknownStrategyType) {
		t.Errorf("expected ErrUnknownStrategyType, got %v", err)
	}
}

func TestStrikes(t *testing.T) {
	const s, d = 200.0, 0.1

	tests := []struct {
		id   domain.StrategyID
		want []float64
	}{
		{domain.StrategyStraddle, []float64{200}},
		{domain.StrategyStrangle, []float64{180, 220}},
		{domain.StrategyBullSpread, []float64{180, 220}},
		{domain.StrategyBearSpread, []float64{220, 180}},
		{domain.StrategyButterflySpread, []float64{180, 200, 220}},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			desc, err := Lookup(tt.id)
			require.NoError(t, err)
			got := desc.Strikes(s, d)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestPayoffAtEntryPrice(t *testing.T) {
	// Settling exactly at the entry price
	const s, d = 100.0, 0.05

	tests := []struct {
		id   domain.StrategyID
		want float64
	}{
		{domain.StrategyStraddle, 0},
		{domain.StrategyStrangle, 0},
		{domain.StrategyBullSpread, 5},
		{domain.StrategyBearSpread, 0},
		{domain.StrategyButterflySpread, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			desc, err := Lookup(tt.id)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, desc.Payoff(s, desc.Strikes(s, d)), 1e-9)
		})
	}
}

func TestEvaluate_OnlyEnabledStrategies(t *testing.T) {
	descs, err := FromConfig(domain.SimulationConfig{
		Strategies: []domain.StrategyID{domain.StrategyBearSpread, domain.StrategyButterflySpread},
	})
	require.NoError(t, err)

	th := domain.Thresholds{VolHigh: 0.01, VolLow: 0.005, StrangleVolHigh: 0.012, StrangleVolLow: 0.007}
	got := Evaluate(descs, domain.IndicatorSnapshot{ShortMA: 99, LongMA: 100, Volatility: 0.001}, th)

	assert.Len(t, got, 2)
	assert.Equal(t, domain.SignalEnter, got[domain.StrategyBearSpread])
	assert.Equal(t, domain.SignalEnter, got[domain.StrategyButterflySpread])
	_, ok := got[domain.StrategyStraddle]
	assert.False(t, ok)
}
