package reporting

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/orchestrator"
	"options-strategy-lab/internal/simulation"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func testConfig() domain.SimulationConfig {
	return domain.SimulationConfig{
		InitialPrice: 100,
		Drift:        0,
		Volatility:   0,
		TimeStep:     1,
		TotalTicks:   100,
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
		Seed:    7,
	}
}

func setupTestReport(t *testing.T) (*Report, *simulation.Result) {
	t.Helper()
	res, err := simulation.NewRunner(simulation.RunnerOptions{}).Run(context.Background(), testConfig())
	require.NoError(t, err)

	g := NewGenerator()
	g.now = func() time.Time { return fixedTime }
	r, err := g.Generate(context.Background(), res)
	require.NoError(t, err)
	return r, res
}

func TestGenerate_FromRun(t *testing.T) {
	r, res := setupTestReport(t)

	assert.Equal(t, fixedTime, r.GeneratedAt)
	assert.Equal(t, res.RunID, r.Run.RunID)
	assert.Equal(t, uint64(7), r.Run.Seed)
	assert.Equal(t, 100, r.Run.Ticks)
	require.Len(t, r.Strategies, 5)
	require.Len(t, r.StrategyMetrics, 5)

	// Flat path over 99 evaluated ticks: butterfly entries at 1, 12, ..., 89 all
	// close, the one at 100 never happens.
	bf := r.Strategies[4]
	assert.Equal(t, string(domain.StrategyButterflySpread), bf.StrategyID)
	assert.Equal(t, 9, bf.Closes)
	assert.InDelta(t, 450.0, bf.PnL, 1e-6)
	assert.InDelta(t, 450.0, r.TotalPnL, 1e-6)
	assert.Empty(t, r.OpenTrades)

	m := r.StrategyMetrics[4]
	assert.Equal(t, 9, m.TotalTrades)
	assert.Equal(t, 1.0, m.WinRate)
	assert.Equal(t, 9, m.ExitsByReason[string(domain.ExitReasonHoldPeriod)])
	assert.InDelta(t, 10.0, m.AvgHoldTicks, 1e-9)
}

func TestGenerate_NilResult(t *testing.T) {
	_, err := NewGenerator().Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = NewGenerator().GenerateReplicas(&orchestrator.RunResult{})
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestGenerateReplicas(t *testing.T) {
	cfg := testConfig()
	cfg.Volatility = 0.01

	rr, err := orchestrator.New(orchestrator.Options{Config: cfg, Replicas: 3}).Run(context.Background())
	require.NoError(t, err)

	r, err := NewGenerator().GenerateReplicas(rr)
	require.NoError(t, err)
	require.NotNil(t, r.Replicas)
	assert.Equal(t, 3, r.Replicas.Count)
	assert.Equal(t, uint64(7), r.Replicas.BaseSeed)
	assert.Len(t, r.Replicas.Strategies, 5)
	assert.Equal(t, rr.Replicas[0].Result.Total, r.TotalPnL)

	md := RenderMarkdown(r)
	assert.Contains(t, md, "## Replica Summary")
	assert.Contains(t, RenderText(r), "Replicas: 3")
}

func TestRenderText(t *testing.T) {
	r, _ := setupTestReport(t)
	out := RenderText(r)

	assert.Contains(t, out, "Cumulative PnL per Strategy:\n")
	assert.Contains(t, out, "Total PnL: 450.0000\n")
	for _, id := range domain.AllStrategies {
		assert.Contains(t, out, string(id)+":")
	}
	assert.NotContains(t, out, "Replicas:")
}

func TestRenderMarkdown(t *testing.T) {
	r, _ := setupTestReport(t)
	md := RenderMarkdown(r)

	sections := []string{
		"# Simulation Report",
		"Generated: 2026-01-02T03:04:05Z",
		"## Run",
		"## Cumulative PnL",
		"## Strategy Metrics",
		"## Open Trades",
		"No open trades.",
		"| BUTTERFLY_SPREAD | 450.0000 | 9 | 9 |",
		"HOLD_PERIOD=9",
	}
	for _, s := range sections {
		if !strings.Contains(md, s) {
			t.Errorf("markdown missing %q", s)
		}
	}
	if strings.Contains(md, "## Replica Summary") {
		t.Error("single-run markdown should not have replica section")
	}
}

func TestRenderJSON(t *testing.T) {
	r, _ := setupTestReport(t)
	data, err := RenderJSON(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	total, ok := decoded["total_pnl"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 450.0, total, 1e-6)
	assert.NotContains(t, decoded, "replicas")

	run, ok := decoded["run"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), run["seed"])
}

func TestRenderTradesCSV(t *testing.T) {
	_, res := setupTestReport(t)
	trades, err := res.Trades.List(context.Background())
	require.NoError(t, err)

	out := RenderTradesCSV(trades)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "trade_id,strategy_id,entry_tick"))

	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 12)
	assert.Equal(t, "BUTTERFLY_SPREAD", fields[1])
	assert.Equal(t, "1", fields[2])
	assert.Equal(t, "95.0000;100.0000;105.0000", fields[4])
	assert.Equal(t, "HOLD_PERIOD", fields[8])
	assert.Equal(t, "WIN", fields[11])
}

func TestRenderCSV(t *testing.T) {
	r, _ := setupTestReport(t)
	out := RenderCSV(r.StrategyMetrics)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[5], "BUTTERFLY_SPREAD,9,9,0,1.000000"))
}
