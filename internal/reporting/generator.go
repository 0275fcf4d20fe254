package reporting

import (
	"context"
	"errors"
	"time"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/metrics"
	"options-strategy-lab/internal/orchestrator"
	"options-strategy-lab/internal/simulation"
)

// ErrNoResult is returned when there is nothing to report.
var ErrNoResult = errors.New("no simulation result to report")

// Generator builds reports from simulation results.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate builds a report for a single run, computing trade metrics from
// the run's trade journal.
func (g *Generator) Generate(ctx context.Context, res *simulation.Result) (*Report, error) {
	if res == nil {
		return nil, ErrNoResult
	}

	ids := res.Config.EnabledStrategies()
	aggs, err := metrics.NewAggregator(res.Trades).ComputeAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	return g.build(res, aggs), nil
}

// GenerateReplicas builds a report for the first replica and adds the
// cross-replica summary.
func (g *Generator) GenerateReplicas(rr *orchestrator.RunResult) (*Report, error) {
	if rr == nil || len(rr.Replicas) == 0 {
		return nil, ErrNoResult
	}

	first := rr.Replicas[0]
	r := g.build(first.Result, first.Aggregates)

	section := &ReplicaSection{
		Count:    rr.Summary.Replicas,
		BaseSeed: first.Result.Seed,
		TotalPnL: distribution(rr.Summary.TotalPnL),
	}
	for _, id := range first.Result.Config.EnabledStrategies() {
		section.Strategies = append(section.Strategies, ReplicaStrategyRow{
			StrategyID: string(id),
			PnL:        distribution(rr.Summary.StrategyPnL[id]),
		})
	}
	r.Replicas = section

	return r, nil
}

func (g *Generator) build(res *simulation.Result, aggs []*domain.StrategyAggregate) *Report {
	r := &Report{
		GeneratedAt: g.now().UTC(),
		Run: RunSummary{
			RunID:      res.RunID,
			Seed:       res.Seed,
			Ticks:      res.Ticks,
			FinalPrice: res.FinalPrice,
			DurationMs: res.Duration.Milliseconds(),
		},
		TotalPnL:        res.Total,
		OpenTrades:      []OpenTradeRow{},
		StrategyMetrics: generateStrategyMetrics(aggs),
	}

	for _, id := range res.Config.EnabledStrategies() {
		c := res.Counts[id]
		r.Strategies = append(r.Strategies, StrategyRow{
			StrategyID: string(id),
			PnL:        res.PnL[id],
			Opens:      c.Opens,
			Closes:     c.Closes,
		})
	}

	for _, t := range res.OpenTrades {
		r.OpenTrades = append(r.OpenTrades, OpenTradeRow{
			StrategyID: string(t.StrategyID),
			EntryTick:  t.EntryTick,
			EntryPrice: t.EntryPrice,
			Strikes:    t.Strikes,
		})
	}

	return r
}

// generateStrategyMetrics converts aggregates to rows, keeping their order.
func generateStrategyMetrics(aggs []*domain.StrategyAggregate) []StrategyMetricRow {
	rows := make([]StrategyMetricRow, len(aggs))
	for i, agg := range aggs {
		exits := make(map[string]int, len(agg.ExitsByReason))
		for reason, n := range agg.ExitsByReason {
			exits[string(reason)] = n
		}
		rows[i] = StrategyMetricRow{
			StrategyID:           string(agg.StrategyID),
			TotalTrades:          agg.TotalTrades,
			Wins:                 agg.Wins,
			Losses:               agg.Losses,
			WinRate:              agg.WinRate,
			PnLMean:              agg.PnLMean,
			PnLMedian:            agg.PnLMedian,
			PnLP10:               agg.PnLP10,
			PnLP90:               agg.PnLP90,
			PnLMin:               agg.PnLMin,
			PnLMax:               agg.PnLMax,
			PnLStddev:            agg.PnLStddev,
			MaxDrawdown:          agg.MaxDrawdown,
			MaxConsecutiveLosses: agg.MaxConsecutiveLosses,
			AvgHoldTicks:         agg.AvgHoldTicks,
			ExitsByReason:        exits,
		}
	}
	return rows
}

func distribution(s metrics.Summary) DistributionRow {
	return DistributionRow{Mean: s.Mean, Stddev: s.Stddev, Min: s.Min, Max: s.Max}
}
