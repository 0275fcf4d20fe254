package reporting

import "time"

// Report represents the outcome of a simulation (optionally several replicas).
type Report struct {
	// Metadata
	GeneratedAt time.Time  `json:"generated_at"`
	Run         RunSummary `json:"run"`

	// Cumulative PnL, in strategy order
	Strategies []StrategyRow `json:"strategies"`
	TotalPnL   float64       `json:"total_pnl"`

	// Positions still open after the last tick (never settled)
	OpenTrades []OpenTradeRow `json:"open_trades"`

	// Per-strategy trade metrics, in strategy order
	StrategyMetrics []StrategyMetricRow `json:"strategy_metrics"`

	// Cross-replica distribution, nil for a single run
	Replicas *ReplicaSection `json:"replicas,omitempty"`
}

// RunSummary describes the run the report was built from.
type RunSummary struct {
	RunID      string  `json:"run_id"`
	Seed       uint64  `json:"seed"`
	Ticks      int     `json:"ticks"`
	FinalPrice float64 `json:"final_price"`
	DurationMs int64   `json:"duration_ms"`
}

// StrategyRow is one strategy's cumulative result.
type StrategyRow struct {
	StrategyID string  `json:"strategy_id"`
	PnL        float64 `json:"pnl"`
	Opens      int     `json:"opens"`
	Closes     int     `json:"closes"`
}

// OpenTradeRow is a position left open at the end of the run.
type OpenTradeRow struct {
	StrategyID string    `json:"strategy_id"`
	EntryTick  int       `json:"entry_tick"`
	EntryPrice float64   `json:"entry_price"`
	Strikes    []float64 `json:"strikes"`
}

// StrategyMetricRow represents one row in strategy metrics table.
type StrategyMetricRow struct {
	StrategyID           string         `json:"strategy_id"`
	TotalTrades          int            `json:"total_trades"`
	Wins                 int            `json:"wins"`
	Losses               int            `json:"losses"`
	WinRate              float64        `json:"win_rate"`
	PnLMean              float64        `json:"pnl_mean"`
	PnLMedian            float64        `json:"pnl_median"`
	PnLP10               float64        `json:"pnl_p10"`
	PnLP90               float64        `json:"pnl_p90"`
	PnLMin               float64        `json:"pnl_min"`
	PnLMax               float64        `json:"pnl_max"`
	PnLStddev            float64        `json:"pnl_stddev"`
	MaxDrawdown          float64        `json:"max_drawdown"`
	MaxConsecutiveLosses int            `json:"max_consecutive_losses"`
	AvgHoldTicks         float64        `json:"avg_hold_ticks"`
	ExitsByReason        map[string]int `json:"exits_by_reason"`
}

// ReplicaSection summarizes PnL across replicas.
type ReplicaSection struct {
	Count      int                  `json:"count"`
	BaseSeed   uint64               `json:"base_seed"`
	TotalPnL   DistributionRow      `json:"total_pnl"`
	Strategies []ReplicaStrategyRow `json:"strategies"`
}

// DistributionRow holds summary statistics of a PnL sample.
type DistributionRow struct {
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ReplicaStrategyRow is one strategy's PnL distribution across replicas.
type ReplicaStrategyRow struct {
	StrategyID string          `json:"strategy_id"`
	PnL        DistributionRow `json:"pnl"`
}
