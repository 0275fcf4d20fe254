package reporting

import (
	"fmt"
	"strings"

	"options-strategy-lab/internal/domain"
)

// RenderCSV renders strategy metric rows as CSV string.
func RenderCSV(metrics []StrategyMetricRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("strategy_id,total_trades,wins,losses,win_rate,")
	sb.WriteString("pnl_mean,pnl_median,pnl_p10,pnl_p90,pnl_stddev,")
	sb.WriteString("max_drawdown,max_consecutive_losses,avg_hold_ticks\n")

	// Rows
	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%d,%.6f\n",
			m.StrategyID,
			m.TotalTrades,
			m.Wins,
			m.Losses,
			m.WinRate,
			m.PnLMean,
			m.PnLMedian,
			m.PnLP10,
			m.PnLP90,
			m.PnLStddev,
			m.MaxDrawdown,
			m.MaxConsecutiveLosses,
			m.AvgHoldTicks,
		))
	}

	return sb.String()
}

// RenderTradesCSV renders the closed-trade journal as CSV string.
// Strikes are joined with ';'.
func RenderTradesCSV(trades []*domain.Trade) string {
	var sb strings.Builder

	sb.WriteString("trade_id,strategy_id,entry_tick,entry_price,strikes,volume,")
	sb.WriteString("exit_tick,exit_price,exit_reason,payoff,pnl,outcome_class\n")

	for _, t := range trades {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%.6f,%s,%d,%d,%.6f,%s,%.6f,%.6f,%s\n",
			t.TradeID,
			t.StrategyID,
			t.EntryTick,
			t.EntryPrice,
			formatStrikes(t.Strikes, ";"),
			t.Volume,
			t.ExitTick,
			t.ExitPrice,
			t.ExitReason,
			t.Payoff,
			t.PnL,
			t.OutcomeClass,
		))
	}

	return sb.String()
}
