package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Simulation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Run
	sb.WriteString("## Run\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Run ID | %s |\n", shortID(r.Run.RunID)))
	sb.WriteString(fmt.Sprintf("| Seed | %d |\n", r.Run.Seed))
	sb.WriteString(fmt.Sprintf("| Ticks | %d |\n", r.Run.Ticks))
	sb.WriteString(fmt.Sprintf("| Final Price | %.4f |\n", r.Run.FinalPrice))
	sb.WriteString(fmt.Sprintf("| Duration (ms) | %d |\n", r.Run.DurationMs))
	sb.WriteString("\n")

	// Cumulative PnL
	sb.WriteString("## Cumulative PnL\n\n")
	sb.WriteString("| Strategy | PnL | Opens | Closes |\n")
	sb.WriteString("|----------|-----|-------|--------|\n")
	for _, s := range r.Strategies {
		sb.WriteString(fmt.Sprintf("| %s | %.4f | %d | %d |\n", s.StrategyID, s.PnL, s.Opens, s.Closes))
	}
	sb.WriteString(fmt.Sprintf("| **Total** | **%.4f** | | |\n", r.TotalPnL))
	sb.WriteString("\n")

	// Strategy Metrics
	sb.WriteString("## Strategy Metrics\n\n")
	if len(r.StrategyMetrics) > 0 {
		sb.WriteString("| Strategy | Trades | WinRate | Mean | Median | P10 | P90 | Stddev | MaxDD | MaxLoss | AvgHold | Exits |\n")
		sb.WriteString("|----------|--------|---------|------|--------|-----|-----|--------|-------|---------|---------|-------|\n")
		for _, m := range r.StrategyMetrics {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %d | %.2f | %s |\n",
				m.StrategyID, m.TotalTrades, m.WinRate, m.PnLMean, m.PnLMedian,
				m.PnLP10, m.PnLP90, m.PnLStddev, m.MaxDrawdown, m.MaxConsecutiveLosses,
				m.AvgHoldTicks, formatExits(m.ExitsByReason)))
		}
	} else {
		sb.WriteString("No strategy metrics available.\n")
	}
	sb.WriteString("\n")

	// Open Trades
	sb.WriteString("## Open Trades\n\n")
	if len(r.OpenTrades) > 0 {
		sb.WriteString("| Strategy | Entry Tick | Entry Price | Strikes |\n")
		sb.WriteString("|----------|------------|-------------|---------|\n")
		for _, t := range r.OpenTrades {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %s |\n",
				t.StrategyID, t.EntryTick, t.EntryPrice, formatStrikes(t.Strikes, ", ")))
		}
	} else {
		sb.WriteString("No open trades.\n")
	}
	sb.WriteString("\n")

	// Replicas
	if r.Replicas != nil {
		sb.WriteString("## Replica Summary\n\n")
		sb.WriteString(fmt.Sprintf("Replicas: %d | Base seed: %d\n\n", r.Replicas.Count, r.Replicas.BaseSeed))
		sb.WriteString("| Strategy | Mean | Stddev | Min | Max |\n")
		sb.WriteString("|----------|------|--------|-----|-----|\n")
		for _, s := range r.Replicas.Strategies {
			sb.WriteString(fmt.Sprintf("| %s | %.4f | %.4f | %.4f | %.4f |\n",
				s.StrategyID, s.PnL.Mean, s.PnL.Stddev, s.PnL.Min, s.PnL.Max))
		}
		t := r.Replicas.TotalPnL
		sb.WriteString(fmt.Sprintf("| **Total** | %.4f | %.4f | %.4f | %.4f |\n", t.Mean, t.Stddev, t.Min, t.Max))
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatExits(exits map[string]int) string {
	if len(exits) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(exits))
	for k := range exits {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, exits[k])
	}
	return strings.Join(parts, " ")
}

func formatStrikes(strikes []float64, sep string) string {
	parts := make([]string, len(strikes))
	for i, k := range strikes {
		parts[i] = fmt.Sprintf("%.4f", k)
	}
	return strings.Join(parts, sep)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
