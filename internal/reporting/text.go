package reporting

import (
	"fmt"
	"strings"
)

// RenderText renders the plain console summary.
func RenderText(r *Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Run %s  seed=%d  ticks=%d  final price=%.4f\n",
		shortID(r.Run.RunID), r.Run.Seed, r.Run.Ticks, r.Run.FinalPrice))
	sb.WriteString("Cumulative PnL per Strategy:\n")
	for _, s := range r.Strategies {
		sb.WriteString(fmt.Sprintf("  %-18s %12.4f\n", s.StrategyID+":", s.PnL))
	}
	sb.WriteString(fmt.Sprintf("Total PnL: %.4f\n", r.TotalPnL))

	if len(r.OpenTrades) > 0 {
		sb.WriteString(fmt.Sprintf("Open at end: %d\n", len(r.OpenTrades)))
	}

	if r.Replicas != nil {
		t := r.Replicas.TotalPnL
		sb.WriteString(fmt.Sprintf("Replicas: %d  mean=%.4f  stddev=%.4f  min=%.4f  max=%.4f\n",
			r.Replicas.Count, t.Mean, t.Stddev, t.Min, t.Max))
	}

	return sb.String()
}
