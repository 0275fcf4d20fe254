package metrics

import (
	"math"
	"sort"

	"options-strategy-lab/internal/domain"
)

// computeFromTrades calculates all metrics from one strategy's closed trades.
// Trades are sorted by EntryTick ASC, TradeID ASC before computing
// order-dependent metrics (MaxDrawdown, MaxConsecutiveLosses).
func computeFromTrades(strategyID domain.StrategyID, trades []*domain.Trade) *domain.StrategyAggregate {
	n := len(trades)
	if n == 0 {
		return &domain.StrategyAggregate{
			StrategyID:    strategyID,
			ExitsByReason: map[domain.ExitReason]int{},
		}
	}

	// Sort trades deterministically by EntryTick ASC, TradeID ASC
	sortedTrades := make([]*domain.Trade, n)
	copy(sortedTrades, trades)
	sort.Slice(sortedTrades, func(i, j int) bool {
		if sortedTrades[i].EntryTick != sortedTrades[j].EntryTick {
			return sortedTrades[i].EntryTick < sortedTrades[j].EntryTick
		}
		return sortedTrades[i].TradeID < sortedTrades[j].TradeID
	})

	wins := 0
	holdTicks := 0
	exits := make(map[domain.ExitReason]int)
	for _, t := range sortedTrades {
		if t.OutcomeClass == domain.OutcomeClassWin {
			wins++
		}
		holdTicks += t.HoldTicks()
		exits[t.ExitReason]++
	}

	// Extract PnL in sorted order for order-dependent calculations
	pnls := make([]float64, n)
	total := 0.0
	for i, t := range sortedTrades {
		pnls[i] = t.PnL
		total += t.PnL
	}

	// Sort PnL for percentile calculations
	sortedPnLs := make([]float64, n)
	copy(sortedPnLs, pnls)
	sort.Float64s(sortedPnLs)

	mean := computeMean(pnls)

	return &domain.StrategyAggregate{
		StrategyID: strategyID,

		// Counts
		TotalTrades: n,
		Wins:        wins,
		Losses:      n - wins,
		WinRate:     computeWinRate(wins, n),

		// PnL distribution
		PnLTotal:  total,
		PnLMean:   mean,
		PnLMedian: computePercentile(sortedPnLs, 0.50),
		PnLP10:    computePercentile(sortedPnLs, 0.10),
		PnLP90:    computePercentile(sortedPnLs, 0.90),
		PnLMin:    sortedPnLs[0],
		PnLMax:    sortedPnLs[n-1],
		PnLStddev: computeStddev(pnls, mean),

		// Drawdown (order-dependent, uses sortedTrades order)
		MaxDrawdown:          computeMaxDrawdown(pnls),
		MaxConsecutiveLosses: computeMaxConsecutiveLosses(sortedTrades),

		AvgHoldTicks:  float64(holdTicks) / float64(n),
		ExitsByReason: exits,
	}
}

// computeWinRate calculates win rate as wins / total.
func computeWinRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

// computeMean calculates arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0 // Need at least 2 samples for sample stddev
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.10 = 10th percentile).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// computeMaxDrawdown calculates worst peak-to-trough on cumulative PnL.
// Values must be in chronological order.
func computeMaxDrawdown(pnls []float64) float64 {
	cumulative := 0.0
	peak := 0.0
	maxDrawdown := 0.0

	for _, p := range pnls {
		cumulative += p
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	return maxDrawdown
}

// computeMaxConsecutiveLosses finds longest streak of PnL <= 0.
// Trades must be in chronological order.
func computeMaxConsecutiveLosses(trades []*domain.Trade) int {
	maxStreak := 0
	currentStreak := 0

	for _, t := range trades {
		if t.PnL <= 0 {
			currentStreak++
			if currentStreak > maxStreak {
				maxStreak = currentStreak
			}
		} else {
			currentStreak = 0
		}
	}
	return maxStreak
}

// Summary holds distribution statistics of a sample.
type Summary struct {
	Count  int
	Mean   float64
	Stddev float64
	Min    float64
	Max    float64
}

// Summarize computes count, mean, sample stddev, min and max of values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean := computeMean(values)
	s := Summary{
		Count:  len(values),
		Mean:   mean,
		Stddev: computeStddev(values, mean),
		Min:    values[0],
		Max:    values[0],
	}
	for _, v := range values[1:] {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s
}
