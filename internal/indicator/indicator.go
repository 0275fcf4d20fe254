// Package indicator computes rolling statistics over a price history.
package indicator

import (
	"math"

	"options-strategy-lab/internal/domain"
)

// MovingAverage returns the arithmetic mean of the window prices ending at tick (inclusive).
// During warm-up (tick < window-1) it returns history[tick].
func MovingAverage(history []float64, tick, window int) float64 {
	if tick < window-1 {
		return history[tick]
	}
	sum := 0.0
	for i := tick - window + 1; i <= tick; i++ {
		sum += history[i]
	}
	return sum / float64(window)
}

// RealizedVolatility returns the population standard deviation of the window
// log returns ln(p[i]/p[i-1]) for i in (tick-window, tick].
// Returns 0 until window returns are available (tick < window).
func RealizedVolatility(history []float64, tick, window int) float64 {
	if tick < window || window < 1 {
		return 0
	}

	returns := make([]float64, 0, window)
	for i := tick - window + 1; i <= tick; i++ {
		returns = append(returns, math.Log(history[i]/history[i-1]))
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance)
}

// Compute builds the snapshot for tick.
func Compute(history []float64, tick int, w domain.Windows) domain.IndicatorSnapshot {
	return domain.IndicatorSnapshot{
		ShortMA:    MovingAverage(history, tick, w.Short),
		LongMA:     MovingAverage(history, tick, w.Long),
		Volatility: RealizedVolatility(history, tick, w.Volatility),
	}
}
