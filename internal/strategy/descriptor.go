package strategy

import (
	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/payoff"
	"options-strategy-lab/internal/signal"
)

// Descriptor captures everything that varies between strategies: how strikes are
// placed at entry, how the position pays at exit, and which signal rule drives it.
type Descriptor struct {
	ID domain.StrategyID

	// Strikes returns the strikes for a position opened at entry with offset delta.
	Strikes func(entry, delta float64) []float64

	// Payoff returns the intrinsic value per unit at settlement.
	Payoff func(settlement float64, strikes []float64) float64

	// Signal derives this strategy's signal from the tick's indicators.
	Signal signal.Rule
}

var descriptors = map[domain.StrategyID]Descriptor{
	domain.StrategyStraddle: {
		ID: domain.StrategyStraddle,
		Strikes: func(s, _ float64) []float64 {
			return []float64{s}
		},
		Payoff: func(s float64, k []float64) float64 {
			return payoff.Straddle(s, k[0])
		},
		Signal: signal.Straddle,
	},
	domain.StrategyStrangle: {
		ID: domain.StrategyStrangle,
		Strikes: func(s, d float64) []float64 {
			return []float64{s * (1 - d), s * (1 + d)} // put, call
		},
		Payoff: func(s float64, k []float64) float64 {
			return payoff.Strangle(s, k[0], k[1])
		},
		Signal: signal.Strangle,
	},
	domain.StrategyBullSpread: {
		ID: domain.StrategyBullSpread,
		Strikes: func(s, d float64) []float64 {
			return []float64{s * (1 - d), s * (1 + d)} // long call, short call
		},
		Payoff: func(s float64, k []float64) float64 {
			return payoff.BullSpread(s, k[0], k[1])
		},
		Signal: signal.BullSpread,
	},
	domain.StrategyBearSpread: {
		ID: domain.StrategyBearSpread,
		Strikes: func(s, d float64) []float64 {
			return []float64{s * (1 + d), s * (1 - d)} // long put, short put
		},
		Payoff: func(s float64, k []float64) float64 {
			return payoff.BearSpread(s, k[0], k[1])
		},
		Signal: signal.BearSpread,
	},
	domain.StrategyButterflySpread: {
		ID: domain.StrategyButterflySpread,
		Strikes: func(s, d float64) []float64 {
			return []float64{s * (1 - d), s, s * (1 + d)}
		},
		Payoff: func(s float64, k []float64) float64 {
			return payoff.ButterflySpread(s, k[0], k[1], k[2])
		},
		Signal: signal.ButterflySpread,
	},
}
