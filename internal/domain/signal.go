package domain

// Signal is a per-tick, per-strategy trading decision.
type Signal int

// Signal values.
const (
	SignalExit  Signal = -1
	SignalHold  Signal = 0
	SignalEnter Signal = 1
)

// String returns the string representation of Signal.
func (s Signal) String() string {
	switch s {
	case SignalEnter:
		return "ENTER"
	case SignalExit:
		return "EXIT"
	default:
		return "HOLD"
	}
}

// SignalSet maps every strategy to its signal for one tick.
type SignalSet map[StrategyID]Signal

// IndicatorSnapshot holds the rolling statistics computed for one tick.
type IndicatorSnapshot struct {
	ShortMA    float64
	LongMA     float64
	Volatility float64
}
