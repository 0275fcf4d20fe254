// Package signal maps indicator snapshots to per-strategy trading signals.
package signal

import "options-strategy-lab/internal/domain"

// Rule derives one strategy's signal from a snapshot.
type Rule func(snap domain.IndicatorSnapshot, th domain.Thresholds) domain.Signal

// Straddle enters on high volatility and exits on low volatility.
func Straddle(snap domain.IndicatorSnapshot, th domain.Thresholds) domain.Signal {
	return band(snap.Volatility, th.VolHigh, th.VolLow)
}

// Strangle is Straddle with its own thresholds.
func Strangle(snap domain.IndicatorSnapshot, th domain.Thresholds) domain.Signal {
	return band(snap.Volatility, th.StrangleVolHigh, th.StrangleVolLow)
}

// BullSpread enters while the short MA is above the long MA, exits otherwise.
func BullSpread(snap domain.IndicatorSnapshot, _ domain.Thresholds) domain.Signal {
	return binary(snap.ShortMA > snap.LongMA)
}

// BearSpread enters while the short MA is below the long MA, exits otherwise.
func BearSpread(snap domain.IndicatorSnapshot, _ domain.Thresholds) domain.Signal {
	return binary(snap.ShortMA < snap.LongMA)
}

// ButterflySpread enters on low volatility, exits otherwise.
func ButterflySpread(snap domain.IndicatorSnapshot, th domain.Thresholds) domain.Signal {
	return binary(snap.Volatility < th.VolLow)
}

func band(v, high, low float64) domain.Signal {
	switch {
	case v > high:
		return domain.SignalEnter
	case v < low:
		return domain.SignalExit
	default:
		return domain.SignalHold
	}
}

func binary(enter bool) domain.Signal {
	if enter {
		return domain.SignalEnter
	}
	return domain.SignalExit
}
