package domain

import "fmt"

// StrategyID identifies one of the simulated option strategies.
type StrategyID string

// Strategy identifiers.
const (
	StrategyStraddle        StrategyID = "STRADDLE"
	StrategyStrangle        StrategyID = "STRANGLE"
	StrategyBullSpread      StrategyID = "BULL_SPREAD"
	StrategyBearSpread      StrategyID = "BEAR_SPREAD"
	StrategyButterflySpread StrategyID = "BUTTERFLY_SPREAD"
)

// AllStrategies lists every strategy in reporting order.
var AllStrategies = []StrategyID{
	StrategyStraddle,
	StrategyStrangle,
	StrategyBullSpread,
	StrategyBearSpread,
	StrategyButterflySpread,
}

// String returns the string representation of StrategyID.
func (s StrategyID) String() string {
	return string(s)
}

// IsValid checks if the strategy id is a known value.
func (s StrategyID) IsValid() bool {
	for _, id := range AllStrategies {
		if id == s {
			return true
		}
	}
	return false
}

// ParseStrategyID converts a user-supplied name into a StrategyID.
// Accepts the canonical upper-case form as well as lower-case and dash variants.
func ParseStrategyID(name string) (StrategyID, error) {
	normalized := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case c == '-' || c == ' ':
			c = '_'
		}
		normalized = append(normalized, c)
	}
	id := StrategyID(normalized)
	if !id.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return id, nil
}

// StrategyAggregate represents per-strategy aggregate metrics over closed trades.
type StrategyAggregate struct {
	StrategyID StrategyID

	// Counts
	TotalTrades int
	Wins        int
	Losses      int
	WinRate     float64 // wins / total_trades

	// PnL distribution (per trade, volume-weighted)
	PnLTotal  float64
	PnLMean   float64
	PnLMedian float64
	PnLP10    float64
	PnLP90    float64
	PnLMin    float64
	PnLMax    float64
	PnLStddev float64

	// Drawdown
	MaxDrawdown          float64 // worst peak-to-trough of cumulative PnL
	MaxConsecutiveLosses int

	// Holding
	AvgHoldTicks  float64
	ExitsByReason map[ExitReason]int
}
