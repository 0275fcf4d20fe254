package domain

// Trade represents one option position for a single strategy.
// A trade is open until ExitTick is set by the ledger.
type Trade struct {
	TradeID    string     // deterministic hash
	RunID      string     // simulation run identifier
	StrategyID StrategyID // owning strategy

	// Entry
	EntryTick  int
	EntryPrice float64
	Strikes    []float64 // 1 to 3 strikes depending on shape
	Volume     int

	// Exit (zero until closed)
	Open       bool
	ExitTick   int
	ExitPrice  float64
	ExitReason ExitReason

	// Outcome
	Payoff       float64 // intrinsic value per unit at exit
	PnL          float64 // Payoff * Volume
	OutcomeClass string  // "WIN" | "LOSS"
}

// HoldTicks returns the number of ticks between entry and exit.
func (t *Trade) HoldTicks() int {
	if t.Open {
		return 0
	}
	return t.ExitTick - t.EntryTick
}

// ExitReason explains why a trade was closed.
type ExitReason string

// Exit reason codes
const (
	ExitReasonHoldPeriod ExitReason = "HOLD_PERIOD"
	ExitReasonExitSignal ExitReason = "EXIT_SIGNAL"
)

// Outcome class constants
const (
	OutcomeClassWin  = "WIN"
	OutcomeClassLoss = "LOSS"
)
