package domain

import (
	"errors"
	"fmt"
)

// Configuration errors. Validate wraps them with the offending value.
var (
	ErrInvalidInitialPrice = errors.New("initial price must be > 0")
	ErrInvalidVolatility   = errors.New("volatility must be >= 0")
	ErrInvalidTimeStep     = errors.New("time step must be > 0")
	ErrInvalidTotalTicks   = errors.New("total ticks must be >= 1")
	ErrInvalidHoldPeriod   = errors.New("hold period must be >= 1")
	ErrInvalidStrikeOffset = errors.New("strike offset must be in (0, 1)")
	ErrInvalidWindow       = errors.New("indicator windows must be >= 1")
	ErrInvalidVolume       = errors.New("volume must be >= 0")
	ErrInvalidThresholds   = errors.New("volatility thresholds must be >= 0")
	ErrUnknownStrategy     = errors.New("unknown strategy")
)

// Thresholds holds the volatility thresholds used by the signal rules.
// The butterfly spread enters below VolLow.
type Thresholds struct {
	VolHigh         float64
	VolLow          float64
	StrangleVolHigh float64
	StrangleVolLow  float64
}

// Windows holds the indicator look-back lengths in ticks.
type Windows struct {
	Short      int
	Long       int
	Volatility int
}

// SimulationConfig is the validated parameter bundle for one simulation run.
type SimulationConfig struct {
	// Price process
	InitialPrice float64
	Drift        float64 // per tick
	Volatility   float64 // per tick
	TimeStep     float64
	TotalTicks   int // includes tick 0 (the initial price)

	// Trading
	HoldPeriod   int     // ticks
	StrikeOffset float64 // delta as a fraction of entry price
	Volume       int
	Thresholds   Thresholds
	Windows      Windows

	// Strategies to run; empty means all.
	Strategies []StrategyID

	// Seed for the normal draw stream.
	Seed uint64
}

// EnabledStrategies returns the configured strategies, or all of them when none are set.
func (c *SimulationConfig) EnabledStrategies() []StrategyID {
	if len(c.Strategies) == 0 {
		return AllStrategies
	}
	return c.Strategies
}

// Validate checks caller contract before any tick is simulated.
// Returns the first violation found.
func (c *SimulationConfig) Validate() error {
	if c.InitialPrice <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidInitialPrice, c.InitialPrice)
	}
	if c.Volatility < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidVolatility, c.Volatility)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeStep, c.TimeStep)
	}
	if c.TotalTicks < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTotalTicks, c.TotalTicks)
	}
	if c.HoldPeriod < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidHoldPeriod, c.HoldPeriod)
	}
	if c.StrikeOffset <= 0 || c.StrikeOffset >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidStrikeOffset, c.StrikeOffset)
	}
	if c.Windows.Short < 1 || c.Windows.Long < 1 || c.Windows.Volatility < 1 {
		return fmt.Errorf("%w: got %+v", ErrInvalidWindow, c.Windows)
	}
	if c.Volume < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidVolume, c.Volume)
	}
	t := c.Thresholds
	if t.VolHigh < 0 || t.VolLow < 0 || t.StrangleVolHigh < 0 || t.StrangleVolLow < 0 {
		return fmt.Errorf("%w: got %+v", ErrInvalidThresholds, t)
	}
	seen := make(map[StrategyID]struct{}, len(c.Strategies))
	for _, id := range c.Strategies {
		if !id.IsValid() {
			return fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("strategy %s listed twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
