// Package ledger runs the per-strategy trade lifecycle: one open position slot per
// strategy, entry on signal, exit on hold period or signal, payoff at exit.
package ledger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/idhash"
	"options-strategy-lab/internal/observability"
	"options-strategy-lab/internal/storage"
	"options-strategy-lab/internal/strategy"
)

// Options contains configuration for creating a Ledger.
type Options struct {
	RunID        string
	HoldPeriod   int
	StrikeOffset float64
	Volume       int

	// Optional collaborators.
	Store   storage.TradeRecordStore
	Metrics *observability.Metrics
	Logger  *zerolog.Logger
}

// Counts holds the lifetime open/close counters for one strategy.
type Counts struct {
	Opens  int
	Closes int
}

type slot struct {
	desc   strategy.Descriptor
	open   *domain.Trade
	counts Counts
	pnl    float64
}

// Ledger holds the position state of every enabled strategy.
// It is not safe for concurrent use; one run drives one ledger.
type Ledger struct {
	opts  Options
	log   zerolog.Logger
	order []domain.StrategyID
	slots map[domain.StrategyID]*slot
}

// New creates a Ledger over the given descriptors. All strategies start flat
// with zero cumulative PnL.
func New(descs []strategy.Descriptor, opts Options) *Ledger {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	l := &Ledger{
		opts:  opts,
		log:   log,
		order: make([]domain.StrategyID, 0, len(descs)),
		slots: make(map[domain.StrategyID]*slot, len(descs)),
	}
	for _, d := range descs {
		l.order = append(l.order, d.ID)
		l.slots[d.ID] = &slot{desc: d}
	}
	return l
}

// Step applies one tick's transitions for every strategy, in descriptor order.
// A flat strategy opens on Enter. An open strategy closes once the hold period
// has elapsed, or earlier on Exit. A strategy never opens and closes in the same tick.
// Missing signals count as Hold.
func (l *Ledger) Step(ctx context.Context, tick int, price float64, signals domain.SignalSet) error {
	for _, id := range l.order {
		s := l.slots[id]
		sig := signals[id]

		if s.open == nil {
			if sig == domain.SignalEnter {
				l.openTrade(s, tick, price)
			}
			continue
		}

		var reason domain.ExitReason
		switch {
		case tick-s.open.EntryTick >= l.opts.HoldPeriod:
			reason = domain.ExitReasonHoldPeriod
		case sig == domain.SignalExit:
			reason = domain.ExitReasonExitSignal
		default:
			continue
		}

		if err := l.closeTrade(ctx, s, tick, price, reason); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}
	}
	return nil
}

func (l *Ledger) openTrade(s *slot, tick int, price float64) {
	s.open = &domain.Trade{
		TradeID:    idhash.ComputeTradeID(l.opts.RunID, s.desc.ID, tick),
		RunID:      l.opts.RunID,
		StrategyID: s.desc.ID,
		EntryTick:  tick,
		EntryPrice: price,
		Strikes:    s.desc.Strikes(price, l.opts.StrikeOffset),
		Volume:     l.opts.Volume,
		Open:       true,
	}
	s.counts.Opens++

	l.opts.Metrics.RecordTradeOpened(s.desc.ID)
	l.log.Debug().
		Str("strategy", s.desc.ID.String()).
		Int("tick", tick).
		Float64("price", price).
		Floats64("strikes", s.open.Strikes).
		Msg("trade opened")
}

func (l *Ledger) closeTrade(ctx context.Context, s *slot, tick int, price float64, reason domain.ExitReason) error {
	t := s.open
	t.Open = false
	t.ExitTick = tick
	t.ExitPrice = price
	t.ExitReason = reason
	t.Payoff = s.desc.Payoff(price, t.Strikes)
	t.PnL = t.Payoff * float64(t.Volume)
	t.OutcomeClass = domain.OutcomeClassLoss
	if t.PnL > 0 {
		t.OutcomeClass = domain.OutcomeClassWin
	}

	s.open = nil
	s.counts.Closes++
	s.pnl += t.PnL

	l.opts.Metrics.RecordTradeClosed(t, s.pnl)
	l.log.Debug().
		Str("strategy", s.desc.ID.String()).
		Int("tick", tick).
		Float64("price", price).
		Str("reason", string(reason)).
		Float64("payoff", t.Payoff).
		Float64("pnl", t.PnL).
		Msg("trade closed")

	if l.opts.Store != nil {
		if err := l.opts.Store.Insert(ctx, t); err != nil {
			return fmt.Errorf("store trade %s: %w", t.TradeID, err)
		}
	}
	return nil
}

// PnL returns the cumulative realized PnL of every enabled strategy.
func (l *Ledger) PnL() map[domain.StrategyID]float64 {
	out := make(map[domain.StrategyID]float64, len(l.slots))
	for id, s := range l.slots {
		out[id] = s.pnl
	}
	return out
}

// Total returns the sum of cumulative PnL across strategies.
func (l *Ledger) Total() float64 {
	total := 0.0
	for _, id := range l.order {
		total += l.slots[id].pnl
	}
	return total
}

// Counts returns the open/close counters for id.
func (l *Ledger) Counts(id domain.StrategyID) Counts {
	s, ok := l.slots[id]
	if !ok {
		return Counts{}
	}
	return s.counts
}

// OpenTrade returns a copy of the open position for id, or nil when flat.
func (l *Ledger) OpenTrade(id domain.StrategyID) *domain.Trade {
	s, ok := l.slots[id]
	if !ok || s.open == nil {
		return nil
	}
	t := *s.open
	t.Strikes = append([]float64(nil), s.open.Strikes...)
	return &t
}

// OpenTrades returns copies of all open positions in descriptor order.
func (l *Ledger) OpenTrades() []*domain.Trade {
	var out []*domain.Trade
	for _, id := range l.order {
		if t := l.OpenTrade(id); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Strategies returns the enabled strategies in descriptor order.
func (l *Ledger) Strategies() []domain.StrategyID {
	return append([]domain.StrategyID(nil), l.order...)
}
