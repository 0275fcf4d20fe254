// Package strategy describes the option strategies driven by the trade ledger.
package strategy

import (
	"errors"
	"fmt"

	"options-strategy-lab/internal/domain"
)

// ErrUnknownStrategyType is returned for ids without a descriptor.
var ErrUnknownStrategyType = errors.New("unknown strategy type")

// Lookup returns the descriptor for id.
func Lookup(id domain.StrategyID) (Descriptor, error) {
	d, ok := descriptors[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownStrategyType, id)
	}
	return d, nil
}

// FromConfig returns the descriptors for the strategies enabled in cfg,
// in the order they are listed.
func FromConfig(cfg domain.SimulationConfig) ([]Descriptor, error) {
	ids := cfg.EnabledStrategies()
	out := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		d, err := Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Evaluate derives the tick's signal for each descriptor.
func Evaluate(descs []Descriptor, snap domain.IndicatorSnapshot, th domain.Thresholds) domain.SignalSet {
	set := make(domain.SignalSet, len(descs))
	for _, d := range descs {
		set[d.ID] = d.Signal(snap, th)
	}
	return set
}
