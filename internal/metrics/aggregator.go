// Package metrics computes per-strategy aggregates over a run's trade journal.
package metrics

import (
	"context"
	"errors"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/storage"
)

// ErrNoTrades is returned when no trades are available for aggregation.
var ErrNoTrades = errors.New("no trades available for aggregation")

// Aggregator computes strategy aggregates from trade records.
type Aggregator struct {
	tradeRecordStore storage.TradeRecordStore
}

// NewAggregator creates a new metrics aggregator.
func NewAggregator(tradeStore storage.TradeRecordStore) *Aggregator {
	return &Aggregator{tradeRecordStore: tradeStore}
}

// ComputeAggregate computes the aggregate for one strategy.
// Returns ErrNoTrades if the strategy closed no trades.
func (a *Aggregator) ComputeAggregate(ctx context.Context, strategyID domain.StrategyID) (*domain.StrategyAggregate, error) {
	trades, err := a.tradeRecordStore.GetByStrategy(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}
	return computeFromTrades(strategyID, trades), nil
}

// ComputeAll computes aggregates for ids in order. Strategies without closed
// trades get an empty aggregate.
func (a *Aggregator) ComputeAll(ctx context.Context, ids []domain.StrategyID) ([]*domain.StrategyAggregate, error) {
	out := make([]*domain.StrategyAggregate, 0, len(ids))
	for _, id := range ids {
		agg, err := a.ComputeAggregate(ctx, id)
		if errors.Is(err, ErrNoTrades) {
			agg = computeFromTrades(id, nil)
		} else if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}
