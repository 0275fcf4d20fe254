package storage

import (
	"context"

	"options-strategy-lab/internal/domain"
)

// TradeRecordStore provides access to the closed-trade journal of a run.
type TradeRecordStore interface {
	// Insert adds a closed trade. Returns ErrDuplicateKey if trade_id exists.
	Insert(ctx context.Context, t *domain.Trade) error

	// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, tradeID string) (*domain.Trade, error)

	// GetByStrategy retrieves all trades for a strategy, ordered by entry tick ASC.
	GetByStrategy(ctx context.Context, strategyID domain.StrategyID) ([]*domain.Trade, error)

	// List retrieves all trades ordered by entry tick ASC, then strategy.
	List(ctx context.Context) ([]*domain.Trade, error)
}
