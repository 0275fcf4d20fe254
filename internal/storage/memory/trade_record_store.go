package memory

import (
	"context"
	"sort"
	"sync"

	"options-strategy-lab/internal/domain"
	"options-strategy-lab/internal/storage"
)

// TradeRecordStore is an in-memory implementation of storage.TradeRecordStore.
type TradeRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Trade // keyed by trade_id
}

// NewTradeRecordStore creates a new in-memory trade record store.
func NewTradeRecordStore() *TradeRecordStore {
	return &TradeRecordStore{
		data: make(map[string]*domain.Trade),
	}
}

// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
func (s *TradeRecordStore) Insert(_ context.Context, t *domain.Trade) error {
	if t == nil || t.TradeID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.TradeID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[t.TradeID] = cloneTrade(t)
	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeRecordStore) GetByID(_ context.Context, tradeID string) (*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[tradeID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return cloneTrade(t), nil
}

// GetByStrategy retrieves all trades for a strategy, ordered by entry tick ASC.
func (s *TradeRecordStore) GetByStrategy(_ context.Context, strategyID domain.StrategyID) ([]*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Trade
	for _, t := range s.data {
		if t.StrategyID == strategyID {
			result = append(result, cloneTrade(t))
		}
	}
	sortTrades(result)
	return result, nil
}

// List retrieves all trades ordered by entry tick ASC, then strategy.
func (s *TradeRecordStore) List(_ context.Context) ([]*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Trade, 0, len(s.data))
	for _, t := range s.data {
		result = append(result, cloneTrade(t))
	}
	sortTrades(result)
	return result, nil
}

// Len returns the number of stored trades.
func (s *TradeRecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func sortTrades(trades []*domain.Trade) {
	sort.Slice(trades, func(i, j int) bool {
		if trades[i].EntryTick != trades[j].EntryTick {
			return trades[i].EntryTick < trades[j].EntryTick
		}
		return trades[i].StrategyID < trades[j].StrategyID
	})
}

func cloneTrade(t *domain.Trade) *domain.Trade {
	c := *t
	c.Strikes = append([]float64(nil), t.Strikes...)
	return &c
}

var _ storage.TradeRecordStore = (*TradeRecordStore)(nil)
