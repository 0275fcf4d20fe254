// Package idhash derives deterministic identifiers for runs and trades.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"options-strategy-lab/internal/domain"
)

// ComputeTradeID computes a deterministic trade_id using SHA256.
// Formula: SHA256(run_id|strategy_id|entry_tick)
// Returns hex-encoded hash (64 characters).
func ComputeTradeID(runID string, strategyID domain.StrategyID, entryTick int) string {
	data := fmt.Sprintf("%s|%s|%d", runID, strategyID, entryTick)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
