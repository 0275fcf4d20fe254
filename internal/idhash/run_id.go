package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"options-strategy-lab/internal/domain"
)

// ComputeRunID computes a deterministic run_id from every parameter that
// influences the price path and the ledger.
// Formula: SHA256(seed|S0|mu|sigma|dt|ticks|hold|delta|volume|windows|thresholds|strategies)
// Returns hex-encoded hash (64 characters).
func ComputeRunID(cfg domain.SimulationConfig) string {
	ids := make([]string, 0, len(cfg.EnabledStrategies()))
	for _, id := range cfg.EnabledStrategies() {
		ids = append(ids, string(id))
	}

	data := fmt.Sprintf("%d|%g|%g|%g|%g|%d|%d|%g|%d|%d,%d,%d|%g,%g,%g,%g|%s",
		cfg.Seed,
		cfg.InitialPrice,
		cfg.Drift,
		cfg.Volatility,
		cfg.TimeStep,
		cfg.TotalTicks,
		cfg.HoldPeriod,
		cfg.StrikeOffset,
		cfg.Volume,
		cfg.Windows.Short, cfg.Windows.Long, cfg.Windows.Volatility,
		cfg.Thresholds.VolHigh, cfg.Thresholds.VolLow,
		cfg.Thresholds.StrangleVolHigh, cfg.Thresholds.StrangleVolLow,
		strings.Join(ids, ","),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
