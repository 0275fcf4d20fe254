package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-strategy-lab/internal/domain"
)

func TestMetrics_RecordTrades(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	m.RecordTick(101.5)
	m.RecordTick(102)
	m.RecordTradeOpened(domain.StrategyStraddle)
	m.RecordTradeClosed(&domain.Trade{
		StrategyID: domain.StrategyStraddle,
		ExitReason: domain.ExitReasonExitSignal,
		PnL:        25,
	}, 25)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TicksSimulated))
	assert.Equal(t, 102.0, testutil.ToFloat64(m.LastPrice))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradesOpened.WithLabelValues("STRADDLE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradesClosed.WithLabelValues("STRADDLE", "EXIT_SIGNAL")))
	assert.Equal(t, 25.0, testutil.ToFloat64(m.CumulativePnL.WithLabelValues("STRADDLE")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "test_ledger_trades_opened_total" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("test_ledger_trades_opened_total metric not found")
	}
}

func TestMetrics_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	m.RecordRun(StatusOK, 0.2, 150)
	m.RecordRun(StatusError, 0.1, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(StatusError)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTick(1)
		m.RecordTradeOpened(domain.StrategyBullSpread)
		m.RecordTradeClosed(&domain.Trade{StrategyID: domain.StrategyBullSpread}, 0)
		m.RecordRun(StatusOK, 1, 1)
	})
}
