// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"options-strategy-lab/internal/domain"
)

// Metrics holds all Prometheus metrics for the simulator.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Simulation metrics
	TicksSimulated prometheus.Counter
	LastPrice      prometheus.Gauge

	// Trade metrics
	TradesOpened  *prometheus.CounterVec
	TradesClosed  *prometheus.CounterVec
	TradePayoff   *prometheus.HistogramVec
	CumulativePnL *prometheus.GaugeVec

	// Run metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram
	RunTotalPnL prometheus.Histogram
}

// NewMetrics creates a new Metrics instance registered on reg.
// A nil reg registers on the default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "options_strategy_lab"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Simulation metrics
		TicksSimulated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "ticks_total",
			Help:      "Total number of simulated ticks",
		}),
		LastPrice: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "last_price",
			Help:      "Most recent simulated underlying price",
		}),

		// Trade metrics
		TradesOpened: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trades_opened_total",
			Help:      "Total number of trades opened by strategy",
		}, []string{"strategy"}),
		TradesClosed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trades_closed_total",
			Help:      "Total number of trades closed by strategy and exit reason",
		}, []string{"strategy", "reason"}),
		TradePayoff: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trade_pnl",
			Help:      "Realized PnL per closed trade",
			Buckets:   []float64{-100, -50, -10, -1, 0, 1, 10, 50, 100, 500},
		}, []string{"strategy"}),
		CumulativePnL: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "cumulative_pnl",
			Help:      "Cumulative realized PnL by strategy for the latest run",
		}, []string{"strategy"}),

		// Run metrics
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "runs_total",
			Help:      "Total number of simulation runs by status",
		}, []string{"status"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Simulation run duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
		RunTotalPnL: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "total_pnl",
			Help:      "Total PnL across strategies per run",
			Buckets:   prometheus.LinearBuckets(-5000, 1000, 11),
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTick records one simulated tick.
func (m *Metrics) RecordTick(price float64) {
	if m == nil {
		return
	}
	m.TicksSimulated.Inc()
	m.LastPrice.Set(price)
}

// RecordTradeOpened records a trade entry.
func (m *Metrics) RecordTradeOpened(id domain.StrategyID) {
	if m == nil {
		return
	}
	m.TradesOpened.WithLabelValues(string(id)).Inc()
}

// RecordTradeClosed records a trade exit and the strategy's running PnL.
func (m *Metrics) RecordTradeClosed(t *domain.Trade, cumulative float64) {
	if m == nil {
		return
	}
	strategy := string(t.StrategyID)
	m.TradesClosed.WithLabelValues(strategy, string(t.ExitReason)).Inc()
	m.TradePayoff.WithLabelValues(strategy).Observe(t.PnL)
	m.CumulativePnL.WithLabelValues(strategy).Set(cumulative)
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(status string, durationSeconds, totalPnL float64) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(durationSeconds)
	if status == StatusOK {
		m.RunTotalPnL.Observe(totalPnL)
	}
}

// Run status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
