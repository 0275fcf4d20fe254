package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"options-strategy-lab/internal/config"
	"options-strategy-lab/internal/logging"
	"options-strategy-lab/internal/observability"
	"options-strategy-lab/internal/orchestrator"
	"options-strategy-lab/internal/reporting"
	"options-strategy-lab/internal/simulation"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	seed := flag.Uint64("seed", 0, "Random seed (0 = time-based)")
	ticks := flag.Int("ticks", 0, "Total ticks including the initial price")
	replicas := flag.Int("replicas", 0, "Number of independent runs (seeds seed..seed+n-1)")
	parallel := flag.Int("parallel", 0, "Max concurrent replicas (0 = all)")
	strategies := flag.String("strategies", "", "Comma-separated strategies to run (default all)")

	// Output
	format := flag.String("format", "text", "Report format: text, markdown, json")
	tradesCSV := flag.String("trades-csv", "", "Write the closed-trade journal to this CSV file")

	// Ops
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus /metrics on this address during the run")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	// Load .env before config so env overrides see it
	config.LoadEnvFiles()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		fmt.Fprintf(os.Stderr, "env overrides: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and env
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Simulation.Seed = *seed
		case "ticks":
			cfg.Simulation.Ticks = *ticks
		case "replicas":
			cfg.Simulation.Replicas = *replicas
		case "parallel":
			cfg.Simulation.Parallel = *parallel
		case "strategies":
			cfg.Trading.Strategies = splitList(*strategies)
		case "metrics-addr":
			cfg.App.MetricsAddr = *metricsAddr
		case "log-level":
			cfg.App.LogLevel = *logLevel
		}
	})

	logger := logging.New(cfg.App.LogLevel)

	*format = strings.ToLower(*format)
	if *format != "text" && *format != "markdown" && *format != "json" {
		logger.Fatal().Str("format", *format).Msg("invalid format, must be text, markdown or json")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	simCfg, err := cfg.ToSimulationConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Create context with cancellation on shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var m *observability.Metrics
	if cfg.App.MetricsAddr != "" {
		m = observability.NewMetrics("", prometheus.DefaultRegisterer)
		srv := startMetricsServer(cfg.App.MetricsAddr, logger)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runner := simulation.NewRunner(simulation.RunnerOptions{
		Metrics: m,
		Logger:  &logger,
	})
	gen := reporting.NewGenerator()

	var (
		report *reporting.Report
		result *simulation.Result
	)
	if cfg.Simulation.Replicas > 1 {
		rr, err := orchestrator.New(orchestrator.Options{
			Runner:   runner,
			Config:   simCfg,
			Replicas: cfg.Simulation.Replicas,
			Parallel: cfg.Simulation.Parallel,
			Logger:   &logger,
		}).Run(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("replicas failed")
		}
		result = rr.Replicas[0].Result
		report, err = gen.GenerateReplicas(rr)
		if err != nil {
			logger.Fatal().Err(err).Msg("generate report")
		}
	} else {
		result, err = runner.Run(ctx, simCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("simulation failed")
		}
		report, err = gen.Generate(ctx, result)
		if err != nil {
			logger.Fatal().Err(err).Msg("generate report")
		}
	}

	if *tradesCSV != "" {
		if err := writeTradesCSV(ctx, *tradesCSV, result); err != nil {
			logger.Fatal().Err(err).Msg("write trades csv")
		}
		logger.Info().Str("path", *tradesCSV).Msg("trade journal written")
	}

	if err := printReport(os.Stdout, *format, report); err != nil {
		logger.Fatal().Err(err).Msg("print report")
	}
}

// startMetricsServer serves /metrics and /health in the background.
func startMetricsServer(addr string, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	logger.Info().Str("addr", addr).Msg("metrics up")
	return srv
}

func writeTradesCSV(ctx context.Context, path string, res *simulation.Result) error {
	trades, err := res.Trades.List(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(reporting.RenderTradesCSV(trades)), 0o644)
}

func printReport(w *os.File, format string, r *reporting.Report) error {
	switch format {
	case "markdown":
		_, err := fmt.Fprint(w, reporting.RenderMarkdown(r))
		return err
	case "json":
		data, err := reporting.RenderJSON(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		_, err := fmt.Fprint(w, reporting.RenderText(r))
		return err
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
