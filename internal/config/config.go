// Package config exposes the simulator configuration loaded from YAML, with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"options-strategy-lab/internal/domain"
)

// Environment variables applied by ApplyEnv.
const (
	EnvSeed        = "OPTSIM_SEED"
	EnvTicks       = "OPTSIM_TICKS"
	EnvLogLevel    = "OPTSIM_LOG_LEVEL"
	EnvMetricsAddr = "OPTSIM_METRICS_ADDR"
)

// ErrInvalidReplicas is returned when fewer than one replica is configured.
var ErrInvalidReplicas = errors.New("replicas must be >= 1")

// App captures process-wide settings.
type App struct {
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Simulation controls run length, seeding and replicas.
type Simulation struct {
	Ticks    int    `yaml:"ticks"`
	Seed     uint64 `yaml:"seed"` // 0 picks a time-based seed
	Replicas int    `yaml:"replicas"`
	Parallel int    `yaml:"parallel"` // 0 runs all replicas at once
}

// Price configures the geometric Brownian motion.
type Price struct {
	Initial    float64 `yaml:"initial"`
	Drift      float64 `yaml:"drift"`
	Volatility float64 `yaml:"volatility"`
	TimeStep   float64 `yaml:"time_step"`
}

// Trading configures position sizing and lifetime.
type Trading struct {
	HoldPeriod   int      `yaml:"hold_period"`
	StrikeOffset float64  `yaml:"strike_offset"`
	Volume       int      `yaml:"volume"`
	Strategies   []string `yaml:"strategies"` // empty runs all
}

// Indicators holds look-back windows in ticks.
type Indicators struct {
	ShortWindow      int `yaml:"short_window"`
	LongWindow       int `yaml:"long_window"`
	VolatilityWindow int `yaml:"volatility_window"`
}

// Thresholds holds the volatility signal bands.
type Thresholds struct {
	VolHigh         float64 `yaml:"vol_high"`
	VolLow          float64 `yaml:"vol_low"`
	StrangleVolHigh float64 `yaml:"strangle_vol_high"`
	StrangleVolLow  float64 `yaml:"strangle_vol_low"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App        App        `yaml:"app"`
	Simulation Simulation `yaml:"simulation"`
	Price      Price      `yaml:"price"`
	Trading    Trading    `yaml:"trading"`
	Indicators Indicators `yaml:"indicators"`
	Thresholds Thresholds `yaml:"thresholds"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		App: App{LogLevel: "info"},
		Simulation: Simulation{
			Ticks:    10000,
			Replicas: 1,
		},
		Price: Price{
			Initial:    100,
			Drift:      0.0001,
			Volatility: 0.01,
			TimeStep:   1,
		},
		Trading: Trading{
			HoldPeriod:   10,
			StrikeOffset: 0.05,
			Volume:       10,
		},
		Indicators: Indicators{
			ShortWindow:      5,
			LongWindow:       20,
			VolatilityWindow: 5,
		},
		Thresholds: Thresholds{
			VolHigh:         0.01,
			VolLow:          0.005,
			StrangleVolHigh: 0.012,
			StrangleVolLow:  0.007,
		},
	}
}

// Load reads a YAML file from disk over the defaults.
// Keys missing from the file keep their default value.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p) // best-effort
	}
}

// ApplyEnv overrides fields from OPTSIM_* variables found by lookup.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Simulation.Seed = seed
	}
	if v, ok := lookup(EnvTicks); ok && v != "" {
		ticks, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTicks, err)
		}
		c.Simulation.Ticks = ticks
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.App.LogLevel = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		c.App.MetricsAddr = v
	}
	return nil
}

// ToSimulationConfig converts to the core run parameters.
func (c *Config) ToSimulationConfig() (domain.SimulationConfig, error) {
	ids := make([]domain.StrategyID, 0, len(c.Trading.Strategies))
	for _, name := range c.Trading.Strategies {
		id, err := domain.ParseStrategyID(name)
		if err != nil {
			return domain.SimulationConfig{}, err
		}
		ids = append(ids, id)
	}

	return domain.SimulationConfig{
		InitialPrice: c.Price.Initial,
		Drift:        c.Price.Drift,
		Volatility:   c.Price.Volatility,
		TimeStep:     c.Price.TimeStep,
		TotalTicks:   c.Simulation.Ticks,
		HoldPeriod:   c.Trading.HoldPeriod,
		StrikeOffset: c.Trading.StrikeOffset,
		Volume:       c.Trading.Volume,
		Thresholds: domain.Thresholds{
			VolHigh:         c.Thresholds.VolHigh,
			VolLow:          c.Thresholds.VolLow,
			StrangleVolHigh: c.Thresholds.StrangleVolHigh,
			StrangleVolLow:  c.Thresholds.StrangleVolLow,
		},
		Windows: domain.Windows{
			Short:      c.Indicators.ShortWindow,
			Long:       c.Indicators.LongWindow,
			Volatility: c.Indicators.VolatilityWindow,
		},
		Strategies: ids,
		Seed:       c.Simulation.Seed,
	}, nil
}

// Validate returns the first violation in the configuration.
func (c *Config) Validate() error {
	if c.Simulation.Replicas < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidReplicas, c.Simulation.Replicas)
	}
	sim, err := c.ToSimulationConfig()
	if err != nil {
		return err
	}
	return sim.Validate()
}
