// Package pricepath generates the simulated underlying price path.
package pricepath

import (
	"math"
	"math/rand/v2"
)

// NormalSource yields independent standard normal draws.
// *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// NewSource returns a seeded N(0,1) stream. Equal seeds give equal streams.
func NewSource(seed uint64) NormalSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Next advances a geometric Brownian motion by one step:
//
//	prev * exp((drift - 0.5*vol^2)*dt + vol*sqrt(dt)*z)
//
// prev must be > 0, vol >= 0 and dt > 0. The result is strictly positive
// for any finite z.
func Next(prev, drift, vol, dt, z float64) float64 {
	return prev * math.Exp((drift-0.5*vol*vol)*dt+vol*math.Sqrt(dt)*z)
}

// Params holds the GBM parameters for a path.
type Params struct {
	Drift      float64
	Volatility float64
	TimeStep   float64
}

// Generator draws the next price from an injected normal source.
type Generator struct {
	params Params
	source NormalSource
}

// NewGenerator creates a Generator. The source is owned by the caller and is
// consumed one draw per Next call.
func NewGenerator(params Params, source NormalSource) *Generator {
	return &Generator{params: params, source: source}
}

// Next returns the price following prev.
func (g *Generator) Next(prev float64) float64 {
	z := g.source.NormFloat64()
	return Next(prev, g.params.Drift, g.params.Volatility, g.params.TimeStep, z)
}
