// Package payoff computes intrinsic option payoffs at settlement.
// Premiums are not modeled: net payoff equals gross intrinsic value.
package payoff

import "math"

func call(s, k float64) float64 { return math.Max(s-k, 0) }
func put(s, k float64) float64 { return math.Max(k-s, 0) }

// Straddle is a long call plus a long put at the same strike.
func Straddle(s, k float64) float64 {
	return call(s, k) + put(s, k)
}

// Strangle is a long put at k1 plus a long call at k2.
func Strangle(s, k1, k2 float64) float64 {
	return put(s, k1) + call(s, k2)
}

// BullSpread is a long call at k1 and a short call at k2.
func BullSpread(s, k1, k2 float64) float64 {
	return call(s, k1) - call(s, k2)
}

// BearSpread is a long put at k1 less max(S-k2, 0) for the short leg.
func BearSpread(s, k1, k2 float64) float64 {
	return put(s, k1) - call(s, k2)
}

// ButterflySpread is long k1 and k3 calls with two short k2 calls.
func ButterflySpread(s, k1, k2, k3 float64) float64 {
	return call(s, k1) - 2*call(s, k2) + call(s, k3)
}
