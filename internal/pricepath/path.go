package pricepath

// Path is an append-only sequence of prices, one per tick.
// Tick 0 is the initial price.
type Path struct {
	prices []float64
}

// NewPath creates a path starting at initial, pre-sizing storage for capacity ticks.
func NewPath(initial float64, capacity int) *Path {
	if capacity < 1 {
		capacity = 1
	}
	prices := make([]float64, 1, capacity)
	prices[0] = initial
	return &Path{prices: prices}
}

// Append adds the price for the next tick and returns its tick index.
func (p *Path) Append(price float64) int {
	p.prices = append(p.prices, price)
	return len(p.prices) - 1
}

// Last returns the most recent price.
func (p *Path) Last() float64 {
	return p.prices[len(p.prices)-1]
}

// At returns the price at tick.
func (p *Path) At(tick int) float64 {
	return p.prices[tick]
}

// Len returns the number of ticks in the path.
func (p *Path) Len() int {
	return len(p.prices)
}

// History returns the prices so far. Callers must not modify the slice.
func (p *Path) History() []float64 {
	return p.prices
}
