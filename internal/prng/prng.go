// Package prng is a small seeded generator for cosmetic shuffles (card layout,
// answer order). It is reproducible across runs and platforms and is not suitable
// for anything security related.
package prng

const (
	multiplier = 1103515245
	increment  = 12345
	mask       = 0x7fffffff
	modulus    = 1 << 31
)

// LCG is a 31-bit linear congruential generator.
type LCG struct {
	state int64
}

// New returns a generator seeded with seed.
func New(seed int64) *LCG {
	return &LCG{state: seed & mask}
}

func (g *LCG) step() int64 {
	g.state = (g.state*multiplier + increment) & mask
	return g.state
}

// Float64 returns the next value in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.step()) / modulus
}

// Intn returns the next value in [0, n). It panics if n <= 0.
func (g *LCG) Intn(n int) int {
	if n <= 0 {
		panic("prng: invalid argument to Intn")
	}
	return int(g.Float64() * float64(n))
}

// Shuffle permutes n elements with Fisher-Yates using swap.
func (g *LCG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, g.Intn(i+1))
	}
}
