package fresnelvol

import "math/big"

// DefaultPrecision is the bit precision used when none is configured:
// 12 x 53 bits, enough headroom for the cancellation the series exhibits at
// hundreds of dimensions. Callers working far beyond N ~ 350 should raise it.
const DefaultPrecision uint = 636

// DefaultCacheDir is where the filesystem store keeps term tables when no
// explicit Store is configured.
const DefaultCacheDir = "precomps"

// DefaultTerms is the default series length for a dimension. Convergence
// slows as dimension grows (more terms near the box/ball crossover carry
// weight), and term count must be co-scaled with precision, hence the three
// floors.
func DefaultTerms(dim int) int {
	t := 10 * dim
	if t < int(DefaultPrecision) {
		t = int(DefaultPrecision)
	}
	if t < 10000 {
		t = 10000
	}
	return t
}

// checkPrecision validates a bit width for the arithmetic engine.
func checkPrecision(bits uint) error {
	if bits > big.MaxPrec {
		return &PrecisionError{Bits: bits}
	}
	return nil
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
