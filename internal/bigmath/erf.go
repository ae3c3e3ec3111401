package bigmath

import (
	"math"
	"math/big"
)

// Erf returns erf(x) at prec bits.
//
// The Maclaurin series converges for every x but loses about x^2*log2(e)
// leading bits to cancellation, so the working precision is widened by that
// amount. Once erfc(x) < e^(-x^2) drops below one ulp of the result the
// saturated value +/-1 is returned directly.
func Erf(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec)
	}
	neg := x.Sign() < 0
	ax := new(big.Float).Abs(x)

	xf, _ := ax.Float64()
	if math.IsInf(xf, 0) || xf*xf*math.Log2E > float64(prec)+16 {
		one := new(big.Float).SetPrec(prec).SetInt64(1)
		if neg {
			one.Neg(one)
		}
		return one
	}

	boost := uint(xf*xf*math.Log2E) + 1
	wp := prec + 32 + boost

	a := new(big.Float).SetPrec(wp).Set(ax)
	x2 := new(big.Float).SetPrec(wp).Mul(a, a)
	sum := new(big.Float).SetPrec(wp)
	p := new(big.Float).SetPrec(wp).Set(a) // x^(2n+1) / n!
	t := new(big.Float).SetPrec(wp)
	for n, negTerm := 0, false; ; n, negTerm = n+1, !negTerm {
		t.Quo(p, new(big.Float).SetPrec(wp).SetInt64(int64(2*n+1)))
		if negTerm {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		p.Mul(p, x2)
		p.Quo(p, new(big.Float).SetPrec(wp).SetInt64(int64(n+1)))
		if p.MantExp(nil) < -int(wp)-4 {
			break
		}
	}

	// * 2/sqrt(pi)
	sqrtPi := new(big.Float).SetPrec(wp).Sqrt(Pi(wp))
	sum.Quo(sum, sqrtPi)
	sum.Add(sum, sum)
	if neg {
		sum.Neg(sum)
	}
	return sum.SetPrec(prec)
}
