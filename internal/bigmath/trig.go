package bigmath

import (
	"math"
	"math/big"
)

// SinCos returns sin(x) and cos(x) at prec bits. The argument is reduced
// modulo 2*pi first; the working precision is widened by the magnitude of x
// so that the reduction does not eat into the requested precision.
func SinCos(x *big.Float, prec uint) (sin, cos *big.Float) {
	extra := 0
	if e := x.MantExp(nil); e > 0 {
		extra = e
	}
	wp := prec + 32 + uint(extra)

	neg := x.Sign() < 0
	r := new(big.Float).SetPrec(wp).Abs(x)

	twoPi := new(big.Float).SetPrec(wp).Mul(Pi(wp), big.NewFloat(2))
	if r.Cmp(twoPi) >= 0 {
		q := new(big.Float).SetPrec(wp).Quo(r, twoPi)
		qi, _ := q.Int(nil)
		r.Sub(r, new(big.Float).SetPrec(wp).Mul(twoPi, new(big.Float).SetPrec(wp).SetInt(qi)))
		if r.Sign() < 0 {
			r.Add(r, twoPi)
		}
	}

	sin = new(big.Float).SetPrec(wp)
	cos = new(big.Float).SetPrec(wp)
	t := new(big.Float).SetPrec(wp).SetInt64(1) // r^j / j!
	for j := 0; ; j++ {
		switch j % 4 {
		case 0:
			cos.Add(cos, t)
		case 1:
			sin.Add(sin, t)
		case 2:
			cos.Sub(cos, t)
		case 3:
			sin.Sub(sin, t)
		}
		t = new(big.Float).SetPrec(wp).Mul(t, r)
		t.Quo(t, new(big.Float).SetPrec(wp).SetInt64(int64(j+1)))
		if t.Sign() == 0 || t.MantExp(nil) < -int(wp)-4 {
			break
		}
	}
	if neg {
		sin.Neg(sin)
	}
	return sin.SetPrec(prec), cos.SetPrec(prec)
}

// Acos returns arccos(x) for x in (-1, 1) at prec bits, by Newton iteration
// on cos(phi) = x seeded from the float64 value.
func Acos(x *big.Float, prec uint) *big.Float {
	wp := prec + 32
	xf, _ := x.Float64()
	phi := new(big.Float).SetPrec(wp).SetFloat64(math.Acos(xf))
	t := new(big.Float).SetPrec(wp).Set(x)
	for i := 0; i < 64; i++ {
		s, c := SinCos(phi, wp)
		diff := new(big.Float).SetPrec(wp).Sub(c, t)
		if diff.Sign() == 0 {
			break
		}
		step := diff.Quo(diff, s) // phi += (cos(phi) - x) / sin(phi)
		phi.Add(phi, step)
		if step.MantExp(nil) < -int(wp)+8 {
			break
		}
	}
	return phi.SetPrec(prec)
}
