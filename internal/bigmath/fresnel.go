package bigmath

import (
	"math"
	"math/big"
)

// FresnelCS returns the unnormalized Fresnel integrals
//
//	C(x) = integral 0..x of cos(t^2) dt
//	S(x) = integral 0..x of sin(t^2) dt
//
// for x >= 0 at prec bits. (The normalized variants relate as
// C(x) = sqrt(pi/2)*fresnelc(sqrt(2/pi)*x), likewise for S.)
//
// Small arguments use the Maclaurin series with x^2*log2(e) guard bits
// against cancellation. Once e^(-x^2) is below one ulp of the result the
// asymptotic expansion of the tail integral takes over; its smallest term is
// of that order, which is exactly when it becomes usable.
func FresnelCS(x *big.Float, prec uint) (c, s *big.Float) {
	if x.Sign() < 0 {
		panic("bigmath: FresnelCS requires x >= 0")
	}
	xf, _ := x.Float64()
	if xf*xf > (float64(prec)+24)*math.Ln2 {
		return fresnelAsymptotic(x, prec)
	}
	return fresnelSeries(x, xf, prec)
}

func fresnelSeries(x *big.Float, xf float64, prec uint) (c, s *big.Float) {
	boost := uint(xf*xf*math.Log2E) + 1
	wp := prec + 32 + boost

	xw := new(big.Float).SetPrec(wp).Set(x)
	x2 := new(big.Float).SetPrec(wp).Mul(xw, xw)
	x4 := new(big.Float).SetPrec(wp).Mul(x2, x2)

	c = new(big.Float).SetPrec(wp)
	s = new(big.Float).SetPrec(wp)
	p := new(big.Float).SetPrec(wp).Set(xw)     // x^(4n+1) / (2n)!
	q := new(big.Float).SetPrec(wp).Mul(x2, xw) // x^(4n+3) / (2n+1)!
	t := new(big.Float).SetPrec(wp)
	for n, neg := 0, false; ; n, neg = n+1, !neg {
		t.Quo(p, new(big.Float).SetPrec(wp).SetInt64(int64(4*n+1)))
		if neg {
			c.Sub(c, t)
		} else {
			c.Add(c, t)
		}
		t.Quo(q, new(big.Float).SetPrec(wp).SetInt64(int64(4*n+3)))
		if neg {
			s.Sub(s, t)
		} else {
			s.Add(s, t)
		}
		p.Mul(p, x4)
		p.Quo(p, new(big.Float).SetPrec(wp).SetInt64(int64((2*n+1)*(2*n+2))))
		q.Mul(q, x4)
		q.Quo(q, new(big.Float).SetPrec(wp).SetInt64(int64((2*n+2)*(2*n+3))))
		if pe, qe := floatExp(p), floatExp(q); pe < float64(-int(wp)-4) && qe < float64(-int(wp)-4) {
			break
		}
	}
	return c.SetPrec(prec), s.SetPrec(prec)
}

// fresnelAsymptotic evaluates C and S through the tail integral
// J = integral x..infinity of e^(i t^2) dt, for which repeated integration by
// parts gives
//
//	J = -e^(i x^2)/(2i) * sum_m (2m-1)!! / ((2i)^m * x^(2m+1))
//
// and C(x) + i S(x) = sqrt(pi/8)*(1+i) - J. The sum is truncated at the first
// term below one ulp, or at the smallest term if the (divergent) tail starts
// growing first.
func fresnelAsymptotic(x *big.Float, prec uint) (c, s *big.Float) {
	wp := prec + 32
	ex := x.MantExp(nil)
	if ex < 0 {
		ex = 0
	}
	x2 := new(big.Float).SetPrec(wp + 2*uint(ex) + 4)
	x2.Mul(x, x)
	sinx2, cosx2 := SinCos(x2, wp)

	xw := new(big.Float).SetPrec(wp).Set(x)
	invx2 := new(big.Float).SetPrec(wp).Quo(
		new(big.Float).SetPrec(wp).SetInt64(1),
		new(big.Float).SetPrec(wp).Mul(xw, xw),
	)

	// t_m = (2m-1)!! / ((2i)^m * x^(2m+1)); t_0 = 1/x
	term := &Complex{
		Re: new(big.Float).SetPrec(wp).Quo(new(big.Float).SetPrec(wp).SetInt64(1), xw),
		Im: new(big.Float).SetPrec(wp),
	}
	sum := NewComplex(wp)
	prevMag := math.Inf(1)
	for m := 1; ; m++ {
		sum = sum.Add(term)
		// t_m = t_{m-1} * (2m-1)/(2i) / x^2; multiplying by -i/2 maps
		// (a, b) to (b/2, -a/2).
		odd := new(big.Float).SetPrec(wp).SetInt64(int64(2*m - 1))
		re := new(big.Float).SetPrec(wp).Mul(term.Im, odd)
		im := new(big.Float).SetPrec(wp).Mul(term.Re, odd)
		im.Neg(im)
		re.SetMantExp(re, -1) // halve
		im.SetMantExp(im, -1)
		term = &Complex{
			Re: re.Mul(re, invx2),
			Im: im.Mul(im, invx2),
		}
		mag := math.Max(floatExp(term.Re), floatExp(term.Im))
		if mag < float64(-int(prec)-20) || mag >= prevMag {
			break
		}
		prevMag = mag
	}

	// J = e^(i x^2) * sum * (i/2); C + iS = sqrt(pi/8)*(1+i) - J
	e := &Complex{Re: cosx2, Im: sinx2}
	j := e.Mul(sum)
	jre := new(big.Float).SetMantExp(j.Im, -1)
	jim := new(big.Float).SetMantExp(j.Re, -1)
	j = &Complex{Re: jre.Neg(jre), Im: jim}

	lim := new(big.Float).SetPrec(wp).Quo(Pi(wp), new(big.Float).SetPrec(wp).SetInt64(8))
	lim.Sqrt(lim)

	c = new(big.Float).SetPrec(wp).Sub(lim, j.Re)
	s = new(big.Float).SetPrec(wp).Sub(lim, j.Im)
	return c.SetPrec(prec), s.SetPrec(prec)
}

// floatExp returns the binary exponent of f, or -inf for zero.
func floatExp(f *big.Float) float64 {
	if f.Sign() == 0 {
		return math.Inf(-1)
	}
	return float64(f.MantExp(nil))
}
