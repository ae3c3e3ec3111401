package fresnelvol

import (
	"context"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/unkn0wn-root/fresnelvol/internal/bigmath"
)

// Estimator computes the natural log of the volume of the intersection of
// the box [-1/sqrt(s), 1/sqrt(s)]^dim with the unit ball in dim dimensions,
// by summing a truncated Fresnel-integral series over precomputed terms.
type Estimator struct {
	prec  uint
	terms int
	cache *TermCache
	log   Logger
}

// Estimate evaluates the log-volume for (dim, s) with the estimator's
// configured precision and the default term count for the dimension.
// The term table for (dim, prec) is populated first if needed; terms
// computed by earlier runs are reused, never recomputed.
func (e *Estimator) Estimate(ctx context.Context, dim int, s float64) (*big.Float, error) {
	terms := e.terms
	if terms == 0 {
		terms = DefaultTerms(dim)
	}
	return e.EstimateWith(ctx, dim, s, terms, e.prec)
}

// EstimateWith is Estimate with an explicit term count and precision,
// overriding the estimator's configuration for this call.
func (e *Estimator) EstimateWith(ctx context.Context, dim int, s float64, terms int, prec uint) (*big.Float, error) {
	if dim < 2 || math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return nil, &RangeError{Dim: dim, S: s}
	}
	if prec == 0 {
		return nil, &PrecisionError{Bits: prec}
	}
	if err := checkPrecision(prec); err != nil {
		return nil, err
	}
	wp := prec + 32

	// s <= 1: box half-width >= 1, the ball is inside the box.
	if s <= 1 {
		e.log.Debug("scaling <= 1, intersection is the ball", Fields{"dim": dim, "s": s})
		return LogBallVolume(dim, prec), nil
	}
	// s >= dim: box diagonal <= 2, the box is inside the ball.
	if s >= float64(dim) {
		e.log.Debug("scaling >= dim, intersection is the box", Fields{"dim": dim, "s": s})
		return logBoxVolume(dim, s, prec), nil
	}

	if err := e.cache.EnsurePopulated(ctx, dim, terms, prec); err != nil {
		return nil, err
	}
	table, err := e.cache.Retrieve(ctx, dim, terms, prec)
	if err != nil {
		return nil, err
	}

	f, err := e.seriesValue(dim, s, terms, prec, table)
	if err != nil {
		return nil, err
	}

	// log vol = dim * log(2/sqrt(s)) + log F
	res := logBoxVolume(dim, s, wp)
	res.Add(res, bigfloat.Log(f))
	return res.SetPrec(prec), nil
}

// seriesValue evaluates F = 1/6 + s/dim + Im(sum_k table[k] * e^{2*pi*i*k*s/dim} / k) / pi.
func (e *Estimator) seriesValue(dim int, s float64, terms int, prec uint, table *TermTable) (*big.Float, error) {
	wp := prec + 32

	// k*s/dim is an exact rational of the float64 s; reducing the phase
	// modulo 1 exactly keeps the oscillating factor accurate at any k and
	// makes the resonance case (integer phase) a clean equality test.
	sRat := new(big.Rat).SetFloat64(s)
	twoPi := new(big.Float).SetPrec(wp).SetInt64(2)
	twoPi.Mul(twoPi, bigmath.Pi(wp))

	sum := bigmath.NewComplex(wp)
	phase := new(big.Rat)
	floor := new(big.Int)
	for k := 1; k <= terms; k++ {
		term, ok := table.Term(k)
		if !ok {
			return nil, &IncompleteError{Dim: dim, Prec: prec, Terms: terms, Have: k - 1}
		}

		phase.Mul(sRat, new(big.Rat).SetFrac64(int64(k), int64(dim)))
		floor.Quo(phase.Num(), phase.Denom())
		phase.Sub(phase, new(big.Rat).SetInt(floor))

		kf := new(big.Float).SetPrec(wp).SetInt64(int64(k))
		if phase.Sign() == 0 {
			// resonance: e^{2*pi*i*k*s/dim} = 1, the factor is real 1/k
			sum = sum.Add(term.QuoReal(kf))
			continue
		}

		angle := new(big.Float).SetPrec(wp).SetRat(phase)
		angle.Mul(angle, twoPi)
		sin, cos := bigmath.SinCos(angle, wp)
		factor := &bigmath.Complex{Re: cos, Im: sin}
		sum = sum.Add(term.Mul(factor).QuoReal(kf))
	}

	f := new(big.Float).SetPrec(wp).SetFloat64(s)
	f.Quo(f, new(big.Float).SetPrec(wp).SetInt64(int64(dim)))
	f.Add(f, new(big.Float).SetPrec(wp).Quo(
		new(big.Float).SetPrec(wp).SetInt64(1),
		new(big.Float).SetPrec(wp).SetInt64(6)))
	f.Add(f, new(big.Float).SetPrec(wp).Quo(sum.Im, bigmath.Pi(wp)))

	if f.Sign() <= 0 {
		e.log.Warn("series summed non-positive", Fields{"dim": dim, "s": s, "terms": terms, "prec": prec})
		return nil, &InstabilityError{Dim: dim, S: s, Terms: terms, Prec: prec}
	}
	return f, nil
}

// logBoxVolume is dim * log(2/sqrt(s)), the log-volume of the box alone.
func logBoxVolume(dim int, s float64, prec uint) *big.Float {
	wp := prec + 32
	ls := bigfloat.Log(new(big.Float).SetPrec(wp).SetFloat64(s))
	ls.SetMantExp(ls, -1) // log(sqrt(s)) = log(s)/2
	v := bigfloat.Log(new(big.Float).SetPrec(wp).SetInt64(2))
	v.Sub(v, ls)
	v.Mul(v, new(big.Float).SetPrec(wp).SetInt64(int64(dim)))
	return v.SetPrec(prec)
}
