package fresnelvol

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/unkn0wn-root/fresnelvol/internal/bigmath"
)

// AsymptoticEstimate approximates the same log-volume as Estimator via a
// normal-approximation correction: log of the box volume plus the log of the
// probability that a sum of squared uniforms lands inside the ball. It needs
// no cache and no series, but is only valid for s > dim/3; outside that
// region it returns RangeError rather than a silently wrong value.
func AsymptoticEstimate(dim int, s float64, prec uint) (*big.Float, error) {
	if dim < 2 || math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return nil, &RangeError{Dim: dim, S: s}
	}
	if s <= float64(dim)/3 {
		return nil, &RangeError{Dim: dim, S: s}
	}
	if err := checkPrecision(prec); err != nil {
		return nil, err
	}
	if prec == 0 {
		return nil, &PrecisionError{Bits: prec}
	}
	wp := prec + 32

	nf := new(big.Float).SetPrec(wp).SetInt64(int64(dim))
	sf := new(big.Float).SetPrec(wp).SetFloat64(s)

	// mean N/(3s) and variance 4N/(45 s^2) of the implied normal
	mean := new(big.Float).SetPrec(wp).Quo(nf, new(big.Float).SetPrec(wp).Mul(big.NewFloat(3), sf))
	s2 := new(big.Float).SetPrec(wp).Mul(sf, sf)
	variance := new(big.Float).SetPrec(wp).Mul(big.NewFloat(4), nf)
	variance.Quo(variance, new(big.Float).SetPrec(wp).Mul(big.NewFloat(45), s2))

	y := new(big.Float).SetPrec(wp).SetInt64(1)
	y.Sub(y, mean)
	y.Quo(y, variance)

	sqrt2 := new(big.Float).SetPrec(wp).SetInt64(2)
	sqrt2.Sqrt(sqrt2)
	prob := bigmath.Erf(new(big.Float).SetPrec(wp).Quo(y, sqrt2), wp)
	prob.Add(prob, new(big.Float).SetPrec(wp).SetInt64(1))
	prob.SetMantExp(prob, -1) // (1 + erf)/2

	res := logBoxVolume(dim, s, wp)
	res.Add(res, bigfloat.Log(prob))
	return res.SetPrec(prec), nil
}
