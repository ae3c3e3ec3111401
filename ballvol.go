package fresnelvol

import (
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/unkn0wn-root/fresnelvol/internal/bigmath"
)

// LogBallVolume returns log vol(B_dim(1)), the natural log of the volume of
// the unit ball in dim dimensions:
//
//	(dim/2) * log(pi) - log Gamma(dim/2 + 1)
//
// The gamma value is exact (dim/2 + 1 is a half-integer), so the only
// rounding is in the final log and difference.
func LogBallVolume(dim int, prec uint) *big.Float {
	wp := prec + 32
	v := bigfloat.Log(bigmath.Pi(wp))
	v.Mul(v, new(big.Float).SetPrec(wp).SetInt64(int64(dim)))
	v.SetMantExp(v, -1) // * dim/2
	v.Sub(v, bigmath.LogGammaHalf(dim+2, wp))
	return v.SetPrec(prec)
}

// LogBallVolumeR is LogBallVolume for a ball of the given radius:
// log vol(B_dim(r)) = log vol(B_dim(1)) + dim * log(r).
func LogBallVolumeR(dim int, radius *big.Float, prec uint) *big.Float {
	wp := prec + 32
	lr := bigfloat.Log(new(big.Float).SetPrec(wp).Set(radius))
	lr.Mul(lr, new(big.Float).SetPrec(wp).SetInt64(int64(dim)))
	lr.Add(lr, LogBallVolume(dim, wp))
	return lr.SetPrec(prec)
}
