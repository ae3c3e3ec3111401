package fresnelvol

import (
	"math/big"

	"github.com/unkn0wn-root/fresnelvol/internal/bigmath"
)

// fresnelTerm computes the k-th precomputed series factor for a dimension:
//
//	x = sqrt(2*pi*k/dim)
//	term = ((C(x) - i*S(x)) / x)^dim
//
// with C, S the unnormalized Fresnel integrals. The value is a pure
// deterministic function of (dim, k, prec): the same inputs always reproduce
// the same stored bits, which is what makes the cache monotonic-append safe.
func fresnelTerm(dim, k int, prec uint) *bigmath.Complex {
	wp := prec + 32

	x := new(big.Float).SetPrec(wp).Mul(bigmath.Pi(wp), big.NewFloat(2))
	x.Mul(x, new(big.Float).SetPrec(wp).SetInt64(int64(k)))
	x.Quo(x, new(big.Float).SetPrec(wp).SetInt64(int64(dim)))
	x.Sqrt(x)

	c, s := bigmath.FresnelCS(x, wp)
	base := &bigmath.Complex{
		Re: new(big.Float).SetPrec(wp).Quo(c, x),
		Im: new(big.Float).SetPrec(wp).Quo(new(big.Float).Neg(s), x),
	}
	return base.PowInt(dim, wp).SetPrec(prec)
}
