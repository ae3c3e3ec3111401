package bigmath

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// LogGammaHalf returns log(Gamma(n/2)) for integer n >= 1 at prec bits.
//
// Half-integer Gamma values reduce exactly: Gamma(m) = (m-1)! for integer m,
// and Gamma(m + 1/2) = sqrt(pi) * (2m-1)!! / 2^m. Both are evaluated as exact
// products before the single logarithm, so no Stirling expansion is needed.
func LogGammaHalf(n int, prec uint) *big.Float {
	if n < 1 {
		panic("bigmath: LogGammaHalf requires n >= 1")
	}
	wp := prec + 16
	if n%2 == 0 {
		m := int64(n / 2)
		fact := new(big.Int).MulRange(1, m-1) // (m-1)!, empty range => 1
		f := new(big.Float).SetPrec(wp).SetInt(fact)
		return bigfloat.Log(f).SetPrec(prec)
	}
	// n odd: Gamma(n/2) = sqrt(pi) * (n-2)!! / 2^((n-1)/2)
	dfact := big.NewInt(1)
	for i := int64(3); i <= int64(n-2); i += 2 {
		dfact.Mul(dfact, big.NewInt(i))
	}
	v := new(big.Float).SetPrec(wp).Sqrt(Pi(wp))
	v.Mul(v, new(big.Float).SetPrec(wp).SetInt(dfact))
	v = new(big.Float).SetMantExp(v, -(n-1)/2)
	return bigfloat.Log(v).SetPrec(prec)
}
