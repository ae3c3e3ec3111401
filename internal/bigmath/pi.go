package bigmath

import (
	"math/big"
	"sync"
)

var piMu sync.Mutex
var piVal *big.Float // widest pi computed so far

// Pi returns pi rounded to prec bits. The value is computed once per widest
// requested precision and reused for narrower requests.
func Pi(prec uint) *big.Float {
	piMu.Lock()
	defer piMu.Unlock()
	if piVal == nil || piVal.Prec() < prec+8 {
		piVal = machinPi(prec + 8)
	}
	return new(big.Float).SetPrec(prec).Set(piVal)
}

// machinPi evaluates pi = 16*atan(1/5) - 4*atan(1/239).
func machinPi(prec uint) *big.Float {
	wp := prec + 16
	a := atanInv(5, wp)
	b := atanInv(239, wp)
	a.Mul(a, new(big.Float).SetPrec(wp).SetInt64(16))
	b.Mul(b, new(big.Float).SetPrec(wp).SetInt64(4))
	return a.Sub(a, b).SetPrec(prec)
}

// atanInv evaluates atan(1/m) via the alternating power series.
func atanInv(m int64, prec uint) *big.Float {
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	mm := new(big.Float).SetPrec(prec).SetInt64(m * m)
	xpow := new(big.Float).SetPrec(prec).Quo(one, new(big.Float).SetPrec(prec).SetInt64(m))
	sum := new(big.Float).SetPrec(prec)
	t := new(big.Float).SetPrec(prec)
	for n, neg := 0, false; ; n, neg = n+1, !neg {
		t.Quo(xpow, new(big.Float).SetPrec(prec).SetInt64(int64(2*n+1)))
		if neg {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		xpow.Quo(xpow, mm)
		if xpow.MantExp(nil) < -int(prec)-4 {
			break
		}
	}
	return sum
}
