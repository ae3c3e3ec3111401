package bigmath

import "math/big"

// Complex is a complex number with arbitrary-precision parts.
// Operations allocate their result; operands are never mutated.
type Complex struct {
	Re *big.Float
	Im *big.Float
}

// NewComplex returns 0+0i at the given precision.
func NewComplex(prec uint) *Complex {
	return &Complex{
		Re: new(big.Float).SetPrec(prec),
		Im: new(big.Float).SetPrec(prec),
	}
}

// ComplexFromFloats copies re and im into a Complex.
func ComplexFromFloats(re, im *big.Float) *Complex {
	return &Complex{
		Re: new(big.Float).Copy(re),
		Im: new(big.Float).Copy(im),
	}
}

// Add returns z + w.
func (z *Complex) Add(w *Complex) *Complex {
	return &Complex{
		Re: new(big.Float).Add(z.Re, w.Re),
		Im: new(big.Float).Add(z.Im, w.Im),
	}
}

// Sub returns z - w.
func (z *Complex) Sub(w *Complex) *Complex {
	return &Complex{
		Re: new(big.Float).Sub(z.Re, w.Re),
		Im: new(big.Float).Sub(z.Im, w.Im),
	}
}

// Mul returns z * w.
func (z *Complex) Mul(w *Complex) *Complex {
	ac := new(big.Float).Mul(z.Re, w.Re)
	bd := new(big.Float).Mul(z.Im, w.Im)
	ad := new(big.Float).Mul(z.Re, w.Im)
	bc := new(big.Float).Mul(z.Im, w.Re)
	return &Complex{
		Re: new(big.Float).Sub(ac, bd),
		Im: new(big.Float).Add(ad, bc),
	}
}

// MulReal returns z * r for real r.
func (z *Complex) MulReal(r *big.Float) *Complex {
	return &Complex{
		Re: new(big.Float).Mul(z.Re, r),
		Im: new(big.Float).Mul(z.Im, r),
	}
}

// QuoReal returns z / r for real r.
func (z *Complex) QuoReal(r *big.Float) *Complex {
	return &Complex{
		Re: new(big.Float).Quo(z.Re, r),
		Im: new(big.Float).Quo(z.Im, r),
	}
}

// Conj returns the complex conjugate.
func (z *Complex) Conj() *Complex {
	return &Complex{
		Re: new(big.Float).Copy(z.Re),
		Im: new(big.Float).Neg(z.Im),
	}
}

// Copy returns a deep copy.
func (z *Complex) Copy() *Complex {
	return &Complex{
		Re: new(big.Float).Copy(z.Re),
		Im: new(big.Float).Copy(z.Im),
	}
}

// PowInt returns z^n for n >= 0 by binary exponentiation at prec bits.
func (z *Complex) PowInt(n int, prec uint) *Complex {
	acc := &Complex{
		Re: new(big.Float).SetPrec(prec).SetInt64(1),
		Im: new(big.Float).SetPrec(prec),
	}
	base := &Complex{
		Re: new(big.Float).SetPrec(prec).Set(z.Re),
		Im: new(big.Float).SetPrec(prec).Set(z.Im),
	}
	for n > 0 {
		if n&1 == 1 {
			acc = acc.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return acc
}

// SetPrec rounds both parts to prec bits and returns z.
func (z *Complex) SetPrec(prec uint) *Complex {
	z.Re.SetPrec(prec)
	z.Im.SetPrec(prec)
	return z
}
