package neutro

import (
	"fmt"
	"math/big"
)

// Number is a neutrosophic number a + bI.
//
// A is the real part, B the coefficient of the indeterminacy symbol I.
// No invariant is enforced on construction: negative and zero components
// are permitted. Callers that need "positive" values (per the
// neutrosophic ordering) must check IsPositive explicitly.
type Number struct {
	A *big.Int
	B *big.Int
}

// New constructs a Number from its two components.
// The components are copied, so later mutation of the arguments does not
// affect the returned value.
func New(a, b *big.Int) Number {
	return Number{
		A: new(big.Int).Set(a),
		B: new(big.Int).Set(b),
	}
}

// NewInt64 constructs a Number from small components.
// Convenience for fixtures and tests.
func NewInt64(a, b int64) Number {
	return Number{
		A: big.NewInt(a),
		B: big.NewInt(b),
	}
}

// Add returns x + y, computed component-wise.
func Add(x, y Number) Number {
	return Number{
		A: new(big.Int).Add(x.A, y.A),
		B: new(big.Int).Add(x.B, y.B),
	}
}

// Mul returns x * y under I^2 = I:
//
//	(a + bI)(c + dI) = ac + (ad + bc + bd)I
//
// The I^2 term folds into the I coefficient because I^2 = I.
func Mul(x, y Number) Number {
	ac := new(big.Int).Mul(x.A, y.A)
	ad := new(big.Int).Mul(x.A, y.B)
	bc := new(big.Int).Mul(x.B, y.A)
	bd := new(big.Int).Mul(x.B, y.B)

	i := ad.Add(ad, bc)
	i.Add(i, bd)

	return Number{A: ac, B: i}
}

// PowMod computes g^exp mod modulus (g being the receiver) using the
// split formula the one-round protocol is built on:
//
//	term1 = g.A^exp.A mod modulus.A
//	term2 = (g.A+g.B)^(exp.A+exp.B) mod (modulus.A+modulus.B)
//	result = term1 + (term2 - term1)I
//
// The real output component tracks only the real sub-problem; the
// indeterminate component tracks the difference between the combined
// sub-problem (on component sums) and the real one. This is a literal
// contract, not a derived operation.
//
// PowMod panics if modulus.A or modulus.A+modulus.B is zero: a zero
// modulus is a contract violation by the caller (big.Int.Exp would
// silently compute the full unreduced power, which is never what the
// protocol wants). Negative exponents are outside the contract; the
// behavior is that of big.Int.Exp and should not be relied on.
func (g Number) PowMod(exp, modulus Number) Number {
	modulusSum := new(big.Int).Add(modulus.A, modulus.B)
	if modulus.A.Sign() == 0 || modulusSum.Sign() == 0 {
		panic(fmt.Sprintf("neutro: degenerate modulus %s in PowMod", modulus))
	}

	term1 := new(big.Int).Exp(g.A, exp.A, modulus.A)

	baseSum := new(big.Int).Add(g.A, g.B)
	expSum := new(big.Int).Add(exp.A, exp.B)
	term2 := new(big.Int).Exp(baseSum, expSum, modulusSum)

	return Number{
		A: term1,
		B: term2.Sub(term2, term1),
	}
}

// IsPositive reports whether the number is positive in the neutrosophic
// ordering: A > 0 and A+B > 0. This is advisory; nothing in the type
// enforces it.
func (g Number) IsPositive() bool {
	if g.A.Sign() <= 0 {
		return false
	}
	return new(big.Int).Add(g.A, g.B).Sign() > 0
}

// Equal reports component-wise equality.
func (g Number) Equal(other Number) bool {
	return g.A.Cmp(other.A) == 0 && g.B.Cmp(other.B) == 0
}

// String renders the number as "a + bI" in decimal.
func (g Number) String() string {
	return fmt.Sprintf("%s + %sI", g.A, g.B)
}
