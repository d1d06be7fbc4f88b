package protocol

import (
	"github.com/roach88/n1r/internal/neutro"
)

// Params holds the public parameters of the protocol.
//
// WARNING: these are random neutrosophic values, not validated primes or
// group generators. The notion of a "neutrosophic prime" is theoretical
// and not enforced; the parameters only demonstrate the algebra.
type Params struct {
	// G is the public generator.
	G neutro.Number

	// P is the public modulus.
	P neutro.Number

	// BitSize is the bit width used for all secrets sampled against
	// these parameters, including per-round challenge secrets.
	BitSize int
}

// GenerateParams samples public parameters at the given bit width.
//
// Both g and p must pass the neutrosophic positivity test
// (a > 0 and a+b > 0); a failing draw returns ErrCodeNonPositiveParam
// without retrying, and the caller decides whether to re-invoke.
// Positivity of p also guarantees the non-degenerate moduli that
// neutro.Number.PowMod requires.
func GenerateParams(src neutro.Source, bits int) (Params, error) {
	if bits <= 0 {
		return Params{}, &Error{
			Code:    ErrCodeBadBitSize,
			Message: "bit width must be positive",
		}
	}

	p, err := neutro.Random(src, bits)
	if err != nil {
		return Params{}, &Error{Code: ErrCodeSourceFailure, Param: "p", Message: "sampling failed", Err: err}
	}
	g, err := neutro.Random(src, bits)
	if err != nil {
		return Params{}, &Error{Code: ErrCodeSourceFailure, Param: "g", Message: "sampling failed", Err: err}
	}

	if !p.IsPositive() {
		return Params{}, &Error{
			Code:    ErrCodeNonPositiveParam,
			Param:   "p",
			Message: "generated modulus is not a positive neutrosophic number",
		}
	}
	if !g.IsPositive() {
		return Params{}, &Error{
			Code:    ErrCodeNonPositiveParam,
			Param:   "g",
			Message: "generated generator is not a positive neutrosophic number",
		}
	}

	return Params{G: g, P: p, BitSize: bits}, nil
}

// Validate re-checks the positivity requirements on already-built
// parameters (for example ones loaded from a params file).
func (p Params) Validate() error {
	if p.BitSize <= 0 {
		return &Error{Code: ErrCodeBadBitSize, Message: "bit width must be positive"}
	}
	if !p.P.IsPositive() {
		return &Error{
			Code:    ErrCodeNonPositiveParam,
			Param:   "p",
			Message: "modulus is not a positive neutrosophic number",
		}
	}
	if !p.G.IsPositive() {
		return &Error{
			Code:    ErrCodeNonPositiveParam,
			Param:   "g",
			Message: "generator is not a positive neutrosophic number",
		}
	}
	return nil
}

// GenerateSecret samples a secret exponent at the parameters' bit width.
func (p Params) GenerateSecret(src neutro.Source) (neutro.Number, error) {
	x, err := neutro.Random(src, p.BitSize)
	if err != nil {
		return neutro.Number{}, &Error{Code: ErrCodeSourceFailure, Param: "x", Message: "sampling failed", Err: err}
	}
	return x, nil
}

// PublicKey computes the public value b = g^x mod p for a secret x.
func (p Params) PublicKey(x neutro.Number) neutro.Number {
	return p.G.PowMod(x, p.P)
}
