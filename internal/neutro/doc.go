// Package neutro implements arithmetic over neutrosophic numbers.
//
// A neutrosophic number is a pair (a, b) written a + bI, where I is an
// indeterminacy symbol with the algebraic property I^2 = I. Both
// components are arbitrary-precision integers, so the type is suitable
// as a carrier for protocol values at cryptographic bit widths.
//
// Operations follow the usual ring rules extended by I^2 = I:
//
//	(a + bI) + (c + dI) = (a+c) + (b+d)I
//	(a + bI) * (c + dI) = ac + (ad + bc + bd)I
//
// Modular exponentiation does NOT follow from repeated multiplication.
// It is a fixed split formula (see Number.PowMod) whose exact shape the
// one-round protocol depends on. Do not replace it with a "more
// algebraic" definition; the protocol's verification equality only
// holds for this formula.
//
// All operations are pure: operands are never mutated and every result
// is built from freshly allocated integers. Values may be freely copied
// and shared across goroutines as long as callers do not mutate the
// exported fields.
package neutro
