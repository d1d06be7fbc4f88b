// Package protocol implements the neutrosophic one-round zero-knowledge
// proof of knowledge.
//
// The protocol has two logical parties. The prover holds a secret
// exponent x and has published b = g^x mod p over public neutrosophic
// parameters g and p. A round proceeds as direct in-process calls:
//
//  1. The verifier samples a fresh secret y and sends the challenge
//     c = g^y mod p.
//  2. The prover answers with r = c^x mod p.
//  3. The verifier independently computes r' = b^y mod p and accepts
//     iff r == r' (component-wise).
//
// When the prover's secret is the one behind b, the split exponentiation
// formula in package neutro makes both sides reduce to the same value
// ((g^y)^x and (g^x)^y agree component-wise under the formula). A party
// holding an unrelated secret produces a matching response only with
// negligible probability at cryptographic bit widths.
//
// This is a research demonstration. No soundness bound is proven for the
// underlying neutrosophic structure, parameters are random rather than
// validated primes/generators, and nothing here is side-channel
// hardened.
package protocol
