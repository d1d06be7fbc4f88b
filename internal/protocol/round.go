package protocol

import (
	"github.com/google/uuid"

	"github.com/roach88/n1r/internal/neutro"
)

// Round labels distinguish the two demonstration scenarios.
const (
	// LabelHonest marks a round executed with the secret behind b.
	LabelHonest = "honest"

	// LabelImpostor marks a round executed with an unrelated secret.
	LabelImpostor = "impostor"
)

// Round is the full transcript of one protocol execution.
//
// It deliberately includes the verifier's challenge secret Y and nothing
// of the prover's secret: Y is consumed within the round and recording
// it enables deterministic replay of the transcript.
type Round struct {
	// ID uniquely identifies the round (UUID).
	ID string

	// Label is LabelHonest or LabelImpostor (advisory, set by the caller).
	Label string

	// Y is the verifier's challenge secret.
	Y neutro.Number

	// C is the challenge c = g^y mod p sent to the prover.
	C neutro.Number

	// RProver is the prover's response c^x mod p.
	RProver neutro.Number

	// RVerifier is the verifier's independent check value b^y mod p.
	RVerifier neutro.Number

	// Verified reports whether RProver == RVerifier.
	Verified bool
}

// Execute runs one complete round against public parameters and public
// value b, with x as the tested party's secret. The same function serves
// both scenarios: a genuine prover supplies the secret behind b, an
// impostor supplies anything else.
//
// Each call samples its own challenge secret and shares no state with
// other calls, so rounds may run concurrently as long as each goroutine
// owns its Source.
func Execute(src neutro.Source, params Params, b, x neutro.Number, label string) (Round, error) {
	// Verifier: fresh challenge secret at the parameter bit width.
	y, err := neutro.Random(src, params.BitSize)
	if err != nil {
		return Round{}, &Error{Code: ErrCodeSourceFailure, Param: "y", Message: "sampling challenge secret failed", Err: err}
	}

	// Verifier -> prover: challenge c = g^y mod p.
	c := params.G.PowMod(y, params.P)

	// Prover: response r = c^x mod p with the tested secret.
	rProver := c.PowMod(x, params.P)

	// Verifier: independent check value r' = b^y mod p.
	rVerifier := b.PowMod(y, params.P)

	return Round{
		ID:        uuid.NewString(),
		Label:     label,
		Y:         y,
		C:         c,
		RProver:   rProver,
		RVerifier: rVerifier,
		Verified:  rProver.Equal(rVerifier),
	}, nil
}

// Verify runs one round and reports only the verdict.
func Verify(src neutro.Source, params Params, b, x neutro.Number) (bool, error) {
	round, err := Execute(src, params, b, x, LabelHonest)
	if err != nil {
		return false, err
	}
	return round.Verified, nil
}

// Recompute re-derives the challenge, response, and check value of a
// recorded round from its inputs and reports whether they match the
// recorded outputs. Used by transcript replay.
func (r Round) Recompute(params Params, b, x neutro.Number) bool {
	c := params.G.PowMod(r.Y, params.P)
	rProver := c.PowMod(x, params.P)
	rVerifier := b.PowMod(r.Y, params.P)

	return c.Equal(r.C) &&
		rProver.Equal(r.RProver) &&
		rVerifier.Equal(r.RVerifier) &&
		r.Verified == rProver.Equal(rVerifier)
}
