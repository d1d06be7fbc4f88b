// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"fmt"
	"math/big"
)

// ScriptedSource returns a fixed sequence of pre-programmed draws.
//
// Unlike neutro.SeededSource, the values are chosen by the test author,
// which keeps full protocol transcripts hand-computable. The requested
// bit width is ignored except for the usual positivity check.
//
// Draws beyond the script return an error, so a test that consumes more
// entropy than it scripted fails loudly instead of silently reusing
// values.
type ScriptedSource struct {
	draws []*big.Int
	next  int
}

// NewScriptedSource builds a source from int64 draws, in order.
// Each neutro.Random call consumes two draws (a then b).
func NewScriptedSource(draws ...int64) *ScriptedSource {
	s := &ScriptedSource{draws: make([]*big.Int, len(draws))}
	for i, d := range draws {
		s.draws[i] = big.NewInt(d)
	}
	return s
}

// Uniform returns the next scripted draw.
func (s *ScriptedSource) Uniform(bits int) (*big.Int, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("uniform draw: bit width must be positive, got %d", bits)
	}
	if s.next >= len(s.draws) {
		return nil, fmt.Errorf("scripted source exhausted after %d draws", len(s.draws))
	}
	d := s.draws[s.next]
	s.next++
	return new(big.Int).Set(d), nil
}

// Remaining reports how many scripted draws are left.
func (s *ScriptedSource) Remaining() int {
	return len(s.draws) - s.next
}
