package neutro

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// Source produces uniformly distributed non-negative integers of a
// requested bit width: every draw lies in [0, 2^bits).
//
// Sources are passed explicitly to generation functions; there is no
// package-level generator. This keeps the full parameter-then-protocol
// sequence replayable when a deterministic source is supplied.
type Source interface {
	// Uniform returns a uniform draw from [0, 2^bits).
	// bits must be > 0.
	Uniform(bits int) (*big.Int, error)
}

// CryptoSource draws from crypto/rand. It is the default source for the
// CLI and is safe for concurrent use.
type CryptoSource struct{}

// NewCryptoSource returns a Source backed by the operating system CSPRNG.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{}
}

// Uniform returns a uniform draw from [0, 2^bits) using crypto/rand.
func (s *CryptoSource) Uniform(bits int) (*big.Int, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("uniform draw: bit width must be positive, got %d", bits)
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	n, err := crand.Int(crand.Reader, limit)
	if err != nil {
		return nil, fmt.Errorf("uniform draw: %w", err)
	}
	return n, nil
}

// SeededSource draws from a math/rand generator seeded at construction.
//
// It exists for deterministic replay and tests: the same seed yields the
// same sequence of draws, so a full generate-then-prove run is
// reproducible. It is NOT cryptographically secure and must not be used
// where the secrecy of the drawn values matters.
//
// Not safe for concurrent use; each goroutine should own its source.
type SeededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source for the given seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Uniform returns a uniform draw from [0, 2^bits) using the seeded generator.
func (s *SeededSource) Uniform(bits int) (*big.Int, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("uniform draw: bit width must be positive, got %d", bits)
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return new(big.Int).Rand(s.rng, limit), nil
}

// Random draws a Number whose components are sampled independently and
// uniformly from [0, 2^bits). The draws are non-negative by
// construction, so no sign conversion can fail here.
func Random(src Source, bits int) (Number, error) {
	a, err := src.Uniform(bits)
	if err != nil {
		return Number{}, fmt.Errorf("random neutrosophic: %w", err)
	}
	b, err := src.Uniform(bits)
	if err != nil {
		return Number{}, fmt.Errorf("random neutrosophic: %w", err)
	}
	return Number{A: a, B: b}, nil
}
