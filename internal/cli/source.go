package cli

import (
	"github.com/roach88/n1r/internal/neutro"
)

// selectSource picks the randomness source for a command: an injected
// test source wins, then a seeded source when --seed was given, else the
// crypto/rand default.
//
// A seeded run is reproducible end to end (parameter generation,
// secrets, challenges) and exists for demonstrations and debugging; the
// seeded generator is not cryptographically secure.
func selectSource(injected neutro.Source, seedSet bool, seed int64) neutro.Source {
	if injected != nil {
		return injected
	}
	if seedSet {
		return neutro.NewSeededSource(seed)
	}
	return neutro.NewCryptoSource()
}
