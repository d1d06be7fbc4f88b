package transcript

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/roach88/n1r/internal/neutro"
)

// numberJSON is the storage form of a neutrosophic number. Components
// are decimal strings so arbitrary-precision values survive the trip
// through SQLite TEXT exactly.
type numberJSON struct {
	A string `json:"a"`
	B string `json:"b"`
}

// marshalNumber converts a Number to its JSON TEXT storage form.
// Key order is fixed by the struct, so output is deterministic.
func marshalNumber(n neutro.Number) (string, error) {
	if n.A == nil || n.B == nil {
		return "", fmt.Errorf("marshal number: uninitialized components")
	}
	data, err := json.Marshal(numberJSON{A: n.A.String(), B: n.B.String()})
	if err != nil {
		return "", fmt.Errorf("marshal number: %w", err)
	}
	return string(data), nil
}

// unmarshalNumber parses the JSON TEXT storage form back into a Number.
func unmarshalNumber(text string) (neutro.Number, error) {
	var nj numberJSON
	if err := json.Unmarshal([]byte(text), &nj); err != nil {
		return neutro.Number{}, fmt.Errorf("unmarshal number: %w", err)
	}

	a, ok := new(big.Int).SetString(nj.A, 10)
	if !ok {
		return neutro.Number{}, fmt.Errorf("unmarshal number: invalid component a %q", nj.A)
	}
	b, ok := new(big.Int).SetString(nj.B, 10)
	if !ok {
		return neutro.Number{}, fmt.Errorf("unmarshal number: invalid component b %q", nj.B)
	}

	return neutro.Number{A: a, B: b}, nil
}
