package cli

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/n1r/internal/neutro"
	"github.com/roach88/n1r/internal/protocol"
)

// numberYAML is the on-disk form of a neutrosophic number. Components
// are decimal strings so 2048-bit values survive YAML exactly.
type numberYAML struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// ParamsFile is the YAML layout produced by `n1r params --out` and
// consumed by `n1r run --params`.
//
// The secret x is optional: a file without it describes only the public
// side, and `run` generates a fresh secret instead.
type ParamsFile struct {
	Bits int         `yaml:"bits"`
	G    numberYAML  `yaml:"g"`
	P    numberYAML  `yaml:"p"`
	X    *numberYAML `yaml:"x,omitempty"`
}

func toNumberYAML(n neutro.Number) numberYAML {
	return numberYAML{A: n.A.String(), B: n.B.String()}
}

func (n numberYAML) toNumber() (neutro.Number, error) {
	a, ok := new(big.Int).SetString(n.A, 10)
	if !ok {
		return neutro.Number{}, fmt.Errorf("invalid component a %q", n.A)
	}
	b, ok := new(big.Int).SetString(n.B, 10)
	if !ok {
		return neutro.Number{}, fmt.Errorf("invalid component b %q", n.B)
	}
	return neutro.Number{A: a, B: b}, nil
}

// SaveParamsFile writes parameters (and optionally the secret x) as YAML.
func SaveParamsFile(path string, params protocol.Params, x *neutro.Number) error {
	pf := ParamsFile{
		Bits: params.BitSize,
		G:    toNumberYAML(params.G),
		P:    toNumberYAML(params.P),
	}
	if x != nil {
		xy := toNumberYAML(*x)
		pf.X = &xy
	}

	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("marshal params file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write params file: %w", err)
	}
	return nil
}

// LoadParamsFile reads a YAML params file and validates the public
// parameters. The returned secret is nil when the file has no x entry.
func LoadParamsFile(path string) (protocol.Params, *neutro.Number, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return protocol.Params{}, nil, fmt.Errorf("read params file: %w", err)
	}

	var pf ParamsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return protocol.Params{}, nil, fmt.Errorf("parse params file %s: %w", path, err)
	}

	g, err := pf.G.toNumber()
	if err != nil {
		return protocol.Params{}, nil, fmt.Errorf("params file %s: g: %w", path, err)
	}
	p, err := pf.P.toNumber()
	if err != nil {
		return protocol.Params{}, nil, fmt.Errorf("params file %s: p: %w", path, err)
	}

	params := protocol.Params{G: g, P: p, BitSize: pf.Bits}
	if err := params.Validate(); err != nil {
		return protocol.Params{}, nil, fmt.Errorf("params file %s: %w", path, err)
	}

	if pf.X == nil {
		return params, nil, nil
	}
	x, err := pf.X.toNumber()
	if err != nil {
		return protocol.Params{}, nil, fmt.Errorf("params file %s: x: %w", path, err)
	}
	return params, &x, nil
}
