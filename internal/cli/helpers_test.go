package cli

import (
	"math/big"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/n1r/internal/neutro"
)

// writeFile writes a small fixture file.
func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// numFromStrings builds a Number from decimal component strings.
func numFromStrings(t *testing.T, a, b string) neutro.Number {
	t.Helper()

	av, ok := new(big.Int).SetString(a, 10)
	require.True(t, ok, "invalid decimal %q", a)
	bv, ok := new(big.Int).SetString(b, 10)
	require.True(t, ok, "invalid decimal %q", b)

	return neutro.New(av, bv)
}
