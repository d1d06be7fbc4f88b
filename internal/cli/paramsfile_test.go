package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/n1r/internal/neutro"
	"github.com/roach88/n1r/internal/protocol"
)

func TestParamsFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")

	params := protocol.Params{
		G:       neutro.NewInt64(3, 2),
		P:       neutro.NewInt64(17, 4),
		BitSize: 8,
	}
	x := neutro.NewInt64(5, 1)

	require.NoError(t, SaveParamsFile(path, params, &x))

	loaded, loadedX, err := LoadParamsFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8, loaded.BitSize)
	assert.True(t, loaded.G.Equal(params.G))
	assert.True(t, loaded.P.Equal(params.P))
	require.NotNil(t, loadedX)
	assert.True(t, loadedX.Equal(x))
}

func TestParamsFile_OptionalSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")

	params := protocol.Params{
		G:       neutro.NewInt64(3, 2),
		P:       neutro.NewInt64(17, 4),
		BitSize: 8,
	}

	require.NoError(t, SaveParamsFile(path, params, nil))

	_, loadedX, err := LoadParamsFile(path)
	require.NoError(t, err)
	assert.Nil(t, loadedX)
}

func TestLoadParamsFile_Fixture(t *testing.T) {
	params, x, err := LoadParamsFile(filepath.Join("testdata", "params_small.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 4, params.BitSize)
	assert.True(t, params.G.Equal(neutro.NewInt64(2, 1)))
	assert.True(t, params.P.Equal(neutro.NewInt64(5, 0)))
	require.NotNil(t, x)
	assert.True(t, x.Equal(neutro.NewInt64(3, 0)))
}

func TestLoadParamsFile_Missing(t *testing.T) {
	_, _, err := LoadParamsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadParamsFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bits: [not-a-number\n"), 0o644))

	_, _, err := LoadParamsFile(path)
	assert.Error(t, err)
}

func TestLoadParamsFile_BadComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := "bits: 8\ng: {a: \"xyz\", b: \"1\"}\np: {a: \"5\", b: \"0\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, _, err := LoadParamsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "g")
}

func TestLoadParamsFile_NonPositiveRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonpositive.yaml")
	// p has a = 0: fails the positivity test.
	content := "bits: 8\ng: {a: \"3\", b: \"1\"}\np: {a: \"0\", b: \"5\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, _, err := LoadParamsFile(path)
	require.Error(t, err)
	assert.True(t, protocol.IsCode(err, protocol.ErrCodeNonPositiveParam))
}
