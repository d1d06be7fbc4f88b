package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/n1r/internal/testutil"
)

func TestParamsCommand_TextOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &ParamsOptions{
		RootOptions: &RootOptions{Format: "text"},
		// Draw order: p (a, b), g (a, b), x (a, b).
		Source: testutil.NewScriptedSource(5, 1, 3, 2, 4, 0),
	}
	cmd := newParamsCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--bits", "4"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "generated 4-bit parameters:")
	assert.Contains(t, out, "p = 5 + 1I")
	assert.Contains(t, out, "g = 3 + 2I")
	assert.Contains(t, out, "x = 4 + 0I")
}

func TestParamsCommand_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &ParamsOptions{
		RootOptions: &RootOptions{Format: "json"},
		Source:      testutil.NewScriptedSource(5, 1, 3, 2, 4, 0),
	}
	cmd := newParamsCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--bits", "4"})

	require.NoError(t, cmd.Execute())

	var report paramsReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, 4, report.Bits)
	assert.Equal(t, numberOut{A: "5", B: "1"}, report.P)
	assert.Equal(t, numberOut{A: "3", B: "2"}, report.G)
	assert.Equal(t, numberOut{A: "4", B: "0"}, report.X)
}

func TestParamsCommand_NonPositiveAborts(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &ParamsOptions{
		RootOptions: &RootOptions{Format: "text"},
		// p draws a=0: not positive, must abort without retrying.
		Source: testutil.NewScriptedSource(0, 1, 3, 2, 4, 0),
	}
	cmd := newParamsCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--bits", "4"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "not positive")
}

func TestParamsCommand_WritesYAMLFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "params.yaml")

	buf := &bytes.Buffer{}
	opts := &ParamsOptions{
		RootOptions: &RootOptions{Format: "text"},
		Source:      testutil.NewScriptedSource(5, 1, 3, 2, 4, 0),
	}
	cmd := newParamsCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--bits", "4", "--out", outPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "wrote 4-bit parameters")

	params, x, err := LoadParamsFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 4, params.BitSize)
	require.NotNil(t, x)
	assert.Equal(t, "4", x.A.String())
}

func TestParamsCommand_SeededIsDeterministic(t *testing.T) {
	render := func() string {
		buf := &bytes.Buffer{}
		cmd := NewParamsCommand(&RootOptions{Format: "text"})
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"--bits", "64", "--seed", "99"})
		require.NoError(t, cmd.Execute())
		return buf.String()
	}

	assert.Equal(t, render(), render())
}
