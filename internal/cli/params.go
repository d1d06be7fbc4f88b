package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/n1r/internal/neutro"
	"github.com/roach88/n1r/internal/protocol"
)

// ParamsOptions holds flags for the params command.
type ParamsOptions struct {
	*RootOptions
	Bits int
	Seed int64
	Out  string

	// Source overrides the randomness source (for testing).
	// If nil, the source follows --seed / crypto default.
	Source neutro.Source
}

// paramsReport is the JSON payload of the params command.
type paramsReport struct {
	Bits int       `json:"bits"`
	P    numberOut `json:"p"`
	G    numberOut `json:"g"`
	X    numberOut `json:"x"`
}

// NewParamsCommand creates the params command.
func NewParamsCommand(rootOpts *RootOptions) *cobra.Command {
	return newParamsCommand(&ParamsOptions{RootOptions: rootOpts})
}

// newParamsCommand builds the command around pre-built options; tests
// use it to inject a scripted randomness source.
func newParamsCommand(opts *ParamsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Generate protocol parameters",
		Long: `Generate random public parameters p and g and a secret x at the
requested bit width.

Both p and g must be positive neutrosophic numbers (a > 0 and a+b > 0).
A draw that fails the test aborts with a diagnostic instead of being
silently retried; re-run the command to draw again.

Exit codes:
  0 - Parameters generated
  1 - A generated parameter failed the positivity test
  2 - Command error (bad flags, file write failure)

Examples:
  n1r params
  n1r params --bits 512 --out params.yaml
  n1r params --bits 64 --seed 7 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Bits, "bits", 2048, "bit width for parameter components")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed for a deterministic (non-cryptographic) source")
	cmd.Flags().StringVar(&opts.Out, "out", "", "write parameters to a YAML file instead of stdout")

	return cmd
}

func runParams(opts *ParamsOptions, cmd *cobra.Command) error {
	src := selectSource(opts.Source, cmd.Flags().Changed("seed"), opts.Seed)

	params, x, err := generateDemoParams(src, opts.Bits)
	if err != nil {
		return err
	}

	if opts.Out != "" {
		if err := SaveParamsFile(opts.Out, params, &x); err != nil {
			return WrapExitError(ExitCommandError, "failed to write params file", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d-bit parameters to %s\n", params.BitSize, opts.Out)
		return nil
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), paramsReport{
			Bits: params.BitSize,
			P:    toNumberOut(params.P),
			G:    toNumberOut(params.G),
			X:    toNumberOut(x),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "generated %d-bit parameters:\n", params.BitSize)
	fmt.Fprintf(out, "  p = %s\n", formatNumber(params.P))
	fmt.Fprintf(out, "  g = %s\n", formatNumber(params.G))
	fmt.Fprintf(out, "  x = %s\n", formatNumber(x))
	return nil
}

// generateDemoParams draws public parameters and a secret, mapping
// protocol errors onto CLI exit codes. Positivity failures are exit code
// 1 (a legitimate unlucky draw, the caller re-runs); everything else is
// a command error.
func generateDemoParams(src neutro.Source, bits int) (protocol.Params, neutro.Number, error) {
	params, err := protocol.GenerateParams(src, bits)
	if err != nil {
		if protocol.IsCode(err, protocol.ErrCodeNonPositiveParam) {
			return protocol.Params{}, neutro.Number{}, WrapExitError(ExitFailure,
				"generated public parameters are not positive neutrosophic numbers; re-run to draw again", err)
		}
		return protocol.Params{}, neutro.Number{}, WrapExitError(ExitCommandError, "parameter generation failed", err)
	}

	x, err := params.GenerateSecret(src)
	if err != nil {
		return protocol.Params{}, neutro.Number{}, WrapExitError(ExitCommandError, "secret generation failed", err)
	}

	return params, x, nil
}
