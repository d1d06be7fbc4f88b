package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/n1r/internal/neutro"
	"github.com/roach88/n1r/internal/protocol"
	"github.com/roach88/n1r/internal/transcript"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Bits       int
	ParamsPath string
	Seed       int64
	Database   string

	// Source overrides the randomness source (for testing).
	// If nil, the source follows --seed / crypto default.
	Source neutro.Source
}

// roundReport is the per-round JSON payload of the run command.
type roundReport struct {
	Label     string    `json:"label"`
	Challenge numberOut `json:"challenge"`
	Response  numberOut `json:"response"`
	Check     numberOut `json:"check"`
	Verified  bool      `json:"verified"`
}

// runReport is the JSON payload of the run command.
type runReport struct {
	Bits   int           `json:"bits"`
	G      numberOut     `json:"g"`
	P      numberOut     `json:"p"`
	B      numberOut     `json:"b"`
	Rounds []roundReport `json:"rounds"`
	Pass   bool          `json:"pass"`
	RunID  string        `json:"run_id,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

// newRunCommand builds the command around pre-built options; tests use
// it to inject a scripted randomness source.
func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the one-round protocol demonstration",
		Long: `Run the full demonstration: generate (or load) parameters, derive the
public value b = g^x mod p, then execute the one-round protocol twice -
once with the true secret (which must verify) and once with a freshly
generated unrelated secret (which must be rejected).

With --db, every round transcript is recorded under a fresh run ID for
later replay.

Exit codes:
  0 - Honest round verified and impostor round rejected
  1 - Demonstration failed (parameter positivity, or a round misbehaved)
  2 - Command error (bad flags, unreadable params file, database errors)

Examples:
  n1r run
  n1r run --bits 512 --seed 7
  n1r run --params params.yaml --db rounds.db
  n1r run --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Bits, "bits", 2048, "bit width for generated parameters")
	cmd.Flags().StringVar(&opts.ParamsPath, "params", "", "load parameters from a YAML file instead of generating")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed for a deterministic (non-cryptographic) source")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record round transcripts to this SQLite database")

	return cmd
}

func runDemo(opts *RunOptions, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts.Verbose)
	src := selectSource(opts.Source, cmd.Flags().Changed("seed"), opts.Seed)

	// Parameters and prover secret.
	var params protocol.Params
	var x neutro.Number
	if opts.ParamsPath != "" {
		loaded, loadedX, err := LoadParamsFile(opts.ParamsPath)
		if err != nil {
			if protocol.IsCode(err, protocol.ErrCodeNonPositiveParam) {
				return WrapExitError(ExitFailure, "params file failed the positivity test", err)
			}
			return WrapExitError(ExitCommandError, "failed to load params file", err)
		}
		params = loaded
		if loadedX != nil {
			x = *loadedX
		} else {
			generated, err := params.GenerateSecret(src)
			if err != nil {
				return WrapExitError(ExitCommandError, "secret generation failed", err)
			}
			x = generated
		}
		logger.Debug("loaded parameters", "path", opts.ParamsPath, "bits", params.BitSize)
	} else {
		generated, generatedX, err := generateDemoParams(src, opts.Bits)
		if err != nil {
			return err
		}
		params, x = generated, generatedX
		logger.Debug("generated parameters", "bits", params.BitSize)
	}

	// Prover's public value.
	b := params.PublicKey(x)
	logger.Debug("derived public value", "b", formatNumber(b))

	// Round 1: the genuine prover supplies the secret behind b.
	honest, err := protocol.Execute(src, params, b, x, protocol.LabelHonest)
	if err != nil {
		return WrapExitError(ExitCommandError, "honest round failed", err)
	}
	logger.Debug("executed round", "label", honest.Label, "verified", honest.Verified)

	// Round 2: an impostor supplies a fresh unrelated secret.
	fake, err := params.GenerateSecret(src)
	if err != nil {
		return WrapExitError(ExitCommandError, "impostor secret generation failed", err)
	}
	impostor, err := protocol.Execute(src, params, b, fake, protocol.LabelImpostor)
	if err != nil {
		return WrapExitError(ExitCommandError, "impostor round failed", err)
	}
	logger.Debug("executed round", "label", impostor.Label, "verified", impostor.Verified)

	// Optional transcript recording.
	var runID string
	if opts.Database != "" {
		runID = uuid.NewString()
		if err := recordDemo(opts.Database, runID, params, b, x, fake, honest, impostor); err != nil {
			return WrapExitError(ExitCommandError, "failed to record transcripts", err)
		}
		logger.Debug("recorded transcripts", "db", opts.Database, "run_id", runID)
	}

	// Both outcomes are expected: the impostor being rejected is a PASS
	// of the demonstration, not an error.
	pass := honest.Verified && !impostor.Verified

	if opts.Format == "json" {
		report := runReport{
			Bits: params.BitSize,
			G:    toNumberOut(params.G),
			P:    toNumberOut(params.P),
			B:    toNumberOut(b),
			Rounds: []roundReport{
				newRoundReport(honest),
				newRoundReport(impostor),
			},
			Pass:  pass,
			RunID: runID,
		}
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "parameters (%d-bit):\n", params.BitSize)
		fmt.Fprintf(out, "  g = %s\n", formatNumber(params.G))
		fmt.Fprintf(out, "  p = %s\n", formatNumber(params.P))
		fmt.Fprintf(out, "  b = %s\n", formatNumber(b))
		fmt.Fprintf(out, "round 1 (honest): %s\n", verdict(honest.Verified))
		fmt.Fprintf(out, "round 2 (impostor): %s\n", verdict(impostor.Verified))
		if runID != "" {
			fmt.Fprintf(out, "recorded run %s\n", runID)
		}
		if pass {
			fmt.Fprintln(out, "PASS: honest prover accepted, impostor rejected")
		} else {
			fmt.Fprintln(out, "FAIL: protocol misbehaved")
		}
	}

	if !pass {
		return NewExitError(ExitFailure, "demonstration failed: honest and impostor rounds did not behave as expected")
	}
	return nil
}

func newRoundReport(r protocol.Round) roundReport {
	return roundReport{
		Label:     r.Label,
		Challenge: toNumberOut(r.C),
		Response:  toNumberOut(r.RProver),
		Check:     toNumberOut(r.RVerifier),
		Verified:  r.Verified,
	}
}

func verdict(verified bool) string {
	if verified {
		return "verified"
	}
	return "rejected"
}

// recordDemo writes both rounds of one demonstration under a run ID.
func recordDemo(dbPath, runID string, params protocol.Params, b, x, fake neutro.Number, honest, impostor protocol.Round) error {
	st, err := transcript.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	records := []transcript.Record{
		{RunID: runID, Seq: 1, Bits: params.BitSize, Params: params, Pub: b, Secret: x, Round: honest},
		{RunID: runID, Seq: 2, Bits: params.BitSize, Params: params, Pub: b, Secret: fake, Round: impostor},
	}
	for _, rec := range records {
		if err := st.WriteRound(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// newLogger builds the slog logger for a command; --verbose enables
// debug-level diagnostics on stderr.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
