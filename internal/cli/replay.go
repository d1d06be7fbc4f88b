package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/n1r/internal/transcript"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
}

// ReplayReport is the JSON payload of the replay command.
type ReplayReport struct {
	Runs             []transcript.RunResult `json:"runs"`
	TotalRuns        int                    `json:"total_runs"`
	AllDeterministic bool                   `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded transcripts and verify determinism",
		Long: `Replay recorded round transcripts and verify determinism.

Every stored round is re-derived from its recorded inputs (parameters,
public value, tested secret, challenge secret) and compared against the
recorded challenge, response, and check value. The protocol is pure
computation once the random draws are fixed, so any mismatch means the
transcript was tampered with or produced by different arithmetic.

Exit codes:
  0 - All replayed rounds are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, unknown run)

Examples:
  n1r replay --db rounds.db
  n1r replay --db rounds.db --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  n1r replay --db rounds.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite transcript database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay a specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "transcript database not found", err)
	}

	st, err := transcript.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open transcript database", err)
	}
	defer st.Close()

	var results []transcript.RunResult
	if opts.RunID != "" {
		res, err := st.ReplayRun(ctx, opts.RunID)
		if err != nil {
			return WrapExitError(ExitCommandError, "replay failed", err)
		}
		results = []transcript.RunResult{res}
	} else {
		results, err = st.ReplayAll(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "replay failed", err)
		}
	}

	report := ReplayReport{
		Runs:             results,
		TotalRuns:        len(results),
		AllDeterministic: true,
	}
	for _, res := range results {
		if !res.Deterministic {
			report.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, res := range report.Runs {
			status := "deterministic"
			if !res.Deterministic {
				status = "NON-DETERMINISTIC"
			}
			counts.Fprintf(out, "run %s: %d rounds, %s\n", res.RunID, len(res.Rounds), status)
		}
		if report.AllDeterministic {
			fmt.Fprintln(out, "all runs deterministic")
		} else {
			fmt.Fprintln(out, "determinism verification FAILED")
		}
	}

	if !report.AllDeterministic {
		return NewExitError(ExitFailure, "one or more runs failed determinism verification")
	}
	return nil
}
