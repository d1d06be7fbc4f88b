package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/n1r/internal/neutro"
	"github.com/roach88/n1r/internal/protocol"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // suite name filter (glob pattern)

	// Source overrides the randomness source for ALL suites (for
	// testing); per-suite seeds are ignored when set.
	Source neutro.Source
}

// SuiteResult holds the result of a single suite execution.
type SuiteResult struct {
	Name     string `json:"name"`
	Bits     int    `json:"bits"`
	Impostor bool   `json:"impostor"`
	Trials   int    `json:"trials"`
	Expected int    `json:"expected"` // trials with the expected verdict
	Pass     bool   `json:"pass"`
	Error    string `json:"error,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	return newTestCommand(&TestOptions{RootOptions: rootOpts})
}

// newTestCommand builds the command around pre-built options; tests use
// it to inject a scripted randomness source.
func newTestCommand(opts *TestOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <suites-dir>",
		Short: "Run declarative protocol trial suites",
		Long: `Run trial suites declared in CUE files.

Each suite executes a number of independent protocol rounds at a chosen
bit width. Completeness suites (impostor: false) require every honest
round to verify; rejection suites (impostor: true) regenerate the tested
secret each trial and require every round to be rejected.

Exit codes:
  0 - All suites passed
  1 - One or more suites failed
  2 - Command error (invalid paths, malformed suites)

Examples:
  n1r test ./suites
  n1r test ./suites --filter "completeness-*"
  n1r test ./suites --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suites by glob pattern")

	return cmd
}

func runSuites(opts *TestOptions, suitesDir string, cmd *cobra.Command) error {
	suites, err := LoadSuites(suitesDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suites", err)
	}

	if opts.Filter != "" {
		filtered := suites[:0]
		for _, s := range suites {
			match, err := filepath.Match(opts.Filter, s.Name)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid filter pattern %q", opts.Filter), err)
			}
			if match {
				filtered = append(filtered, s)
			}
		}
		suites = filtered
	}

	if len(suites) == 0 {
		if opts.Format == "json" {
			return writeJSON(cmd.OutOrStdout(), TestResult{Suites: []SuiteResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No suites matched.")
		return nil
	}

	result := TestResult{
		Suites: make([]SuiteResult, 0, len(suites)),
		Total:  len(suites),
	}
	for _, s := range suites {
		sr := runSuite(s, opts.Source)
		result.Suites = append(result.Suites, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, sr := range result.Suites {
			status := "PASS"
			if !sr.Pass {
				status = "FAIL"
			}
			if sr.Error != "" {
				counts.Fprintf(out, "%s %s: %s\n", status, sr.Name, sr.Error)
				continue
			}
			counts.Fprintf(out, "%s %s: %d/%d trials as expected (%d-bit)\n",
				status, sr.Name, sr.Expected, sr.Trials, sr.Bits)
		}
		counts.Fprintf(out, "%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d suites failed", result.Failed, result.Total))
	}
	return nil
}

// runSuite executes one suite's trials. Each trial draws fresh
// parameters and secrets; nothing is shared between trials.
func runSuite(s Suite, injected neutro.Source) SuiteResult {
	sr := SuiteResult{
		Name:     s.Name,
		Bits:     s.Bits,
		Impostor: s.Impostor,
		Trials:   s.Trials,
	}

	var src neutro.Source
	switch {
	case injected != nil:
		src = injected
	case s.Seed != nil:
		src = neutro.NewSeededSource(*s.Seed)
	default:
		src = neutro.NewCryptoSource()
	}

	for trial := 0; trial < s.Trials; trial++ {
		params, err := protocol.GenerateParams(src, s.Bits)
		if err != nil {
			sr.Error = fmt.Sprintf("trial %d: %v", trial, err)
			return sr
		}

		x, err := params.GenerateSecret(src)
		if err != nil {
			sr.Error = fmt.Sprintf("trial %d: %v", trial, err)
			return sr
		}
		b := params.PublicKey(x)

		tested := x
		if s.Impostor {
			tested, err = params.GenerateSecret(src)
			if err != nil {
				sr.Error = fmt.Sprintf("trial %d: %v", trial, err)
				return sr
			}
		}

		verified, err := protocol.Verify(src, params, b, tested)
		if err != nil {
			sr.Error = fmt.Sprintf("trial %d: %v", trial, err)
			return sr
		}

		// Expected verdict: verify for completeness suites, reject for
		// impostor suites.
		if verified != s.Impostor {
			sr.Expected++
		}
	}

	sr.Pass = sr.Expected == s.Trials
	return sr
}
