package transcript

import (
	"context"
	"fmt"
)

// RoundResult reports, for one stored round, whether re-deriving the
// challenge, response, and check value from the stored inputs reproduces
// the stored outputs.
type RoundResult struct {
	RoundID       string `json:"round_id"`
	Seq           int64  `json:"seq"`
	Label         string `json:"label"`
	Verified      bool   `json:"verified"`
	Deterministic bool   `json:"deterministic"`
}

// RunResult aggregates replay over one run.
type RunResult struct {
	RunID         string        `json:"run_id"`
	Rounds        []RoundResult `json:"rounds"`
	Deterministic bool          `json:"deterministic"`
}

// ReplayRun re-executes every stored round of a run from its recorded
// inputs and compares against the recorded outputs. Since the protocol
// is pure computation once the random draws are fixed, any mismatch
// means the stored transcript was tampered with or written by a
// different implementation of the arithmetic.
func (s *Store) ReplayRun(ctx context.Context, runID string) (RunResult, error) {
	records, err := s.ReadRun(ctx, runID)
	if err != nil {
		return RunResult{}, fmt.Errorf("replay run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return RunResult{}, fmt.Errorf("replay run %s: no rounds recorded", runID)
	}

	result := RunResult{
		RunID:         runID,
		Rounds:        make([]RoundResult, 0, len(records)),
		Deterministic: true,
	}

	for _, rec := range records {
		ok := rec.Round.Recompute(rec.Params, rec.Pub, rec.Secret)
		result.Rounds = append(result.Rounds, RoundResult{
			RoundID:       rec.Round.ID,
			Seq:           rec.Seq,
			Label:         rec.Round.Label,
			Verified:      rec.Round.Verified,
			Deterministic: ok,
		})
		if !ok {
			result.Deterministic = false
		}
	}

	return result, nil
}

// ReplayAll replays every run in the store.
func (s *Store) ReplayAll(ctx context.Context) ([]RunResult, error) {
	runs, err := s.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]RunResult, 0, len(runs))
	for _, runID := range runs {
		res, err := s.ReplayRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
