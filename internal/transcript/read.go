package transcript

import (
	"context"
	"fmt"
)

// ListRuns returns the distinct run IDs in the store, ordered
// deterministically by first appearance (lowest seq, then id).
func (s *Store) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id
		FROM rounds
		GROUP BY run_id
		ORDER BY MIN(seq) ASC, run_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		runs = append(runs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if runs == nil {
		runs = []string{}
	}
	return runs, nil
}

// ReadRun returns all round records for a run in execution order.
// Returns an empty slice (not nil) when the run is unknown.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, seq, label, bits, g, p, pub, secret, challenge_secret, challenge, response, check_value, verified
		FROM rounds
		WHERE run_id = ?
		ORDER BY seq ASC, id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}

	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var label string
	var verified int
	var g, p, pub, secret, y, c, response, check string

	err := row.Scan(
		&rec.Round.ID,
		&rec.RunID,
		&rec.Seq,
		&label,
		&rec.Bits,
		&g, &p, &pub, &secret, &y, &c, &response, &check,
		&verified,
	)
	if err != nil {
		return Record{}, fmt.Errorf("scan round: %w", err)
	}

	rec.Round.Label = label
	rec.Round.Verified = verified != 0
	rec.Params.BitSize = rec.Bits

	if rec.Params.G, err = unmarshalNumber(g); err != nil {
		return Record{}, fmt.Errorf("column g: %w", err)
	}
	if rec.Params.P, err = unmarshalNumber(p); err != nil {
		return Record{}, fmt.Errorf("column p: %w", err)
	}
	if rec.Pub, err = unmarshalNumber(pub); err != nil {
		return Record{}, fmt.Errorf("column pub: %w", err)
	}
	if rec.Secret, err = unmarshalNumber(secret); err != nil {
		return Record{}, fmt.Errorf("column secret: %w", err)
	}
	if rec.Round.Y, err = unmarshalNumber(y); err != nil {
		return Record{}, fmt.Errorf("column challenge_secret: %w", err)
	}
	if rec.Round.C, err = unmarshalNumber(c); err != nil {
		return Record{}, fmt.Errorf("column challenge: %w", err)
	}
	if rec.Round.RProver, err = unmarshalNumber(response); err != nil {
		return Record{}, fmt.Errorf("column response: %w", err)
	}
	if rec.Round.RVerifier, err = unmarshalNumber(check); err != nil {
		return Record{}, fmt.Errorf("column check_value: %w", err)
	}

	return rec, nil
}
