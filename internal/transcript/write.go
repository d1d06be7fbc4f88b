package transcript

import (
	"context"
	"fmt"

	"github.com/roach88/n1r/internal/neutro"
	"github.com/roach88/n1r/internal/protocol"
)

// Record pairs a protocol round with the context it ran under: run
// grouping, logical sequence, and the inputs the round was executed
// against.
type Record struct {
	RunID string
	Seq   int64
	Bits  int

	Params protocol.Params
	Pub    neutro.Number // b = g^x mod p
	Secret neutro.Number // the tested secret x (honest or impostor)

	Round protocol.Round
}

// WriteRound inserts a round record. Duplicate round IDs are silently
// ignored (ON CONFLICT DO NOTHING) so re-recording is idempotent.
func (s *Store) WriteRound(ctx context.Context, rec Record) error {
	cols, err := marshalRecord(rec)
	if err != nil {
		return fmt.Errorf("write round: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rounds
		(id, run_id, seq, label, bits, g, p, pub, secret, challenge_secret, challenge, response, check_value, verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.Round.ID,
		rec.RunID,
		rec.Seq,
		rec.Round.Label,
		rec.Bits,
		cols.g,
		cols.p,
		cols.pub,
		cols.secret,
		cols.challengeSecret,
		cols.challenge,
		cols.response,
		cols.checkValue,
		boolToInt(rec.Round.Verified),
	)
	if err != nil {
		return fmt.Errorf("write round: %w", err)
	}

	return nil
}

// roundColumns holds the serialized number columns of one row.
type roundColumns struct {
	g, p, pub, secret               string
	challengeSecret                 string
	challenge, response, checkValue string
}

func marshalRecord(rec Record) (roundColumns, error) {
	var cols roundColumns
	var err error

	fields := []struct {
		name string
		n    neutro.Number
		dst  *string
	}{
		{"g", rec.Params.G, &cols.g},
		{"p", rec.Params.P, &cols.p},
		{"pub", rec.Pub, &cols.pub},
		{"secret", rec.Secret, &cols.secret},
		{"challenge_secret", rec.Round.Y, &cols.challengeSecret},
		{"challenge", rec.Round.C, &cols.challenge},
		{"response", rec.Round.RProver, &cols.response},
		{"check_value", rec.Round.RVerifier, &cols.checkValue},
	}
	for _, f := range fields {
		*f.dst, err = marshalNumber(f.n)
		if err != nil {
			return cols, fmt.Errorf("column %s: %w", f.name, err)
		}
	}

	return cols, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
