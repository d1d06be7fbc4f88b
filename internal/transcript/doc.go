// Package transcript provides SQLite-backed storage for protocol round
// transcripts.
//
// Each record holds the complete inputs and outputs of one one-round
// execution: the public parameters, the public value b, the tested
// secret, the verifier's challenge secret, and the three derived values
// (challenge, response, check value) plus the verdict. Storing the
// secrets is deliberate: this is a demonstration tool and the stored
// transcript exists so that Replay can re-derive every output from the
// recorded inputs and verify the run was deterministic. Do not point it
// at secrets you care about.
//
// Ordering is by (run_id, seq) with a logical per-run sequence counter,
// never wall-clock time, so replays traverse rounds in execution order.
//
// Database configuration follows the usual SQLite demo settings: WAL
// mode, synchronous=NORMAL, busy_timeout=5000, foreign keys on, and a
// single-connection pool since there is one writer.
package transcript
