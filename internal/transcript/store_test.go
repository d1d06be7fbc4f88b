package transcript

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/n1r/internal/neutro"
	"github.com/roach88/n1r/internal/protocol"
)

// openTestStore creates a store in a per-test temp directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "transcript.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

// recordRun executes a full honest+impostor demonstration at a small bit
// width and writes it to the store, returning the run ID.
func recordRun(t *testing.T, s *Store, seed int64) string {
	t.Helper()
	ctx := context.Background()

	src := neutro.NewSeededSource(seed)
	params, err := protocol.GenerateParams(src, 64)
	require.NoError(t, err)
	x, err := params.GenerateSecret(src)
	require.NoError(t, err)
	b := params.PublicKey(x)

	honest, err := protocol.Execute(src, params, b, x, protocol.LabelHonest)
	require.NoError(t, err)
	fake, err := params.GenerateSecret(src)
	require.NoError(t, err)
	impostor, err := protocol.Execute(src, params, b, fake, protocol.LabelImpostor)
	require.NoError(t, err)

	runID := uuid.NewString()
	require.NoError(t, s.WriteRound(ctx, Record{
		RunID: runID, Seq: 1, Bits: 64,
		Params: params, Pub: b, Secret: x, Round: honest,
	}))
	require.NoError(t, s.WriteRound(ctx, Record{
		RunID: runID, Seq: 2, Bits: 64,
		Params: params, Pub: b, Secret: fake, Round: impostor,
	}))

	return runID
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestWriteRound_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID := recordRun(t, s, 7)

	records, err := s.ReadRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	honest, impostor := records[0], records[1]
	assert.Equal(t, int64(1), honest.Seq)
	assert.Equal(t, protocol.LabelHonest, honest.Round.Label)
	assert.True(t, honest.Round.Verified)

	assert.Equal(t, int64(2), impostor.Seq)
	assert.Equal(t, protocol.LabelImpostor, impostor.Round.Label)
	assert.False(t, impostor.Round.Verified)

	// Numbers must round-trip exactly at full precision.
	assert.True(t, honest.Params.G.Equal(impostor.Params.G))
	assert.True(t, honest.Pub.Equal(impostor.Pub))
	assert.False(t, honest.Secret.Equal(impostor.Secret))
}

func TestWriteRound_IdempotentOnRoundID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID := recordRun(t, s, 8)
	records, err := s.ReadRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Re-writing the same round is a no-op.
	require.NoError(t, s.WriteRound(ctx, records[0]))
	again, err := s.ReadRun(ctx, runID)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestReadRun_UnknownRunIsEmpty(t *testing.T) {
	s := openTestStore(t)

	records, err := s.ReadRun(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := recordRun(t, s, 9)
	second := recordRun(t, s, 10)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Contains(t, runs, first)
	assert.Contains(t, runs, second)
}

func TestMarshalNumber_RoundTrip(t *testing.T) {
	n := neutro.NewInt64(-123456789, 987654321)

	text, err := marshalNumber(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"-123456789","b":"987654321"}`, text)

	back, err := unmarshalNumber(text)
	require.NoError(t, err)
	assert.True(t, back.Equal(n))
}

func TestUnmarshalNumber_Invalid(t *testing.T) {
	_, err := unmarshalNumber(`{"a":"not-a-number","b":"1"}`)
	assert.Error(t, err)

	_, err = unmarshalNumber(`{broken`)
	assert.Error(t, err)
}
