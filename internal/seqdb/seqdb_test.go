package seqdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapartel/starfish/internal/decode"
	"github.com/gapartel/starfish/internal/spatial"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "seq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleResult(runID string) *decode.Result {
	return &decode.Result{
		RunID: runID,
		Sequences: []decode.DecodedSequence{
			{
				Component: 0,
				Cost:      8.49,
				Spots: []decode.SelectedSpot{
					{Round: 0, Pos: spatial.Point{35, 35, 0}, Intensities: []float64{10, 0}, Quality: 1},
					{Round: 1, Pos: spatial.Point{32, 32, 0}, Intensities: []float64{0, 10}, Quality: 1},
					{Round: 2, Pos: spatial.Point{29, 29, 0}, Intensities: []float64{10, 0}, Quality: 1},
				},
			},
		},
		Stats: decode.RunStats{
			RawSpots:    3,
			MergedSpots: 3,
			Edges:       2,
			Components:  1,
			Sequences:   1,
			MeanQuality: 1,
		},
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	// Reopening an already-migrated database is a no-op.
	require.NoError(t, db.MigrateUp())
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := sampleResult("run-a")
	require.NoError(t, db.SaveRun(ctx, want))

	runs, err := db.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-a", runs[0].RunID)
	assert.False(t, runs[0].CreatedAt.IsZero())
	if diff := cmp.Diff(want.Stats, runs[0].Stats); diff != "" {
		t.Fatalf("stats round trip (-want +got):\n%s", diff)
	}

	seqs, err := db.SequencesForRun(ctx, "run-a")
	require.NoError(t, err)
	if diff := cmp.Diff(want.Sequences, seqs); diff != "" {
		t.Fatalf("sequences round trip (-want +got):\n%s", diff)
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveRun(ctx, sampleResult("dup")))
	assert.Error(t, db.SaveRun(ctx, sampleResult("dup")))

	// The failed save must not leave partial sequence rows behind.
	seqs, err := db.SequencesForRun(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, seqs, 1)
}

func TestSequencesForUnknownRun(t *testing.T) {
	db := openTestDB(t)

	seqs, err := db.SequencesForRun(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, seqs)
}

func TestDeleteRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveRun(ctx, sampleResult("gone")))
	require.NoError(t, db.SaveRun(ctx, sampleResult("kept")))
	require.NoError(t, db.DeleteRun(ctx, "gone"))

	runs, err := db.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "kept", runs[0].RunID)

	seqs, err := db.SequencesForRun(ctx, "gone")
	require.NoError(t, err)
	assert.Empty(t, seqs)
}

func TestSaveEmptyRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveRun(ctx, &decode.Result{RunID: "empty"}))

	runs, err := db.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Zero(t, runs[0].Stats.Sequences)
}
