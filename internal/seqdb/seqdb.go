package seqdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gapartel/starfish/internal/decode"
)

// DB wraps the SQLite handle holding decoded runs.
type DB struct {
	*sql.DB
}

// RunRecord is one persisted run's header row.
type RunRecord struct {
	RunID     string
	CreatedAt time.Time
	Stats     decode.RunStats
}

// Open opens (or creates) the database at path and applies pending
// migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("seqdb: open %s: %w", path, err)
	}
	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SaveRun stores one decoding result transactionally: the header row plus
// one row per sequence with the selected spots serialised as JSON.
func (db *DB) SaveRun(ctx context.Context, res *decode.Result) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seqdb: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
			run_id, created_at, raw_spots, merged_spots, edges,
			repair_edges, components, sequences, mean_quality
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, time.Now().UTC().Format(time.RFC3339Nano),
		res.Stats.RawSpots, res.Stats.MergedSpots, res.Stats.Edges,
		res.Stats.RepairEdges, res.Stats.Components, res.Stats.Sequences,
		res.Stats.MeanQuality,
	)
	if err != nil {
		return fmt.Errorf("seqdb: insert run %s: %w", res.RunID, err)
	}

	for _, seq := range res.Sequences {
		spots, err := json.Marshal(seq.Spots)
		if err != nil {
			return fmt.Errorf("seqdb: marshal sequence spots: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sequences (run_id, component, cost, spots)
			 VALUES (?, ?, ?, ?)`,
			res.RunID, seq.Component, seq.Cost, string(spots),
		)
		if err != nil {
			return fmt.Errorf("seqdb: insert sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seqdb: commit run %s: %w", res.RunID, err)
	}
	return nil
}

// ListRuns returns all stored run headers, newest first.
func (db *DB) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT run_id, created_at, raw_spots, merged_spots, edges,
			repair_edges, components, sequences, mean_quality
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("seqdb: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var created string
		err := rows.Scan(&rec.RunID, &created,
			&rec.Stats.RawSpots, &rec.Stats.MergedSpots, &rec.Stats.Edges,
			&rec.Stats.RepairEdges, &rec.Stats.Components,
			&rec.Stats.Sequences, &rec.Stats.MeanQuality)
		if err != nil {
			return nil, fmt.Errorf("seqdb: scan run: %w", err)
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("seqdb: parse created_at %q: %w", created, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SequencesForRun returns the decoded sequences stored for one run, in
// insertion order. An unknown run ID yields an empty slice, not an error.
func (db *DB) SequencesForRun(ctx context.Context, runID string) ([]decode.DecodedSequence, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT component, cost, spots FROM sequences
		 WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("seqdb: sequences for %s: %w", runID, err)
	}
	defer rows.Close()

	var out []decode.DecodedSequence
	for rows.Next() {
		var seq decode.DecodedSequence
		var spots string
		if err := rows.Scan(&seq.Component, &seq.Cost, &spots); err != nil {
			return nil, fmt.Errorf("seqdb: scan sequence: %w", err)
		}
		if err := json.Unmarshal([]byte(spots), &seq.Spots); err != nil {
			return nil, fmt.Errorf("seqdb: unmarshal sequence spots: %w", err)
		}
		out = append(out, seq)
	}
	return out, rows.Err()
}

// DeleteRun removes one run and its sequences.
func (db *DB) DeleteRun(ctx context.Context, runID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seqdb: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sequences WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("seqdb: delete sequences for %s: %w", runID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("seqdb: delete run %s: %w", runID, err)
	}
	return tx.Commit()
}
