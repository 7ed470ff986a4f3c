// Package meshdb records simplification runs in a local SQLite database
// so asset-pipeline batches can be audited after the fact: which source
// mesh was reduced, to what target, what count was actually achieved,
// and how long it took. An achieved count above the requested target
// marks a run that hit the unreachable-target condition.
package meshdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// Run is one recorded simplification.
type Run struct {
	RunID           string
	Source          string
	InputVertices   int
	InputFaces      int
	TargetVertices  int
	OutputVertices  int
	OutputFaces     int
	Threshold       float64
	EdgeCollapses   int
	ProximityMerges int
	DurationMs      int64
	Timestamp       time.Time
}

// Open opens (creating if needed) the run database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS decimation_runs (
			run_id            TEXT PRIMARY KEY,
			source            TEXT,
			input_vertices    BIGINT,
			input_faces       BIGINT,
			target_vertices   BIGINT,
			output_vertices   BIGINT,
			output_faces      BIGINT,
			threshold         DOUBLE,
			edge_collapses    BIGINT,
			proximity_merges  BIGINT,
			duration_ms       BIGINT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db}, nil
}

// RecordRun inserts a run and returns its generated id.
func (db *DB) RecordRun(r Run) (string, error) {
	id := r.RunID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := db.Exec(`
		INSERT INTO decimation_runs (
			run_id, source, input_vertices, input_faces, target_vertices,
			output_vertices, output_faces, threshold, edge_collapses,
			proximity_merges, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Source, r.InputVertices, r.InputFaces, r.TargetVertices,
		r.OutputVertices, r.OutputFaces, r.Threshold, r.EdgeCollapses,
		r.ProximityMerges, r.DurationMs,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, source, input_vertices, input_faces, target_vertices,
		       output_vertices, output_faces, threshold, edge_collapses,
		       proximity_merges, duration_ms, timestamp
		FROM decimation_runs
		ORDER BY timestamp DESC, run_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.Source, &r.InputVertices, &r.InputFaces,
			&r.TargetVertices, &r.OutputVertices, &r.OutputFaces,
			&r.Threshold, &r.EdgeCollapses, &r.ProximityMerges,
			&r.DurationMs, &r.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
