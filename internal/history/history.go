// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package history persists a record of generated commit messages to a
// local SQLite database. Recording is best-effort: the engine never fails
// a request because history could not be written.
package history

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/prashant-zo/IntelliCommit/internal/analyze"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS generations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id  TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	provider    TEXT NOT NULL,
	change_type TEXT NOT NULL,
	complexity  TEXT NOT NULL,
	confidence  REAL NOT NULL,
	file_name   TEXT NOT NULL,
	total_changes INTEGER NOT NULL,
	cached      INTEGER NOT NULL,
	subject     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
`

// Record is one generation event.
type Record struct {
	RequestID    string
	CreatedAt    time.Time
	Provider     string
	ChangeType   analyze.ChangeType
	Complexity   analyze.Complexity
	Confidence   float64
	FileName     string
	TotalChanges int
	Cached       bool
	Subject      string
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path (":memory:" works for
// tests) and ensures the schema exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, icerr.New(icerr.CodeHistoryOpenFailure, "history path must not be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, icerr.Wrapf(err, icerr.CodeHistoryOpenFailure, "opening history database %s", path)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, icerr.Wrapf(err, icerr.CodeHistoryOpenFailure, "creating history schema")
	}

	return &Store{db: db}, nil
}

// Append writes one generation record.
func (s *Store) Append(ctx context.Context, r Record) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations
			(request_id, created_at, provider, change_type, complexity, confidence, file_name, total_changes, cached, subject)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RequestID, r.CreatedAt, r.Provider, string(r.ChangeType), string(r.Complexity),
		r.Confidence, r.FileName, r.TotalChanges, r.Cached, r.Subject)
	if err != nil {
		return icerr.Wrapf(err, icerr.CodeHistoryWriteFailure, "inserting generation record")
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT request_id, created_at, provider, change_type, complexity, confidence, file_name, total_changes, cached, subject
		 FROM generations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, icerr.Wrapf(err, icerr.CodeHistoryQueryFailure, "querying generation records")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var changeType, complexity string
		if err := rows.Scan(&r.RequestID, &r.CreatedAt, &r.Provider, &changeType, &complexity,
			&r.Confidence, &r.FileName, &r.TotalChanges, &r.Cached, &r.Subject); err != nil {
			return nil, icerr.Wrapf(err, icerr.CodeHistoryQueryFailure, "scanning generation record")
		}
		r.ChangeType = analyze.ChangeType(changeType)
		r.Complexity = analyze.Complexity(complexity)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, icerr.Wrapf(err, icerr.CodeHistoryQueryFailure, "iterating generation records")
	}
	return out, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
