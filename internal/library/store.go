// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library caches the Mendeley document library in a local SQLite
// database so DOI checks can run without refetching every page from the
// API.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pvidak/paperdigest/pkg/types"
)

const dbFile = "library.db"

// Store manages the library cache SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the cache database at cacheDir/library.db,
// creating the schema if it does not exist.
func NewStore(cacheDir string) (*Store, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cacheDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			doi_key TEXT PRIMARY KEY,
			doi TEXT NOT NULL,
			title TEXT,
			year INTEGER,
			mendeley_id TEXT,
			authors TEXT,
			fetched_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_mendeley_id ON documents(mendeley_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ReplaceAll swaps the cached library for docs in a single transaction.
// Keys are lowercased DOIs, matching the in-memory library map.
func (s *Store) ReplaceAll(ctx context.Context, docs map[string]types.LibraryDocument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (doi_key, doi, title, year, mendeley_id, authors, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for key, doc := range docs {
		authorsJSON, _ := json.Marshal(doc.Authors)
		_, err := stmt.ExecContext(ctx,
			key, doc.DOI, doc.Title, doc.Year, doc.MendeleyID,
			string(authorsJSON), doc.FetchedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.DOI, err)
		}
	}

	return tx.Commit()
}

// All loads every cached document keyed by lowercased DOI. An empty
// cache returns an empty map, not an error.
func (s *Store) All(ctx context.Context) (map[string]types.LibraryDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doi_key, doi, title, year, mendeley_id, authors, fetched_at FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[string]types.LibraryDocument)
	for rows.Next() {
		var (
			key, authorsJSON, fetchedAt string
			doc                         types.LibraryDocument
		)
		if err := rows.Scan(&key, &doc.DOI, &doc.Title, &doc.Year,
			&doc.MendeleyID, &authorsJSON, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		if authorsJSON != "" {
			if err := json.Unmarshal([]byte(authorsJSON), &doc.Authors); err != nil {
				return nil, fmt.Errorf("parsing authors for %s: %w", doc.DOI, err)
			}
		}
		if fetchedAt != "" {
			if ts, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
				doc.FetchedAt = ts
			}
		}
		docs[key] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Count returns the number of cached documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
