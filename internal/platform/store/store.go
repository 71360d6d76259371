// Package store persists collapsed error chains into an embedded SQLite
// database, so the failure history of a session survives the process and can
// be inspected out of band. Persistence is an audit trail: the in-memory
// chain on the session stays authoritative.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"confstore/internal/errinfo"
)

// Store is the error-chain audit store.
type Store struct {
	db *sql.DB
}

// StoredRecord is one persisted chain record.
type StoredRecord struct {
	Seq       int
	Code      string
	Message   string
	Path      string
	CreatedAt time.Time
}

// Open opens (creating if needed) the audit database at dbPath and applies
// the schema migrations from migrationsPath.
func Open(ctx context.Context, dbPath, migrationsPath string) (*Store, error) {
	if err := ApplyMigrations(dbPath, migrationsPath); err != nil {
		return nil, err
	}
	db, err := openDB(ctx, dbPath, DefaultDBOptions())
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveChain persists a collapsed chain for a session, one row per record in
// chronological order. Implements session.Auditor.
func (s *Store) SaveChain(ctx context.Context, sessionID uuid.UUID, code errinfo.Code, recs []errinfo.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	for i, r := range recs {
		path := ""
		if r.Data != nil && r.Data.Format == errinfo.DataFormatPath {
			if p, ok := r.Data.Payload.(string); ok {
				path = p
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO error_log (session_id, seq, code, message, path, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID.String(), i, r.Code.Name(), r.Message, path, now)
		if err != nil {
			return fmt.Errorf("insert audit row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit audit tx: %w", err)
	}
	return nil
}

// Chain returns the persisted records of a session's most recent collapses,
// oldest first.
func (s *Store) Chain(ctx context.Context, sessionID uuid.UUID) ([]StoredRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, code, message, path, created_at FROM error_log WHERE session_id = ? ORDER BY id`,
		sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("query audit rows: %w", err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var r StoredRecord
		var path sql.NullString
		if err := rows.Scan(&r.Seq, &r.Code, &r.Message, &path, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		r.Path = path.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Purge deletes audit rows created before the cutoff and returns how many
// were removed.
func (s *Store) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM error_log WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge audit rows: %w", err)
	}
	return res.RowsAffected()
}
