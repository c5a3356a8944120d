package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
)

// SQLiteBackend stores documents in the kv_documents table.
type SQLiteBackend struct {
	conn   db.DBTX
	uow    db.UnitOfWork
	closer func() error
}

// NewSQLiteBackend uses database for single writes and uow for SetMany.
// Close does not close database; the caller owns it.
func NewSQLiteBackend(database db.DBTX, uow db.UnitOfWork) *SQLiteBackend {
	return &SQLiteBackend{conn: database, uow: uow, closer: func() error { return nil }}
}

// OpenSQLiteBackend opens (and migrates) the database at path. Close closes
// the database.
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	b := NewSQLiteBackend(database, db.NewSQLiteUnitOfWork(database))
	b.closer = database.Close
	return b, nil
}

const upsertDocument = `INSERT INTO kv_documents (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.conn.QueryRowContext(ctx, `SELECT value FROM kv_documents WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("selecting document: %w", err)
	}
	return value, nil
}

func (b *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	return putDocument(ctx, b.conn, key, value)
}

func (b *SQLiteBackend) SetMany(ctx context.Context, values map[string][]byte) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for key, value := range values {
			if err := putDocument(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.conn.ExecContext(ctx, `DELETE FROM kv_documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.closer()
}

func putDocument(ctx context.Context, conn db.DBTX, key string, value []byte) error {
	_, err := conn.ExecContext(ctx, upsertDocument, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting document %q: %w", key, err)
	}
	return nil
}
