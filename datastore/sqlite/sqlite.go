/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sqlite provides a SQLite implementation of the datastore.Conn interface.
//
// All collections share one table:
//
//	documents(collection, key, data)  PRIMARY KEY (collection, key)
//
// Listing is keyset-paginated on key, so batches come back in key order.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/datastore/internal/token"
	docerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/registry"
	"github.com/suparena/docstore/storagemodels"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	key TEXT NOT NULL,
	data TEXT NOT NULL,
	PRIMARY KEY (collection, key)
)`

// Conn implements datastore.Conn on a SQLite database.
type Conn struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ datastore.Conn = (*Conn)(nil)

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the connection logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

func init() {
	registry.RegisterBackend(config.BackendSQLite, func(ctx context.Context, cfg config.Config, logger *zap.Logger) (datastore.Conn, error) {
		return Open(ctx, cfg.SQLite.Path, WithLogger(logger))
	})
}

// Open opens (creating if needed) the database at path and prepares the schema.
func Open(ctx context.Context, path string, opts ...Option) (*Conn, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, docerrors.NewConnectionError("open", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, docerrors.NewConnectionError("open", err)
	}
	if path == MemoryPath {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, classify("", "open", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, classify("", "open", err)
	}

	c := &Conn{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger.Info("SQLite database ready", zap.String("path", path))
	return c, nil
}

// Query returns the first batch of a collection, in key order.
func (c *Conn) Query(ctx context.Context, collection string, batchSize int) (*storagemodels.Batch, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT key, data FROM documents WHERE collection = ? ORDER BY key LIMIT ?",
		collection, batchSize+1,
	)
	if err != nil {
		return nil, classify(collection, "query", err)
	}
	return c.readBatch(rows, collection, batchSize, "query")
}

// NextBatch resumes a listing after the key recorded in continuation.
func (c *Conn) NextBatch(ctx context.Context, continuation string) (*storagemodels.Batch, error) {
	cont, err := token.Decode(continuation)
	if err != nil {
		return nil, docerrors.NewQueryError("", "next batch", err)
	}

	rows, err := c.db.QueryContext(ctx,
		"SELECT key, data FROM documents WHERE collection = ? AND key > ? ORDER BY key LIMIT ?",
		cont.Collection, cont.After, cont.BatchSize+1,
	)
	if err != nil {
		return nil, classify(cont.Collection, "next batch", err)
	}
	return c.readBatch(rows, cont.Collection, cont.BatchSize, "next batch")
}

// readBatch consumes up to batchSize+1 rows; the extra row only signals that
// another batch follows.
func (c *Conn) readBatch(rows *sql.Rows, collection string, batchSize int, op string) (*storagemodels.Batch, error) {
	defer rows.Close()

	batch := &storagemodels.Batch{Documents: make([]storagemodels.RawDocument, 0, batchSize)}
	var lastKey string
	more := false
	for rows.Next() {
		if len(batch.Documents) == batchSize {
			more = true
			break
		}
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, classify(collection, op, err)
		}
		batch.Documents = append(batch.Documents, storagemodels.JSONDocument(data))
		lastKey = key
	}
	if err := rows.Err(); err != nil {
		return nil, classify(collection, op, err)
	}

	if more {
		batch.Continuation = token.Encode(token.Continuation{
			Collection: collection,
			After:      lastKey,
			BatchSize:  batchSize,
		})
	}
	return batch, nil
}

// CreateDocument stores doc under key, refusing existing keys unless overwrite is set.
func (c *Conn) CreateDocument(ctx context.Context, collection, key string, doc any, overwrite bool) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return docerrors.NewQueryError(collection, "create", err)
	}

	stmt := "INSERT INTO documents (collection, key, data) VALUES (?, ?, ?)"
	if overwrite {
		stmt += " ON CONFLICT(collection, key) DO UPDATE SET data = excluded.data"
	}

	if _, err := c.db.ExecContext(ctx, stmt, collection, key, string(body)); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique) {
			return docerrors.NewDuplicateKeyError(collection, key)
		}
		return classify(collection, "create", err)
	}
	return nil
}

// ReplaceDocument overwrites the document stored under key.
func (c *Conn) ReplaceDocument(ctx context.Context, collection, key string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return docerrors.NewQueryError(collection, "replace", err)
	}

	res, err := c.db.ExecContext(ctx,
		"UPDATE documents SET data = ? WHERE collection = ? AND key = ?",
		string(body), collection, key,
	)
	if err != nil {
		return classify(collection, "replace", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(collection, "replace", err)
	}
	if n == 0 {
		return docerrors.NewNotFoundError(collection, key)
	}
	return nil
}

// ReadDocument loads the document stored under key.
func (c *Conn) ReadDocument(ctx context.Context, collection, key string) (storagemodels.RawDocument, error) {
	var data string
	err := c.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND key = ?",
		collection, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docerrors.NewNotFoundError(collection, key)
	}
	if err != nil {
		return nil, classify(collection, "read", err)
	}
	return storagemodels.JSONDocument(data), nil
}

// Close closes the database.
func (c *Conn) Close() error {
	return c.db.Close()
}

// classify maps a database error onto the docstore error kinds. SQLite
// result codes describing the database file or its locks are connection
// errors, other SQLite errors are query errors.
func classify(collection, op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr, sqlite3.ErrNotADB:
			return docerrors.NewConnectionError(op, err)
		}
		return docerrors.NewQueryError(collection, op, err)
	}
	return docerrors.NewConnectionError(op, err)
}
