/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/docstore/storagemodels"
)

// Conn is an established handle to a document database.
//
// Implementations report failures with the kinds from the errors package:
// ErrConnection for transport failures, ErrQuery for rejected or failed
// queries, ErrDuplicateKey and ErrNotFound for write conflicts.
type Conn interface {
	// Query runs the collection-scoped listing query and returns its first batch.
	Query(ctx context.Context, collection string, batchSize int) (*storagemodels.Batch, error)

	// NextBatch fetches the batch identified by a continuation from a previous batch.
	NextBatch(ctx context.Context, continuation string) (*storagemodels.Batch, error)

	// CreateDocument stores doc under key. With overwrite disabled an existing
	// key fails with ErrDuplicateKey.
	CreateDocument(ctx context.Context, collection, key string, doc any, overwrite bool) error

	// ReplaceDocument replaces the whole document stored under key. A missing
	// key fails with ErrNotFound.
	ReplaceDocument(ctx context.Context, collection, key string, doc any) error

	// ReadDocument loads the document stored under key.
	ReadDocument(ctx context.Context, collection, key string) (storagemodels.RawDocument, error)

	Close() error
}
