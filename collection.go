/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

// Collection gives typed access to the documents of one entity type.
// It holds no mutable state and is safe for concurrent use.
type Collection[T Entity] struct {
	conn      datastore.Conn
	name      string
	batchSize int
	logger    *zap.Logger
}

var _ ReadWriter[Entity] = (*Collection[Entity])(nil)

// Option configures a Collection.
type Option func(*options)

type options struct {
	name   string
	logger *zap.Logger
}

// WithLogger sets the logger used for pagination diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCollectionName overrides the name returned by the entity's
// CollectionName, for types shared by several collections.
func WithCollectionName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// NewCollection returns a Collection for T on conn.
func NewCollection[T Entity](conn datastore.Conn, opts ...Option) *Collection[T] {
	var zero T
	o := options{
		name:   zero.CollectionName(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return &Collection[T]{
		conn:      conn,
		name:      o.name,
		batchSize: storagemodels.DefaultBatchSize,
		logger:    o.logger.With(zap.String("collection", o.name)),
	}
}

// Name returns the collection name documents are stored under.
func (c *Collection[T]) Name() string {
	return c.name
}

// GetAll returns every document in the collection, in the order the server
// delivered the batches. A failure on any batch fails the whole call; partial
// results are never returned.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	cur := newCursor(c.conn, c.name, c.batchSize)
	result := make([]T, 0)

	for batch, ok := cur.next(ctx); ok; batch, ok = cur.next(ctx) {
		c.logger.Debug("batch received",
			zap.Int("batch", cur.batches),
			zap.Int("size", len(batch.Documents)),
			zap.Bool("more", batch.HasMore()),
		)
		for _, raw := range batch.Documents {
			item, err := c.decode(raw)
			if err != nil {
				return nil, err
			}
			result = append(result, item)
		}
	}
	if cur.err != nil {
		c.logger.Warn("listing failed",
			zap.Int("batches", cur.batches),
			zap.Int("discarded", len(result)),
			zap.Error(cur.err),
		)
		return nil, cur.err
	}
	return result, nil
}

// Get is a placeholder kept for interface compatibility; it always fails
// with ErrUnimplemented.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	return zero, errors.NewUnimplementedError("get")
}

// FindByKey loads the document stored under key.
func (c *Collection[T]) FindByKey(ctx context.Context, key string) (T, error) {
	var zero T
	raw, err := c.conn.ReadDocument(ctx, c.name, key)
	if err != nil {
		return zero, err
	}
	return c.decode(raw)
}

// Insert stores doc under doc.Key() with overwrite disabled.
func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	return c.conn.CreateDocument(ctx, c.name, doc.Key(), doc, false)
}

// Update replaces the document stored under doc.Key() with doc. Fields of
// the stored document that doc does not carry are dropped.
func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	return c.conn.ReplaceDocument(ctx, c.name, doc.Key(), doc)
}

func (c *Collection[T]) decode(raw storagemodels.RawDocument) (T, error) {
	var item T
	if err := raw.Decode(&item); err != nil {
		var zero T
		return zero, errors.NewQueryError(c.name, "decode", err)
	}
	return item, nil
}
