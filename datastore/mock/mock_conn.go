/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Conn for testing
package mock

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/suparena/docstore/datastore/internal/token"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

// Conn is an in-memory datastore.Conn. Collections are served in insertion
// order, batch by batch, the way a server-side cursor would.
type Conn struct {
	mu          sync.RWMutex
	collections map[string]*collection

	queryError     error
	nextBatchAt    int
	nextBatchError error
	createError    error
	replaceError   error
	readError      error

	queryCalls     int
	nextBatchCalls int
	closed         bool
}

type collection struct {
	order []string
	docs  map[string][]byte
}

// New creates a new mock Conn
func New() *Conn {
	return &Conn{
		collections: make(map[string]*collection),
	}
}

// WithQueryError makes Query return an error
func (m *Conn) WithQueryError(err error) *Conn {
	m.queryError = err
	return m
}

// WithNextBatchError makes the n-th NextBatch call (1-based) return err.
// Calls before it succeed.
func (m *Conn) WithNextBatchError(n int, err error) *Conn {
	m.nextBatchAt = n
	m.nextBatchError = err
	return m
}

// WithCreateError makes CreateDocument return an error
func (m *Conn) WithCreateError(err error) *Conn {
	m.createError = err
	return m
}

// WithReplaceError makes ReplaceDocument return an error
func (m *Conn) WithReplaceError(err error) *Conn {
	m.replaceError = err
	return m
}

// WithReadError makes ReadDocument return an error
func (m *Conn) WithReadError(err error) *Conn {
	m.readError = err
	return m
}

// Query returns the first batch of a collection
func (m *Conn) Query(ctx context.Context, name string, batchSize int) (*storagemodels.Batch, error) {
	m.mu.Lock()
	m.queryCalls++
	m.mu.Unlock()

	if m.queryError != nil {
		return nil, m.queryError
	}
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		return nil, errors.NewQueryError(name, "query", errors.NewValidationError("batchSize", "must be positive"))
	}
	return m.batch(name, 0, batchSize), nil
}

// NextBatch returns the batch following a continuation
func (m *Conn) NextBatch(ctx context.Context, continuation string) (*storagemodels.Batch, error) {
	m.mu.Lock()
	m.nextBatchCalls++
	call := m.nextBatchCalls
	m.mu.Unlock()

	if m.nextBatchError != nil && call == m.nextBatchAt {
		return nil, m.nextBatchError
	}
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	c, err := token.Decode(continuation)
	if err != nil {
		return nil, errors.NewQueryError("", "next batch", err)
	}
	offset, err := strconv.Atoi(c.After)
	if err != nil {
		return nil, errors.NewQueryError(c.Collection, "next batch", err)
	}
	return m.batch(c.Collection, offset, c.BatchSize), nil
}

func (m *Conn) batch(name string, offset, size int) *storagemodels.Batch {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := &storagemodels.Batch{Documents: []storagemodels.RawDocument{}}
	col, ok := m.collections[name]
	if !ok || offset >= len(col.order) {
		return out
	}

	end := offset + size
	if end > len(col.order) {
		end = len(col.order)
	}
	for _, key := range col.order[offset:end] {
		out.Documents = append(out.Documents, storagemodels.JSONDocument(col.docs[key]))
	}
	if end < len(col.order) {
		out.Continuation = token.Encode(token.Continuation{
			Collection: name,
			After:      strconv.Itoa(end),
			BatchSize:  size,
		})
	}
	return out
}

// CreateDocument stores a document
func (m *Conn) CreateDocument(ctx context.Context, name, key string, doc any, overwrite bool) error {
	if m.createError != nil {
		return m.createError
	}
	if err := m.checkOpen(); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return errors.NewQueryError(name, "create", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.collections[name]
	if !ok {
		col = &collection{docs: make(map[string][]byte)}
		m.collections[name] = col
	}
	if _, exists := col.docs[key]; exists {
		if !overwrite {
			return errors.NewDuplicateKeyError(name, key)
		}
	} else {
		col.order = append(col.order, key)
	}
	col.docs[key] = body
	return nil
}

// ReplaceDocument replaces an existing document
func (m *Conn) ReplaceDocument(ctx context.Context, name, key string, doc any) error {
	if m.replaceError != nil {
		return m.replaceError
	}
	if err := m.checkOpen(); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return errors.NewQueryError(name, "replace", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.collections[name]
	if !ok {
		return errors.NewNotFoundError(name, key)
	}
	if _, exists := col.docs[key]; !exists {
		return errors.NewNotFoundError(name, key)
	}
	col.docs[key] = body
	return nil
}

// ReadDocument loads a document by key
func (m *Conn) ReadDocument(ctx context.Context, name, key string) (storagemodels.RawDocument, error) {
	if m.readError != nil {
		return nil, m.readError
	}
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if col, ok := m.collections[name]; ok {
		if body, exists := col.docs[key]; exists {
			return storagemodels.JSONDocument(body), nil
		}
	}
	return nil, errors.NewNotFoundError(name, key)
}

// Close marks the connection closed; later calls fail with a connection error
func (m *Conn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Conn) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return errors.NewConnectionError("mock", nil)
	}
	return nil
}

// Helper methods for testing

// Raw returns the stored JSON body of a document, or nil if absent
func (m *Conn) Raw(name, key string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if col, ok := m.collections[name]; ok {
		return col.docs[key]
	}
	return nil
}

// Count returns the number of documents in a collection
func (m *Conn) Count(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if col, ok := m.collections[name]; ok {
		return len(col.order)
	}
	return 0
}

// Calls returns how many Query and NextBatch calls were made
func (m *Conn) Calls() (query, nextBatch int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.queryCalls, m.nextBatchCalls
}

// Clear removes all data
func (m *Conn) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = make(map[string]*collection)
}
