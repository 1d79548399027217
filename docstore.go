/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import "context"

// Entity is the contract every storable type provides.
//
// CollectionName is called on the zero value of the type and must return the
// same name for every instance. Key returns the caller-assigned identifier of
// an instance; it must be non-empty and must not change while the document is
// stored.
type Entity interface {
	CollectionName() string
	Key() string
}

// Reader fetches documents of type T.
type Reader[T Entity] interface {
	// GetAll returns every document of the collection in server order.
	GetAll(ctx context.Context) ([]T, error)
	// Get always fails with ErrUnimplemented. Use FindByKey for key lookups.
	Get(ctx context.Context, id string) (T, error)
}

// Writer stores documents of type T.
type Writer[T Entity] interface {
	// Insert creates doc, failing with ErrDuplicateKey if its key is taken.
	Insert(ctx context.Context, doc T) error
	// Update fully replaces the stored document with doc's key, failing with
	// ErrNotFound if there is none.
	Update(ctx context.Context, doc T) error
}

// ReadWriter groups the read and write capabilities.
type ReadWriter[T Entity] interface {
	Reader[T]
	Writer[T]
}
