/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "encoding/json"

// DefaultBatchSize is the number of documents requested per batch when
// walking a collection.
const DefaultBatchSize = 25

// RawDocument is a stored document as returned by a backend, not yet decoded
// into the caller's type.
type RawDocument interface {
	// Decode unmarshals the document into v, which must be a pointer.
	Decode(v any) error
}

// JSONDocument is a RawDocument holding a JSON encoded body.
type JSONDocument []byte

// Decode unmarshals the JSON body into v.
func (d JSONDocument) Decode(v any) error {
	return json.Unmarshal(d, v)
}

// Batch is one page of a server-side cursor.
type Batch struct {
	// Documents holds the batch in server order.
	Documents []RawDocument
	// Continuation identifies the next batch. Empty means this batch is the last one.
	Continuation string
}

// HasMore reports whether another batch can be fetched after this one.
func (b *Batch) HasMore() bool {
	return b != nil && b.Continuation != ""
}
