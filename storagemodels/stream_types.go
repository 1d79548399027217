/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "time"

// StreamResult represents a single item in a stream with metadata
type StreamResult[T any] struct {
	Item  T           // The decoded document
	Raw   RawDocument // The document as returned by the backend
	Error error       // Item or batch error, if any
	Meta  StreamMeta  // Metadata about this item
}

// StreamMeta contains metadata about a streamed item
type StreamMeta struct {
	Index       int64     // Item index in stream (0-based)
	BatchNumber int       // Cursor batch number (1-based)
	Timestamp   time.Time // When item was retrieved
}

// StreamOptions configures streaming behavior
type StreamOptions struct {
	BufferSize      int                  // Channel buffer size (default: 100)
	PageSize        int                  // Documents per batch (default: DefaultBatchSize)
	ProgressHandler func(StreamProgress) // Optional progress callback, called after each batch
}

// StreamProgress tracks streaming progress
type StreamProgress struct {
	ItemsProcessed   int64     // Total items processed
	BatchesProcessed int       // Total batches processed
	Done             bool      // Set on the final report
	StartTime        time.Time // When streaming started
	CurrentRate      float64   // Items per second
}

// StreamOption is a functional option for configuring streaming
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize: 100,
		PageSize:   DefaultBatchSize,
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithPageSize sets the number of documents requested per batch
func WithPageSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.PageSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}
