/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/suparena/docstore/storagemodels"
)

// Stream walks the collection in the background and delivers documents one
// by one. The channel is closed when the walk ends. A failed batch fetch is
// delivered as a final result carrying the error; an undecodable document is
// reported in its own result and the walk continues.
func (c *Collection[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	// Apply options
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.PageSize <= 0 {
		options.PageSize = storagemodels.DefaultBatchSize
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go c.streamWorker(ctx, options, resultCh)

	return resultCh
}

// streamWorker handles the actual streaming logic
func (c *Collection[T]) streamWorker(
	ctx context.Context,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	startTime := time.Now()
	cur := newCursor(c.conn, c.name, options.PageSize)

	reportProgress := func(done bool) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed:   itemIndex,
			BatchesProcessed: cur.batches,
			Done:             done,
			StartTime:        startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(itemIndex) / elapsed
		}
		options.ProgressHandler(progress)
	}

	for batch, ok := cur.next(ctx); ok; batch, ok = cur.next(ctx) {
		for _, raw := range batch.Documents {
			result := storagemodels.StreamResult[T]{
				Raw: raw,
				Meta: storagemodels.StreamMeta{
					Index:       itemIndex,
					BatchNumber: cur.batches,
					Timestamp:   time.Now(),
				},
			}
			result.Item, result.Error = c.decode(raw)
			itemIndex++

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		reportProgress(false)
	}

	if cur.err != nil {
		c.logger.Warn("stream stopped", zap.Int("batches", cur.batches), zap.Error(cur.err))
		select {
		case <-ctx.Done():
		case resultCh <- storagemodels.StreamResult[T]{
			Error: cur.err,
			Meta: storagemodels.StreamMeta{
				Index:       itemIndex,
				BatchNumber: cur.batches,
				Timestamp:   time.Now(),
			},
		}:
		}
		return
	}

	reportProgress(true)
}
