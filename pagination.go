/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

type cursorState int

const (
	stateInitial cursorState = iota
	stateFetching
	stateDone
	stateFailed
)

// cursor walks a server-side cursor one batch at a time. Batches are fetched
// strictly in sequence since each continuation comes from the previous batch.
type cursor struct {
	conn       datastore.Conn
	collection string
	batchSize  int

	state        cursorState
	continuation string
	batches      int
	err          error
}

func newCursor(conn datastore.Conn, collection string, batchSize int) *cursor {
	return &cursor{
		conn:       conn,
		collection: collection,
		batchSize:  batchSize,
		state:      stateInitial,
	}
}

// next returns the next batch. It returns false once the cursor is done or
// failed; err reports which.
func (c *cursor) next(ctx context.Context) (*storagemodels.Batch, bool) {
	var (
		batch *storagemodels.Batch
		err   error
	)

	switch c.state {
	case stateInitial:
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.fail(errors.NewQueryError(c.collection, "query", ctxErr))
			return nil, false
		}
		batch, err = c.conn.Query(ctx, c.collection, c.batchSize)
		if err != nil {
			c.fail(asQueryError(c.collection, "query", err))
			return nil, false
		}
	case stateFetching:
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.fail(errors.NewQueryError(c.collection, "next batch", ctxErr))
			return nil, false
		}
		batch, err = c.conn.NextBatch(ctx, c.continuation)
		if err != nil {
			c.fail(asQueryError(c.collection, "next batch", err))
			return nil, false
		}
	default:
		return nil, false
	}

	c.batches++
	if batch == nil {
		batch = &storagemodels.Batch{}
	}
	if batch.HasMore() {
		c.state = stateFetching
		c.continuation = batch.Continuation
	} else {
		c.state = stateDone
		c.continuation = ""
	}
	return batch, true
}

func (c *cursor) fail(err error) {
	c.state = stateFailed
	c.continuation = ""
	c.err = err
}

// asQueryError leaves query errors untouched and wraps anything else, so a
// cursor failure always reports ErrQuery while keeping the cause reachable.
func asQueryError(collection, op string, err error) error {
	if errors.IsQuery(err) {
		return err
	}
	return errors.NewQueryError(collection, op, err)
}
