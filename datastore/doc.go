/*
Package datastore defines the connection contract docstore runs on.

The main interface is Conn, the minimal set of calls a document database must
support for docstore's read and write capabilities:

	type Conn interface {
	    Query(ctx context.Context, collection string, batchSize int) (*storagemodels.Batch, error)
	    NextBatch(ctx context.Context, continuation string) (*storagemodels.Batch, error)
	    CreateDocument(ctx context.Context, collection, key string, doc any, overwrite bool) error
	    ReplaceDocument(ctx context.Context, collection, key string, doc any) error
	    ReadDocument(ctx context.Context, collection, key string) (storagemodels.RawDocument, error)
	    Close() error
	}

Implementations:
  - ddb: DynamoDB, one table holding every collection (PK = collection, SK = key)
  - redis: Redis, one hash and one sorted-set index per collection
  - sqlite: SQLite, one documents table keyed by (collection, key)
  - mock: In-memory implementation with fault injection for testing

Continuations are opaque strings. Each implementation encodes whatever it
needs to resume the listing, so a continuation is only meaningful to the Conn
that issued it.
*/
package datastore
