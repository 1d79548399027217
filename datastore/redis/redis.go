/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/datastore/internal/token"
	docerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/registry"
	"github.com/suparena/docstore/storagemodels"
)

// DefaultKeyPrefix is prepended to every Redis key the Conn touches.
const DefaultKeyPrefix = "docstore"

// MaxPageSize bounds the keys read by one page script call. Larger requested
// batch sizes are served in pages of this size; Lua cannot unpack much more
// than this into a single HMGET.
const MaxPageSize = 1000

// pageScript returns up to ARGV[2] key/document pairs of a collection whose
// key sorts after ARGV[1].
var pageScript = redis.NewScript(2, `
local keys = redis.call('ZRANGEBYLEX', KEYS[2], ARGV[1], '+', 'LIMIT', 0, tonumber(ARGV[2]))
local out = {}
if #keys == 0 then
  return out
end
local docs = redis.call('HMGET', KEYS[1], unpack(keys))
for i, k in ipairs(keys) do
  out[#out + 1] = k
  out[#out + 1] = docs[i]
end
return out
`)

// createScript stores a document, refusing existing keys unless ARGV[3] is "1".
var createScript = redis.NewScript(2, `
if ARGV[3] ~= '1' and redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('ZADD', KEYS[2], 0, ARGV[1])
return 1
`)

// replaceScript overwrites a document only if it exists.
var replaceScript = redis.NewScript(2, `
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then
  return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return 1
`)

// Conn implements datastore.Conn on Redis. Each collection is a hash of
// key -> JSON document plus a sorted set of its keys, all scored 0, which
// gives a stable lexicographic listing order for keyset pagination.
type Conn struct {
	pool   *redis.Pool
	prefix string
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

// WithKeyPrefix sets the prefix of every Redis key.
func WithKeyPrefix(prefix string) Option {
	return func(c *Conn) {
		c.prefix = prefix
	}
}

func init() {
	registry.RegisterBackend(config.BackendRedis, func(ctx context.Context, cfg config.Config, logger *zap.Logger) (datastore.Conn, error) {
		return Open(ctx, cfg.Redis, WithLogger(logger))
	})
}

// NewPool creates a connection pool for cfg.
func NewPool(cfg config.RedisConfig) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     cfg.MaxIdle,
		IdleTimeout: 240 * time.Second,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", cfg.Addr,
				redis.DialPassword(cfg.Password),
				redis.DialDatabase(cfg.DB),
			)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// Open creates a pool for cfg, checks that the server answers and returns a
// Conn on it.
func Open(ctx context.Context, cfg config.RedisConfig, opts ...Option) (*Conn, error) {
	conn := NewConn(NewPool(cfg), opts...)
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	conn.logger.Info("Redis connection ready", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return conn, nil
}

// NewConn returns a Conn using pool.
func NewConn(pool *redis.Pool, opts ...Option) *Conn {
	c := &Conn{
		pool:   pool,
		prefix: DefaultKeyPrefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Ping checks that the server answers.
func (c *Conn) Ping(ctx context.Context) error {
	rc, err := c.get(ctx, "ping")
	if err != nil {
		return err
	}
	defer rc.Close()

	if _, err := redis.DoContext(rc, ctx, "PING"); err != nil {
		return classify("", "ping", err)
	}
	return nil
}

// get borrows a pooled connection. A done ctx fails before anything is sent.
func (c *Conn) get(ctx context.Context, op string) (redis.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, docerrors.NewConnectionError(op, err)
	}
	rc, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, docerrors.NewConnectionError(op, err)
	}
	return rc, nil
}

// docsKey and indexKey hash-tag the collection so both keys land on the same
// cluster slot, which the scripts require.
func (c *Conn) docsKey(collection string) string {
	return fmt.Sprintf("%s:{%s}:docs", c.prefix, collection)
}

func (c *Conn) indexKey(collection string) string {
	return fmt.Sprintf("%s:{%s}:keys", c.prefix, collection)
}

// Query returns the first batch of a collection, in key order.
func (c *Conn) Query(ctx context.Context, collection string, batchSize int) (*storagemodels.Batch, error) {
	return c.page(ctx, collection, "-", batchSize, "query")
}

// NextBatch resumes a listing after the key recorded in continuation.
func (c *Conn) NextBatch(ctx context.Context, continuation string) (*storagemodels.Batch, error) {
	cont, err := token.Decode(continuation)
	if err != nil {
		return nil, docerrors.NewQueryError("", "next batch", err)
	}
	return c.page(ctx, cont.Collection, "("+cont.After, cont.BatchSize, "next batch")
}

func (c *Conn) page(ctx context.Context, collection, start string, batchSize int, op string) (*storagemodels.Batch, error) {
	batchSize = min(batchSize, MaxPageSize)

	rc, err := c.get(ctx, op)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// one extra entry tells whether another batch follows
	values, err := redis.ByteSlices(pageScript.DoContext(ctx, rc, c.docsKey(collection), c.indexKey(collection), start, batchSize+1))
	if err != nil {
		return nil, classify(collection, op, err)
	}

	pairs := len(values) / 2
	batch := &storagemodels.Batch{
		Documents: make([]storagemodels.RawDocument, 0, min(pairs, batchSize)),
	}
	for i := 0; i < pairs && i < batchSize; i++ {
		batch.Documents = append(batch.Documents, storagemodels.JSONDocument(values[2*i+1]))
	}
	if pairs > batchSize {
		batch.Continuation = token.Encode(token.Continuation{
			Collection: collection,
			After:      string(values[2*(batchSize-1)]),
			BatchSize:  batchSize,
		})
	}

	c.logger.Debug("page read", zap.String("collection", collection), zap.Int("size", len(batch.Documents)))
	return batch, nil
}

// CreateDocument stores doc under key, refusing existing keys unless overwrite is set.
func (c *Conn) CreateDocument(ctx context.Context, collection, key string, doc any, overwrite bool) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return docerrors.NewQueryError(collection, "create", err)
	}

	flag := "0"
	if overwrite {
		flag = "1"
	}

	created, err := c.runScript(ctx, createScript, collection, "create", key, body, flag)
	if err != nil {
		return err
	}
	if !created {
		return docerrors.NewDuplicateKeyError(collection, key)
	}
	return nil
}

// ReplaceDocument overwrites the document stored under key.
func (c *Conn) ReplaceDocument(ctx context.Context, collection, key string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return docerrors.NewQueryError(collection, "replace", err)
	}

	replaced, err := c.runScript(ctx, replaceScript, collection, "replace", key, body)
	if err != nil {
		return err
	}
	if !replaced {
		return docerrors.NewNotFoundError(collection, key)
	}
	return nil
}

func (c *Conn) runScript(ctx context.Context, script *redis.Script, collection, op string, args ...interface{}) (bool, error) {
	rc, err := c.get(ctx, op)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	keysAndArgs := append([]interface{}{c.docsKey(collection), c.indexKey(collection)}, args...)
	n, err := redis.Int(script.DoContext(ctx, rc, keysAndArgs...))
	if err != nil {
		return false, classify(collection, op, err)
	}
	return n == 1, nil
}

// ReadDocument loads the document stored under key.
func (c *Conn) ReadDocument(ctx context.Context, collection, key string) (storagemodels.RawDocument, error) {
	rc, err := c.get(ctx, "read")
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := redis.Bytes(redis.DoContext(rc, ctx, "HGET", c.docsKey(collection), key))
	if errors.Is(err, redis.ErrNil) {
		return nil, docerrors.NewNotFoundError(collection, key)
	}
	if err != nil {
		return nil, classify(collection, "read", err)
	}
	return storagemodels.JSONDocument(body), nil
}

// Close closes the pool.
func (c *Conn) Close() error {
	return c.pool.Close()
}

// classify maps a redigo error onto the docstore error kinds: error replies
// from the server are query errors, everything else is a connection error.
func classify(collection, op string, err error) error {
	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return docerrors.NewQueryError(collection, op, err)
	}
	return docerrors.NewConnectionError(op, err)
}

