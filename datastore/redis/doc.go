/*
Package redis provides a Redis implementation of the datastore.Conn interface,
built on redigo.

Each collection uses two keys sharing a hash tag:

	docstore:{players}:docs  hash        key -> JSON document
	docstore:{players}:keys  sorted set  every key, score 0

Listing walks the sorted set with ZRANGEBYLEX, so batches come back in key
order and a continuation is simply the last key of the previous batch.
Creation and replacement run as Lua scripts so the existence check and the
write are atomic.

Server error replies map to ErrQuery; dial, pool and I/O failures map to
ErrConnection.
*/
package redis
