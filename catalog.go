/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/docstore/datastore"
)

// Catalog hands out Collections sharing one connection, creating each at
// most once per entity type and collection name.
type Catalog struct {
	conn datastore.Conn
	opts []Option

	mu          sync.RWMutex
	collections map[catalogKey]any
}

type catalogKey struct {
	typ  reflect.Type
	name string
}

// NewCatalog creates a Catalog on conn. opts apply to every Collection it
// creates, before any per-call options.
func NewCatalog(conn datastore.Conn, opts ...Option) *Catalog {
	return &Catalog{
		conn:        conn,
		opts:        opts,
		collections: make(map[catalogKey]any),
	}
}

// Open returns the Collection for T, creating it if necessary
func Open[T Entity](cat *Catalog, opts ...Option) *Collection[T] {
	all := append(append([]Option{}, cat.opts...), opts...)

	var zero T
	o := options{name: zero.CollectionName()}
	for _, opt := range all {
		opt(&o)
	}
	key := catalogKey{typ: reflect.TypeOf((*T)(nil)).Elem(), name: o.name}

	cat.mu.RLock()
	existing, ok := cat.collections[key]
	cat.mu.RUnlock()
	if ok {
		return existing.(*Collection[T])
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	// Another goroutine may have won the race
	if existing, ok := cat.collections[key]; ok {
		return existing.(*Collection[T])
	}

	col := NewCollection[T](cat.conn, all...)
	cat.collections[key] = col
	return col
}

// Names returns the names of the collections opened so far, sorted
func (cat *Catalog) Names() []string {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	seen := make(map[string]struct{}, len(cat.collections))
	names := make([]string, 0, len(cat.collections))
	for k := range cat.collections {
		if _, dup := seen[k.name]; dup {
			continue
		}
		seen[k.name] = struct{}{}
		names = append(names, k.name)
	}
	sort.Strings(names)
	return names
}

// Close closes the underlying connection
func (cat *Catalog) Close() error {
	return cat.conn.Close()
}
