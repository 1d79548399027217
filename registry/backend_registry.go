/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/errors"
)

// OpenFunc establishes a connection for a backend from its configuration.
type OpenFunc func(ctx context.Context, cfg config.Config, logger *zap.Logger) (datastore.Conn, error)

var (
	backends = make(map[string]OpenFunc)
	mu       sync.RWMutex
)

// RegisterBackend registers the open function for a backend name.
// If a backend is already registered under the name, it panics to prevent accidental overrides.
func RegisterBackend(name string, fn OpenFunc) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("backend registry: backend %q already registered", name))
	}
	backends[name] = fn
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open connects to the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (datastore.Conn, error) {
	mu.RLock()
	fn, ok := backends[cfg.Backend]
	mu.RUnlock()
	if !ok {
		return nil, errors.NewValidationError("backend",
			fmt.Sprintf("no backend registered as %q (registered: %v)", cfg.Backend, Backends()))
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return fn(ctx, cfg, logger.With(zap.String("backend", cfg.Backend)))
}
