/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/registry"
)

func init() {
	registry.RegisterBackend(config.BackendMemory, func(ctx context.Context, cfg config.Config, logger *zap.Logger) (datastore.Conn, error) {
		logger.Warn("memory backend selected, documents are lost when the process exits")
		return New(), nil
	})
}
