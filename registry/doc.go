/*
Package registry maps backend names to the functions that open them.

Backends register themselves from an init function, the way database/sql
drivers do, so a program selects its database by importing the backend
package and naming it in configuration:

	import (
	    _ "github.com/suparena/docstore/datastore/redis"
	)

	cfg, _ := config.Load("docstore.yaml") // backend: redis
	conn, err := registry.Open(ctx, cfg, logger)

Registering the same name twice panics. The registry is thread-safe.
*/
package registry
