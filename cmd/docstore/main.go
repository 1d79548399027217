/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command docstore lists, reads and writes documents in any configured backend.
package main

import (
	"fmt"
	"os"

	_ "github.com/suparena/docstore/datastore/ddb"
	_ "github.com/suparena/docstore/datastore/mock"
	_ "github.com/suparena/docstore/datastore/redis"
	_ "github.com/suparena/docstore/datastore/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
