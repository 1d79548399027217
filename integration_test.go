//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/config"
	_ "github.com/suparena/docstore/datastore/ddb"
	_ "github.com/suparena/docstore/datastore/mock"
	_ "github.com/suparena/docstore/datastore/redis"
	_ "github.com/suparena/docstore/datastore/sqlite"
	"github.com/suparena/docstore/datastore/testmodels"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/registry"
)

// openBackend connects to whatever DOCSTORE_BACKEND (or the .env file) selects.
func openBackend(t *testing.T) *docstore.Catalog {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg, err := config.Load(os.Getenv("DOCSTORE_CONFIG"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DOCSTORE_BACKEND") == "" {
		t.Skip("DOCSTORE_BACKEND not set, skipping integration test")
	}

	logger := zaptest.NewLogger(t)
	conn, err := registry.Open(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("Failed to open %s backend: %v", cfg.Backend, err)
	}

	cat := docstore.NewCatalog(conn, docstore.WithLogger(logger))
	t.Cleanup(func() { cat.Close() })
	return cat
}

// freshName keeps runs against a shared database apart.
func freshName() docstore.Option {
	return docstore.WithCollectionName(fmt.Sprintf("it_players_%d", time.Now().UnixNano()))
}

func TestIntegrationBasicOperations(t *testing.T) {
	ctx := context.Background()
	players := docstore.Open[testmodels.Player](openBackend(t), freshName())

	p := testmodels.Player{ID: "p1", Name: "Test Player", Rating: 1500, Nickname: "tp"}
	if err := players.Insert(ctx, p); err != nil {
		t.Fatalf("Failed to insert player: %v", err)
	}
	if err := players.Insert(ctx, p); !errors.IsDuplicateKey(err) {
		t.Fatalf("Expected duplicate key error, got: %v", err)
	}

	updated := testmodels.Player{ID: "p1", Name: "Renamed", Rating: 1510}
	if err := players.Update(ctx, updated); err != nil {
		t.Fatalf("Failed to update player: %v", err)
	}

	got, err := players.FindByKey(ctx, "p1")
	if err != nil {
		t.Fatalf("Failed to find player: %v", err)
	}
	if got != updated {
		t.Errorf("Retrieved player doesn't match: got %+v, want %+v", got, updated)
	}

	if err := players.Update(ctx, testmodels.Player{ID: "missing"}); !errors.IsNotFound(err) {
		t.Errorf("Expected not found error, got: %v", err)
	}
}

func TestIntegrationGetAll(t *testing.T) {
	ctx := context.Background()
	players := docstore.Open[testmodels.Player](openBackend(t), freshName())

	want := testmodels.Players(60)
	for _, p := range want {
		if err := players.Insert(ctx, p); err != nil {
			t.Fatalf("Failed to insert %s: %v", p.ID, err)
		}
	}

	got, err := players.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d players, got %d", len(want), len(got))
	}

	seen := make(map[string]bool, len(got))
	for _, p := range got {
		if seen[p.ID] {
			t.Fatalf("player %s returned twice", p.ID)
		}
		seen[p.ID] = true
	}
}
