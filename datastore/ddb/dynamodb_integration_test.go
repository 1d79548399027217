//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore/testmodels"
	"github.com/suparena/docstore/errors"
)

func getPlayerCollection(t *testing.T) *docstore.Collection[testmodels.Player] {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	cfg := config.DynamoDBConfig{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Table:     os.Getenv("AWS_DDB_TABLE"),
		Endpoint:  os.Getenv("DDB_ENDPOINT"),
	}
	if cfg.Table == "" {
		t.Skip("AWS_DDB_TABLE not set, skipping integration test")
	}

	conn, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// a fresh collection per run keeps runs independent
	name := fmt.Sprintf("players_it_%d", time.Now().UnixNano())
	return docstore.NewCollection[testmodels.Player](conn, docstore.WithCollectionName(name))
}

func TestIntegrationLifecycle(t *testing.T) {
	ctx := context.Background()
	col := getPlayerCollection(t)

	players := testmodels.Players(60)
	for _, p := range players {
		if err := col.Insert(ctx, p); err != nil {
			t.Fatalf("Insert %s: %v", p.ID, err)
		}
	}

	if err := col.Insert(ctx, players[0]); !errors.IsDuplicateKey(err) {
		t.Fatalf("Expected duplicate key error, got: %v", err)
	}

	all, err := col.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != len(players) {
		t.Fatalf("Expected %d documents, got %d", len(players), len(all))
	}

	updated := players[5]
	updated.Rating = 2000
	if err := col.Update(ctx, updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := col.FindByKey(ctx, updated.ID)
	if err != nil || got != updated {
		t.Fatalf("expected %+v, got %+v (%v)", updated, got, err)
	}

	if err := col.Update(ctx, testmodels.Player{ID: "ghost"}); !errors.IsNotFound(err) {
		t.Fatalf("Expected not found error, got: %v", err)
	}
}
