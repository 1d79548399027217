/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/suparena/docstore/datastore/mock"
)

// Test types
type testUser struct {
	ID    string
	Name  string
	Email string
}

func (testUser) CollectionName() string { return "users" }
func (u testUser) Key() string          { return u.ID }

type testProduct struct {
	ID    string
	Name  string
	Price float64
}

func (testProduct) CollectionName() string { return "products" }
func (p testProduct) Key() string          { return p.ID }

func TestCatalog(t *testing.T) {
	t.Run("SameTypeSameCollection", func(t *testing.T) {
		cat := NewCatalog(mock.New())

		first := Open[testUser](cat)
		second := Open[testUser](cat)
		if first != second {
			t.Error("Open should return the cached collection")
		}
	})

	t.Run("DifferentTypes", func(t *testing.T) {
		cat := NewCatalog(mock.New())

		users := Open[testUser](cat)
		products := Open[testProduct](cat)
		if users.Name() != "users" || products.Name() != "products" {
			t.Errorf("unexpected names %q, %q", users.Name(), products.Name())
		}

		names := cat.Names()
		if fmt.Sprint(names) != "[products users]" {
			t.Errorf("unexpected names %v", names)
		}
	})

	t.Run("NameOverride", func(t *testing.T) {
		cat := NewCatalog(mock.New())

		users := Open[testUser](cat)
		archived := Open[testUser](cat, WithCollectionName("users_archive"))
		if users == archived {
			t.Error("overridden name should yield a distinct collection")
		}
		if archived.Name() != "users_archive" {
			t.Errorf("unexpected name %q", archived.Name())
		}
	})

	t.Run("ConcurrentOpen", func(t *testing.T) {
		cat := NewCatalog(mock.New())

		var wg sync.WaitGroup
		got := make([]*Collection[testUser], 10)
		for i := range got {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				got[i] = Open[testUser](cat)
			}(i)
		}
		wg.Wait()

		for i := 1; i < len(got); i++ {
			if got[i] != got[0] {
				t.Fatal("concurrent Open returned different collections")
			}
		}
	})

	t.Run("Close", func(t *testing.T) {
		conn := mock.New()
		cat := NewCatalog(conn)
		if err := cat.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	})
}
