/*
Package docstore provides typed, collection-scoped access to a document database.

Callers describe their documents once, through the Entity contract, and get
listing, insertion and replacement without re-implementing pagination,
collection naming or conflict handling:

	type User struct {
	    ID    string `json:"id" dynamodbav:"id"`
	    Email string `json:"email" dynamodbav:"email"`
	}

	func (User) CollectionName() string { return "users" }
	func (u User) Key() string          { return u.ID }

Key Features:
  - Type-safe operations using Go generics
  - Cursor pagination in batches of 25, every batch or nothing
  - Conflict-checked inserts and full-replace updates
  - Multiple storage backends (DynamoDB, Redis, SQLite) behind datastore.Conn
  - Semantic error types shared by every backend
  - Channel-based streaming with progress reporting

Basic Usage:

	conn, _ := registry.Open(ctx, cfg, logger)
	users := docstore.NewCollection[User](conn, docstore.WithLogger(logger))

	err := users.Insert(ctx, User{ID: "123", Email: "john@example.com"})
	if errors.IsDuplicateKey(err) {
	    // already registered
	}

	all, err := users.GetAll(ctx)

A Catalog shares one connection between the collections of several types:

	cat := docstore.NewCatalog(conn)
	users := docstore.Open[User](cat)
*/
package docstore
