/*
Package errors provides semantic error types for the docstore library.

Every backend maps its native failures onto the same small set of kinds,
so callers can branch on the kind with errors.Is or the provided helpers
regardless of the database behind a collection.

Common Errors:

	var (
	    ErrConnection    = errors.New("connection failure")
	    ErrQuery         = errors.New("query failed")
	    ErrDuplicateKey  = errors.New("duplicate key")
	    ErrNotFound      = errors.New("document not found")
	    ErrUnimplemented = errors.New("operation not implemented")
	    ErrInvalidInput  = errors.New("invalid input")
	)

Usage:

	err := users.Insert(ctx, user)
	if err != nil {
	    if errors.IsDuplicateKey(err) {
	        // the key is taken
	        return fmt.Errorf("user %s already registered", user.Key())
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("users", "123")
	err := errors.NewQueryError("users", "next batch", cause)

QueryError and ConnectionError keep their cause reachable through Unwrap,
so errors.As still finds the driver error underneath.
*/
package errors
