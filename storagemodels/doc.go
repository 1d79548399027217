/*
Package storagemodels defines the data structures shared by docstore and its backends.

Key Types:

Batch:
One page of a server-side cursor. Backends return a Batch from the initial
collection query and from every continuation fetch:

	type Batch struct {
	    Documents    []RawDocument // server order
	    Continuation string        // empty on the last batch
	}

RawDocument:
A document as stored by the backend. Decode turns it into the caller's type;
JSONDocument covers every backend that stores JSON bodies.

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T
	    Raw   RawDocument
	    Error error
	    Meta  StreamMeta
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
