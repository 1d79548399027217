/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package token encodes the opaque continuation identifiers handed out by
// the keyset-paginated backends.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Continuation is the resume point of a collection listing: the next batch
// starts strictly after key After.
type Continuation struct {
	Collection string `json:"c"`
	After      string `json:"a"`
	BatchSize  int    `json:"n"`
}

// Encode returns the opaque string form of c.
func Encode(c Continuation) string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode parses a string produced by Encode.
func Decode(s string) (Continuation, error) {
	var c Continuation
	if s == "" {
		return c, errors.New("empty continuation")
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("malformed continuation: %w", err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("malformed continuation: %w", err)
	}
	if c.Collection == "" || c.BatchSize <= 0 {
		return c, errors.New("incomplete continuation")
	}
	return c, nil
}
