/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("users", "123")

	// Test error message
	expected := `users with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	// Test helper function
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestDuplicateKeyError(t *testing.T) {
	err := NewDuplicateKeyError("products", "ABC")

	expected := `products with key "ABC" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrDuplicateKey) {
		t.Error("DuplicateKeyError should match ErrDuplicateKey")
	}

	if !IsDuplicateKey(err) {
		t.Error("IsDuplicateKey should return true for DuplicateKeyError")
	}
}

func TestQueryError(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		expected string
	}{
		{
			name:     "with cause",
			cause:    io.ErrUnexpectedEOF,
			expected: `next batch on collection "users" failed: unexpected EOF`,
		},
		{
			name:     "without cause",
			cause:    nil,
			expected: `next batch on collection "users" failed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewQueryError("users", "next batch", tt.cause)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsQuery(err) {
				t.Error("IsQuery should return true for QueryError")
			}

			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Error("QueryError should unwrap to its cause")
			}
		})
	}
}

func TestConnectionError(t *testing.T) {
	err := NewConnectionError("query", io.EOF)

	expected := "connection failure during query: EOF"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsConnection(err) {
		t.Error("IsConnection should return true for ConnectionError")
	}

	if !errors.Is(err, io.EOF) {
		t.Error("ConnectionError should unwrap to its cause")
	}

	if IsQuery(err) {
		t.Error("ConnectionError should not match ErrQuery")
	}
}

func TestUnimplementedError(t *testing.T) {
	err := NewUnimplementedError("get")

	if err.Error() != "get is not implemented" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if !IsUnimplemented(err) {
		t.Error("IsUnimplemented should return true for UnimplementedError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "backend",
			message:  "unknown backend",
			expected: `validation failed for field "backend": unknown backend`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	// Test that wrapped errors still match
	original := NewNotFoundError("users", "123")
	wrapped := fmt.Errorf("update failed: %w", original)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}

	var nf *NotFoundError
	if !errors.As(wrapped, &nf) || nf.Key != "123" {
		t.Errorf("errors.As should recover the NotFoundError, got %v", nf)
	}
}

func TestSentinelErrors(t *testing.T) {
	// Ensure sentinel errors are distinct
	sentinels := []error{
		ErrConnection,
		ErrQuery,
		ErrDuplicateKey,
		ErrNotFound,
		ErrUnimplemented,
		ErrInvalidInput,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
