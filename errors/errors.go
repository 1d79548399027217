/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrConnection is returned when the database cannot be reached
	ErrConnection = errors.New("connection failure")

	// ErrQuery is returned when a query cannot be issued or fails on the server
	ErrQuery = errors.New("query failed")

	// ErrDuplicateKey is returned when inserting a document whose key already exists
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when a document is not found
	ErrNotFound = errors.New("document not found")

	// ErrUnimplemented is returned by operations that are not available
	ErrUnimplemented = errors.New("operation not implemented")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// ConnectionError represents a transport level failure
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("connection failure during %s", e.Op)
	}
	return fmt.Sprintf("connection failure during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError represents a failure to issue or execute a query
type QueryError struct {
	Collection string
	Op         string
	Err        error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s on collection %q failed", e.Op, e.Collection)
	}
	return fmt.Sprintf("%s on collection %q failed: %v", e.Op, e.Collection, e.Err)
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError represents an insert conflict on an existing key
type DuplicateKeyError struct {
	Collection string
	Key        string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Collection, e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// NotFoundError represents an error when a document is not found
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Collection, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnimplementedError is returned by placeholder operations
type UnimplementedError struct {
	Operation string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Operation)
}

func (e *UnimplementedError) Is(target error) bool {
	return target == ErrUnimplemented
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewConnectionError creates a new ConnectionError
func NewConnectionError(op string, err error) error {
	return &ConnectionError{Op: op, Err: err}
}

// NewQueryError creates a new QueryError
func NewQueryError(collection, op string, err error) error {
	return &QueryError{Collection: collection, Op: op, Err: err}
}

// NewDuplicateKeyError creates a new DuplicateKeyError
func NewDuplicateKeyError(collection, key string) error {
	return &DuplicateKeyError{Collection: collection, Key: key}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(collection, key string) error {
	return &NotFoundError{Collection: collection, Key: key}
}

// NewUnimplementedError creates a new UnimplementedError
func NewUnimplementedError(operation string) error {
	return &UnimplementedError{Operation: operation}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsConnection checks if an error is a connection error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsQuery checks if an error is a query error
func IsQuery(err error) bool {
	return errors.Is(err, ErrQuery)
}

// IsDuplicateKey checks if an error is a duplicate key error
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnimplemented checks if an error is an unimplemented error
func IsUnimplemented(err error) bool {
	return errors.Is(err, ErrUnimplemented)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
