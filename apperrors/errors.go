// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a missing or malformed request value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports an identifier with no matching record.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ParseError reports a stored value that could not be parsed.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StatusCode maps an error chain to the HTTP status returned to the client
func StatusCode(err error) int {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Internal failures are not
// described to the client.
func Message(err error) string {
	var parseErr *ParseError
	switch StatusCode(err) {
	case http.StatusBadRequest, http.StatusNotFound:
		return err.Error()
	}
	if errors.As(err, &parseErr) {
		return "Stored data could not be read"
	}
	return "Internal error"
}
