// Package apperr defines the error kinds surfaced by record operations.
//
// Handlers switch on the kind with errors.As to pick a response: a form
// re-render for ValidationError, a 404 page for NotFoundError, a 403 page for
// AuthorizationError and a logged 500 page for StoreError.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports input that violates a field constraint or a
// domain rule. Field is empty for record-level rules.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validation builds a ValidationError.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NotFoundError reports that a record id does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// AuthorizationError reports that the caller holds none of the required roles.
type AuthorizationError struct {
	Required []string
}

func (e *AuthorizationError) Error() string {
	return "requires role " + strings.Join(e.Required, " or ")
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError for op. A nil err stays nil, and errors
// that already carry a kind pass through unchanged.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) || IsNotFound(err) || IsAuthorization(err) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsAuthorization reports whether err is (or wraps) an AuthorizationError.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// Message returns the user-facing message for err: the validation message
// for ValidationError, otherwise err.Error().
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
