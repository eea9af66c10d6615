package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBatchNotFound = errors.New("batch not found")

// ConfigError reports required settings that were absent at startup.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// AuthError means no usable token could be obtained; the batch does not proceed.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token request failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ValidationError rejects a whole submission before any row is sent.
type ValidationError struct {
	Section string
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewMissingColumnsError(section string, missing []string) *ValidationError {
	return &ValidationError{
		Section: section,
		Message: "CSV must include: " + strings.Join(RequiredColumns, ", ") + " (missing: " + strings.Join(missing, ", ") + ")",
		Missing: missing,
	}
}

// RowSendError describes a single row that could not be delivered. It never stops a batch.
type RowSendError struct {
	Row    int
	Status int
	Body   string
	Err    error
}

func (e *RowSendError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Body
}

func (e *RowSendError) Unwrap() error {
	return e.Err
}

func IsAuthError(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
