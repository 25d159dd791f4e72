package models

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrAuthentication means AEAD verification failed: wrong
	// passphrase or tampered ciphertext, intentionally
	// undifferentiated.
	ErrAuthentication = errors.New("authentication failed")

	// ErrIntegrity means the on-disk container is structurally
	// malformed (bad encoding, missing fields, truncated bytes).
	ErrIntegrity = errors.New("vault container malformed")

	ErrVaultExists   = errors.New("vault already exists")
	ErrVaultNotFound = errors.New("vault not found")
)

// ValidationError reports a malformed argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
