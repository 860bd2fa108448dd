package domain

import (
	"errors"
	"fmt"
)

// ErrDomain marca cualquier input que viola una precondición matemática del modelo.
// Usar errors.Is(err, ErrDomain) para detectarlo a través de wrapping.
var ErrDomain = errors.New("domain error")

// DomainError describe qué campo violó la precondición y con qué valor.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Unwrap permite errors.Is(err, ErrDomain).
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

func domainErr(field string, value float64, reason string) *DomainError {
	return &DomainError{Field: field, Value: value, Reason: reason}
}
