package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/darwin-elegiga/backend-theme/pkg/errors"
)

// BrandNotFoundError is returned when a brand identifier is not configured.
// It carries the full ordered list of known identifiers so callers can render
// a helpful message.
type BrandNotFoundError struct {
	BrandID   string
	Available []string
}

func (e *BrandNotFoundError) Error() string {
	return fmt.Sprintf("brand %q not found (available: %s)", e.BrandID, strings.Join(e.Available, ", "))
}

func (e *BrandNotFoundError) Unwrap() error {
	return apperrors.ErrNotFound
}

// Detail renders the client-facing detail message for the error envelope.
func (e *BrandNotFoundError) Detail() string {
	return fmt.Sprintf("The brand '%s' does not exist. Available brands: %s",
		e.BrandID, strings.Join(e.Available, ", "))
}

// MaterializationError reports a value in the configuration tree that cannot
// be materialized (a leaf of an unsupported kind where a path or composite was
// expected). It indicates a data-integrity bug in brands.json and is surfaced
// distinctly from a missing brand.
type MaterializationError struct {
	Path  string
	Value any
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("cannot materialize value at %s: unsupported type %T", e.Path, e.Value)
}

func (e *MaterializationError) Unwrap() error {
	return apperrors.ErrInvalidConfig
}
