package repository

import (
	"context"

	"github.com/darwin-elegiga/backend-theme/internal/domain"
)

// BrandRepository defines the interface for brand configuration lookups.
type BrandRepository interface {
	// Get retrieves a brand configuration by its exact identifier.
	Get(ctx context.Context, brandID string) (*domain.BrandConfig, error)

	// IDs returns all configured brand identifiers in declaration order.
	IDs() []string

	// Reload re-reads the backing source and atomically replaces the
	// in-memory catalog. The previous catalog stays live on failure.
	Reload(ctx context.Context) error
}
