package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// Sentinel errors for the product store. Callers map these to HTTP status
// codes with errors.Is.
var (
	// ErrDuplicateProduct is returned when a product with the same name
	// already exists in the store.
	ErrDuplicateProduct = errors.New("product already exists")
	// ErrStoreUnavailable is returned when the underlying store cannot be
	// reached or the operation fails for infrastructure reasons.
	ErrStoreUnavailable = errors.New("product store unavailable")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Create persists a new product and assigns it a unique ID.
	Create(ctx context.Context, product *models.Product) error
	// GetAll returns every product in the collection. Ordering is
	// store-defined and must not be relied on.
	GetAll(ctx context.Context) ([]models.Product, error)
}
