package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the store semantics the Mongo implementation provides, including
// the unique-name constraint, so tests can exercise the duplicate path.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product, assigning an ID if one is not set.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Name == product.Name {
			return fmt.Errorf("%w: product %q", ErrDuplicateProduct, product.Name)
		}
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// GetAll returns all products in map iteration order.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}
