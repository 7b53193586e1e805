package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/cache"
)

// ErrValidation is returned when a create request fails field validation.
// Nothing is written to the store when validation fails.
var ErrValidation = errors.New("validation failed")

// Source tags a listing response with its provenance.
type Source string

const (
	// SourceCache means the listing was served from the snapshot cache.
	SourceCache Source = "cache"
	// SourceStore means the listing was read from the store.
	SourceStore Source = "store"
)

// EventPublisher publishes catalog events. Publishing is best-effort: a
// failure is logged and never fails the originating request.
type EventPublisher interface {
	PublishProductCreated(event map[string]interface{}) error
}

// ProductService handles business logic related to products: field
// validation, the read-through snapshot cache and the write-triggered
// snapshot refresh.
type ProductService struct {
	repo   repositories.ProductRepository
	cache  cache.SnapshotCache
	events EventPublisher
	logger zerolog.Logger
}

// NewProductService creates a new ProductService. events may be nil when no
// message broker is configured.
func NewProductService(repo repositories.ProductRepository, snapshotCache cache.SnapshotCache, events EventPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  snapshotCache,
		events: events,
		logger: logger.With().Str("component", "ProductService").Logger(),
	}
}

// ListProducts returns the full product listing. The cache is consulted
// first; on a miss or an unreachable cache the store is read directly and, if
// the cache was reachable and the result non-empty, the snapshot is
// repopulated. The cache is never a correctness dependency: every cache
// failure degrades to a store read instead of failing the request.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, Source, error) {
	lookup := s.cache.Fetch(ctx)
	switch lookup.State {
	case cache.StateHit:
		s.logger.Debug().Int("products", len(lookup.Products)).Msg("Serving product listing from cache.")
		return lookup.Products, SourceCache, nil
	case cache.StateUnavailable:
		s.logger.Warn().Err(lookup.Err).Msg("Cache unavailable, falling back to store.")
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, SourceStore, fmt.Errorf("failed to list products: %w", err)
	}

	if lookup.State == cache.StateMiss && len(products) > 0 {
		if err := s.cache.Store(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to populate cache after store read.")
		}
	}

	return products, SourceStore, nil
}

// CreateProduct validates the request, persists the product and refreshes
// the cached snapshot from a fresh store read. The full-snapshot overwrite
// (rather than patching the cached listing) guarantees the cache never holds
// a partial or merged snapshot, at the cost of one extra store round trip.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}
	if *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	product := &models.Product{
		Name:        name,
		Price:       *req.Price,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.refreshSnapshot(ctx)
	s.publishCreated(product)

	return product, nil
}

// refreshSnapshot overwrites the cached snapshot with a fresh full read of
// the store. When the refresh cannot complete, the stale snapshot is actively
// deleted so readers fall through to the store instead of being served a
// pre-write listing until TTL expiry. All cache errors are swallowed.
func (s *ProductService) refreshSnapshot(ctx context.Context) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to re-read store for cache refresh, invalidating snapshot.")
		s.invalidateSnapshot(ctx)
		return
	}

	if err := s.cache.Store(ctx, products); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to refresh cache after create, invalidating snapshot.")
		s.invalidateSnapshot(ctx)
	}
}

func (s *ProductService) invalidateSnapshot(ctx context.Context) {
	if err := s.cache.Delete(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate snapshot.")
	}
}

// publishCreated emits a product.created event when a publisher is
// configured. Publish failures never fail the create.
func (s *ProductService) publishCreated(product *models.Product) {
	if s.events == nil {
		return
	}

	event := map[string]interface{}{
		"event":     "product.created",
		"productID": product.ID,
		"name":      product.Name,
		"price":     product.Price,
		"createdAt": product.CreatedAt,
	}
	if err := s.events.PublishProductCreated(event); err != nil {
		s.logger.Warn().Err(err).Str("product_id", product.ID).Msg("Failed to publish product.created event.")
	}
}
