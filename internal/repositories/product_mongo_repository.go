package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog/internal/models"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewMongoProductRepository creates a new instance of MongoProductRepository
// backed by the "products" collection of the given database.
func NewMongoProductRepository(db *mongo.Database, logger zerolog.Logger) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
		logger:     logger.With().Str("component", "MongoProductRepository").Logger(),
	}
}

// EnsureIndexes creates the unique index on the product name. It should be
// called once at startup, after the database connection is established.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create product name index: %w", err)
	}
	return nil
}

// Create persists a new product. The repository assigns the ID when the
// caller has not provided one.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: product %q", ErrDuplicateProduct, product.Name)
		}
		r.logger.Error().Err(err).Str("name", product.Name).Msg("Failed to insert product.")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GetAll retrieves all products from the collection.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to query products.")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		r.logger.Error().Err(err).Msg("Failed to decode products.")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return products, nil
}
