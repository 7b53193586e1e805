package models

import "time"

// Product represents a product in the catalog.
// The ID is assigned by the store when the product is created.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// CreateProductRequest is the inbound payload for creating a product.
// Price is a pointer so that a missing price can be told apart from a
// legitimate price of zero.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"omitempty,max=500"`
}
