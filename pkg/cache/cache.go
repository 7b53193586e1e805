package cache

import (
	"context"

	"catalog/internal/models"
)

// State classifies the outcome of a snapshot lookup.
type State int

const (
	// StateHit means a complete snapshot was found in the cache.
	StateHit State = iota
	// StateMiss means the cache was reachable but held no snapshot.
	StateMiss
	// StateUnavailable means the cache could not be consulted. Callers are
	// expected to fall back to the store rather than fail the request.
	StateUnavailable
)

// Lookup is the result of a snapshot fetch. Exactly one of the three states
// applies; Products is set only on a hit and Err only when unavailable.
type Lookup struct {
	State    State
	Products []models.Product
	Err      error
}

// Hit builds a Lookup carrying a cached snapshot.
func Hit(products []models.Product) Lookup {
	return Lookup{State: StateHit, Products: products}
}

// Miss builds a Lookup for a reachable cache with no snapshot.
func Miss() Lookup {
	return Lookup{State: StateMiss}
}

// Unavailable builds a Lookup for a cache that could not be consulted.
func Unavailable(err error) Lookup {
	return Lookup{State: StateUnavailable, Err: err}
}

// SnapshotCache holds a single serialized snapshot of the full product
// listing. A stored value is always one complete snapshot produced by exactly
// one store query; partial snapshots are never written.
type SnapshotCache interface {
	// Fetch attempts to read the snapshot.
	Fetch(ctx context.Context) Lookup
	// Store overwrites the snapshot with the configured TTL.
	Store(ctx context.Context, products []models.Product) error
	// Delete removes the snapshot so readers fall through to the store.
	Delete(ctx context.Context) error
	// Close releases any underlying connection.
	Close() error
}
