// Package store provides an interface for product storage operations.
package store

import (
	"context"
)

// Product is a catalog row. The ID is generated by the database on insert
// and never changes afterwards.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int32   `json:"stock"`
}

// SearchResult is the outcome of a filtered product search. Products holds
// the requested window, Total the number of matching rows regardless of the
// window, and TotalPages equals ceil(Total/Limit).
type SearchResult struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	TotalPages int64     `json:"totalPages"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindAll returns every product, ordered by id.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Search executes the filtered, sorted and windowed query described by
	// spec together with the matching unwindowed count.
	Search(ctx context.Context, spec SearchSpec) (*SearchResult, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create adds a new product and returns it with the generated id.
	Create(ctx context.Context, name string, price float64, stock int32) (*Product, error)

	// Update modifies an existing product's details.
	// Returns ErrProductNotFound if no row was affected.
	Update(ctx context.Context, id int64, name string, price float64, stock int32) (*Product, error)

	// Delete removes a product by its identifier.
	// Returns ErrProductNotFound if no row was affected.
	Delete(ctx context.Context, id int64) error
}
