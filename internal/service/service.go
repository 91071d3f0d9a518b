// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"

	"github.com/prodcat/catalog/internal/store"
)

// CatalogService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type CatalogService interface {
	// FindAll returns every product in the catalog.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Search runs a filtered, sorted and paginated product query.
	Search(ctx context.Context, req SearchRequest) (*SearchResultDto, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Create validates the payload and adds a new product.
	// Returns a ValidationError before touching the datastore on bad input.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update validates the payload and modifies an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error)

	// Delete removes a product after confirming it exists, returning the
	// deleted product. Returns ErrProductNotFound if it does not exist.
	Delete(ctx context.Context, id int64) (*ProductDto, error)
}

// Service implements CatalogService on top of a ProductStore.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of CatalogService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating or
// updating a product.
type ProductCreateDto struct {
	Name  string  `json:"name"  validate:"required,max=100"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int32   `json:"stock" validate:"gte=0"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int32   `json:"stock"`
}

// SearchRequest carries search parameters. Nil bounds and an empty name
// impose no constraint; zero page/limit take the store defaults.
type SearchRequest struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
	MinStock *int32
	MaxStock *int32
	Page     int
	Limit    int
	SortBy   string
	SortDir  string
}

// SearchResultDto is the paginated outcome of a search.
type SearchResultDto struct {
	Products   []ProductDto `json:"products"`
	Total      int64        `json:"total"`
	TotalPages int64        `json:"totalPages"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
}

// FindAll retrieves every product and returns them as ProductDTOs.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toDtos(products), nil
}

// Search passes the request through to the repository unchanged.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResultDto, error) {
	result, err := s.repository.Search(ctx, store.SearchSpec{
		Name:     req.Name,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		MinStock: req.MinStock,
		MaxStock: req.MaxStock,
		Page:     req.Page,
		Limit:    req.Limit,
		SortBy:   req.SortBy,
		SortDir:  req.SortDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return &SearchResultDto{
		Products:   toDtos(result.Products),
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Page:       result.Page,
		Limit:      result.Limit,
	}, nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// Create validates the payload and inserts a new product.
// Validation failures are reported before any datastore access.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := ValidateProduct(product); err != nil {
		return nil, err
	}
	created, err := s.repository.Create(ctx, product.Name, product.Price, product.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(created), nil
}

// Update validates the payload and modifies an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error) {
	if err := ValidateProduct(product); err != nil {
		return nil, err
	}
	updated, err := s.repository.Update(ctx, id, product.Name, product.Price, product.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return toDto(updated), nil
}

// Delete confirms the product exists before removing it, so the not-found
// path does not rely on the repository's affected-row check alone.
func (s *Service) Delete(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i, item := range products {
		dtos[i] = *toDto(&item)
	}
	return dtos
}
