package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	cerrors "github.com/prodcat/catalog/internal/errors"
	"golang.org/x/sync/errgroup"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindAll retrieves every product ordered by id.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx, "SELECT id, name, price, stock FROM products ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Search runs the windowed data query and the unwindowed count query
// concurrently and waits for both before composing the result. The first
// error cancels the sibling query.
func (p *PgStore) Search(ctx context.Context, spec SearchSpec) (*SearchResult, error) {
	spec = spec.Normalized()
	query := newSearchQuery(spec)

	var (
		products []Product
		total    int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sql, args := query.dataStatement()
		rows, err := p.db.Query(gCtx, sql, args...)
		if err != nil {
			return fmt.Errorf("failed to search products: %w", err)
		}
		defer rows.Close()
		products, err = collectProducts(rows)
		return err
	})
	g.Go(func() error {
		sql, args := query.countStatement()
		if err := p.db.QueryRow(gCtx, sql, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SearchResult{
		Products:   products,
		Total:      total,
		TotalPages: totalPages(total, spec.Limit),
		Page:       spec.Page,
		Limit:      spec.Limit,
	}, nil
}

// FindByID retrieves a product by its identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	err := p.db.QueryRow(ctx, "SELECT id, name, price, stock FROM products WHERE id = $1", id).
		Scan(&product.ID, &product.Name, &product.Price, &product.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// Create inserts a product and returns it with the database-generated id.
func (p *PgStore) Create(ctx context.Context, name string, price float64, stock int32) (*Product, error) {
	var product Product
	err := p.db.QueryRow(ctx,
		"INSERT INTO products (name, price, stock) VALUES ($1, $2, $3) RETURNING id, name, price, stock",
		name, price, stock).
		Scan(&product.ID, &product.Name, &product.Price, &product.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update modifies a product's mutable fields.
// Returns ErrProductNotFound if no row was affected.
func (p *PgStore) Update(ctx context.Context, id int64, name string, price float64, stock int32) (*Product, error) {
	tag, err := p.db.Exec(ctx,
		"UPDATE products SET name = $2, price = $3, stock = $4 WHERE id = $1",
		id, name, price, stock)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, cerrors.ErrProductNotFound
	}
	return &Product{ID: id, Name: name, Price: price, Stock: stock}, nil
}

// Delete removes a product by its identifier.
// Returns ErrProductNotFound if no row was affected.
func (p *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cerrors.ErrProductNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

// totalPages is ceil(total/limit); zero when nothing matched.
func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
