// Package export renders filtered product result sets as CSV and PDF
// report documents.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/prodcat/catalog/internal/service"
)

// AllRows is the window used when a report is built: exports reuse the
// ordinary search path with page 1 and this ceiling instead of a separate
// unpaginated query, so filter semantics stay identical to the API view.
const AllRows = 100000

// ErrNoProducts signals that the filter matched zero rows. It is a distinct
// condition, not a processing failure.
var ErrNoProducts = errors.New("no products found to export")

// csvRow fixes the exported field list and column order.
type csvRow struct {
	ID    int64   `csv:"PRODUCTID"`
	Name  string  `csv:"PRODUCTNAME"`
	Price float64 `csv:"PRICE"`
	Stock int32   `csv:"STOCK"`
}

// WriteCSV serializes the products as CSV text with a header row.
// Returns ErrNoProducts when there is nothing to export.
func WriteCSV(w io.Writer, products []service.ProductDto) error {
	if len(products) == 0 {
		return ErrNoProducts
	}
	rows := make([]csvRow, len(products))
	for i, p := range products {
		rows[i] = csvRow{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
		}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
