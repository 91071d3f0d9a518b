package service

import (
	"strings"

	cerrors "github.com/prodcat/catalog/internal/errors"
)

const maxNameLength = 100

// ValidateProduct checks the business rules on a candidate product payload.
// It is a pure function with no datastore access and runs before any
// mutation. Returns a ValidationError with the specific rule that failed.
func ValidateProduct(product ProductCreateDto) error {
	if strings.TrimSpace(product.Name) == "" {
		return cerrors.NewValidationError("Product name is required")
	}
	if len(product.Name) > maxNameLength {
		return cerrors.NewValidationError("Product name must be at most 100 characters")
	}
	if product.Price <= 0 {
		return cerrors.NewValidationError("Price must be positive")
	}
	if product.Stock < 0 {
		return cerrors.NewValidationError("Stock cannot be negative")
	}
	return nil
}
