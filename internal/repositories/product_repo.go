package repositories

import (
	"context"
	"errors"
	"math"

	"inventory/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrArticleConflict = errors.New("article must be unique")
)

// ProductRepository defines the interface for product data access.
//
// Create and Update treat the article check and the write as one unit: a
// concurrent writer with the same article gets ErrArticleConflict, never a
// second row.
type ProductRepository interface {
	List(ctx context.Context, page, limit int) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// offset converts a 1-based page into a row offset, saturating instead of
// overflowing for absurd page numbers.
func offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
