package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/database"
	"inventory/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List returns one page of products ordered by ascending ID together with the
// total number of products.
func (r *GORMProductRepository) List(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	err := db.Order("id ASC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The ID and CreatedAt are assigned by the
// database and written back into product.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := articleTaken(tx, product.Article, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrArticleConflict
		}
		return tx.Create(product).Error
	})
	return translate("create product", err)
}

// Update replaces article, name, price and quantity of an existing product.
// On success product holds the stored record, including its CreatedAt.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, "id = ?", product.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if existing.Article != product.Article {
			taken, err := articleTaken(tx, product.Article, existing.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrArticleConflict
			}
		}

		existing.Article = product.Article
		existing.Name = product.Name
		existing.Price = product.Price
		existing.Quantity = product.Quantity
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		*product = existing
		return nil
	})
	return translate(fmt.Sprintf("update product %d", product.ID), err)
}

// Delete permanently removes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Count returns the number of stored products.
func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func articleTaken(tx *gorm.DB, article string, exceptID int64) (bool, error) {
	q := tx.Model(&models.Product{}).Where("article = ?", article)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// translate normalises transaction errors: domain sentinels pass through and a
// unique-index violation from a racing writer becomes ErrArticleConflict.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrArticleConflict):
		return err
	case database.IsDuplicateKeyErr(err):
		return ErrArticleConflict
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
