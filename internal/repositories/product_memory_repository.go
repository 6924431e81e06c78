package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"inventory/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// IDs come from a counter that only moves forward, so deleted IDs are never
// handed out again.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	articles map[string]int64
	lastID   int64
	now      func() time.Time
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]models.Product),
		articles: make(map[string]int64),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of products ordered by ascending ID.
func (r *MemoryProductRepository) List(_ context.Context, page, limit int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	start := offset(page, limit)
	if start >= len(ids) {
		return []models.Product{}, total, nil
	}
	end := len(ids)
	if limit < end-start {
		end = start + limit
	}

	productList := make([]models.Product, 0, end-start)
	for _, id := range ids[start:end] {
		productList = append(productList, r.products[id])
	}
	return productList, total, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.articles[product.Article]; taken {
		return ErrArticleConflict
	}

	r.lastID++
	product.ID = r.lastID
	product.CreatedAt = r.now()
	r.products[product.ID] = *product
	r.articles[product.Article] = product.ID
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return ErrProductNotFound
	}
	if owner, taken := r.articles[product.Article]; taken && owner != product.ID {
		return ErrArticleConflict
	}

	delete(r.articles, existing.Article)
	existing.Article = product.Article
	existing.Name = product.Name
	existing.Price = product.Price
	existing.Quantity = product.Quantity
	r.products[existing.ID] = existing
	r.articles[existing.Article] = existing.ID

	*product = existing
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	delete(r.articles, product.Article)
	return nil
}

// Count returns the number of stored products.
func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}
