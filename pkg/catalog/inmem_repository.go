package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryCatalogRepository implements CatalogRepository using in-memory storage
type InMemoryCatalogRepository struct {
	mu        sync.RWMutex
	products  []Product
	discounts []Discount
}

// NewInMemoryCatalogRepository creates a new in-memory catalog repository
func NewInMemoryCatalogRepository() *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{}
}

func (r *InMemoryCatalogRepository) CreateProduct(ctx context.Context, product Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.New()
	product.CreatedAt = time.Now().UTC()
	r.products = append([]Product{product}, r.products...)
	return product, nil
}

func (r *InMemoryCatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryCatalogRepository) CreateDiscount(ctx context.Context, discount Discount) (Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	discount.ID = uuid.New()
	discount.CreatedAt = time.Now().UTC()
	r.discounts = append([]Discount{discount}, r.discounts...)
	return discount, nil
}

func (r *InMemoryCatalogRepository) ListDiscounts(ctx context.Context) ([]Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Discount, len(r.discounts))
	copy(out, r.discounts)
	return out, nil
}
