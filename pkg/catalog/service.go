package catalog

import (
	"context"
	"fmt"
	"log/slog"
)

// CatalogService stores and lists products and discount records. Required-field
// validation is the only business rule here.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) UploadProduct(ctx context.Context, product Product) (Product, error) {
	if product.Name == "" || product.Category == "" || product.Image == "" ||
		product.Price == "" || product.Description == "" {
		return Product{}, ErrMissingFields
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		slog.Error("Failed to create product", "name", product.Name, "error", err)
		return Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *CatalogService) UploadDiscount(ctx context.Context, discount Discount) (Discount, error) {
	if discount.Code == "" || discount.Type == "" || discount.Value == 0 ||
		discount.StartDate.IsZero() || discount.EndDate.IsZero() ||
		discount.TimeFrame.Start == "" || discount.TimeFrame.End == "" ||
		discount.MinimumOrderValue == 0 || discount.MinimumItems == 0 ||
		len(discount.ApplicableCategories) == 0 || discount.UsageLimit == 0 {
		return Discount{}, ErrMissingFields
	}

	created, err := s.repo.CreateDiscount(ctx, discount)
	if err != nil {
		slog.Error("Failed to create discount", "code", discount.Code, "error", err)
		return Discount{}, fmt.Errorf("failed to create discount: %w", err)
	}
	return created, nil
}

func (s *CatalogService) ListDiscounts(ctx context.Context) ([]Discount, error) {
	return s.repo.ListDiscounts(ctx)
}
