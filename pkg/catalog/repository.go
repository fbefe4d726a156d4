package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository is the plain store/retrieve contract for products and
// discount records.
type CatalogRepository interface {
	CreateProduct(ctx context.Context, product Product) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	CreateDiscount(ctx context.Context, discount Discount) (Discount, error)
	ListDiscounts(ctx context.Context) ([]Discount, error)
}

// PostgresCatalogRepository implements CatalogRepository using PostgreSQL
type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCatalogRepository creates a new catalog repository
func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) CreateProduct(ctx context.Context, product Product) (Product, error) {
	query := `
		INSERT INTO products (name, category, image, price, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, category, image, price, description, created_at
	`

	var p Product
	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Category,
		product.Image,
		product.Price,
		product.Description,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Image, &p.Price, &p.Description, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresCatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, category, image, price, description, created_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Image, &p.Price, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresCatalogRepository) CreateDiscount(ctx context.Context, discount Discount) (Discount, error) {
	query := `
		INSERT INTO discounts (code, type, value, start_date, end_date, time_frame_start, time_frame_end, minimum_order_value, minimum_items, applicable_categories, usage_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, code, type, value, start_date, end_date, time_frame_start, time_frame_end, minimum_order_value, minimum_items, applicable_categories, usage_limit, created_at
	`

	var d Discount
	err := r.db.QueryRow(ctx, query,
		discount.Code,
		discount.Type,
		discount.Value,
		discount.StartDate,
		discount.EndDate,
		discount.TimeFrame.Start,
		discount.TimeFrame.End,
		discount.MinimumOrderValue,
		discount.MinimumItems,
		discount.ApplicableCategories,
		discount.UsageLimit,
	).Scan(
		&d.ID, &d.Code, &d.Type, &d.Value, &d.StartDate, &d.EndDate,
		&d.TimeFrame.Start, &d.TimeFrame.End, &d.MinimumOrderValue,
		&d.MinimumItems, &d.ApplicableCategories, &d.UsageLimit, &d.CreatedAt,
	)
	if err != nil {
		return Discount{}, err
	}
	return d, nil
}

func (r *PostgresCatalogRepository) ListDiscounts(ctx context.Context) ([]Discount, error) {
	query := `
		SELECT id, code, type, value, start_date, end_date, time_frame_start, time_frame_end, minimum_order_value, minimum_items, applicable_categories, usage_limit, created_at
		FROM discounts
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []Discount
	for rows.Next() {
		var d Discount
		if err := rows.Scan(
			&d.ID, &d.Code, &d.Type, &d.Value, &d.StartDate, &d.EndDate,
			&d.TimeFrame.Start, &d.TimeFrame.End, &d.MinimumOrderValue,
			&d.MinimumItems, &d.ApplicableCategories, &d.UsageLimit, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}
