package contact

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository stores contact-form submissions and customer shipping info.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact Contact) (Contact, error)
	ListContacts(ctx context.Context) ([]Contact, error)
	UpsertCustomerInfo(ctx context.Context, info CustomerInfo) (CustomerInfo, error)
	ListCustomerInfo(ctx context.Context) ([]CustomerInfo, error)
}

// PostgresContactRepository implements ContactRepository using PostgreSQL
type PostgresContactRepository struct {
	db *pgxpool.Pool
}

// NewPostgresContactRepository creates a new contact repository
func NewPostgresContactRepository(db *pgxpool.Pool) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) CreateContact(ctx context.Context, contact Contact) (Contact, error) {
	query := `
		INSERT INTO contacts (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone, message, created_at
	`

	var c Contact
	err := r.db.QueryRow(ctx, query, contact.Name, contact.Email, contact.Phone, contact.Message).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.CreatedAt)
	if err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (r *PostgresContactRepository) ListContacts(ctx context.Context) ([]Contact, error) {
	query := `
		SELECT id, name, email, phone, message, created_at
		FROM contacts
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *PostgresContactRepository) UpsertCustomerInfo(ctx context.Context, info CustomerInfo) (CustomerInfo, error) {
	query := `
		INSERT INTO customer_info (email, address, city, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET address = EXCLUDED.address, city = EXCLUDED.city, phone = EXCLUDED.phone, updated_at = now() AT TIME ZONE 'utc'
		RETURNING id, email, address, city, phone, updated_at
	`

	var ci CustomerInfo
	err := r.db.QueryRow(ctx, query, info.Email, info.Address, info.City, info.Phone).
		Scan(&ci.ID, &ci.Email, &ci.Address, &ci.City, &ci.Phone, &ci.UpdatedAt)
	if err != nil {
		return CustomerInfo{}, err
	}
	return ci, nil
}

func (r *PostgresContactRepository) ListCustomerInfo(ctx context.Context) ([]CustomerInfo, error) {
	query := `
		SELECT id, email, address, city, phone, updated_at
		FROM customer_info
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []CustomerInfo
	for rows.Next() {
		var ci CustomerInfo
		if err := rows.Scan(&ci.ID, &ci.Email, &ci.Address, &ci.City, &ci.Phone, &ci.UpdatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, ci)
	}
	return infos, rows.Err()
}
