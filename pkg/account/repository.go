package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository defines the credential store contract. Conditional
// updates are keyed on the token value itself so that two racing consumers of
// a single-use token cannot both succeed.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByEmailAndOtp(ctx context.Context, email, otp string) (Account, error)
	FindByResetToken(ctx context.Context, token string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)

	// MarkVerified flips is_verified and clears the OTP slot, conditional on
	// the OTP still matching. Returns false when another call consumed it.
	MarkVerified(ctx context.Context, email, otp string) (bool, error)

	// SetResetToken stores a reset token and its expiry, overwriting any
	// previous token for the account.
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error

	// UpdatePasswordByResetToken overwrites the credential and clears both
	// reset fields, conditional on the token matching and not being expired.
	// Returns false when no row matched.
	UpdatePasswordByResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error)

	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteExpiredOtp deletes all accounts whose signup OTP lapsed before
	// now. Returns the number of rows removed.
	DeleteExpiredOtp(ctx context.Context, now time.Time) (int64, error)
}

const accountColumns = `id, email, first_name, last_name, image, password, is_verified, otp, otp_expires_at, reset_token, reset_token_expires_at, created_at`

// PostgresAccountRepository implements AccountRepository using PostgreSQL
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new PostgreSQL-based account repository
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.FirstName,
		&a.LastName,
		&a.Image,
		&a.PasswordHash,
		&a.IsVerified,
		&a.Otp,
		&a.OtpExpiresAt,
		&a.ResetToken,
		&a.ResetTokenExpiresAt,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

// FindByEmail retrieves an account by email
func (r *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1
	`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

// FindByEmailAndOtp retrieves an account by its email/otp pair
func (r *PostgresAccountRepository) FindByEmailAndOtp(ctx context.Context, email, otp string) (Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1
		AND otp = $2
	`
	return scanAccount(r.db.QueryRow(ctx, query, email, otp))
}

// FindByResetToken retrieves an account holding the exact reset token
func (r *PostgresAccountRepository) FindByResetToken(ctx context.Context, token string) (Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE reset_token = $1
	`
	return scanAccount(r.db.QueryRow(ctx, query, token))
}

// Create inserts a new account. The unique index on email enforces the
// one-account-per-email invariant.
func (r *PostgresAccountRepository) Create(ctx context.Context, account Account) (Account, error) {
	query := `
		INSERT INTO accounts (email, first_name, last_name, image, password, is_verified, otp, otp_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + accountColumns + `
	`

	created, err := scanAccount(r.db.QueryRow(ctx, query,
		account.Email,
		account.FirstName,
		account.LastName,
		account.Image,
		account.PasswordHash,
		account.IsVerified,
		account.Otp,
		account.OtpExpiresAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Account{}, ErrEmailAlreadyRegistered
		}
		return Account{}, err
	}
	return created, nil
}

// MarkVerified flips is_verified and clears the OTP slot in one conditional update
func (r *PostgresAccountRepository) MarkVerified(ctx context.Context, email, otp string) (bool, error) {
	query := `
		UPDATE accounts
		SET is_verified = TRUE, otp = NULL, otp_expires_at = NULL
		WHERE email = $1
		AND otp = $2
	`

	tag, err := r.db.Exec(ctx, query, email, otp)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetResetToken stores a reset token and expiry on the account
func (r *PostgresAccountRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	query := `
		UPDATE accounts
		SET reset_token = $2, reset_token_expires_at = $3
		WHERE email = $1
	`

	tag, err := r.db.Exec(ctx, query, email, token, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// UpdatePasswordByResetToken overwrites the credential and clears the reset slot
func (r *PostgresAccountRepository) UpdatePasswordByResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	query := `
		UPDATE accounts
		SET password = $2, reset_token = NULL, reset_token_expires_at = NULL
		WHERE reset_token = $1
		AND reset_token_expires_at > $3
	`

	tag, err := r.db.Exec(ctx, query, token, passwordHash, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByID removes an account
func (r *PostgresAccountRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM accounts
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id)
	return err
}

// DeleteExpiredOtp removes accounts whose signup OTP lapsed before now. Rows
// already verified have a cleared OTP slot and are never selected.
func (r *PostgresAccountRepository) DeleteExpiredOtp(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM accounts
		WHERE otp_expires_at < $1
	`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
