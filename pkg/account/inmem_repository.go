package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryAccountRepository implements AccountRepository using in-memory
// storage, for tests and the inmem dev server.
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]Account
}

// NewInMemoryAccountRepository creates a new in-memory account repository
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: make(map[uuid.UUID]Account),
	}
}

// FindByEmail retrieves an account by email
func (r *InMemoryAccountRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// FindByEmailAndOtp retrieves an account by its email/otp pair
func (r *InMemoryAccountRepository) FindByEmailAndOtp(ctx context.Context, email, otp string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email && a.Otp != nil && *a.Otp == otp {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// FindByResetToken retrieves an account holding the exact reset token
func (r *InMemoryAccountRepository) FindByResetToken(ctx context.Context, token string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.ResetToken != nil && *a.ResetToken == token {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// Create inserts a new account, enforcing email uniqueness
func (r *InMemoryAccountRepository) Create(ctx context.Context, account Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == account.Email {
			return Account{}, ErrEmailAlreadyRegistered
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	r.accounts[account.ID] = account
	return account, nil
}

// MarkVerified flips is_verified and clears the OTP slot, conditional on the OTP
func (r *InMemoryAccountRepository) MarkVerified(ctx context.Context, email, otp string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.accounts {
		if a.Email == email && a.Otp != nil && *a.Otp == otp {
			a.IsVerified = true
			a.Otp = nil
			a.OtpExpiresAt = nil
			r.accounts[id] = a
			return true, nil
		}
	}
	return false, nil
}

// SetResetToken stores a reset token and expiry on the account
func (r *InMemoryAccountRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.accounts {
		if a.Email == email {
			a.ResetToken = &token
			expiry := expiresAt
			a.ResetTokenExpiresAt = &expiry
			r.accounts[id] = a
			return nil
		}
	}
	return ErrAccountNotFound
}

// UpdatePasswordByResetToken overwrites the credential and clears the reset slot
func (r *InMemoryAccountRepository) UpdatePasswordByResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.accounts {
		if a.ResetToken != nil && *a.ResetToken == token &&
			a.ResetTokenExpiresAt != nil && a.ResetTokenExpiresAt.After(now) {
			a.PasswordHash = passwordHash
			a.ResetToken = nil
			a.ResetTokenExpiresAt = nil
			r.accounts[id] = a
			return true, nil
		}
	}
	return false, nil
}

// DeleteByID removes an account
func (r *InMemoryAccountRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, id)
	return nil
}

// DeleteExpiredOtp removes accounts whose signup OTP lapsed before now
func (r *InMemoryAccountRepository) DeleteExpiredOtp(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, a := range r.accounts {
		if a.OtpExpiresAt != nil && a.OtpExpiresAt.Before(now) {
			delete(r.accounts, id)
			count++
		}
	}
	return count, nil
}

// setAccount replaces a stored account, for tests that need to backdate expiries.
func (r *InMemoryAccountRepository) setAccount(a Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
}
