package account

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "freshmart_db"
	dbUser := "freshmart"
	dbPassword := "pwd"

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithInitScripts(filepath.Join("../../migrations", "freshmart_db.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connString)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func pendingAccount(email, otp string, expiresAt time.Time) Account {
	return Account{
		Email:        email,
		FirstName:    "Linh",
		LastName:     "Tran",
		Image:        "img",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		IsVerified:   false,
		Otp:          &otp,
		OtpExpiresAt: &expiresAt,
	}
}

func TestPostgresAccountRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	t.Run("CreateAndFindByEmail", func(t *testing.T) {
		expiry := time.Now().UTC().Add(5 * time.Minute)
		created, err := repo.Create(ctx, pendingAccount("a@x.com", "123456", expiry))
		require.NoError(t, err)
		assert.NotEqual(t, created.ID.String(), "00000000-0000-0000-0000-000000000000")

		found, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.False(t, found.IsVerified)
		require.NotNil(t, found.Otp)
		assert.Equal(t, "123456", *found.Otp)
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		expiry := time.Now().UTC().Add(5 * time.Minute)
		_, err := repo.Create(ctx, pendingAccount("a@x.com", "654321", expiry))
		assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	})

	t.Run("FindByEmailAndOtp", func(t *testing.T) {
		found, err := repo.FindByEmailAndOtp(ctx, "a@x.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", found.Email)

		_, err = repo.FindByEmailAndOtp(ctx, "a@x.com", "000000")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("MarkVerifiedIsSingleUse", func(t *testing.T) {
		ok, err := repo.MarkVerified(ctx, "a@x.com", "123456")
		require.NoError(t, err)
		assert.True(t, ok)

		found, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, found.IsVerified)
		assert.Nil(t, found.Otp)
		assert.Nil(t, found.OtpExpiresAt)

		// Second consume of the same code is a no-op
		ok, err = repo.MarkVerified(ctx, "a@x.com", "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ResetTokenLifecycle", func(t *testing.T) {
		expiresAt := time.Now().UTC().Add(15 * time.Minute)
		require.NoError(t, repo.SetResetToken(ctx, "a@x.com", "tok-1", expiresAt))

		found, err := repo.FindByResetToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", found.Email)

		ok, err := repo.UpdatePasswordByResetToken(ctx, "tok-1", "$2a$10$newhash", time.Now().UTC())
		require.NoError(t, err)
		assert.True(t, ok)

		found, err = repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$newhash", found.PasswordHash)
		assert.Nil(t, found.ResetToken)
		assert.Nil(t, found.ResetTokenExpiresAt)

		// Consumed token no longer matches
		ok, err = repo.UpdatePasswordByResetToken(ctx, "tok-1", "$2a$10$other", time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ExpiredResetTokenRejected", func(t *testing.T) {
		expiresAt := time.Now().UTC().Add(-time.Minute)
		require.NoError(t, repo.SetResetToken(ctx, "a@x.com", "tok-2", expiresAt))

		ok, err := repo.UpdatePasswordByResetToken(ctx, "tok-2", "$2a$10$other", time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DeleteExpiredOtp", func(t *testing.T) {
		expired := time.Now().UTC().Add(-time.Minute)
		live := time.Now().UTC().Add(5 * time.Minute)

		_, err := repo.Create(ctx, pendingAccount("expired@x.com", "111111", expired))
		require.NoError(t, err)
		_, err = repo.Create(ctx, pendingAccount("pending@x.com", "222222", live))
		require.NoError(t, err)

		count, err := repo.DeleteExpiredOtp(ctx, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		_, err = repo.FindByEmail(ctx, "expired@x.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		_, err = repo.FindByEmail(ctx, "pending@x.com")
		assert.NoError(t, err)

		// Verified account with cleared OTP slot is never swept
		_, err = repo.FindByEmail(ctx, "a@x.com")
		assert.NoError(t, err)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "pending@x.com")
		require.NoError(t, err)

		require.NoError(t, repo.DeleteByID(ctx, found.ID))

		_, err = repo.FindByEmail(ctx, "pending@x.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}
