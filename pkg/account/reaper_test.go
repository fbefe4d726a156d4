package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaperSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("DeletesLapsedPendingAccounts", func(t *testing.T) {
		svc, repo, mock := newTestService(t)
		require.NoError(t, svc.RequestSignup(ctx, testSignupParams("a@x.com")))
		_ = sentOtp(t, mock)

		acct, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		past := time.Now().UTC().Add(-6 * time.Minute)
		acct.OtpExpiresAt = &past
		repo.setAccount(acct)

		reaper := NewReaper(repo)
		require.NoError(t, reaper.Sweep(ctx))

		_, err = repo.FindByEmail(ctx, "a@x.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("LeavesPendingAccountsWithinDeadline", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		require.NoError(t, svc.RequestSignup(ctx, testSignupParams("a@x.com")))

		reaper := NewReaper(repo)
		require.NoError(t, reaper.Sweep(ctx))

		_, err := repo.FindByEmail(ctx, "a@x.com")
		assert.NoError(t, err)
	})

	t.Run("LeavesVerifiedAccounts", func(t *testing.T) {
		svc, repo, mock := newTestService(t)
		require.NoError(t, svc.RequestSignup(ctx, testSignupParams("a@x.com")))
		require.NoError(t, svc.VerifyOtp(ctx, "a@x.com", sentOtp(t, mock)))

		// A verified account has a cleared OTP slot and is never selected.
		reaper := NewReaper(repo)
		require.NoError(t, reaper.Sweep(ctx))

		acct, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, acct.IsVerified)
	})
}

func TestReaperStartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	svc, repo, _ := newTestService(t)
	require.NoError(t, svc.RequestSignup(context.Background(), testSignupParams("a@x.com")))

	acct, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	past := time.Now().UTC().Add(-time.Minute)
	acct.OtpExpiresAt = &past
	repo.setAccount(acct)

	reaper := NewReaper(repo, WithInterval(10*time.Millisecond))
	reaper.Start(ctx)

	assert.Eventually(t, func() bool {
		_, err := repo.FindByEmail(context.Background(), "a@x.com")
		return err == ErrAccountNotFound
	}, time.Second, 10*time.Millisecond, "reaper tick should delete the lapsed account")

	cancel()
}
