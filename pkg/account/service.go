package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinzhu/copier"

	"github.com/freshmart/freshmart/pkg/notification"
)

// AccountService orchestrates the account lifecycle: signup, OTP verification,
// login, and the password reset flow.
type AccountService struct {
	repo                AccountRepository
	notificationManager *notification.NotificationManager
	hasher              PasswordHasher
	otpExpiry           time.Duration
	resetTokenExpiry    time.Duration
}

// AccountServiceOption defines configuration options
type AccountServiceOption func(*AccountService)

// WithOtpExpiry sets the signup OTP expiration duration
func WithOtpExpiry(expiry time.Duration) AccountServiceOption {
	return func(s *AccountService) {
		s.otpExpiry = expiry
	}
}

// WithResetTokenExpiry sets the reset token expiration duration
func WithResetTokenExpiry(expiry time.Duration) AccountServiceOption {
	return func(s *AccountService) {
		s.resetTokenExpiry = expiry
	}
}

// WithPasswordHasher overrides the password hasher
func WithPasswordHasher(hasher PasswordHasher) AccountServiceOption {
	return func(s *AccountService) {
		s.hasher = hasher
	}
}

// NewAccountService creates a new account service
func NewAccountService(
	repo AccountRepository,
	notificationManager *notification.NotificationManager,
	opts ...AccountServiceOption,
) *AccountService {
	service := &AccountService{
		repo:                repo,
		notificationManager: notificationManager,
		hasher:              &BcryptHasher{},
		otpExpiry:           5 * time.Minute,
		resetTokenExpiry:    15 * time.Minute,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// RequestSignup issues a signup OTP, delivers it, and creates the account in
// pending-verification state. Delivery happens before the row is written: a
// mail outage leaves no orphan record behind.
func (s *AccountService) RequestSignup(ctx context.Context, params SignupParams) error {
	_, err := s.repo.FindByEmail(ctx, params.Email)
	if err == nil {
		slog.Warn("Email already registered", "email", params.Email)
		return ErrEmailAlreadyRegistered
	}
	if err != ErrAccountNotFound {
		slog.Error("Failed to look up email", "email", params.Email, "error", err)
		return fmt.Errorf("failed to look up email: %w", err)
	}

	otp, err := generateOtp()
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(s.otpExpiry)

	err = s.notificationManager.Send(notification.SignupOtpNotice, notification.NotificationData{
		To: params.Email,
		Data: map[string]string{
			"FirstName":     params.FirstName,
			"Otp":           otp,
			"ExpiryMinutes": fmt.Sprintf("%.0f", s.otpExpiry.Minutes()),
		},
	})
	if err != nil {
		slog.Error("Failed to send signup OTP", "email", params.Email, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, Account{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Image:        params.Image,
		PasswordHash: passwordHash,
		IsVerified:   false,
		Otp:          &otp,
		OtpExpiresAt: &expiresAt,
	})
	if err != nil {
		slog.Error("Failed to create account", "email", params.Email, "error", err)
		return err
	}

	slog.Info("Signup OTP sent", "account_id", created.ID, "expires_at", expiresAt)
	return nil
}

// VerifyOtp confirms a signup OTP. An expired code deletes the pending
// account; the caller must sign up again.
func (s *AccountService) VerifyOtp(ctx context.Context, email, otp string) error {
	acct, err := s.repo.FindByEmailAndOtp(ctx, email, otp)
	if err != nil {
		if err == ErrAccountNotFound {
			return ErrInvalidOtp
		}
		slog.Error("Failed to look up OTP", "email", email, "error", err)
		return fmt.Errorf("failed to look up OTP: %w", err)
	}

	if acct.OtpExpiresAt != nil && time.Now().UTC().After(*acct.OtpExpiresAt) {
		slog.Warn("OTP expired, deleting pending account", "account_id", acct.ID, "expires_at", acct.OtpExpiresAt)
		if err := s.repo.DeleteByID(ctx, acct.ID); err != nil {
			slog.Error("Failed to delete expired pending account", "account_id", acct.ID, "error", err)
			return fmt.Errorf("failed to delete expired account: %w", err)
		}
		return ErrOtpExpired
	}

	// Conditional on the otp value: a racing verify that already consumed the
	// code makes this a no-op.
	verified, err := s.repo.MarkVerified(ctx, email, otp)
	if err != nil {
		slog.Error("Failed to mark account verified", "account_id", acct.ID, "error", err)
		return fmt.Errorf("failed to mark account verified: %w", err)
	}
	if !verified {
		return ErrInvalidOtp
	}

	slog.Info("Account verified", "account_id", acct.ID)
	return nil
}

// Login checks the credential and returns the public profile projection.
func (s *AccountService) Login(ctx context.Context, email, password string) (PublicProfile, error) {
	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return PublicProfile{}, err
	}

	if !acct.IsVerified {
		slog.Warn("Login attempt on unverified account", "account_id", acct.ID)
		return PublicProfile{}, ErrAccountNotVerified
	}

	match, err := s.hasher.Verify(password, acct.PasswordHash)
	if err != nil {
		slog.Error("Failed to verify password", "account_id", acct.ID, "error", err)
		return PublicProfile{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return PublicProfile{}, ErrInvalidCredentials
	}

	var profile PublicProfile
	if err := copier.Copy(&profile, &acct); err != nil {
		return PublicProfile{}, fmt.Errorf("failed to build profile: %w", err)
	}

	slog.Info("Login succeeded", "account_id", acct.ID)
	return profile, nil
}

// RequestPasswordReset issues a reset token, stores it, and emails the reset
// link. The token is persisted before delivery is attempted and stays set if
// delivery fails, so the user can retry the email without invalidating the
// token.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(s.resetTokenExpiry)

	if err := s.repo.SetResetToken(ctx, email, token, expiresAt); err != nil {
		slog.Error("Failed to store reset token", "account_id", acct.ID, "error", err)
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.notificationManager.BaseUrl(), token)

	err = s.notificationManager.Send(notification.PasswordResetNotice, notification.NotificationData{
		To: email,
		Data: map[string]string{
			"FirstName":     acct.FirstName,
			"ResetLink":     resetLink,
			"ExpiryMinutes": fmt.Sprintf("%.0f", s.resetTokenExpiry.Minutes()),
		},
	})
	if err != nil {
		slog.Error("Failed to send reset email, token remains set", "account_id", acct.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	slog.Info("Reset token issued", "account_id", acct.ID, "expires_at", expiresAt)
	return nil
}

// ValidateResetToken reports whether a reset token matches an account and has
// not expired. Pure read, no mutation.
func (s *AccountService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	acct, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		if err == ErrAccountNotFound {
			return false, nil
		}
		slog.Error("Failed to look up reset token", "error", err)
		return false, fmt.Errorf("failed to look up reset token: %w", err)
	}

	if acct.ResetTokenExpiresAt == nil || !acct.ResetTokenExpiresAt.After(time.Now().UTC()) {
		return false, nil
	}
	return true, nil
}

// ResetPassword overwrites the credential using a valid reset token and
// clears the reset slot.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		slog.Error("Failed to hash new password", "error", err)
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	// Conditional on the token value and its expiry in one update.
	updated, err := s.repo.UpdatePasswordByResetToken(ctx, token, passwordHash, time.Now().UTC())
	if err != nil {
		slog.Error("Failed to reset password", "error", err)
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if !updated {
		return ErrInvalidResetToken
	}

	slog.Info("Password reset completed")
	return nil
}
