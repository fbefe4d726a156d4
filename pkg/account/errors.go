package account

import "errors"

var (
	// ErrEmailAlreadyRegistered is returned when signing up with an email that
	// already has an account, verified or not
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidOtp is returned when no account matches the email/otp pair.
	// Wrong email, wrong code and already-consumed code are indistinguishable
	// to the caller
	ErrInvalidOtp = errors.New("invalid OTP or email")

	// ErrOtpExpired is returned when the signup OTP deadline has passed
	ErrOtpExpired = errors.New("OTP has expired")

	// ErrAccountNotFound is returned when no account matches the email
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNotVerified is returned when logging in before the signup OTP
	// has been confirmed
	ErrAccountNotVerified = errors.New("account not verified")

	// ErrInvalidCredentials is returned when the password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidResetToken is returned when a reset token matches no account
	// or its expiry has passed
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrDeliveryFailed is returned when the notification gateway could not
	// deliver the OTP or reset email
	ErrDeliveryFailed = errors.New("failed to deliver notification")
)
