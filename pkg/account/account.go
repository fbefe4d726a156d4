package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents one registered storefront user. The otp/otpExpiresAt pair
// is populated only while signup verification is pending; the reset pair only
// while a password reset request is outstanding. Each pair is cleared once
// consumed or superseded.
type Account struct {
	ID                  uuid.UUID
	Email               string
	FirstName           string
	LastName            string
	Image               string
	PasswordHash        string
	IsVerified          bool
	Otp                 *string
	OtpExpiresAt        *time.Time
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
}

// PublicProfile is the projection of an Account returned on login. It never
// carries password material.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
}

// SignupParams carries the fields required to create an account.
type SignupParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Image     string
}
