package api

import "github.com/freshmart/freshmart/pkg/account"

type SendOtpRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Email           string `json:"email"`
	Image           string `json:"image"`
}

type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AlertResponse struct {
	Message string `json:"message"`
	Alert   bool   `json:"alert"`
}

type LoginResponse struct {
	Message string                `json:"message"`
	Alert   bool                  `json:"alert"`
	Data    account.PublicProfile `json:"data"`
	Token   string                `json:"token,omitempty"`
}

type ValidateResetTokenResponse struct {
	Valid bool `json:"valid"`
}
