package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/freshmart/freshmart/pkg/account"
	"github.com/freshmart/freshmart/pkg/auth"
)

// Handler exposes the account lifecycle over HTTP
type Handler struct {
	service    *account.AccountService
	jwtService *auth.Jwt
}

// NewHandler creates a new account API handler
func NewHandler(service *account.AccountService, jwtService *auth.Jwt) *Handler {
	return &Handler{
		service:    service,
		jwtService: jwtService,
	}
}

// Routes registers the account endpoints on the router
func Routes(r chi.Router, h *Handler) {
	r.Post("/send-otp", h.SendOtp)
	r.Post("/verify-otp", h.VerifyOtp)
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Get("/verify-reset-token/{token}", h.VerifyResetToken)
	r.Post("/reset-password", h.ResetPassword)
}

// SendOtp handles POST /send-otp
func (h *Handler) SendOtp(w http.ResponseWriter, r *http.Request) {
	var req SendOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Password == "" || req.ConfirmPassword == "" || req.Image == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "All fields are required"})
		return
	}

	if req.Password != req.ConfirmPassword {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Passwords do not match"})
		return
	}

	err := h.service.RequestSignup(r.Context(), account.SignupParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Image:     req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailAlreadyRegistered):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, AlertResponse{Message: "Email already registered!", Alert: false})
		case errors.Is(err, account.ErrDeliveryFailed):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Failed to send OTP. Please try again."})
		default:
			slog.Error("Signup failed", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Server Error"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, AlertResponse{Message: "OTP sent to your email successfully!", Alert: true})
}

// VerifyOtp handles POST /verify-otp
func (h *Handler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req VerifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if req.Email == "" || req.Otp == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Email and OTP are required"})
		return
	}

	err := h.service.VerifyOtp(r.Context(), req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidOtp):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, MessageResponse{Message: "Invalid OTP or email!"})
		case errors.Is(err, account.ErrOtpExpired):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, MessageResponse{Message: "OTP has expired. Please request a new one."})
		default:
			slog.Error("OTP verification failed", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Server Error"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "OTP verified successfully!"})
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Email and password is required"})
		return
	}

	profile, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, AlertResponse{Message: "Email is not available, please sign up", Alert: false})
		case errors.Is(err, account.ErrAccountNotVerified):
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, MessageResponse{Message: "Account not verified. Please verify your email."})
		case errors.Is(err, account.ErrInvalidCredentials):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, AlertResponse{Message: "Invalid password", Alert: false})
		default:
			slog.Error("Login failed", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Server Error"})
		}
		return
	}

	resp := LoginResponse{
		Message: "Login is successfully",
		Alert:   true,
		Data:    profile,
	}

	if h.jwtService != nil {
		token, err := h.jwtService.CreateAccessToken(profile)
		if err != nil {
			slog.Error("Failed to create access token", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Server Error"})
			return
		}
		resp.Token = token.Token
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// ForgotPassword handles POST /forgot-password
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if req.Email == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Email is required"})
		return
	}

	err := h.service.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, MessageResponse{Message: "Email is not registered"})
		case errors.Is(err, account.ErrDeliveryFailed):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Failed to send reset email. Please try again."})
		default:
			slog.Error("Password reset request failed", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Server Error"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, AlertResponse{Message: "Reset link sent to your email", Alert: true})
}

// VerifyResetToken handles GET /verify-reset-token/{token}
func (h *Handler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	valid, err := h.service.ValidateResetToken(r.Context(), token)
	if err != nil {
		slog.Error("Reset token validation failed", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Server Error"})
		return
	}

	if !valid {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ValidateResetTokenResponse{Valid: false})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ValidateResetTokenResponse{Valid: true})
}

// ResetPassword handles POST /reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if req.Token == "" || req.NewPassword == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Token and new password are required"})
		return
	}

	err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidResetToken):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, MessageResponse{Message: "Invalid or expired reset token"})
		default:
			slog.Error("Password reset failed", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, MessageResponse{Message: "Server Error"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Password reset successfully"})
}
