package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/freshmart/pkg/account"
	"github.com/freshmart/freshmart/pkg/auth"
	"github.com/freshmart/freshmart/pkg/notification"
)

func newTestRouter(t *testing.T) (*chi.Mux, *notification.MockNotifier) {
	t.Helper()

	repo := account.NewInMemoryAccountRepository()
	mock := &notification.MockNotifier{}
	nm := notification.NewNotificationManager("http://localhost:3000")
	nm.RegisterNotifier(notification.EmailSystem, mock)

	err := nm.RegisterNotification(notification.SignupOtpNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Your OTP for Signup Verification",
		Text:    "Your OTP is: {{.Otp}}",
	})
	require.NoError(t, err)
	err = nm.RegisterNotification(notification.PasswordResetNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Password Reset Request",
		Text:    "Reset link: {{.ResetLink}}",
	})
	require.NoError(t, err)

	service := account.NewAccountService(repo, nm)
	jwtService := auth.NewJwtServiceOptions("test-secret")

	r := chi.NewRouter()
	Routes(r, NewHandler(service, jwtService))
	return r, mock
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendOtpEndpoint(t *testing.T) {
	r, mock := newTestRouter(t)

	body := SendOtpRequest{
		FirstName:       "Linh",
		LastName:        "Tran",
		Email:           "a@x.com",
		Password:        "correctPassword123",
		ConfirmPassword: "correctPassword123",
		Image:           "img",
	}

	t.Run("Success", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/send-otp", body)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp AlertResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Alert)
		assert.Len(t, mock.SentNotifications, 1)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/send-otp", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/send-otp", SendOtpRequest{Email: "b@x.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		bad := body
		bad.Email = "c@x.com"
		bad.ConfirmPassword = "different"
		w := doJSON(t, r, http.MethodPost, "/send-otp", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		mock.FailNext = true
		bad := body
		bad.Email = "d@x.com"
		w := doJSON(t, r, http.MethodPost, "/send-otp", bad)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestVerifyAndLoginEndpoints(t *testing.T) {
	r, mock := newTestRouter(t)

	signup := SendOtpRequest{
		FirstName:       "Linh",
		LastName:        "Tran",
		Email:           "a@x.com",
		Password:        "correctPassword123",
		ConfirmPassword: "correctPassword123",
		Image:           "img",
	}
	w := doJSON(t, r, http.MethodPost, "/send-otp", signup)
	require.Equal(t, http.StatusOK, w.Code)
	otp := mock.SentNotifications[0].Data["Otp"]

	t.Run("LoginBeforeVerifyForbidden", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/login", LoginRequest{Email: "a@x.com", Password: "correctPassword123"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("WrongOtp", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/verify-otp", VerifyOtpRequest{Email: "a@x.com", Otp: "000000"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("VerifyOtp", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/verify-otp", VerifyOtpRequest{Email: "a@x.com", Otp: otp})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("LoginSuccessNeverLeaksCredential", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/login", LoginRequest{Email: "a@x.com", Password: "correctPassword123"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "a@x.com", resp.Data.Email)
		assert.NotEmpty(t, resp.Token)
		assert.NotContains(t, w.Body.String(), "password", "login payload must not carry password material")
		assert.NotContains(t, w.Body.String(), "correctPassword123")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/login", LoginRequest{Email: "a@x.com", Password: "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/login", LoginRequest{Email: "b@x.com", Password: "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResetEndpoints(t *testing.T) {
	r, mock := newTestRouter(t)

	signup := SendOtpRequest{
		FirstName:       "Linh",
		LastName:        "Tran",
		Email:           "a@x.com",
		Password:        "correctPassword123",
		ConfirmPassword: "correctPassword123",
		Image:           "img",
	}
	w := doJSON(t, r, http.MethodPost, "/send-otp", signup)
	require.Equal(t, http.StatusOK, w.Code)
	otp := mock.SentNotifications[0].Data["Otp"]
	w = doJSON(t, r, http.MethodPost, "/verify-otp", VerifyOtpRequest{Email: "a@x.com", Otp: otp})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("ForgotPasswordUnknownEmail", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/forgot-password", ForgotPasswordRequest{Email: "b@x.com"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ResetRoundTrip", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/forgot-password", ForgotPasswordRequest{Email: "a@x.com"})
		require.Equal(t, http.StatusOK, w.Code)

		resetLink := mock.SentNotifications[len(mock.SentNotifications)-1].Data["ResetLink"]
		require.NotEmpty(t, resetLink)
		token := resetLink[len("http://localhost:3000/reset-password/"):]

		w = doJSON(t, r, http.MethodGet, "/verify-reset-token/"+token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/reset-password", ResetPasswordRequest{Token: token, NewPassword: "newPassword456"})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/login", LoginRequest{Email: "a@x.com", Password: "newPassword456"})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, "/verify-reset-token/"+token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "consumed token should no longer validate")
	})

	t.Run("UnknownToken", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/verify-reset-token/no-such-token", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, r, http.MethodPost, "/reset-password", ResetPasswordRequest{Token: "no-such-token", NewPassword: "x12345678"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
