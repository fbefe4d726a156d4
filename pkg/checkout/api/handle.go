package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/freshmart/freshmart/pkg/checkout"
)

type Handler struct {
	checkoutService *checkout.CheckoutService
}

func NewHandler(checkoutService *checkout.CheckoutService) *Handler {
	return &Handler{
		checkoutService: checkoutService,
	}
}

func Routes(r chi.Router, h *Handler) {
	r.Post("/create-mock-checkout-session", h.CreateMockCheckoutSession)
}

type CreateSessionRequest struct {
	Items []checkout.CartItem `json:"items"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateMockCheckoutSession validates the cart and returns a mock session payload.
func (h *Handler) CreateMockCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode checkout request", "err", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	session, err := h.checkoutService.CreateMockSession(req.Items)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Cart is empty. Add items before checkout."})
		case errors.Is(err, checkout.ErrTooFewItems):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Insufficient items for checkout. Minimum 2 items required."})
		case errors.Is(err, checkout.ErrTotalTooLow):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Total amount is too low for checkout."})
		default:
			slog.Error("Failed to create checkout session", "err", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "Failed to create checkout session"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, session)
}
