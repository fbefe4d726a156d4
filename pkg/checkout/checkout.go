package checkout

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

var (
	// ErrEmptyCart is returned when checkout is requested with no items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrTooFewItems is returned when the cart holds fewer than the minimum item count
	ErrTooFewItems = errors.New("insufficient items for checkout")

	// ErrTotalTooLow is returned when the cart total is below the checkout minimum
	ErrTotalTooLow = errors.New("total amount is too low for checkout")
)

const (
	minItems = 2
	minTotal = 15.0
)

type CartItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

type Session struct {
	SessionID   string  `json:"sessionId"`
	Message     string  `json:"message"`
	TotalAmount float64 `json:"totalAmount"`
	PaymentUrl  string  `json:"paymentUrl"`
	CancelUrl   string  `json:"cancelUrl"`
}

// CheckoutService creates mock payment sessions. No real payment processing
// happens here.
type CheckoutService struct {
	frontendUrl string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(frontendUrl string) *CheckoutService {
	return &CheckoutService{frontendUrl: frontendUrl}
}

// CreateMockSession validates the cart and returns a mock payment session.
func (s *CheckoutService) CreateMockSession(items []CartItem) (Session, error) {
	if len(items) == 0 {
		return Session{}, ErrEmptyCart
	}
	if len(items) < minItems {
		return Session{}, ErrTooFewItems
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Qty)
	}
	if total < minTotal {
		return Session{}, ErrTotalTooLow
	}

	session := Session{
		SessionID:   fmt.Sprintf("mock_session_%s", uuid.New().String()),
		Message:     "This is a mock payment session",
		TotalAmount: total,
		PaymentUrl:  fmt.Sprintf("%s/success", s.frontendUrl),
		CancelUrl:   fmt.Sprintf("%s/cancel", s.frontendUrl),
	}

	slog.Info("Mock checkout session created", "session_id", session.SessionID, "total", total)
	return session, nil
}
