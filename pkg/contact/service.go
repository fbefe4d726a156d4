package contact

import (
	"context"
	"fmt"
	"log/slog"
)

// ContactService stores contact-form submissions and customer shipping info.
type ContactService struct {
	repo ContactRepository
}

// NewContactService creates a new contact service
func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) SubmitContact(ctx context.Context, contact Contact) (Contact, error) {
	if contact.Name == "" || contact.Email == "" || contact.Phone == "" || contact.Message == "" {
		return Contact{}, ErrMissingFields
	}

	created, err := s.repo.CreateContact(ctx, contact)
	if err != nil {
		slog.Error("Failed to store contact submission", "email", contact.Email, "error", err)
		return Contact{}, fmt.Errorf("failed to store contact submission: %w", err)
	}
	return created, nil
}

func (s *ContactService) ListContacts(ctx context.Context) ([]Contact, error) {
	return s.repo.ListContacts(ctx)
}

func (s *ContactService) UpdateCustomerInfo(ctx context.Context, info CustomerInfo) (CustomerInfo, error) {
	if info.Email == "" || info.Address == "" || info.City == "" || info.Phone == "" {
		return CustomerInfo{}, ErrMissingFields
	}

	updated, err := s.repo.UpsertCustomerInfo(ctx, info)
	if err != nil {
		slog.Error("Failed to update customer info", "email", info.Email, "error", err)
		return CustomerInfo{}, fmt.Errorf("failed to update customer info: %w", err)
	}
	return updated, nil
}

func (s *ContactService) ListCustomerInfo(ctx context.Context) ([]CustomerInfo, error) {
	return s.repo.ListCustomerInfo(ctx)
}
