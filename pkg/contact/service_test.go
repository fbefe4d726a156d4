package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContact(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(NewInMemoryContactRepository())

	t.Run("Success", func(t *testing.T) {
		created, err := svc.SubmitContact(ctx, Contact{
			Name:    "Linh Tran",
			Email:   "a@x.com",
			Phone:   "0123456789",
			Message: "Where is my order?",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := svc.SubmitContact(ctx, Contact{Name: "Linh Tran"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("NewestFirst", func(t *testing.T) {
		_, err := svc.SubmitContact(ctx, Contact{
			Name: "Second", Email: "b@x.com", Phone: "0987654321", Message: "Hi",
		})
		require.NoError(t, err)

		contacts, err := svc.ListContacts(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, "Second", contacts[0].Name)
	})
}

func TestUpdateCustomerInfo(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(NewInMemoryContactRepository())

	t.Run("UpsertsByEmail", func(t *testing.T) {
		first, err := svc.UpdateCustomerInfo(ctx, CustomerInfo{
			Email: "a@x.com", Address: "12 Market St", City: "Hanoi", Phone: "0123456789",
		})
		require.NoError(t, err)

		second, err := svc.UpdateCustomerInfo(ctx, CustomerInfo{
			Email: "a@x.com", Address: "34 Garden Rd", City: "Hanoi", Phone: "0123456789",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "same email updates the same record")
		assert.Equal(t, "34 Garden Rd", second.Address)

		infos, err := svc.ListCustomerInfo(ctx)
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := svc.UpdateCustomerInfo(ctx, CustomerInfo{Email: "a@x.com"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}
