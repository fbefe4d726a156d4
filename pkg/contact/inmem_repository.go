package contact

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryContactRepository implements ContactRepository using in-memory storage
type InMemoryContactRepository struct {
	mu       sync.RWMutex
	contacts []Contact
	infos    map[string]CustomerInfo
}

// NewInMemoryContactRepository creates a new in-memory contact repository
func NewInMemoryContactRepository() *InMemoryContactRepository {
	return &InMemoryContactRepository{
		infos: make(map[string]CustomerInfo),
	}
}

func (r *InMemoryContactRepository) CreateContact(ctx context.Context, contact Contact) (Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact.ID = uuid.New()
	contact.CreatedAt = time.Now().UTC()
	r.contacts = append([]Contact{contact}, r.contacts...)
	return contact, nil
}

func (r *InMemoryContactRepository) ListContacts(ctx context.Context) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Contact, len(r.contacts))
	copy(out, r.contacts)
	return out, nil
}

func (r *InMemoryContactRepository) UpsertCustomerInfo(ctx context.Context, info CustomerInfo) (CustomerInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.infos[info.Email]
	if ok {
		info.ID = existing.ID
	} else {
		info.ID = uuid.New()
	}
	info.UpdatedAt = time.Now().UTC()
	r.infos[info.Email] = info
	return info, nil
}

func (r *InMemoryContactRepository) ListCustomerInfo(ctx context.Context) ([]CustomerInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []CustomerInfo
	for _, ci := range r.infos {
		out = append(out, ci)
	}
	return out, nil
}
