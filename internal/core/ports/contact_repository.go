package ports

import (
	"context"

	"github.com/contactdesk/contact-api/internal/core/domain"
)

// ContactRepository is the persistence boundary for address-book entries.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	FindAll(ctx context.Context) ([]domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	// Update persists the given contact, matching on both ID and UserID so a
	// caller can never modify somebody else's entry.
	Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
