package ports

import (
	"context"

	"github.com/contactdesk/contact-api/internal/core/domain"
)

type CreateContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	UserID    string
}

// UpdateContactInput carries the mutable contact fields. Empty means unchanged.
type UpdateContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type ContactService interface {
	Create(ctx context.Context, in CreateContactInput) (*domain.Contact, error)
	FindAll(ctx context.Context) ([]domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, id, userID string, in UpdateContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
