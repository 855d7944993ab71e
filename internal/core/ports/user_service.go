package ports

import (
	"context"

	"github.com/contactdesk/contact-api/internal/core/domain"
)

// UpdateUserInput carries the mutable profile fields. Empty means unchanged;
// a non-empty Password is re-hashed before it is stored.
type UpdateUserInput struct {
	Name     string
	Password string
}

type UserService interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
