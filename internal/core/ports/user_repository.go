package ports

import (
	"context"

	"github.com/contactdesk/contact-api/internal/core/domain"
)

// UserRepository is the persistence boundary for accounts. Implementations
// translate store-level failures (missing document, duplicate key) into the
// matching domain sentinel errors.
type UserRepository interface {
	CountByUsername(ctx context.Context, username string) (int64, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
