package ports

import (
	"context"

	"github.com/gourmetcare/platform/internal/core/domain"
)

// UserRepository defines the persistence collaborator for user accounts.
// Implementations must return domain.ErrUserNotFound for missing records and
// domain.ErrUserExists on a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
