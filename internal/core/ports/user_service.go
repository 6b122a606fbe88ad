package ports

import (
	"context"

	"github.com/gourmetcare/platform/internal/core/domain"
)

// ProfileUpdate carries the self-serviceable fields. Role changes go through
// UpdateRole exclusively.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateProfile applies non-role fields to the actor's own record.
	UpdateProfile(ctx context.Context, actor *domain.User, upd ProfileUpdate) (*domain.User, error)

	// UpdateRole changes the target's role on behalf of actor, enforcing
	// the escalation rules (no self-target, superAdmin assignment reserved
	// to superAdmins, no superAdmin self-reassignment).
	UpdateRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) (*domain.User, error)

	Delete(ctx context.Context, actor *domain.User, targetID string) error
}
