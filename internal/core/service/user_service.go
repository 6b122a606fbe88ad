package service

import (
	"context"
	"time"

	"github.com/gourmetcare/platform/internal/core/domain"
	"github.com/gourmetcare/platform/internal/core/ports"
)

// UserService implements account reads and the privileged mutation paths.
// Route-level gates establish the caller's tier; the escalation rules here
// are enforced again regardless, so a misconfigured route cannot open a
// promotion hole.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, upd ports.ProfileUpdate) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != "" {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		user.LastName = upd.LastName
	}
	if upd.PhoneNumber != "" {
		user.PhoneNumber = upd.PhoneNumber
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func (s *UserService) UpdateRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}

	// Nobody changes their own role through this path, superAdmins included.
	// Rejected before any lookup so even a no-op payload gets a 403.
	if actor.ID == targetID {
		return nil, domain.ErrForbidden
	}

	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	// The superAdmin role is only grantable by a superAdmin.
	if role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}

	return s.repo.UpdateRole(ctx, targetID, role)
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, targetID string) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if actor.ID == targetID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, targetID)
}
