package ports

import (
	"context"

	"github.com/gourmetcare/platform/internal/core/domain"
)

// Registration carries the fields accepted when creating an account. Role is
// deliberately absent: new accounts always start as domain.RoleUser.
type Registration struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Code        string
}

type AuthService interface {
	// SendVerificationCode issues a fresh OTP for the identifier, replacing
	// any pending one, and hands it to the delivery collaborator. The
	// plaintext code is returned for non-production echo.
	SendVerificationCode(ctx context.Context, identifier string) (string, error)

	// Register creates an account after checking the OTP and returns the
	// new user together with a signed access token.
	Register(ctx context.Context, reg Registration) (*domain.User, string, error)

	// Login checks the OTP for an existing account and returns the user
	// together with a signed access token.
	Login(ctx context.Context, email, code string) (*domain.User, string, error)
}
