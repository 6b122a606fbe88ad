package ports

import (
	"context"

	"github.com/gourmetcare/platform/internal/core/domain"
)

// CodeStore holds pending verification codes keyed by identifier (email or
// phone number). Store replaces any prior entry for the identifier wholesale;
// Lookup returns domain.ErrCodeNotFound when nothing is pending. The store is
// shared across in-flight requests, so implementations must serialize access
// to a given identifier.
type CodeStore interface {
	Store(ctx context.Context, entry domain.VerificationCode) error
	Lookup(ctx context.Context, identifier string) (domain.VerificationCode, error)
	Delete(ctx context.Context, identifier string) error
}

// CodeSender delivers a plaintext verification code to its identifier. The
// mail/SMS transport lives outside this service; the default implementation
// just logs.
type CodeSender interface {
	Send(ctx context.Context, identifier, code string) error
}
