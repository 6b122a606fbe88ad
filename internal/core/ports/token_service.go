package ports

import "time"

// TokenService issues and verifies signed access tokens. Both operations are
// pure functions over the configured secret; there is no server-side session
// state and no revocation list (logout is client-side token discard).
type TokenService interface {
	Issue(identifier string) (string, error)
	Verify(token string) (identifier string, expiresAt time.Time, err error)
}
