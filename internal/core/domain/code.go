package domain

import "time"

// VerificationCode is one pending OTP entry. The code itself is stored as a
// bcrypt hash; the plaintext only exists in the delivery path. At most one
// entry is live per identifier — storing a new one replaces the old.
type VerificationCode struct {
	Identifier string
	CodeHash   string
	CreatedAt  time.Time
}

// ExpiredAt reports whether the entry is stale at the given instant.
func (v VerificationCode) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(v.CreatedAt) > ttl
}
