// Package otpstore provides the in-process verification code store. Entries
// live only for the lifetime of the process; a restart drops all pending
// codes, which is acceptable for short-lived OTPs.
package otpstore

import (
	"context"
	"sync"

	"github.com/gourmetcare/platform/internal/core/domain"
)

// Memory is a mutex-guarded map from identifier to its single pending code.
// The mutex serializes issue/verify for the same identifier, so a Lookup that
// races a Store observes either the old entry or the new one, never a torn
// mix. Construct with NewMemory and pass by reference; the zero value is not
// usable.
type Memory struct {
	mu      sync.Mutex
	entries map[string]domain.VerificationCode
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]domain.VerificationCode)}
}

// Store replaces any pending entry for the identifier wholesale.
func (m *Memory) Store(_ context.Context, entry domain.VerificationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Identifier] = entry
	return nil
}

func (m *Memory) Lookup(_ context.Context, identifier string) (domain.VerificationCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[identifier]
	if !ok {
		return domain.VerificationCode{}, domain.ErrCodeNotFound
	}
	return entry, nil
}

func (m *Memory) Delete(_ context.Context, identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, identifier)
	return nil
}
