package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gourmetcare/platform/internal/core/domain"
)

// CodeStore keeps pending verification codes in Redis so multiple API
// instances can share them. Key format: otp:<identifier>. Each entry holds
// the bcrypt hash and its creation time; Redis expiry doubles as a hard TTL
// backstop on top of the service-level check.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeStore wraps the given Redis client. ttl bounds how long an unused
// code survives; it should be at least the service's verification window.
func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CodeStore{client: client, ttl: ttl}
}

func (s *CodeStore) Store(ctx context.Context, entry domain.VerificationCode) error {
	// HSET overwrites both fields in one command, so the
	// one-active-code-per-identifier invariant holds without a transaction.
	err := s.client.HSet(ctx, s.key(entry.Identifier), map[string]interface{}{
		"hash":       entry.CodeHash,
		"created_at": entry.CreatedAt.Unix(),
	}).Err()
	if err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	if err := s.client.Expire(ctx, s.key(entry.Identifier), s.ttl).Err(); err != nil {
		return fmt.Errorf("expire code: %w", err)
	}
	return nil
}

func (s *CodeStore) Lookup(ctx context.Context, identifier string) (domain.VerificationCode, error) {
	vals, err := s.client.HGetAll(ctx, s.key(identifier)).Result()
	if err != nil {
		return domain.VerificationCode{}, fmt.Errorf("lookup code: %w", err)
	}
	if len(vals) == 0 {
		return domain.VerificationCode{}, domain.ErrCodeNotFound
	}

	var createdAt int64
	if _, err := fmt.Sscanf(vals["created_at"], "%d", &createdAt); err != nil {
		return domain.VerificationCode{}, fmt.Errorf("decode code entry: %w", err)
	}

	return domain.VerificationCode{
		Identifier: identifier,
		CodeHash:   vals["hash"],
		CreatedAt:  time.Unix(createdAt, 0).UTC(),
	}, nil
}

func (s *CodeStore) Delete(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, s.key(identifier)).Err(); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	return nil
}

func (s *CodeStore) key(identifier string) string {
	return "otp:" + identifier
}
