package otpstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gourmetcare/platform/internal/core/domain"
)

func entry(identifier, hash string) domain.VerificationCode {
	return domain.VerificationCode{
		Identifier: identifier,
		CodeHash:   hash,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestMemory_StoreLookupDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Lookup(ctx, "alice@example.com"); err != domain.ErrCodeNotFound {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}

	if err := store.Store(ctx, entry("alice@example.com", "hash-1")); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	got, err := store.Lookup(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got.CodeHash != "hash-1" {
		t.Fatalf("expected hash-1, got %q", got.CodeHash)
	}

	if err := store.Delete(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Lookup(ctx, "alice@example.com"); err != domain.ErrCodeNotFound {
		t.Fatalf("expected ErrCodeNotFound after delete, got %v", err)
	}
}

func TestMemory_StoreOverwrites(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_ = store.Store(ctx, entry("alice@example.com", "hash-1"))
	_ = store.Store(ctx, entry("alice@example.com", "hash-2"))

	got, err := store.Lookup(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got.CodeHash != "hash-2" {
		t.Fatalf("expected latest entry, got %q", got.CodeHash)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("user-%d@example.com", i%4)
			for j := 0; j < 100; j++ {
				_ = store.Store(ctx, entry(id, fmt.Sprintf("hash-%d-%d", i, j)))
				if _, err := store.Lookup(ctx, id); err != nil && err != domain.ErrCodeNotFound {
					t.Errorf("Lookup returned error: %v", err)
					return
				}
				_ = store.Delete(ctx, id)
			}
		}(i)
	}
	wg.Wait()
}
