package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
)

func TestMemory_ReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(time.Hour)
	store := repo.ForToken("tok-1")

	if _, err := store.Read(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Read on empty = %v, want ErrNotFound", err)
	}

	if err := store.Write(ctx, []byte(`[{"product_id":"p1"}]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	payload, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(payload) != `[{"product_id":"p1"}]` {
		t.Fatalf("payload = %s", payload)
	}

	// Tokens are isolated from each other.
	if _, err := repo.ForToken("tok-2").Read(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other token Read = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(-time.Second)
	store := repo.ForToken("tok-1")

	if err := store.Write(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := store.Read(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expired Read = %v, want ErrNotFound", err)
	}
}

func TestMemory_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(-time.Second)
	if err := repo.ForToken("a").Write(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := repo.ForToken("b").Write(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 2 {
		t.Fatalf("DeleteExpired = %d, want 2", n)
	}
}
