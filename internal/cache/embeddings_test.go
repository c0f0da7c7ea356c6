package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestCache(t *testing.T, ttl time.Duration) (*EmbeddingCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	c, err := NewEmbeddingCache(s.Addr(), ttl)
	if err != nil {
		t.Fatalf("failed to create embedding cache: %v", err)
	}
	return c, s
}

func TestSetAndGet(t *testing.T) {
	c, s := setupTestCache(t, time.Hour)
	defer c.Close()
	defer s.Close()

	ctx := context.Background()
	vector := []float32{0.1, -0.5, 0.75}

	if err := c.Set(ctx, "react", vector); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found, err := c.Get(ctx, "react")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if len(got) != len(vector) {
		t.Fatalf("vector length = %d; want %d", len(got), len(vector))
	}
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("vector[%d] = %f; want %f", i, got[i], vector[i])
		}
	}
}

func TestGetMiss(t *testing.T) {
	c, s := setupTestCache(t, time.Hour)
	defer c.Close()
	defer s.Close()

	_, found, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected cache miss")
	}
}

func TestTTLExpiry(t *testing.T) {
	c, s := setupTestCache(t, time.Minute)
	defer c.Close()
	defer s.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "jwt", []float32{1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, "jwt")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("entry should have expired")
	}
}

func TestInvalidate(t *testing.T) {
	c, s := setupTestCache(t, time.Hour)
	defer c.Close()
	defer s.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "python", []float32{1, 2}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Invalidate(ctx, "python"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	_, found, err := c.Get(ctx, "python")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("entry should have been invalidated")
	}
}
