package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type entry struct {
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache[entry], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return NewCache[entry](rc, "blog"), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if got, err := c.Get(ctx, "a"); err != nil || got != nil {
		t.Fatalf("miss: got %v, %v", got, err)
	}
	if err := c.Set(ctx, "a", &entry{Name: "x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("blog:a") {
		t.Fatal("expected prefixed key")
	}
	got, err := c.Get(ctx, "a")
	if err != nil || got == nil || got.Name != "x" {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := c.Get(ctx, "a"); got != nil {
		t.Fatalf("expected miss after delete, got %v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	if err := c.Set(ctx, "b", &entry{Name: "y"}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if got, _ := c.Get(ctx, "b"); got != nil {
		t.Fatalf("expected expiry, got %v", got)
	}
}

func TestCacheNilClient(t *testing.T) {
	c := NewCache[entry](nil, "")
	if _, err := c.Get(context.Background(), "a"); err == nil {
		t.Fatal("expected error")
	}
}
