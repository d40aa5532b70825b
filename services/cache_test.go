package services

import (
	"fmt"
	"testing"
	"time"
)

func newTestCache(ttl time.Duration, maxEntries int) (*TTLCache, *time.Time) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(ttl, maxEntries)
	c.clock = func() time.Time { return now }
	return c, &now
}

func TestTTLCacheExpiry(t *testing.T) {
	cache, now := newTestCache(5*time.Minute, 10)

	cache.Set("intake:1:2025-06-15", 42)
	if v, ok := cache.Get("intake:1:2025-06-15"); !ok || v != 42 {
		t.Fatalf("fresh entry missing: %v %v", v, ok)
	}

	*now = now.Add(5*time.Minute + time.Second)
	if _, ok := cache.Get("intake:1:2025-06-15"); ok {
		t.Error("expired entry still served")
	}
}

func TestTTLCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(time.Hour, 10)
	cache.Set("k", "v")
	cache.Invalidate("k")
	if _, ok := cache.Get("k"); ok {
		t.Error("invalidated entry still served")
	}
	cache.Invalidate("never-set") // must not panic
}

func TestTTLCacheBoundedEviction(t *testing.T) {
	cache, now := newTestCache(time.Hour, 3)

	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("k%d", i), i)
		*now = now.Add(time.Minute)
	}
	cache.Set("k3", 3)

	if _, ok := cache.Get("k0"); ok {
		t.Error("oldest entry survived eviction")
	}
	for _, k := range []string{"k1", "k2", "k3"} {
		if _, ok := cache.Get(k); !ok {
			t.Errorf("entry %s evicted unexpectedly", k)
		}
	}
}
