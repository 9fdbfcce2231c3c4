package shared

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCounterStoreCountsWithinWindow(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		count, ttl, err := store.Incr(ctx, "rl:login:1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if count != i {
			t.Errorf("count = %d, want %d", count, i)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Errorf("ttl = %v, want within (0, 1m]", ttl)
		}
	}
}

func TestMemoryCounterStoreKeysAreIndependent(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	if _, _, err := store.Incr(ctx, "rl:login:a", time.Minute); err != nil {
		t.Fatal(err)
	}
	count, _, err := store.Incr(ctx, "rl:login:b", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("second identity count = %d, want 1", count)
	}
}

func TestMemoryCounterStoreWindowExpiry(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	store.SetClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		if _, _, err := store.Incr(ctx, "k", time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	// Just before expiry the window still holds.
	now = now.Add(59 * time.Second)
	count, ttl, err := store.Incr(ctx, "k", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("count before expiry = %d, want 4", count)
	}
	if ttl != time.Second {
		t.Errorf("ttl before expiry = %v, want 1s", ttl)
	}

	// At the boundary a fresh window starts.
	now = now.Add(time.Second)
	count, ttl, err = store.Incr(ctx, "k", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count after expiry = %d, want 1", count)
	}
	if ttl != time.Minute {
		t.Errorf("ttl after expiry = %v, want full window", ttl)
	}
}

func TestMemoryCounterStoreReset(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := store.Incr(ctx, "k", time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Reset(ctx, "k"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	count, _, err := store.Incr(ctx, "k", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count after reset = %d, want 1", count)
	}
}

func TestRateLimitRuleValid(t *testing.T) {
	cases := []struct {
		rule  RateLimitRule
		valid bool
	}{
		{RateLimitRule{MaxRequests: 10, Window: time.Minute}, true},
		{RateLimitRule{MaxRequests: 0, Window: time.Minute}, false},
		{RateLimitRule{MaxRequests: -1, Window: time.Minute}, false},
		{RateLimitRule{MaxRequests: 10, Window: 0}, false},
	}

	for _, tc := range cases {
		if got := tc.rule.Valid(); got != tc.valid {
			t.Errorf("Valid(%+v) = %v, want %v", tc.rule, got, tc.valid)
		}
	}
}
