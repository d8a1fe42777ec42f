package cache

import (
	"testing"
	"time"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", 42, time.Minute)
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if v.(int) != 42 {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestTTLCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", 0)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit for unbounded entry")
	}
}

func TestTTLCache_KeyLockStable(t *testing.T) {
	c := NewTTLCache()
	if c.KeyLock("a") != c.KeyLock("a") {
		t.Fatal("same key must return the same lock")
	}
	if c.KeyLock("a") == c.KeyLock("b") {
		t.Fatal("distinct keys must not share a lock")
	}
}
