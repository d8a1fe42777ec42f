package ratelimit

import "testing"

func TestAllow_ConsumesCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0.001) {
			t.Fatalf("expected token %d to be available", i)
		}
	}
	if l.Allow("k", 3, 0.001) {
		t.Fatal("expected bucket to be empty")
	}
}

func TestAllow_KeysIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.001) {
		t.Fatal("expected token for a")
	}
	if !l.Allow("b", 1, 0.001) {
		t.Fatal("expected token for b")
	}
}
