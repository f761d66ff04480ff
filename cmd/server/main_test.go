package main

import "testing"

func TestConnectionLimiter(t *testing.T) {
	limiter := newConnectionLimiter(2)

	if _, ok := limiter.acquire("10.0.0.1"); !ok {
		t.Fatalf("first connection refused")
	}
	if _, ok := limiter.acquire("10.0.0.1"); !ok {
		t.Fatalf("second connection refused")
	}
	if count, ok := limiter.acquire("10.0.0.1"); ok || count != 2 {
		t.Fatalf("third connection: count = %d, ok = %v", count, ok)
	}
	if _, ok := limiter.acquire("10.0.0.2"); !ok {
		t.Fatalf("other ip refused")
	}

	if left := limiter.release("10.0.0.1"); left != 1 {
		t.Fatalf("after release = %d, want 1", left)
	}
	if _, ok := limiter.acquire("10.0.0.1"); !ok {
		t.Fatalf("slot not freed")
	}
	limiter.release("10.0.0.1")
	limiter.release("10.0.0.1")
	if _, present := limiter.ipCounter["10.0.0.1"]; present {
		t.Fatalf("idle ip kept in the table")
	}
}
