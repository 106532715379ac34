package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4", 1) {
			t.Fatalf("expected request %d to be allowed", i)
		}
	}
	if rl.Allow("1.2.3.4", 1) {
		t.Fatalf("expected the 4th request within the window to be rejected")
	}
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	if !rl.Allow("1.2.3.4", 1) {
		t.Fatalf("expected the first client's request to be allowed")
	}
	if !rl.Allow("5.6.7.8", 1) {
		t.Fatalf("expected a different client's request to be allowed independently")
	}
}

func TestRateLimiterChargesHigherWeightForExpensiveOperations(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	if !rl.Allow("1.2.3.4", 4) {
		t.Fatalf("expected an order-entry-weighted request to be allowed")
	}
	if !rl.Allow("1.2.3.4", 1) {
		t.Fatalf("expected one more unit of budget to be allowed")
	}
	if rl.Allow("1.2.3.4", 1) {
		t.Fatalf("expected the budget to be exhausted")
	}
}
