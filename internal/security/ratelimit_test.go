package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(rate int, window time.Duration) (*RateLimiter, *time.Time) {
	current := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     func() time.Time { return current },
	}
	return rl, &current
}

func TestAllowConsumesTokens(t *testing.T) {
	rl, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("first key should be allowed")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("second key should have its own bucket")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("first key should be exhausted")
	}
}

func TestWindowRefill(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Minute)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("second request should be denied")
	}

	*clock = clock.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Error("request after window elapsed should be allowed")
	}
}

func TestRemoveStale(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Minute)

	rl.Allow("1.2.3.4")
	*clock = clock.Add(3 * time.Minute)
	rl.removeStale()

	if len(rl.buckets) != 0 {
		t.Errorf("expected stale bucket removed, %d remain", len(rl.buckets))
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{"remote addr with port", "10.0.0.1:4567", nil, "10.0.0.1"},
		{"x-forwarded-for single", "10.0.0.1:4567", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:4567", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:4567", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.expected {
				t.Errorf("ClientIP = %q, expected %q", got, tt.expected)
			}
		})
	}
}
