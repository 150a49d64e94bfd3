package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_Cooldown(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Cooldown: 2 * time.Second, Clock: clock})
	defer limiter.Close()

	if result := limiter.Allow("203.0.113.7"); !result.Allowed {
		t.Fatalf("First request should be allowed, got blocked: %s", result.Reason)
	}

	clock.Advance(500 * time.Millisecond)
	result := limiter.Allow("203.0.113.7")
	if result.Allowed {
		t.Fatalf("Request within cooldown should be blocked")
	}
	if result.Reason != "cooldown" {
		t.Fatalf("Allow() reason = %q, want %q", result.Reason, "cooldown")
	}
	if result.RetryAfter != 1500*time.Millisecond {
		t.Fatalf("Allow() RetryAfter = %v, want 1.5s", result.RetryAfter)
	}

	if result := limiter.Allow("203.0.113.8"); !result.Allowed {
		t.Fatalf("Other clients should not share the cooldown")
	}

	clock.Advance(1500 * time.Millisecond)
	if result := limiter.Allow("203.0.113.7"); !result.Allowed {
		t.Fatalf("Request after cooldown should be allowed, got blocked: %s", result.Reason)
	}
}

func TestAllow_BlockedRequestDoesNotExtendCooldown(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Cooldown: 2 * time.Second, Clock: clock})
	defer limiter.Close()

	limiter.Allow("client")
	clock.Advance(time.Second)
	limiter.Allow("client")
	clock.Advance(time.Second)

	if result := limiter.Allow("client"); !result.Allowed {
		t.Fatalf("Blocked request must not reset the cooldown, got %s", result.Reason)
	}
}

func TestAllow_HourlyLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Cooldown: time.Millisecond, MaxPerHour: 3, Clock: clock})
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		if result := limiter.Allow("client"); !result.Allowed {
			t.Fatalf("Request %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		clock.Advance(time.Second)
	}

	result := limiter.Allow("client")
	if result.Allowed || result.Reason != "hourly_limit" {
		t.Fatalf("Allow() = %+v, want hourly_limit block", result)
	}
	if result.RetryAfter != time.Hour-3*time.Second {
		t.Fatalf("Allow() RetryAfter = %v, want %v", result.RetryAfter, time.Hour-3*time.Second)
	}

	clock.Advance(time.Hour)
	if result := limiter.Allow("client"); !result.Allowed {
		t.Fatalf("Request in a new window should be allowed, got blocked: %s", result.Reason)
	}
}

func TestCleanupRemovesStaleEntries(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{Cooldown: time.Second, Clock: clock})
	defer limiter.Close()

	limiter.Allow("stale")
	clock.Advance(2 * time.Hour)
	limiter.Allow("fresh")

	limiter.cleanup()
	if got := limiter.size(); got != 1 {
		t.Fatalf("cleanup() left %d entries, want 1", got)
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50",
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1",
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("POST", "/api/v1/teams/balance", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"172.20.0.1", true},
		{"::ffff:192.168.1.1", true},
		{"::1", true},
		{"203.0.113.9", false},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := isPrivateIP(tt.ip); got != tt.want {
			t.Errorf("isPrivateIP(%q) = %t, want %t", tt.ip, got, tt.want)
		}
	}
}
