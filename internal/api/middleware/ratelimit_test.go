package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	wrapped := RateLimit(0.001, 2, nil)(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be limited, got %d", codes[2])
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	wrapped := RateLimit(0.001, 1, nil)(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("client %s: expected 200, got %d", addr, w.Code)
		}
	}

	// Same host on a different port shares the budget
	req := httptest.NewRequest("POST", "/generate", nil)
	req.RemoteAddr = "10.0.0.1:2"
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for repeated host, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	wrapped := RateLimit(0, 0, nil)(okHandler())

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest("POST", "/generate", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 with limiting disabled, got %d", i, w.Code)
		}
	}
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	wrapped := RateLimit(1, 1, nil)(okHandler())

	accepted := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			accepted++
		}
	}

	if accepted != 1 {
		t.Errorf("expected 1 accepted request from a rotating X-Forwarded-For, got %d", accepted)
	}
}

func TestRateLimit_TrustedProxyForwardsClient(t *testing.T) {
	resolver, err := NewClientResolver([]string{"10.1.0.0/16"})
	if err != nil {
		t.Fatalf("NewClientResolver: %v", err)
	}
	wrapped := RateLimit(0.001, 1, resolver)(okHandler())

	send := func(client string) int {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.RemoteAddr = "10.1.2.3:8080"
		req.Header.Set("X-Forwarded-For", client)
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("198.51.100.1"); code != http.StatusOK {
		t.Errorf("first client: expected 200, got %d", code)
	}
	if code := send("198.51.100.2"); code != http.StatusOK {
		t.Errorf("second client behind the same proxy: expected 200, got %d", code)
	}
	if code := send("198.51.100.1"); code != http.StatusTooManyRequests {
		t.Errorf("repeated client: expected 429, got %d", code)
	}
}

func TestClientLimiters_EvictsOnlyIdle(t *testing.T) {
	c := &clientLimiters{
		limit:   rate.Limit(0.001),
		burst:   1,
		clients: make(map[string]*rate.Limiter),
	}
	for i := 0; i < maxTrackedClients; i++ {
		c.get(fmt.Sprintf("idle-%d", i))
	}
	throttled := c.get("idle-0")
	throttled.Allow()

	c.get("newcomer")

	if len(c.clients) != 2 {
		t.Fatalf("expected throttled client and newcomer to remain, got %d", len(c.clients))
	}
	if c.get("idle-0") != throttled {
		t.Error("throttled client's limiter must survive eviction")
	}
}

func TestClientResolver_Key(t *testing.T) {
	resolver, err := NewClientResolver([]string{"10.0.0.1", "172.16.0.0/12"})
	if err != nil {
		t.Fatalf("NewClientResolver: %v", err)
	}

	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"direct", "192.0.2.1:5555", "", "192.0.2.1"},
		{"untrusted peer ignores header", "192.0.2.1:5555", "203.0.113.9", "192.0.2.1"},
		{"trusted peer", "10.0.0.1:80", "203.0.113.9", "203.0.113.9"},
		{"skips trusted hops", "10.0.0.1:80", "203.0.113.9, 172.16.5.5", "203.0.113.9"},
		{"right-most untrusted wins", "10.0.0.1:80", "1.1.1.1, 203.0.113.9", "203.0.113.9"},
		{"trusted peer without header", "10.0.0.1:80", "", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := resolver.Key(req); got != tt.want {
				t.Errorf("Key() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewClientResolver_Invalid(t *testing.T) {
	if _, err := NewClientResolver([]string{"not-an-ip"}); err == nil {
		t.Error("expected error for invalid address")
	}
	if _, err := NewClientResolver([]string{"10.0.0.0/99"}); err == nil {
		t.Error("expected error for invalid CIDR")
	}
}
