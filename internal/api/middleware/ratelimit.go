package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/newthinker/tickr/internal/api/response"
	"github.com/newthinker/tickr/internal/core"
	"golang.org/x/time/rate"
)

// maxTrackedClients caps the per-client limiter table.
const maxTrackedClients = 10000

// ClientResolver identifies the caller of a request. X-Forwarded-For is only
// consulted when the connection comes from a trusted proxy.
type ClientResolver struct {
	trusted []*net.IPNet
}

// NewClientResolver parses trusted proxy addresses. Entries may be single IPs
// or CIDR ranges. An empty list trusts no proxy.
func NewClientResolver(trustedProxies []string) (*ClientResolver, error) {
	c := &ClientResolver{}
	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", entry)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			c.trusted = append(c.trusted, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		c.trusted = append(c.trusted, network)
	}
	return c, nil
}

func (c *ClientResolver) isTrusted(addr string) bool {
	if c == nil {
		return false
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range c.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// Key returns the client address for r. Behind trusted proxies it is the
// right-most X-Forwarded-For entry that is not itself a trusted proxy;
// otherwise it is the connection's remote host.
func (c *ClientResolver) Key(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !c.isTrusted(host) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !c.isTrusted(hop) {
			return hop
		}
	}
	return host
}

// RateLimit returns middleware allowing each client rps requests per second
// with the given burst. rps <= 0 disables limiting. A nil resolver keys
// clients by remote host only.
func RateLimit(rps float64, burst int, clients *ClientResolver) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = 1
	}
	limiters := &clientLimiters{
		limit:   rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rate.Limiter),
	}

	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.get(clients.Key(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				response.Error(w, http.StatusTooManyRequests, core.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type clientLimiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*rate.Limiter
}

func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.clients[key]; ok {
		return l
	}
	if len(c.clients) >= maxTrackedClients {
		c.evictIdle()
	}
	l := rate.NewLimiter(c.limit, c.burst)
	c.clients[key] = l
	return l
}

// evictIdle drops limiters whose bucket has refilled; they behave exactly
// like a fresh limiter. Clients still being throttled are kept.
func (c *clientLimiters) evictIdle() {
	full := float64(c.burst)
	for key, l := range c.clients {
		if l.Tokens() >= full {
			delete(c.clients, key)
		}
	}
}
