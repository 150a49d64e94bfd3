// Package ratelimit throttles repeated team generation requests per client.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Config struct {
	// Minimum time between two accepted requests from the same client.
	Cooldown time.Duration
	// Max accepted requests per client per hour; 0 disables the cap.
	MaxPerHour int

	// Clock for testing (nil uses real time)
	Clock Clock
}

func DefaultConfig() *Config {
	return &Config{
		Cooldown:   2 * time.Second,
		MaxPerHour: 120,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

type entry struct {
	count   int
	firstAt time.Time // First request in the hourly window
	lastAt  time.Time // Most recent accepted request
}

// Limiter enforces a cooldown and an hourly cap per client key.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	byKey  map[string]*entry

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		byKey:         make(map[string]*entry),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// Allow checks the limits for key and, when allowed, records the request in
// the same critical section.
func (l *Limiter) Allow(key string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.byKey[key]
	if e != nil {
		if elapsed := now.Sub(e.lastAt); elapsed < l.config.Cooldown {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.Cooldown - elapsed,
				Reason:     "cooldown",
			}
		}
		inWindow := now.Sub(e.firstAt) < time.Hour
		if inWindow && l.config.MaxPerHour > 0 && e.count >= l.config.MaxPerHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "hourly_limit",
			}
		}
		if inWindow {
			e.count++
			e.lastAt = now
			return LimitResult{Allowed: true}
		}
	}

	l.byKey[key] = &entry{count: 1, firstAt: now, lastAt: now}
	return LimitResult{Allowed: true}
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.byKey {
		if now.Sub(e.lastAt) > time.Hour && now.Sub(e.lastAt) > l.config.Cooldown {
			delete(l.byKey, k)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKey)
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost public IP from X-Forwarded-For.
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			return strings.TrimSpace(parts[len(parts)-1])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port (unix socket or test harness)
		return r.RemoteAddr
	}
	return ip
}

var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// isPrivateIP handles IPv4-mapped IPv6 addresses (e.g. ::ffff:192.168.1.1).
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}

	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func LogRateLimitExceeded(ctx context.Context, limitType, clientIP string, result LimitResult) {
	log.Ctx(ctx).Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("ip", clientIP).
		Str("reason", result.Reason).
		Dur("retry_after", result.RetryAfter).
		Msg("Rate limit exceeded")
}
