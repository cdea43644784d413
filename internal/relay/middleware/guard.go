package middleware

import (
	"log/slog"
	"sync"
	"time"
)

// JoinGuard bans addresses that keep presenting unknown share codes.
type JoinGuard struct {
	entries     map[string]*guardEntry
	logger      *slog.Logger
	now         func() time.Time
	banDuration time.Duration
	maxFailures int
	mu          sync.Mutex
}

type guardEntry struct {
	bannedUntil time.Time
	failures    int
}

// NewJoinGuard создает guard: maxFailures неудачных попыток подряд дают бан на banDuration
func NewJoinGuard(maxFailures int, banDuration time.Duration, logger *slog.Logger) *JoinGuard {
	return &JoinGuard{
		entries:     make(map[string]*guardEntry),
		logger:      logger,
		now:         time.Now,
		banDuration: banDuration,
		maxFailures: maxFailures,
	}
}

// Banned reports whether ip is currently banned. An elapsed ban is forgotten.
func (g *JoinGuard) Banned(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[ip]
	if !ok || e.bannedUntil.IsZero() {
		return false
	}
	if g.now().Before(e.bannedUntil) {
		return true
	}

	delete(g.entries, ip)
	return false
}

// Failure records a failed join and reports whether ip is banned now.
func (g *JoinGuard) Failure(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[ip]
	if !ok {
		e = &guardEntry{}
		g.entries[ip] = e
	}
	e.failures++

	if e.failures >= g.maxFailures {
		e.bannedUntil = g.now().Add(g.banDuration)
		g.logger.Warn("Address banned after failed joins", "ip", ip, "failures", e.failures, "ban", g.banDuration)
		return true
	}
	return false
}

// Success clears the failure count of ip.
func (g *JoinGuard) Success(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, ip)
}
