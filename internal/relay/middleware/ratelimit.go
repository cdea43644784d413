package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter представляет rate limiter на основе токен-бакета (token bucket)
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *slog.Logger
	cleanupC chan struct{}
	rate     int
	window   time.Duration
	mu       sync.RWMutex
	stopOnce sync.Once
}

// bucket представляет bucket для конкретного IP
type bucket struct {
	lastRefill time.Time
	tokens     int
	mu         sync.Mutex
}

// NewRateLimiter создает новый rate limiter
// rate - максимальное количество запросов в окне window
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		cleanupC: make(chan struct{}),
	}

	// Запускаем периодическую очистку старых buckets
	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивные buckets
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет buckets, которые не использовались дольше двух окон
func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, b := range rl.buckets {
		b.mu.Lock()
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
		b.mu.Unlock()
	}
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.cleanupC) })
}

// Allow проверяет, разрешен ли запрос для данного ключа (обычно IP адрес)
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{
			tokens:     rl.rate,
			lastRefill: time.Now(),
		}
		rl.buckets[key] = b
	}
	rl.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// PathRateLimit задает лимит для одного пути
type PathRateLimit struct {
	Path   string
	Rate   int
	Window time.Duration
}

// PathLimiter применяет отдельный лимит к каждому перечисленному пути; остальные пути не ограничиваются
type PathLimiter struct {
	limiters map[string]*RateLimiter
	clientIP func(*http.Request) string
	logger   *slog.Logger
}

// NewPathLimiter создает limiter'ы для путей
func NewPathLimiter(limits []PathRateLimit, clientIP func(*http.Request) string, logger *slog.Logger) *PathLimiter {
	pl := &PathLimiter{
		limiters: make(map[string]*RateLimiter, len(limits)),
		clientIP: clientIP,
		logger:   logger,
	}
	for _, limit := range limits {
		pl.limiters[limit.Path] = NewRateLimiter(limit.Rate, limit.Window, logger)
	}
	return pl
}

// Middleware отвечает 429, когда клиент исчерпал лимит пути
func (pl *PathLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter, exists := pl.limiters[r.URL.Path]
		if !exists {
			next.ServeHTTP(w, r)
			return
		}

		key := pl.clientIP(r)
		if !limiter.Allow(key) {
			pl.logger.Warn("Rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", sanitizePath(r.URL.Path),
			)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Stop останавливает все limiter'ы
func (pl *PathLimiter) Stop() {
	for _, l := range pl.limiters {
		l.Stop()
	}
}

// ClientIP возвращает функцию извлечения адреса клиента
// Заголовки X-Forwarded-For и X-Real-IP учитываются только за доверенным прокси
func ClientIP(trustProxy bool) func(*http.Request) string {
	return func(r *http.Request) string {
		if trustProxy {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				// первый адрес в списке - реальный клиент
				first, _, _ := strings.Cut(xff, ",")
				return strings.TrimSpace(first)
			}
			if xri := r.Header.Get("X-Real-IP"); xri != "" {
				return xri
			}
		}

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}
		return host
	}
}
