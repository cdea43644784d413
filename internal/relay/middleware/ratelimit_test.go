package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	logger := setupTestLogger()

	t.Run("Requests over limit are denied", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute, logger)
		defer limiter.Stop()

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"), fmt.Sprintf("request %d should be allowed", i+1))
		}
		assert.False(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("Different keys are tracked separately", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute, logger)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("Tokens refill after window expires", func(t *testing.T) {
		limiter := NewRateLimiter(1, 50*time.Millisecond, logger)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("Stop is idempotent", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute, logger)
		limiter.Stop()
		assert.NotPanics(t, limiter.Stop)
	})
}

func TestRateLimiter_CleanupOldBuckets(t *testing.T) {
	limiter := NewRateLimiter(5, 10*time.Millisecond, setupTestLogger())
	defer limiter.Stop()

	limiter.Allow("10.0.0.1")
	time.Sleep(30 * time.Millisecond)
	limiter.cleanupOldBuckets()

	limiter.mu.RLock()
	defer limiter.mu.RUnlock()
	assert.Empty(t, limiter.buckets)
}

func TestPathLimiter(t *testing.T) {
	var logBuf syncBuffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	pl := NewPathLimiter([]PathRateLimit{
		{Path: "/ws/v1/join", Rate: 2, Window: time.Minute},
	}, ClientIP(false), logger)
	defer pl.Stop()

	handler := pl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(path, remote string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("Limited path", func(t *testing.T) {
		// порт не влияет на ключ
		assert.Equal(t, http.StatusOK, do("/ws/v1/join", "10.0.0.1:1000"))
		assert.Equal(t, http.StatusOK, do("/ws/v1/join", "10.0.0.1:1001"))
		assert.Equal(t, http.StatusTooManyRequests, do("/ws/v1/join", "10.0.0.1:1002"))
		assert.Equal(t, http.StatusOK, do("/ws/v1/join", "10.0.0.2:1000"))
		assert.Contains(t, logBuf.String(), "Rate limit exceeded")
	})

	t.Run("Unlisted path is not limited", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, do("/api/v1/health", "10.0.0.1:1000"))
		}
	})

	t.Run("Error body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ws/v1/join", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.True(t, strings.Contains(w.Body.String(), "rate limit exceeded"))
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		expected   string
		trustProxy bool
	}{
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name:       "Forwarded headers ignored without trusted proxy",
			remoteAddr: "192.168.1.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			expected:   "192.168.1.1",
		},
		{
			name:       "X-Forwarded-For first address",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 198.51.100.1"},
			trustProxy: true,
			expected:   "203.0.113.1",
		},
		{
			name:       "X-Real-IP",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Real-IP": "203.0.113.5"},
			trustProxy: true,
			expected:   "203.0.113.5",
		},
		{
			name:       "RemoteAddr without port stays as is",
			remoteAddr: "pipe",
			expected:   "pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIP(tt.trustProxy)(req))
		})
	}
}
