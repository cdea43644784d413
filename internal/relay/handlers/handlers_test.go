package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/foldersync/internal/crypto"
	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/relay/hub"
	"github.com/iudanet/foldersync/internal/relay/jwt"
	"github.com/iudanet/foldersync/internal/relay/storage"
	"github.com/iudanet/foldersync/internal/validation"
	"github.com/iudanet/foldersync/pkg/api"
)

var (
	testKey  = []byte("test-secret-key")
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	errStore = errors.New("database is locked")
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGuard считает неудачи без банов по времени
type fakeGuard struct {
	failures map[string]int
	banned   map[string]bool
	mu       sync.Mutex
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{failures: make(map[string]int), banned: make(map[string]bool)}
}

func (g *fakeGuard) Banned(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.banned[ip]
}

func (g *fakeGuard) Failure(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[ip]++
	return false
}

func (g *fakeGuard) Success(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.failures, ip)
}

func (g *fakeGuard) count(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failures[ip]
}

func newTestHandler(sessions storage.SessionStorage, guard JoinGuard) (*SessionHandler, *hub.Hub) {
	logger := setupTestLogger()
	h := hub.New(logger, nil)
	return NewSessionHandler(logger, sessions, jwt.NewService(testKey, 15*time.Minute), h, guard, SessionOptions{
		CodeKey: testKey,
		TTL:     15 * time.Minute,
		Now:     func() time.Time { return testNow },
	}), h
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		countErr       error
		name           string
		expectedStatus string
		expectedCode   int
		active         int
	}{
		{name: "ok", active: 3, expectedCode: http.StatusOK, expectedStatus: "ok"},
		{name: "storage down", countErr: errStore, expectedCode: http.StatusServiceUnavailable, expectedStatus: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &storage.SessionStorageMock{
				CountActiveFunc: func(ctx context.Context) (int, error) { return tt.active, tt.countErr },
			}
			handler := NewHealthHandler(setupTestLogger(), sessions)

			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp api.HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)
			assert.Equal(t, tt.active, resp.ActiveSessions)
		})
	}
}

func TestSessionHandler_Create(t *testing.T) {
	var stored *models.Session
	sessions := &storage.SessionStorageMock{
		CreateSessionFunc: func(ctx context.Context, session *models.Session) error {
			stored = session
			return nil
		},
	}
	handler, _ := newTestHandler(sessions, newFakeGuard())

	w := httptest.NewRecorder()
	handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.CreateSessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	require.NotNil(t, stored)
	assert.Equal(t, stored.ID, resp.SessionID)
	assert.Equal(t, models.SessionWaiting, stored.Status)
	assert.True(t, testNow.Add(15*time.Minute).Equal(resp.ExpiresAt))
	assert.NoError(t, validation.ValidateShareCode(resp.Code))
	assert.NotEmpty(t, resp.Token)

	// в хранилище только хэш кода
	expectedHash, err := crypto.HashShareCode(testKey, resp.Code)
	require.NoError(t, err)
	assert.Equal(t, expectedHash, stored.CodeHash)
	assert.NotEqual(t, resp.Code, stored.CodeHash)

	_, err = jwt.NewService(testKey, time.Minute).ValidateHostToken(resp.Token, resp.SessionID)
	assert.NoError(t, err)
}

func TestSessionHandler_CreateErrors(t *testing.T) {
	t.Run("collision is retried", func(t *testing.T) {
		calls := 0
		sessions := &storage.SessionStorageMock{
			CreateSessionFunc: func(ctx context.Context, session *models.Session) error {
				calls++
				if calls == 1 {
					return storage.ErrSessionAlreadyExists
				}
				return nil
			},
		}
		handler, _ := newTestHandler(sessions, newFakeGuard())

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, sessions.CreateSessionCalls(), 2)
	})

	t.Run("persistent collisions", func(t *testing.T) {
		sessions := &storage.SessionStorageMock{
			CreateSessionFunc: func(ctx context.Context, session *models.Session) error {
				return storage.ErrSessionAlreadyExists
			},
		}
		handler, _ := newTestHandler(sessions, newFakeGuard())

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Len(t, sessions.CreateSessionCalls(), maxCodeAttempts)
	})

	t.Run("storage error", func(t *testing.T) {
		sessions := &storage.SessionStorageMock{
			CreateSessionFunc: func(ctx context.Context, session *models.Session) error { return errStore },
		}
		handler, _ := newTestHandler(sessions, newFakeGuard())

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", decodeError(t, w).Message)
	})
}

func TestSessionHandler_JoinRejected(t *testing.T) {
	waiting := &models.Session{
		ID:        "s1",
		Status:    models.SessionWaiting,
		CreatedAt: testNow.Add(-time.Minute),
		ExpiresAt: testNow.Add(time.Minute),
	}
	expired := &models.Session{
		ID:        "s2",
		Status:    models.SessionWaiting,
		CreatedAt: testNow.Add(-20 * time.Minute),
		ExpiresAt: testNow.Add(-5 * time.Minute),
	}

	tests := []struct {
		session      *models.Session
		lookupErr    error
		name         string
		query        string
		message      string
		banned       bool
		expectedCode int
		failures     int
	}{
		{name: "banned address", query: "ABCD1234", banned: true, expectedCode: http.StatusForbidden, message: "too many failed attempts"},
		{name: "malformed code", query: "abc", expectedCode: http.StatusBadRequest, failures: 1},
		{name: "missing code", query: "", expectedCode: http.StatusBadRequest, failures: 1},
		{name: "unknown code", query: "ZZZZ9999", lookupErr: storage.ErrSessionNotFound, expectedCode: http.StatusNotFound, failures: 1},
		{name: "storage error", query: "ZZZZ9999", lookupErr: errStore, expectedCode: http.StatusInternalServerError},
		{name: "expired session", query: "abcd1234", session: expired, expectedCode: http.StatusGone, message: "session expired"},
		{name: "sender not connected", query: "ABCD1234", session: waiting, expectedCode: http.StatusConflict, message: "sender is not connected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &storage.SessionStorageMock{
				GetSessionByCodeFunc: func(ctx context.Context, codeHash string) (*models.Session, error) {
					return tt.session, tt.lookupErr
				},
			}
			guard := newFakeGuard()
			guard.banned["192.0.2.1:1234"] = tt.banned
			handler, _ := newTestHandler(sessions, guard)

			req := httptest.NewRequest(http.MethodGet, "/ws/v1/join?code="+tt.query, nil)
			req.RemoteAddr = "192.0.2.1:1234"
			w := httptest.NewRecorder()
			handler.Join(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, decodeError(t, w).Message)
			}
			assert.Equal(t, tt.failures, guard.count("192.0.2.1:1234"))
		})
	}
}

func TestSessionHandler_JoinLooksUpNormalizedCode(t *testing.T) {
	expectedHash, err := crypto.HashShareCode(testKey, "ABCD1234")
	require.NoError(t, err)

	sessions := &storage.SessionStorageMock{
		GetSessionByCodeFunc: func(ctx context.Context, codeHash string) (*models.Session, error) {
			assert.Equal(t, expectedHash, codeHash)
			return nil, storage.ErrSessionNotFound
		},
	}
	handler, _ := newTestHandler(sessions, newFakeGuard())

	w := httptest.NewRecorder()
	handler.Join(w, httptest.NewRequest(http.MethodGet, "/ws/v1/join?code=+abcd1234+", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, sessions.GetSessionByCodeCalls(), 1)
}

func TestSessionHandler_HostRejected(t *testing.T) {
	closedAt := testNow.Add(-time.Minute)

	tests := []struct {
		session      *models.Session
		getErr       error
		name         string
		sessionID    string
		expectedCode int
	}{
		{name: "not authenticated", expectedCode: http.StatusUnauthorized},
		{name: "unknown session", sessionID: "s1", getErr: storage.ErrSessionNotFound, expectedCode: http.StatusNotFound},
		{name: "storage error", sessionID: "s1", getErr: errStore, expectedCode: http.StatusInternalServerError},
		{
			name:      "closed session",
			sessionID: "s1",
			session: &models.Session{
				ID: "s1", Status: models.SessionClosed, ClosedAt: &closedAt,
				ExpiresAt: testNow.Add(time.Minute),
			},
			expectedCode: http.StatusGone,
		},
		{
			name:      "deadline passed",
			sessionID: "s1",
			session: &models.Session{
				ID: "s1", Status: models.SessionWaiting,
				ExpiresAt: testNow.Add(-time.Second),
			},
			expectedCode: http.StatusGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &storage.SessionStorageMock{
				GetSessionFunc: func(ctx context.Context, id string) (*models.Session, error) {
					return tt.session, tt.getErr
				},
			}
			handler, _ := newTestHandler(sessions, newFakeGuard())

			req := httptest.NewRequest(http.MethodGet, "/ws/v1/sessions/s1/host", nil)
			if tt.sessionID != "" {
				req = req.WithContext(context.WithValue(req.Context(), SessionIDKey, tt.sessionID))
			}
			w := httptest.NewRecorder()
			handler.Host(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
