package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/foldersync/internal/relay/handlers"
	"github.com/iudanet/foldersync/internal/relay/jwt"
)

// serveHost прогоняет запрос через mux, чтобы PathValue("id") был заполнен
func serveHost(t *testing.T, tokens HostTokenValidator, sessionID, authHeader string, next http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.Handle("GET /ws/v1/sessions/{id}/host", HostAuthMiddleware(setupTestLogger(), tokens)(next))

	req := httptest.NewRequest(http.MethodGet, "/ws/v1/sessions/"+sessionID+"/host", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHostAuthMiddleware_Success(t *testing.T) {
	svc := jwt.NewService([]byte("test-secret-key"), 15*time.Minute)
	token, _, err := svc.GenerateHostToken("session-1")
	require.NoError(t, err)

	w := serveHost(t, svc, "session-1", "Bearer "+token, func(w http.ResponseWriter, r *http.Request) {
		id, ok := handlers.GetSessionID(r.Context())
		require.True(t, ok, "session_id should be in context")
		assert.Equal(t, "session-1", id)
		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHostAuthMiddleware_Rejects(t *testing.T) {
	svc := jwt.NewService([]byte("test-secret-key"), 15*time.Minute)
	token, _, err := svc.GenerateHostToken("session-1")
	require.NoError(t, err)

	other := jwt.NewService([]byte("other-secret"), 15*time.Minute)
	foreign, _, err := other.GenerateHostToken("session-1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		sessionID  string
		header     string
		errMessage string
	}{
		{name: "missing header", sessionID: "session-1", errMessage: "missing token"},
		{name: "no Bearer prefix", sessionID: "session-1", header: token, errMessage: "invalid token format"},
		{name: "wrong scheme", sessionID: "session-1", header: "Basic " + token, errMessage: "invalid token format"},
		{name: "garbage token", sessionID: "session-1", header: "Bearer invalid.token.here", errMessage: "invalid token"},
		{name: "wrong secret", sessionID: "session-1", header: "Bearer " + foreign, errMessage: "invalid token"},
		{name: "other session", sessionID: "session-2", header: "Bearer " + token, errMessage: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveHost(t, svc, tt.sessionID, tt.header, func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("Handler should not be called")
			})

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.errMessage)
		})
	}
}
