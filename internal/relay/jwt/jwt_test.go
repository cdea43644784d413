package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostToken_RoundTrip(t *testing.T) {
	svc := NewService([]byte("test-secret"), 15*time.Minute)

	token, expiresAt, err := svc.GenerateHostToken("session-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateHostToken(token, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestHostToken_Invalid(t *testing.T) {
	svc := NewService([]byte("test-secret"), 15*time.Minute)
	token, _, err := svc.GenerateHostToken("session-1")
	require.NoError(t, err)

	expired := NewService([]byte("test-secret"), 15*time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expiredToken, _, err := expired.GenerateHostToken("session-1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		sessionID string
		secret    string
		wantErr   error
	}{
		{name: "other session", token: token, sessionID: "session-2", secret: "test-secret", wantErr: ErrSessionMismatch},
		{name: "wrong secret", token: token, sessionID: "session-1", secret: "other-secret"},
		{name: "expired", token: expiredToken, sessionID: "session-1", secret: "test-secret", wantErr: jwt.ErrTokenExpired},
		{name: "garbage", token: "not.a.token", sessionID: "session-1", secret: "test-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService([]byte(tt.secret), time.Minute).ValidateHostToken(tt.token, tt.sessionID)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
