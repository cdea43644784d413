package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/foldersync/internal/relay/handlers"
	"github.com/iudanet/foldersync/internal/relay/jwt"
)

// HostTokenValidator проверяет токен отправителя для конкретной сессии
type HostTokenValidator interface {
	ValidateHostToken(tokenString, sessionID string) (*jwt.HostClaims, error)
}

// HostAuthMiddleware создает middleware для проверки токена отправителя
// Маршрут должен содержать {id}: токен действителен только для своей сессии
func HostAuthMiddleware(logger *slog.Logger, tokens HostTokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				writeError(w, http.StatusUnauthorized, "unauthorized: missing token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Invalid Authorization header format")
				writeError(w, http.StatusUnauthorized, "unauthorized: invalid token format")
				return
			}

			sessionID := r.PathValue("id")
			claims, err := tokens.ValidateHostToken(parts[1], sessionID)
			if err != nil {
				logger.Warn("Invalid host token", "error", err)
				writeError(w, http.StatusUnauthorized, "unauthorized: invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), handlers.SessionIDKey, claims.SessionID)
			logger.Debug("Sender authenticated", "session_id", claims.SessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
