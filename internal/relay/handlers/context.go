package handlers

import "context"

type contextKey string

// SessionIDKey ключ для хранения session_id аутентифицированного отправителя
const SessionIDKey contextKey = "session_id"

// GetSessionID извлекает session_id из контекста запроса
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}
