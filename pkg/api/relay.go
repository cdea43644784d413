package api

import "time"

// CreateSessionResponse представляет ответ на создание сессии на relay
type CreateSessionResponse struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения сессии
	SessionID string    `json:"session_id"` // UUID сессии
	Code      string    `json:"code"`       // код для получателя (8 символов A-Z0-9)
	Token     string    `json:"token"`      // JWT токен отправителя для подключения к слоту host
}

// HealthResponse представляет ответ проверки состояния relay
type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
