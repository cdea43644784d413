package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iudanet/foldersync/internal/crypto"
	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/relay/storage"
	"github.com/iudanet/foldersync/internal/validation"
	"github.com/iudanet/foldersync/pkg/api"
)

// maxCodeAttempts сколько раз перегенерировать код при коллизии
const maxCodeAttempts = 5

// TokenIssuer выдает токен отправителя
type TokenIssuer interface {
	GenerateHostToken(sessionID string) (string, time.Time, error)
}

// Pairing связывает websocket-соединения двух сторон сессии
type Pairing interface {
	Host(sessionID string, conn *websocket.Conn) error
	Join(sessionID string, conn *websocket.Conn) error
	HasHost(sessionID string) bool
}

// JoinGuard отслеживает неудачные попытки подключения по коду
type JoinGuard interface {
	Banned(ip string) bool
	Failure(ip string) bool
	Success(ip string)
}

// SessionOptions параметры handler'а сессий
type SessionOptions struct {
	// ClientIP извлекает адрес клиента из запроса
	ClientIP func(*http.Request) string
	// Now источник времени, nil означает time.Now
	Now func() time.Time
	// CodeKey ключ для хэширования кодов
	CodeKey []byte
	// TTL сколько сессия ждет получателя
	TTL time.Duration
}

// SessionHandler обрабатывает создание сессий и websocket-подключения сторон
type SessionHandler struct {
	responder
	sessions storage.SessionStorage
	tokens   TokenIssuer
	pairing  Pairing
	guard    JoinGuard
	clientIP func(*http.Request) string
	now      func() time.Time
	upgrader websocket.Upgrader
	codeKey  []byte
	ttl      time.Duration
}

// NewSessionHandler создает новый handler сессий
func NewSessionHandler(logger *slog.Logger, sessions storage.SessionStorage, tokens TokenIssuer,
	pairing Pairing, guard JoinGuard, opts SessionOptions,
) *SessionHandler {
	h := &SessionHandler{
		responder: responder{logger: logger},
		sessions:  sessions,
		tokens:    tokens,
		pairing:   pairing,
		guard:     guard,
		clientIP:  opts.ClientIP,
		now:       opts.Now,
		codeKey:   opts.CodeKey,
		ttl:       opts.TTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  65536,
			WriteBufferSize: 65536,
			// клиенты relay - CLI, а не браузеры
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.clientIP == nil {
		h.clientIP = func(r *http.Request) string { return r.RemoteAddr }
	}
	return h
}

// Create обрабатывает POST /api/v1/sessions
// Регистрирует сессию и возвращает код для получателя и токен отправителя
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := crypto.GenerateShareCode()
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to generate share code", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		codeHash, err := crypto.HashShareCode(h.codeKey, code)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to hash share code", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		now := h.now()
		session := &models.Session{
			ID:        uuid.New().String(),
			CodeHash:  codeHash,
			Status:    models.SessionWaiting,
			CreatedAt: now,
			ExpiresAt: now.Add(h.ttl),
		}

		if err := h.sessions.CreateSession(ctx, session); err != nil {
			if errors.Is(err, storage.ErrSessionAlreadyExists) {
				h.logger.WarnContext(ctx, "share code collision, retrying", slog.Int("attempt", attempt+1))
				continue
			}
			h.logger.ErrorContext(ctx, "failed to create session", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		token, _, err := h.tokens.GenerateHostToken(session.ID)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to generate host token", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		h.logger.InfoContext(ctx, "session created",
			slog.String("session_id", session.ID),
			slog.Time("expires_at", session.ExpiresAt))

		h.sendJSON(w, api.CreateSessionResponse{
			SessionID: session.ID,
			Code:      code,
			Token:     token,
			ExpiresAt: session.ExpiresAt,
		}, http.StatusCreated)
		return
	}

	h.logger.ErrorContext(ctx, "failed to allocate unique share code")
	h.sendError(w, "failed to allocate share code", http.StatusServiceUnavailable)
}

// Host обрабатывает GET /ws/v1/sessions/{id}/host
// Токен проверен middleware; отправитель занимает слот host и ждет получателя
func (h *SessionHandler) Host(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := GetSessionID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			h.sendError(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if session.Status != models.SessionWaiting || session.Expired(h.now()) {
		h.sendError(w, "session is no longer available", http.StatusGone)
		return
	}
	if h.pairing.HasHost(sessionID) {
		h.sendError(w, "sender already connected", http.StatusConflict)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader уже ответил клиенту
		h.logger.WarnContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}

	if err := h.pairing.Host(sessionID, conn); err != nil {
		h.logger.WarnContext(ctx, "failed to register sender", slog.String("session_id", sessionID), slog.Any("error", err))
		rejectConn(conn, err.Error())
	}
}

// Join обрабатывает GET /ws/v1/join?code=XXXXXXXX
// Получатель подключается к ожидающей сессии по коду
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ip := h.clientIP(r)

	if h.guard.Banned(ip) {
		h.logger.WarnContext(ctx, "join rejected from banned address", slog.String("ip", ip))
		h.sendError(w, "too many failed attempts", http.StatusForbidden)
		return
	}

	code := validation.NormalizeShareCode(r.URL.Query().Get("code"))
	if err := validation.ValidateShareCode(code); err != nil {
		h.guard.Failure(ip)
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	codeHash, err := crypto.HashShareCode(h.codeKey, code)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash share code", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	session, err := h.sessions.GetSessionByCode(ctx, codeHash)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			h.guard.Failure(ip)
			h.sendError(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get session by code", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if session.Expired(h.now()) {
		h.sendError(w, "session expired", http.StatusGone)
		return
	}
	if !h.pairing.HasHost(session.ID) {
		h.sendError(w, "sender is not connected", http.StatusConflict)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}

	if err := h.pairing.Join(session.ID, conn); err != nil {
		h.logger.WarnContext(ctx, "failed to join session", slog.String("session_id", session.ID), slog.Any("error", err))
		rejectConn(conn, err.Error())
		return
	}
	h.guard.Success(ip)

	// ctx запроса отменяется после hijack, поэтому статус пишется с отдельным контекстом
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := h.sessions.MarkPaired(mctx, session.ID, h.now()); err != nil {
		h.logger.WarnContext(ctx, "failed to mark session paired", slog.String("session_id", session.ID), slog.Any("error", err))
	}
}

// rejectConn закрывает соединение с кодом policy violation
func rejectConn(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = conn.Close()
}
