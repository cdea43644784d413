// Package relay assembles the rendezvous server: routes, middleware, the pairing hub
// and the sweeper that expires sessions nobody joined.
package relay

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/foldersync/internal/config"
	"github.com/iudanet/foldersync/internal/relay/handlers"
	"github.com/iudanet/foldersync/internal/relay/hub"
	"github.com/iudanet/foldersync/internal/relay/jwt"
	"github.com/iudanet/foldersync/internal/relay/middleware"
	"github.com/iudanet/foldersync/internal/relay/storage"
)

// SweepInterval как часто истекают ожидающие сессии
const SweepInterval = 30 * time.Second

// Server is the relay HTTP handler together with its background state.
type Server struct {
	handler  http.Handler
	hub      *hub.Hub
	sessions storage.SessionStorage
	limiter  *middleware.PathLimiter
	logger   *slog.Logger
	now      func() time.Time
}

// New wires the relay. secret signs host tokens and keys share code digests.
func New(cfg *config.Relay, sessions storage.SessionStorage, secret []byte, logger *slog.Logger) *Server {
	s := &Server{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
	s.hub = hub.New(logger, s.onClose)

	clientIP := middleware.ClientIP(cfg.TrustProxy)
	tokens := jwt.NewService(secret, cfg.SessionTTL)
	guard := middleware.NewJoinGuard(cfg.MaxJoinFailures, cfg.BanDuration, logger)

	sessionHandler := handlers.NewSessionHandler(logger, sessions, tokens, s.hub, guard, handlers.SessionOptions{
		CodeKey:  secret,
		TTL:      cfg.SessionTTL,
		ClientIP: clientIP,
	})
	healthHandler := handlers.NewHealthHandler(logger, sessions)
	hostAuth := middleware.HostAuthMiddleware(logger, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sessions", sessionHandler.Create)
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.Handle("GET /ws/v1/sessions/{id}/host", hostAuth(http.HandlerFunc(sessionHandler.Host)))
	mux.HandleFunc("GET /ws/v1/join", sessionHandler.Join)

	s.limiter = middleware.NewPathLimiter([]middleware.PathRateLimit{
		{Path: "/api/v1/sessions", Rate: cfg.JoinRate, Window: cfg.JoinWindow},
		{Path: "/ws/v1/join", Rate: cfg.JoinRate, Window: cfg.JoinWindow},
	}, clientIP, logger)

	// Порядок: recovery снаружи, затем логирование, затем лимиты
	var h http.Handler = mux
	h = s.limiter.Middleware(h)
	h = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(h)
	h = middleware.RecoveryMiddleware(logger)(h)
	s.handler = h

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// RunSweeper expires stale sessions every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("Session sweep failed", "error", err)
			}
		}
	}
}

// Sweep marks overdue waiting sessions expired and disconnects their senders.
// It returns the number of expired sessions.
func (s *Server) Sweep(ctx context.Context) (int, error) {
	ids, err := s.sessions.ExpireSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if s.hub.Drop(id) {
			s.logger.Info("Sender disconnected from expired session", "session_id", id)
		}
	}
	if len(ids) > 0 {
		s.logger.Info("Sessions expired", "count", len(ids))
	}
	return len(ids), nil
}

// Close disconnects every peer and stops the rate limiters.
func (s *Server) Close() {
	s.hub.Close()
	s.limiter.Stop()
}

// onClose фиксирует в базе конец сессии и объем пересланных данных
func (s *Server) onClose(sessionID string, bytesRelayed int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.sessions.CloseSession(ctx, sessionID, s.now(), bytesRelayed); err != nil {
		s.logger.Error("Failed to record session close", "session_id", sessionID, "error", err)
	}
}
