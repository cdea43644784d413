// Package config loads peer and relay settings: defaults, an optional YAML file,
// then FOLDERSYNC_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения (FOLDERSYNC_RELAY_URL и т.д.)
const EnvPrefix = "FOLDERSYNC"

// Peer holds the settings of the foldersync CLI.
type Peer struct {
	RelayURL         string
	DBPath           string
	Username         string
	LogLevel         string
	LogFile          string
	PacingDelay      time.Duration
	HandshakeTimeout time.Duration
}

// Relay holds the settings of the relay server.
type Relay struct {
	Addr            string
	DBPath          string
	JWTSecret       string
	LogLevel        string
	SessionTTL      time.Duration
	JoinWindow      time.Duration
	BanDuration     time.Duration
	JoinRate        int
	MaxJoinFailures int
	// TrustProxy разрешает брать адрес клиента из X-Forwarded-For
	TrustProxy bool
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// LoadPeer reads the peer configuration. An empty path means defaults and environment only.
func LoadPeer(path string) (*Peer, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	// Defaults
	v.SetDefault("relay_url", "http://localhost:8080")
	v.SetDefault("db_path", "foldersync.db")
	v.SetDefault("username", "")
	v.SetDefault("pacing_delay", 10*time.Millisecond)
	v.SetDefault("handshake_timeout", 60*time.Second)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")

	cfg := &Peer{
		RelayURL:         v.GetString("relay_url"),
		DBPath:           v.GetString("db_path"),
		Username:         v.GetString("username"),
		PacingDelay:      v.GetDuration("pacing_delay"),
		HandshakeTimeout: v.GetDuration("handshake_timeout"),
		LogLevel:         v.GetString("log_level"),
		LogFile:          v.GetString("log_file"),
	}

	if cfg.PacingDelay < 0 {
		return nil, fmt.Errorf("pacing_delay must not be negative")
	}
	if cfg.HandshakeTimeout <= 0 {
		return nil, fmt.Errorf("handshake_timeout must be positive")
	}
	return cfg, nil
}

// LoadRelay reads the relay configuration. An empty path means defaults and environment only.
func LoadRelay(path string) (*Relay, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	// Defaults
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "foldersync-relay.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("session_ttl", 15*time.Minute)
	v.SetDefault("join_rate", 10)
	v.SetDefault("join_window", time.Minute)
	v.SetDefault("max_join_failures", 5)
	v.SetDefault("ban_duration", 10*time.Minute)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("log_level", "info")

	cfg := &Relay{
		Addr:            v.GetString("addr"),
		DBPath:          v.GetString("db_path"),
		JWTSecret:       v.GetString("jwt_secret"),
		SessionTTL:      v.GetDuration("session_ttl"),
		JoinRate:        v.GetInt("join_rate"),
		JoinWindow:      v.GetDuration("join_window"),
		MaxJoinFailures: v.GetInt("max_join_failures"),
		BanDuration:     v.GetDuration("ban_duration"),
		TrustProxy:      v.GetBool("trust_proxy"),
		LogLevel:        v.GetString("log_level"),
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session_ttl must be positive")
	}
	if cfg.JoinRate <= 0 || cfg.JoinWindow <= 0 {
		return nil, fmt.Errorf("join_rate and join_window must be positive")
	}
	if cfg.MaxJoinFailures <= 0 || cfg.BanDuration <= 0 {
		return nil, fmt.Errorf("max_join_failures and ban_duration must be positive")
	}
	return cfg, nil
}

// ParseLevel converts a textual level (debug, info, warn, error) into slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// NewLogger builds a text slog logger. An empty file writes to fallback.
// The returned close function releases the log file.
func NewLogger(level, file string, fallback io.Writer) (*slog.Logger, func() error, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	out := fallback
	closeFn := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		return nil, nil, errors.New("no log destination")
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: l}))
	return logger, closeFn, nil
}
