package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/foldersync/internal/config"
	"github.com/iudanet/foldersync/internal/relay"
	"github.com/iudanet/foldersync/internal/relay/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "Listen address")
	dbPath := flag.String("db", "", "Path to session database")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.LoadRelay(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, closeLog, err := config.NewLogger(cfg.LogLevel, "", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer func() {
		_ = closeLog()
	}()

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		// комнаты hub живут в памяти процесса, поэтому случайный секрет на запуск достаточен
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logger.Error("Failed to generate secret", "error", err)
			return 1
		}
		logger.Warn("jwt_secret is not set, using a random secret for this run")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	srv := relay.New(cfg, store, secret, logger)

	// просроченные сессии прошлого запуска истекают сразу
	// TODO: закрывать сессии, оставшиеся в статусе paired после аварийного завершения
	if _, err := srv.Sweep(ctx); err != nil {
		logger.Warn("Initial sweep failed", "error", err)
	}
	go srv.RunSweeper(ctx, relay.SweepInterval)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("Relay listening", "addr", cfg.Addr, "version", Version)
		errC <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	// websocket-соединения hijacked и Shutdown их не закрывает
	srv.Close()

	return 0
}

func printVersion() {
	fmt.Printf("foldersync-relay\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
