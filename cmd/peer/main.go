package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iudanet/foldersync/internal/config"
	"github.com/iudanet/foldersync/internal/peer/cli"
	"github.com/iudanet/foldersync/internal/peer/iocli"
	"github.com/iudanet/foldersync/internal/peer/storage/boltdb"
	"github.com/iudanet/foldersync/internal/peer/transport"
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
	// Глобальные флаги; непустые значения перекрывают конфиг и окружение
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "YAML config file")
	relayURL := flag.String("relay", "", "Relay URL")
	dbPath := flag.String("db", "", "Path to local database")
	username := flag.String("user", "", "Name shown to the other peer")
	plain := flag.Bool("plain", false, "Plain text output instead of the interactive screen")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Write logs to a file")

	flag.Parse()

	out := iocli.NewStdio()

	if *showVersion {
		printVersion()
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(out)
		return 1
	}
	command := args[0]
	if command == "version" {
		printVersion()
		return 0
	}

	cfg, err := config.LoadPeer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	override(&cfg.RelayURL, *relayURL)
	override(&cfg.DBPath, *dbPath)
	override(&cfg.Username, *username)
	override(&cfg.LogLevel, *logLevel)
	override(&cfg.LogFile, *logFile)

	usePlain := *plain || !iocli.IsTerminal()

	// Интерактивный экран занимает терминал: логи только в файл
	var fallback io.Writer = os.Stderr
	if !usePlain {
		fallback = io.Discard
	}
	logger, closeLog, err := config.NewLogger(cfg.LogLevel, cfg.LogFile, fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer func() {
		_ = closeLog()
	}()

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	relay := transport.NewClient(cfg.RelayURL, logger)
	app := cli.New(cfg, out, boltStorage, boltStorage, relay, logger, usePlain)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func printVersion() {
	fmt.Printf("foldersync\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
