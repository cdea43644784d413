package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/foldersync/internal/config"
	"github.com/iudanet/foldersync/internal/peer/iocli"
	"github.com/iudanet/foldersync/internal/peer/storage"
	"github.com/iudanet/foldersync/internal/peer/transfer"
	"github.com/iudanet/foldersync/internal/peer/transport"
	"github.com/iudanet/foldersync/internal/validation"
)

// Cli executes peer commands.
type Cli struct {
	cfg    *config.Peer
	io     iocli.IO
	cache  storage.ManifestCache
	meta   storage.MetadataStorage
	relay  *transport.Client
	logger *slog.Logger
	plain  bool
}

// New creates the command runner. plain disables the interactive screen.
func New(cfg *config.Peer, io iocli.IO, cache storage.ManifestCache, meta storage.MetadataStorage,
	relay *transport.Client, logger *slog.Logger, plain bool,
) *Cli {
	return &Cli{
		cfg:    cfg,
		io:     io,
		cache:  cache,
		meta:   meta,
		relay:  relay,
		logger: logger,
		plain:  plain,
	}
}

// Run dispatches a command. args excludes the command name.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "send":
		return c.RunSend(ctx, args)
	case "receive":
		return c.RunReceive(ctx, args)
	case "manifest":
		return c.RunManifest(ctx, args)
	case "verify":
		return c.RunVerify(ctx, args)
	case "cache":
		return c.RunCache(ctx, args)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// username возвращает имя из конфига, из базы или спрашивает его и сохраняет
func (c *Cli) username(ctx context.Context) (string, error) {
	name := c.cfg.Username
	if name == "" {
		saved, err := c.meta.GetUsername(ctx)
		switch {
		case err == nil:
			return saved, nil
		case !errors.Is(err, storage.ErrUsernameNotSet):
			return "", fmt.Errorf("failed to get username: %w", err)
		}

		name, err = c.io.ReadInput("Your name: ")
		if err != nil {
			return "", fmt.Errorf("failed to read username: %w", err)
		}
	}

	name = validation.NormalizePeerName(name)
	if err := validation.ValidatePeerName(name); err != nil {
		return "", fmt.Errorf("invalid username: %w", err)
	}

	if err := c.meta.SaveUsername(ctx, name); err != nil {
		return "", fmt.Errorf("failed to save username: %w", err)
	}
	return name, nil
}

func (c *Cli) options(username string) transfer.Options {
	opts := transfer.DefaultOptions()
	opts.Username = username
	opts.PacingDelay = c.cfg.PacingDelay
	opts.HandshakeTimeout = c.cfg.HandshakeTimeout
	return opts
}

// PrintUsage writes the command reference.
func PrintUsage(out iocli.IO) {
	out.Println("foldersync - send a folder to another machine")
	out.Println()
	out.Println("Usage:")
	out.Println("  foldersync [OPTIONS] COMMAND")
	out.Println()
	out.Println("Options:")
	out.Println("  -version              Show version information")
	out.Println("  -config PATH          YAML config file")
	out.Println("  -relay URL            Relay URL (default: http://localhost:8080)")
	out.Println("  -db PATH              Path to local database (default: foldersync.db)")
	out.Println("  -user NAME            Name shown to the other peer")
	out.Println("  -plain                Plain text output instead of the interactive screen")
	out.Println("  -log-level LEVEL      debug, info, warn or error")
	out.Println("  -log-file PATH        Write logs to a file")
	out.Println()
	out.Println("Environment variables FOLDERSYNC_RELAY_URL, FOLDERSYNC_DB_PATH, FOLDERSYNC_USERNAME, ...")
	out.Println("override the config file; flags override both.")
	out.Println()
	out.Println("Commands:")
	out.Println("  send [-cached] [-yes] <folder>     Share a folder and print its share code")
	out.Println("  receive <target> [code]            Download a shared folder into target")
	out.Println("  manifest <folder>                  Print the manifest of a folder as JSON")
	out.Println("  verify <folder> <manifest.json>    Check a folder against a manifest")
	out.Println("  cache list|clear                   Show or drop cached manifests")
	out.Println("  version                            Show version information")
	out.Println()
	out.Println("Keys during a transfer: p pause, r resume, c cancel")
	out.Println()
	out.Println("Examples:")
	out.Println("  foldersync send ~/photos")
	out.Println("  foldersync receive ~/incoming K7Q2M9XA")
	out.Println("  foldersync -relay https://relay.example.com -plain receive ./copy")
}
