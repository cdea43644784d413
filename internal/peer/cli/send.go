package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/fsys"
	"github.com/iudanet/foldersync/internal/peer/ignore"
	"github.com/iudanet/foldersync/internal/peer/manifest"
	"github.com/iudanet/foldersync/internal/peer/storage"
	"github.com/iudanet/foldersync/internal/peer/transfer"
)

// RunSend indexes a folder, opens a relay session and serves the receiver that joins it.
func (c *Cli) RunSend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(c.io)
	cached := fs.Bool("cached", false, "Reuse the cached manifest of the folder")
	yes := fs.Bool("yes", false, "Accept the receiver without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: foldersync send [-cached] [-yes] <folder>")
	}

	username, err := c.username(ctx)
	if err != nil {
		return err
	}

	tree, err := openFolder(fs.Arg(0))
	if err != nil {
		return err
	}

	m, err := c.folderManifest(ctx, tree, *cached)
	if err != nil {
		return err
	}
	c.io.Printf("Folder: %s (%d files, %d blocks)\n", tree.Root(), m.FileCount(), m.BlockTotal())

	session, err := c.relay.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	conn, err := c.relay.DialHost(ctx, session.SessionID, session.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	model, prog := c.screen("Sending "+filepath.Base(tree.Root()), session.Code)

	var (
		observer transfer.Observer
		approver transfer.Approver
	)
	if prog != nil {
		observer, approver = prog, prog
	} else {
		observer, approver = newTextObserver(c.io), promptApprover{io: c.io}
		c.io.Printf("Share code: %s\n", session.Code)
		c.io.Println("Waiting for the receiver...")
	}
	if *yes {
		approver = transfer.AutoApprove
	}

	sender := transfer.NewSender(conn, tree, m, approver, observer, c.logger, c.options(username))
	report, err := c.runEngine(ctx, sender, model, prog)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}

	printReport(c.io, report)
	return nil
}

func openFolder(path string) (*fsys.Local, error) {
	tree, err := fsys.NewLocal(path)
	if err != nil {
		return nil, err
	}
	info, err := tree.Stat("")
	if err != nil {
		return nil, fmt.Errorf("folder not accessible: %w", err)
	}
	if !info.IsDir {
		return nil, fmt.Errorf("%s is not a directory", path)
	}
	return tree, nil
}

// folderManifest берет манифест из кеша или строит новый и кеширует его
func (c *Cli) folderManifest(ctx context.Context, tree *fsys.Local, useCache bool) (*models.Manifest, error) {
	if useCache {
		record, err := c.cache.LoadManifest(ctx, tree.Root())
		switch {
		case err == nil:
			c.io.Printf("Using manifest cached at %s\n", record.Timestamp.Local().Format("2006-01-02 15:04"))
			return record.Manifest, nil
		case errors.Is(err, storage.ErrCacheMiss):
			c.io.Println("No cached manifest, indexing...")
		default:
			c.logger.Warn("Manifest cache unavailable", "error", err)
		}
	}

	matcher, err := ignore.Load(tree, c.logger)
	if err != nil {
		return nil, err
	}

	builder := manifest.NewBuilder(tree, matcher, c.logger)
	if c.plain {
		builder.SetProgress(func(current, total int, path string) {
			c.io.Printf("Hashing %d/%d %s\n", current, total, path)
		})
	}

	m, err := builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to index folder: %w", err)
	}

	if err := c.cache.SaveManifest(ctx, tree.Root(), m); err != nil {
		c.logger.Warn("Failed to cache manifest", "folder", tree.Root(), "error", err)
	}
	return m, nil
}
