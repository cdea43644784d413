package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/ignore"
	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/peer/validator"
)

// RunManifest builds the manifest of a folder, caches it and prints it as JSON.
func (c *Cli) RunManifest(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: foldersync manifest <folder>")
	}

	tree, err := openFolder(args[0])
	if err != nil {
		return err
	}

	m, err := c.folderManifest(ctx, tree, false)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if _, err := c.io.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// RunVerify checks a folder against a manifest file without any peer.
func (c *Cli) RunVerify(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: foldersync verify <folder> <manifest.json>")
	}

	tree, err := openFolder(args[0])
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	var m models.Manifest
	if err := json.Unmarshal(content, &m); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	matcher, err := ignore.Load(tree, c.logger)
	if err != nil {
		return err
	}

	tracker := progress.NewTracker(nil)
	tracker.Start(progress.PhaseValidating, m.TotalSize, m.BlockTotal())

	result, err := validator.New(tree, matcher, tracker, c.logger).Validate(ctx, &m)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	s := tracker.Snapshot()
	c.io.Printf("✓ %d files, %d blocks verified (%s in %s)\n",
		result.Files, result.Blocks, progress.FormatBytes(s.BytesProcessed), progress.FormatDuration(s.Elapsed))
	for _, w := range result.Warnings {
		c.io.Printf("Warning: %s\n", w)
	}
	return nil
}
