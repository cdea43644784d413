package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/foldersync/internal/peer/progress"
)

// RunCache lists or clears cached manifests.
func (c *Cli) RunCache(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: foldersync cache list|clear")
	}

	switch args[0] {
	case "list":
		records, err := c.cache.ListManifests(ctx)
		if err != nil {
			return fmt.Errorf("failed to list cache: %w", err)
		}
		if len(records) == 0 {
			c.io.Println("No cached manifests")
			return nil
		}
		for _, r := range records {
			c.io.Printf("%s  %s  %d files  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				r.FolderName,
				r.Manifest.FileCount(),
				progress.FormatBytes(r.Manifest.TotalSize),
			)
		}
		return nil

	case "clear":
		if err := c.cache.ClearManifests(ctx); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		c.io.Println("Manifest cache cleared")
		return nil

	default:
		return fmt.Errorf("unknown cache command: %s", args[0])
	}
}
