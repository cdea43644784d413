// Package delta decides, block by block, whether the receiver can reuse bytes it already has
// or must fetch them from the sender.
package delta

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/foldersync/internal/crypto"
	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/fsys"
	"github.com/iudanet/foldersync/internal/peer/progress"
)

// FileProgress is the per-file block bookkeeping of the receiver.
type FileProgress struct {
	CompletedBlocks int
	TotalBlocks     int
	NextBlock       int
}

// Done reports whether every block of the file is resolved.
func (fp *FileProgress) Done() bool {
	return fp.CompletedBlocks >= fp.TotalBlocks
}

// Planner compares manifest blocks against a local candidate tree.
// Files must be processed strictly one after another in manifest order.
type Planner struct {
	tree     fsys.FileSystem
	local    map[string]int64
	reusable map[string]bool
	files    map[string]*FileProgress
	tracker  *progress.Tracker
	logger   *slog.Logger
}

// NewPlanner creates a planner. local maps relative paths of the target tree to their sizes.
func NewPlanner(tree fsys.FileSystem, local map[string]int64, tracker *progress.Tracker, logger *slog.Logger) *Planner {
	if local == nil {
		local = map[string]int64{}
	}
	return &Planner{
		tree:     tree,
		local:    local,
		reusable: make(map[string]bool),
		files:    make(map[string]*FileProgress),
		tracker:  tracker,
		logger:   logger,
	}
}

// PrepareFile decides once per file whether block-level reuse is possible.
// A missing file or a size mismatch forces every block to be fetched and the local file
// is truncated (or created) so that no stale bytes remain past the new length.
func (p *Planner) PrepareFile(ctx context.Context, file *models.FileEntry) error {
	if _, ok := p.reusable[file.Path]; ok {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	size, exists := p.local[file.Path]
	if exists && size == file.Size {
		p.reusable[file.Path] = true
		p.logger.Debug("Local file is a reuse candidate", "path", file.Path, "size", size)
		return nil
	}

	if exists {
		p.logger.Debug("Local file size differs, fetching all blocks",
			"path", file.Path, "local_size", size, "size", file.Size)
	}

	if err := p.tree.Truncate(file.Path); err != nil {
		return fmt.Errorf("failed to prepare %s: %w", file.Path, err)
	}
	p.reusable[file.Path] = false

	return nil
}

// ShouldDownload reports whether block index of file has to be requested from the sender.
// A reused block is recorded as complete right away and shrinks the planned byte count.
func (p *Planner) ShouldDownload(ctx context.Context, file *models.FileEntry, index int) (bool, error) {
	if index < 0 || index >= len(file.Blocks) {
		return false, fmt.Errorf("block %d out of range for %s (%d blocks)", index, file.Path, len(file.Blocks))
	}
	if err := p.PrepareFile(ctx, file); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	start, end := models.BlockRange(file.Size, index)
	length := end - start
	p.tracker.SetCurrent(file.Path, index)
	p.tracker.AddProcessed(length)

	if !p.reusable[file.Path] {
		return true, nil
	}

	digest, err := crypto.HashRange(p.tree, file.Path, start, end)
	if err != nil {
		// нечитаемый локальный блок просто скачивается заново
		p.logger.Warn("Failed to hash local block, fetching it",
			"path", file.Path, "block", index, "error", err)
		return true, nil
	}
	if digest != file.Blocks[index].Hash {
		return true, nil
	}

	p.tracker.ReducePlanned(length)
	p.logger.Debug("Block reused", "path", file.Path, "block", index)

	return false, nil
}

// Progress returns the bookkeeping entry of a file, creating it on first touch.
func (p *Planner) Progress(file *models.FileEntry) *FileProgress {
	fp, ok := p.files[file.Path]
	if !ok {
		fp = &FileProgress{TotalBlocks: len(file.Blocks)}
		p.files[file.Path] = fp
	}
	return fp
}

// CompleteBlock marks the next block of file as resolved, reused or fetched.
func (p *Planner) CompleteBlock(file *models.FileEntry) *FileProgress {
	fp := p.Progress(file)
	fp.CompletedBlocks++
	fp.NextBlock = fp.CompletedBlocks
	p.tracker.CompleteBlock()
	return fp
}
