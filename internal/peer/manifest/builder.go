// Package manifest walks a tree and builds the content-addressed Manifest of it.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/foldersync/internal/crypto"
	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/fsys"
	"github.com/iudanet/foldersync/internal/peer/ignore"
)

// ErrTooManyFiles возвращается, если дерево содержит больше models.MaxFiles файлов
var ErrTooManyFiles = errors.New("too many files")

// ScannedFile is a file found by the tree walk, before hashing.
type ScannedFile struct {
	Path     string
	Size     int64
	Modified int64
}

// Tree is the result of a walk without hashing.
type Tree struct {
	Files    []ScannedFile
	Folders  []string
	Warnings []string
}

// Sizes returns path -> size of every scanned file.
func (t *Tree) Sizes() map[string]int64 {
	sizes := make(map[string]int64, len(t.Files))
	for _, f := range t.Files {
		sizes[f.Path] = f.Size
	}
	return sizes
}

// ProgressFunc receives hashing progress: 1-based file number, total files, current path.
type ProgressFunc func(current, total int, path string)

// Builder walks a FileSystem and hashes its files block by block.
type Builder struct {
	tree     fsys.FileSystem
	ignore   *ignore.Matcher
	logger   *slog.Logger
	progress ProgressFunc
	maxFiles int
}

// NewBuilder creates a builder over tree. matcher may be nil.
func NewBuilder(tree fsys.FileSystem, matcher *ignore.Matcher, logger *slog.Logger) *Builder {
	return &Builder{
		tree:     tree,
		ignore:   matcher,
		logger:   logger,
		maxFiles: models.MaxFiles,
	}
}

// SetProgress registers a hashing progress callback.
func (b *Builder) SetProgress(fn ProgressFunc) {
	b.progress = fn
}

// Scan walks the tree: at each level files first, then subdirectories.
// Unreadable entries are skipped with a warning; only an unreadable root fails the scan.
func (b *Builder) Scan(ctx context.Context) (*Tree, error) {
	tree := &Tree{}

	if err := b.walk(ctx, "", tree); err != nil {
		return nil, err
	}

	b.logger.Info("Scan complete", "folders", len(tree.Folders), "files", len(tree.Files), "warnings", len(tree.Warnings))
	return tree, nil
}

func (b *Builder) walk(ctx context.Context, dir string, tree *Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.logger.Debug("Scanning folder", "folder", dir)

	entries, err := b.tree.ReadDir(dir)
	if err != nil {
		if dir == "" {
			return fmt.Errorf("failed to read root: %w", err)
		}
		b.warn(tree, "Unable to enumerate folder", dir, err)
		return nil
	}

	// Сначала файлы текущего уровня
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.Kind != fsys.KindFile {
			continue
		}

		rel := join(dir, entry.Name)
		if b.ignore.Match(rel) {
			b.logger.Debug("Ignored file", "path", rel)
			continue
		}

		info, err := b.tree.Stat(rel)
		if err != nil {
			b.warn(tree, "Skipping unreadable file", rel, err)
			continue
		}

		tree.Files = append(tree.Files, ScannedFile{
			Path:     rel,
			Size:     info.Size,
			Modified: info.ModTime.UnixMilli(),
		})
		b.logger.Debug("Found file", "path", rel, "size", info.Size)
	}

	// Затем подкаталоги
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := join(dir, entry.Name)
		if entry.Kind == fsys.KindOther {
			b.logger.Debug("Skipping special entry", "path", rel)
			continue
		}
		if entry.Kind != fsys.KindDir {
			continue
		}

		if b.ignore.Match(rel) {
			b.logger.Debug("Ignored folder", "path", rel)
			continue
		}

		tree.Folders = append(tree.Folders, rel)
		if err := b.walk(ctx, rel, tree); err != nil {
			return err
		}
	}

	return nil
}

// Build scans the tree and hashes every file. The file-count limit is enforced before any hashing.
// Cancellation is checked between files and between blocks; a cancelled build returns no manifest.
func (b *Builder) Build(ctx context.Context) (*models.Manifest, error) {
	tree, err := b.Scan(ctx)
	if err != nil {
		return nil, err
	}

	if len(tree.Files) > b.maxFiles {
		return nil, fmt.Errorf("%w: folder contains %d files, maximum is %d", ErrTooManyFiles, len(tree.Files), b.maxFiles)
	}

	manifest := &models.Manifest{
		Version: models.ManifestVersion,
		Folders: tree.Folders,
		Files:   make([]models.FileEntry, 0, len(tree.Files)),
	}
	if manifest.Folders == nil {
		manifest.Folders = []string{}
	}

	for i, file := range tree.Files {
		if err := ctx.Err(); err != nil {
			b.logger.Warn("Hashing cancelled", "path", file.Path)
			return nil, err
		}

		if b.progress != nil {
			b.progress(i+1, len(tree.Files), file.Path)
		}

		blocks, err := b.hashFile(ctx, file)
		if err != nil {
			return nil, err
		}

		manifest.Files = append(manifest.Files, models.FileEntry{
			Path:     file.Path,
			Size:     file.Size,
			Modified: file.Modified,
			Blocks:   blocks,
		})
		manifest.TotalSize += file.Size
	}

	b.logger.Info("Manifest built", "files", len(manifest.Files), "total_size", manifest.TotalSize)
	return manifest, nil
}

func (b *Builder) hashFile(ctx context.Context, file ScannedFile) ([]models.BlockDescriptor, error) {
	count := models.BlockCount(file.Size)
	blocks := make([]models.BlockDescriptor, 0, count)

	for idx := 0; idx < count; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start, end := models.BlockRange(file.Size, idx)
		hash, err := crypto.HashRange(b.tree, file.Path, start, end)
		if err != nil {
			// без этого файла манифест неполон: сборка прерывается
			return nil, fmt.Errorf("failed to hash %s block %d: %w", file.Path, idx, err)
		}

		blocks = append(blocks, models.BlockDescriptor{Index: idx, Hash: hash})
	}

	b.logger.Debug("Completed hashing", "path", file.Path, "blocks", count)
	return blocks, nil
}

func (b *Builder) warn(tree *Tree, msg, path string, err error) {
	b.logger.Warn(msg, "path", path, "error", err)
	tree.Warnings = append(tree.Warnings, fmt.Sprintf("%s: %s (%v)", msg, path, err))
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + models.PathSeparator + name
}
