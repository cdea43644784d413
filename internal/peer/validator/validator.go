// Package validator checks a received manifest for structural consistency and re-verifies
// a written tree against it after the transfer.
package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/foldersync/internal/crypto"
	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/fsys"
	"github.com/iudanet/foldersync/internal/peer/ignore"
	"github.com/iudanet/foldersync/internal/peer/manifest"
	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/validation"
)

// DefaultMaxExtraWarnings ограничение на количество перечисляемых лишних файлов
const DefaultMaxExtraWarnings = 20

var (
	// ErrInvalidManifest манифест не прошел структурную проверку
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrIntegrity содержимое на диске не совпадает с манифестом
	ErrIntegrity = errors.New("integrity check failed")
)

// IntegrityError locates a validation failure. Block is -1 when the file size is wrong.
type IntegrityError struct {
	Err    error
	Path   string
	Reason string
	Block  int
}

func (e *IntegrityError) Error() string {
	if e.Block < 0 {
		return fmt.Sprintf("%s: %s: %s", ErrIntegrity, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %s block %d: %s", ErrIntegrity, e.Path, e.Block, e.Reason)
}

// Is makes errors.Is(err, ErrIntegrity) hold for every IntegrityError.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a successful validation.
type Result struct {
	ExtraFiles []string
	Warnings   []string
	Files      int
	Blocks     int
}

// ValidateManifest checks block arithmetic, path safety, digest presence and the total size.
func ValidateManifest(m *models.Manifest) error {
	if m == nil {
		return fmt.Errorf("%w: manifest is missing", ErrInvalidManifest)
	}
	if m.Version != models.ManifestVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidManifest, m.Version)
	}
	if len(m.Files) > models.MaxFiles {
		return fmt.Errorf("%w: %d files exceeds limit of %d", ErrInvalidManifest, len(m.Files), models.MaxFiles)
	}

	for _, folder := range m.Folders {
		if err := validation.ValidateRelativePath(folder); err != nil {
			return fmt.Errorf("%w: folder: %w", ErrInvalidManifest, err)
		}
	}

	seen := make(map[string]struct{}, len(m.Files))
	var total int64
	for i := range m.Files {
		f := &m.Files[i]
		if err := validation.ValidateRelativePath(f.Path); err != nil {
			return fmt.Errorf("%w: file: %w", ErrInvalidManifest, err)
		}
		if _, dup := seen[f.Path]; dup {
			return fmt.Errorf("%w: duplicate file %q", ErrInvalidManifest, f.Path)
		}
		seen[f.Path] = struct{}{}

		if f.Size < 0 {
			return fmt.Errorf("%w: %s has negative size %d", ErrInvalidManifest, f.Path, f.Size)
		}
		if want := models.BlockCount(f.Size); len(f.Blocks) != want {
			return fmt.Errorf("%w: %s has %d blocks, expected %d", ErrInvalidManifest, f.Path, len(f.Blocks), want)
		}
		for idx, block := range f.Blocks {
			if block.Index != idx {
				return fmt.Errorf("%w: %s block %d has index %d", ErrInvalidManifest, f.Path, idx, block.Index)
			}
			if !crypto.IsDigest(block.Hash) {
				return fmt.Errorf("%w: %s block %d has no valid digest", ErrInvalidManifest, f.Path, idx)
			}
		}
		total += f.Size
	}

	if total != m.TotalSize {
		return fmt.Errorf("%w: total size %d does not match sum of file sizes %d", ErrInvalidManifest, m.TotalSize, total)
	}

	return nil
}

// Validator re-hashes a destination tree against a manifest.
type Validator struct {
	tree        fsys.FileSystem
	ignore      *ignore.Matcher
	tracker     *progress.Tracker
	logger      *slog.Logger
	onBlock     func()
	maxWarnings int
}

// New creates a validator. matcher and tracker may be nil.
func New(tree fsys.FileSystem, matcher *ignore.Matcher, tracker *progress.Tracker, logger *slog.Logger) *Validator {
	return &Validator{
		tree:        tree,
		ignore:      matcher,
		tracker:     tracker,
		logger:      logger,
		maxWarnings: DefaultMaxExtraWarnings,
	}
}

// OnBlock registers a callback invoked after every verified block.
func (v *Validator) OnBlock(fn func()) {
	v.onBlock = fn
}

// Validate re-checks the manifest, then every file size and block digest on disk.
// Any mismatch is returned as *IntegrityError. Files present on disk but absent from
// the manifest only produce warnings.
func (v *Validator) Validate(ctx context.Context, m *models.Manifest) (*Result, error) {
	if err := ValidateManifest(m); err != nil {
		return nil, err
	}

	result := &Result{Files: len(m.Files)}

	for i := range m.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f := &m.Files[i]
		info, err := v.tree.Stat(f.Path)
		if err != nil {
			return nil, &IntegrityError{Path: f.Path, Block: -1, Reason: "cannot stat file", Err: err}
		}
		if info.Size != f.Size {
			return nil, &IntegrityError{
				Path:   f.Path,
				Block:  -1,
				Reason: fmt.Sprintf("size %d, expected %d", info.Size, f.Size),
			}
		}

		for idx, block := range f.Blocks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			start, end := models.BlockRange(f.Size, idx)
			if v.tracker != nil {
				v.tracker.SetCurrent(f.Path, idx)
			}

			digest, err := crypto.HashRange(v.tree, f.Path, start, end)
			if err != nil {
				return nil, &IntegrityError{Path: f.Path, Block: idx, Reason: "cannot read block", Err: err}
			}
			if digest != block.Hash {
				return nil, &IntegrityError{Path: f.Path, Block: idx, Reason: "digest mismatch"}
			}

			if v.tracker != nil {
				v.tracker.AddProcessed(end - start)
			}
			if v.onBlock != nil {
				v.onBlock()
			}
			result.Blocks++
		}
	}

	v.scanExtra(ctx, m, result)

	v.logger.Info("Validation passed", "files", result.Files, "blocks", result.Blocks, "extra_files", len(result.ExtraFiles))
	return result, nil
}

// scanExtra ищет файлы, которых нет в манифесте; ошибки обхода не фатальны
func (v *Validator) scanExtra(ctx context.Context, m *models.Manifest, result *Result) {
	tree, err := manifest.NewBuilder(v.tree, v.ignore, v.logger).Scan(ctx)
	if err != nil {
		v.logger.Warn("Extra file scan failed", "error", err)
		return
	}

	known := make(map[string]struct{}, len(m.Files))
	for _, f := range m.Files {
		known[f.Path] = struct{}{}
	}

	for _, f := range tree.Files {
		if _, ok := known[f.Path]; !ok {
			result.ExtraFiles = append(result.ExtraFiles, f.Path)
		}
	}

	for i, path := range result.ExtraFiles {
		if i == v.maxWarnings {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("...and %d more files not in manifest", len(result.ExtraFiles)-v.maxWarnings))
			break
		}
		result.Warnings = append(result.Warnings, "File not in manifest: "+path)
	}
}
