package fsys

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iudanet/foldersync/internal/validation"
)

// Local is a FileSystem rooted at a directory of the host file system.
type Local struct {
	root string
}

// NewLocal creates a FileSystem rooted at root.
// The root does not need to exist yet: writes create it.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("root cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	return &Local{root: abs}, nil
}

// Root returns the absolute root directory.
func (l *Local) Root() string {
	return l.root
}

// resolve превращает относительный путь манифеста в абсолютный путь внутри root
func (l *Local) resolve(rel string) (string, error) {
	if rel == "" {
		return l.root, nil
	}
	if err := validation.ValidateRelativePath(rel); err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return filepath.Join(l.root, filepath.FromSlash(rel)), nil
}

func (l *Local) ReadDir(dir string) ([]Entry, error) {
	abs, err := l.resolve(dir)
	if err != nil {
		return nil, err
	}

	// os.ReadDir уже сортирует по имени
	items, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read dir: %w", err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		kind := KindOther
		switch {
		case item.Type().IsRegular():
			kind = KindFile
		case item.IsDir():
			kind = KindDir
		}
		entries = append(entries, Entry{Name: item.Name(), Kind: kind})
	}

	return entries, nil
}

func (l *Local) Stat(path string) (FileInfo, error) {
	abs, err := l.resolve(path)
	if err != nil {
		return FileInfo{}, err
	}

	st, err := os.Stat(abs)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat: %w", err)
	}

	return FileInfo{Size: st.Size(), ModTime: st.ModTime(), IsDir: st.IsDir()}, nil
}

func (l *Local) ReadRange(path string, start, end int64) ([]byte, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid range [%d:%d]", start, end)
	}

	abs, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, end-start)
	n, err := f.ReadAt(buf, start)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read: %w", err)
	}

	return buf[:n], nil
}

func (l *Local) WriteAt(path string, offset int64, data []byte) error {
	abs, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create parent dir: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open for write: %w", err)
	}

	if _, err := f.WriteAt(data, offset); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write at %d: %w", offset, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close: %w", err)
	}

	return nil
}

func (l *Local) Truncate(path string) error {
	abs, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create parent dir: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to truncate: %w", err)
	}

	return f.Close()
}

func (l *Local) MkdirAll(dir string) error {
	abs, err := l.resolve(dir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create dir: %w", err)
	}

	return nil
}

func (l *Local) SetModTime(path string, modified time.Time) error {
	abs, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Chtimes(abs, modified, modified); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}

	return nil
}
