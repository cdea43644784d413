// Package fsys provides the file-system capability the sync engine works against:
// directory listing, stat, byte-range reads and writes, truncation and directory creation,
// all addressed by slash-separated paths relative to a root.
package fsys

import "time"

//go:generate moq -out fsys_mock.go . FileSystem

// EntryKind тип элемента каталога
type EntryKind int

const (
	// KindOther символические ссылки, устройства и прочее: обходчик их пропускает
	KindOther EntryKind = iota
	// KindFile обычный файл
	KindFile
	// KindDir каталог
	KindDir
)

// Entry is one directory listing item.
type Entry struct {
	Name string
	Kind EntryKind
}

// FileInfo is the subset of stat the engine needs.
type FileInfo struct {
	ModTime time.Time
	Size    int64
	IsDir   bool
}

// FileSystem is addressed by relative slash-separated paths; "" is the root itself.
type FileSystem interface {
	// ReadDir lists a directory, sorted by name
	ReadDir(dir string) ([]Entry, error)

	// Stat returns size and modification time of path
	Stat(path string) (FileInfo, error)

	// ReadRange reads [start, end) of a file; a shorter result means the file ended early
	ReadRange(path string, start, end int64) ([]byte, error)

	// WriteAt writes data at offset, creating the file and its parents when missing,
	// without touching other regions of the file
	WriteAt(path string, offset int64, data []byte) error

	// Truncate cuts the file to zero length, creating it when missing
	Truncate(path string) error

	// MkdirAll creates a directory with all parents
	MkdirAll(dir string) error

	// SetModTime sets the modification time of path
	SetModTime(path string, modified time.Time) error
}
