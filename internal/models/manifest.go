package models

const (
	// ManifestVersion текущая версия формата манифеста
	ManifestVersion = 1

	// BlockSize размер блока: единица хеширования и передачи (16 MiB)
	BlockSize int64 = 16 << 20

	// ChunkSize размер чанка внутри блока: единица отправки по сети (256 KiB)
	ChunkSize int64 = 256 << 10

	// MaxFiles максимальное количество файлов в одном манифесте
	MaxFiles = 10000

	// PathSeparator канонический разделитель путей внутри манифеста
	PathSeparator = "/"
)

// Manifest is the content-addressed description of a source tree.
// Once built it is never mutated; the receiver works on its own decoded copy.
type Manifest struct {
	Folders   []string    `json:"folders"`
	Files     []FileEntry `json:"files"`
	Version   int         `json:"version"`
	TotalSize int64       `json:"totalSize"`
}

// FileEntry describes one file of the manifest.
type FileEntry struct {
	Path     string            `json:"path"`     // относительный путь с каноническим разделителем "/"
	Blocks   []BlockDescriptor `json:"blocks"`   // дайджесты блоков, blocks[i].Index == i
	Size     int64             `json:"size"`     // размер в байтах
	Modified int64             `json:"modified"` // время модификации источника (unix ms)
}

// BlockDescriptor holds the digest of one block of a file.
type BlockDescriptor struct {
	Hash  string `json:"hash"`
	Index int    `json:"index"`
}

// BlockCount returns ceil(size / BlockSize); zero-length files have no blocks.
func BlockCount(size int64) int {
	if size <= 0 {
		return 0
	}
	return int((size + BlockSize - 1) / BlockSize)
}

// BlockRange returns the [start, end) byte range of block index within a file of the given size.
func BlockRange(size int64, index int) (int64, int64) {
	start := int64(index) * BlockSize
	end := start + BlockSize
	if end > size {
		end = size
	}
	if start > end {
		start = end
	}
	return start, end
}

// BlockLength returns the byte length of block index within a file of the given size.
func BlockLength(size int64, index int) int64 {
	start, end := BlockRange(size, index)
	return end - start
}

// FileCount returns the number of files described by the manifest.
func (m *Manifest) FileCount() int {
	return len(m.Files)
}

// BlockTotal returns the total number of blocks across all files.
func (m *Manifest) BlockTotal() int {
	total := 0
	for i := range m.Files {
		total += len(m.Files[i].Blocks)
	}
	return total
}

// File returns the entry for path, or nil when the manifest does not describe it.
func (m *Manifest) File(path string) *FileEntry {
	for i := range m.Files {
		if m.Files[i].Path == path {
			return &m.Files[i]
		}
	}
	return nil
}
