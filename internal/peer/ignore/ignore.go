// Package ignore loads .syncignore glob patterns and matches tree paths against them.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/gobwas/glob"

	"github.com/iudanet/foldersync/internal/peer/fsys"
)

// FileName имя файла с шаблонами игнорирования в корне дерева
const FileName = ".syncignore"

// Matcher holds compiled ignore patterns. A nil Matcher ignores nothing.
type Matcher struct {
	patterns []glob.Glob
	raw      []string
}

// Parse compiles one glob per line; empty lines and lines starting with # are skipped.
// Invalid patterns are logged and skipped, they do not fail the whole file.
func Parse(content string, logger *slog.Logger) (*Matcher, error) {
	m := &Matcher{}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// '/' разделитель: "*" не проходит через каталоги, "**" проходит
		g, err := glob.Compile(strings.TrimSuffix(line, "/"), '/')
		if err != nil {
			logger.Warn("Invalid ignore pattern", "pattern", line, "error", err)
			continue
		}

		m.patterns = append(m.patterns, g)
		m.raw = append(m.raw, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan ignore patterns: %w", err)
	}

	return m, nil
}

// Load reads FileName from the root of tree. A missing file yields an empty Matcher.
func Load(tree fsys.FileSystem, logger *slog.Logger) (*Matcher, error) {
	info, err := tree.Stat(FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Matcher{}, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", FileName, err)
	}

	data, err := tree.ReadRange(FileName, 0, info.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	m, err := Parse(string(data), logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded ignore patterns", "count", len(m.raw))
	return m, nil
}

// Match reports whether path, its base name or any of its parent directories matches a pattern.
func (m *Matcher) Match(path string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}

	// проверяем сам путь, каждый родительский префикс и каждый сегмент
	segments := strings.Split(path, "/")
	candidates := make([]string, 0, len(segments)*2)
	for i, segment := range segments {
		candidates = append(candidates, strings.Join(segments[:i+1], "/"))
		if len(segments) > 1 {
			candidates = append(candidates, segment)
		}
	}

	for _, g := range m.patterns {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}

	return false
}

// Patterns returns the source lines of the compiled patterns.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.raw
}
