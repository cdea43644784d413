package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// drivePrefix ловит "C:" и подобные префиксы дисков
var drivePrefix = regexp.MustCompile(`^[a-zA-Z]:`)

// ValidateRelativePath checks that a manifest path is safe to join under a destination root:
// slash separated, relative, no drive prefix, no "." or ".." segments, no empty segments.
func ValidateRelativePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path %q contains NUL byte", path)
	}

	if strings.Contains(path, `\`) {
		return fmt.Errorf("path %q must use / as separator", path)
	}

	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must be relative", path)
	}

	if drivePrefix.MatchString(path) {
		return fmt.Errorf("path %q must not contain a drive prefix", path)
	}

	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "":
			return fmt.Errorf("path %q contains an empty segment", path)
		case ".", "..":
			return fmt.Errorf("path %q contains a traversal segment", path)
		}
	}

	return nil
}
