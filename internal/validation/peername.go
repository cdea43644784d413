package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPeerNameLen ограничение длины имени в символах, не в байтах
const MaxPeerNameLen = 32

// NormalizePeerName trims the whitespace a human may type around a name.
func NormalizePeerName(name string) string {
	return strings.TrimSpace(name)
}

// ValidatePeerName checks the display name a peer announces in hello.
// The name ends up in the approval prompt of the other side, so any
// printable letters are allowed but control sequences are not.
func ValidatePeerName(name string) error {
	if name == "" {
		return fmt.Errorf("peer name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("peer name is not valid UTF-8")
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("peer name must not start or end with spaces")
	}
	if n := utf8.RuneCountInString(name); n > MaxPeerNameLen {
		return fmt.Errorf("peer name must not exceed %d characters, got %d", MaxPeerNameLen, n)
	}
	for _, r := range name {
		// IsPrint пропускает только обычный пробел
		if !unicode.IsPrint(r) {
			return fmt.Errorf("peer name contains non-printable character %U", r)
		}
	}
	return nil
}
