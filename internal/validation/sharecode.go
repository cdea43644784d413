package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// ShareCodeLen длина кода сессии
	ShareCodeLen = 8
	// ShareCodeAlphabet допустимые символы кода сессии
	ShareCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var shareCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// NormalizeShareCode trims whitespace and upper-cases a code typed by a human.
func NormalizeShareCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateShareCode checks an already normalized share code.
func ValidateShareCode(code string) error {
	if code == "" {
		return fmt.Errorf("share code cannot be empty")
	}

	if len(code) != ShareCodeLen {
		return fmt.Errorf("share code must be %d characters", ShareCodeLen)
	}

	if !shareCodePattern.MatchString(code) {
		return fmt.Errorf("share code can only contain letters (A-Z) and numbers (0-9)")
	}

	return nil
}
