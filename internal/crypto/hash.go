package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestLen длина текстового дайджеста блока (SHA256, hex-encoded)
const DigestLen = sha256.Size * 2

// RangeReader reads the [start, end) byte range of a file.
type RangeReader interface {
	ReadRange(path string, start, end int64) ([]byte, error)
}

// HashBlock returns the hex-encoded SHA256 digest of data.
// Same function on both roles: indexing, reuse checks, verification and validation.
func HashBlock(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashRange reads [start, end) of path and returns its digest.
// A read failure is returned as is; the caller decides whether it is fatal.
func HashRange(r RangeReader, path string, start, end int64) (string, error) {
	data, err := r.ReadRange(path, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to read %s [%d:%d]: %w", path, start, end, err)
	}
	if int64(len(data)) != end-start {
		return "", fmt.Errorf("short read %s [%d:%d]: got %d bytes", path, start, end, len(data))
	}
	return HashBlock(data), nil
}

// VerifyBlock checks that data hashes to the expected digest.
func VerifyBlock(data []byte, expected string) error {
	if expected == "" {
		return fmt.Errorf("expected digest cannot be empty")
	}

	if computed := HashBlock(data); computed != expected {
		return fmt.Errorf("digest mismatch: expected %s, got %s", expected, computed)
	}

	return nil
}

// IsDigest reports whether s looks like a block digest produced by HashBlock.
func IsDigest(s string) bool {
	if len(s) != DigestLen {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
