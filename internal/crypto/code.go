package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/iudanet/foldersync/internal/validation"
)

// GenerateShareCode returns a random code of validation.ShareCodeLen characters
// drawn uniformly from validation.ShareCodeAlphabet.
func GenerateShareCode() (string, error) {
	alphabet := validation.ShareCodeAlphabet
	limit := big.NewInt(int64(len(alphabet)))

	code := make([]byte, validation.ShareCodeLen)
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate share code: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}

	return string(code), nil
}

// HashShareCode returns the keyed BLAKE2b-256 digest of a share code.
// The relay stores and looks sessions up only by this digest, so its ledger never holds live codes.
func HashShareCode(key []byte, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("share code cannot be empty")
	}

	// blake2b допускает ключ до 64 байт
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}

	h, err := blake2b.New256(key)
	if err != nil {
		return "", fmt.Errorf("failed to init blake2b: %w", err)
	}
	h.Write([]byte(code))

	return hex.EncodeToString(h.Sum(nil)), nil
}
