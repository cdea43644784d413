package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/foldersync/internal/validation"
)

// memReader простой RangeReader поверх map для тестов
type memReader struct {
	files map[string][]byte
	err   error
}

func (m *memReader) ReadRange(path string, start, end int64) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return data[start:end], nil
}

func TestHashBlock(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		data     []byte
	}{
		{
			name:     "empty input",
			data:     []byte{},
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			data:     []byte("abc"),
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HashBlock(tt.data)
			assert.Equal(t, tt.expected, got)
			assert.Len(t, got, DigestLen)
			assert.True(t, IsDigest(got))
		})
	}
}

func TestHashBlock_Deterministic(t *testing.T) {
	data := []byte("the same bytes hashed twice")
	assert.Equal(t, HashBlock(data), HashBlock(data))
	assert.NotEqual(t, HashBlock(data), HashBlock([]byte("different bytes")))
}

func TestHashRange(t *testing.T) {
	r := &memReader{files: map[string][]byte{"a.txt": []byte("0123456789")}}

	got, err := HashRange(r, "a.txt", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, HashBlock([]byte("234")), got)

	// диапазон длиннее файла: короткое чтение
	_, err = HashRange(r, "a.txt", 5, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short read")

	_, err = HashRange(r, "missing", 0, 1)
	require.Error(t, err)

	ioErr := errors.New("disk on fire")
	_, err = HashRange(&memReader{err: ioErr}, "a.txt", 0, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ioErr)
}

func TestVerifyBlock(t *testing.T) {
	data := []byte("block payload")

	assert.NoError(t, VerifyBlock(data, HashBlock(data)))

	err := VerifyBlock(append([]byte{}, data[:len(data)-1]...), HashBlock(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")

	err = VerifyBlock(data, "")
	require.Error(t, err)
}

func TestIsDigest(t *testing.T) {
	assert.False(t, IsDigest(""))
	assert.False(t, IsDigest("abc"))
	assert.False(t, IsDigest("zz"+HashBlock(nil)[2:]))
}

func TestHashShareCode(t *testing.T) {
	key := []byte("relay-secret")

	h1, err := HashShareCode(key, "ABCD1234")
	require.NoError(t, err)
	h2, err := HashShareCode(key, "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	other, err := HashShareCode([]byte("another-secret"), "ABCD1234")
	require.NoError(t, err)
	assert.NotEqual(t, h1, other)

	// слишком длинный ключ обрезается, а не вызывает ошибку
	long := make([]byte, 100)
	_, err = HashShareCode(long, "ABCD1234")
	require.NoError(t, err)

	_, err = HashShareCode(key, "")
	require.Error(t, err)
}

func TestGenerateShareCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := GenerateShareCode()
		require.NoError(t, err)
		require.NoError(t, validation.ValidateShareCode(code))
		seen[code] = struct{}{}
	}
	// 36^8 вариантов: совпадения среди 50 кодов практически невозможны
	assert.Greater(t, len(seen), 45)
}
