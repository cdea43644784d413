package reassembly

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/foldersync/internal/crypto"
)

func split(data []byte, size int) [][]byte {
	var chunks [][]byte
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[start:end])
	}
	return chunks
}

func TestBuffer_AssembleInOrder(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 100)
	chunks := split(data, 64)

	b := NewBuffer()
	for i, c := range chunks {
		require.NoError(t, b.Add("f.bin", 0, i, len(chunks), c))
	}

	received, total := b.Received("f.bin", 0)
	assert.Equal(t, len(chunks), received)
	assert.Equal(t, len(chunks), total)

	assembled := b.Assemble("f.bin", 0)
	assert.Equal(t, data, assembled)
	assert.Equal(t, crypto.HashBlock(data), crypto.HashBlock(assembled))
}

func TestBuffer_OutOfOrderSlots(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Add("f", 2, 2, 3, []byte("c")))
	require.NoError(t, b.Add("f", 2, 0, 3, []byte("a")))
	require.NoError(t, b.Add("f", 2, 1, 3, []byte("b")))

	assert.Equal(t, []byte("abc"), b.Assemble("f", 2))
}

func TestBuffer_DroppedChunkFailsVerification(t *testing.T) {
	data := bytes.Repeat([]byte{7}, 1000)
	chunks := split(data, 100)

	b := NewBuffer()
	for i, c := range chunks {
		if i == 4 {
			continue // потерянный чанк
		}
		require.NoError(t, b.Add("f", 0, i, len(chunks), c))
	}

	assembled := b.Assemble("f", 0)
	assert.Len(t, assembled, len(data)-100)
	assert.Error(t, crypto.VerifyBlock(assembled, crypto.HashBlock(data)))
}

func TestBuffer_AlteredChunkFailsVerification(t *testing.T) {
	data := []byte("some block content")
	b := NewBuffer()
	require.NoError(t, b.Add("f", 0, 0, 2, data[:9]))
	altered := append([]byte{}, data[9:]...)
	altered[0] ^= 0xFF
	require.NoError(t, b.Add("f", 0, 1, 2, altered))

	assert.Error(t, crypto.VerifyBlock(b.Assemble("f", 0), crypto.HashBlock(data)))
}

func TestBuffer_InvalidChunks(t *testing.T) {
	b := NewBuffer()

	assert.ErrorIs(t, b.Add("f", 0, 0, 0, nil), ErrInvalidChunk)
	assert.ErrorIs(t, b.Add("f", 0, 3, 3, nil), ErrInvalidChunk)
	assert.ErrorIs(t, b.Add("f", 0, -1, 3, nil), ErrInvalidChunk)

	require.NoError(t, b.Add("f", 0, 0, 3, []byte("x")))
	assert.ErrorIs(t, b.Add("f", 0, 1, 4, []byte("y")), ErrInvalidChunk)
}

func TestBuffer_DuplicateChunkReplacesSlot(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Add("f", 0, 0, 2, []byte("old")))
	require.NoError(t, b.Add("f", 0, 0, 2, []byte("new")))
	require.NoError(t, b.Add("f", 0, 1, 2, []byte("!")))

	received, _ := b.Received("f", 0)
	assert.Equal(t, 2, received)
	assert.Equal(t, []byte("new!"), b.Assemble("f", 0))
}

func TestBuffer_DiscardAndReset(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Add("a", 0, 0, 1, []byte("a")))
	require.NoError(t, b.Add("b", 1, 0, 1, []byte("b")))
	assert.Equal(t, 2, b.Len())

	b.Discard("a", 0)
	assert.Equal(t, 1, b.Len())
	assert.Empty(t, b.Assemble("a", 0))

	b.Reset()
	assert.Zero(t, b.Len())
	received, total := b.Received("b", 1)
	assert.Zero(t, received)
	assert.Zero(t, total)
}
