// Package reassembly accumulates the chunks of in-flight blocks on the receiver.
package reassembly

import (
	"errors"
	"fmt"
)

// ErrInvalidChunk неверные номер чанка или количество чанков
var ErrInvalidChunk = errors.New("invalid chunk")

type blockKey struct {
	path  string
	index int
}

// partialBlock слоты чанков одного блока
type partialBlock struct {
	chunks   [][]byte
	received int
	size     int64
}

// Buffer holds partial blocks keyed by (file, block index).
// Not safe for concurrent use: the receiver engine owns it.
type Buffer struct {
	blocks map[blockKey]*partialBlock
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{blocks: make(map[blockKey]*partialBlock)}
}

// Add stores chunk number chunk of total at its slot. The slot array is created on the first chunk.
func (b *Buffer) Add(path string, block, chunk, total int, data []byte) error {
	if total <= 0 {
		return fmt.Errorf("%w: total %d for %s block %d", ErrInvalidChunk, total, path, block)
	}
	if chunk < 0 || chunk >= total {
		return fmt.Errorf("%w: chunk %d of %d for %s block %d", ErrInvalidChunk, chunk, total, path, block)
	}

	key := blockKey{path: path, index: block}
	pb, ok := b.blocks[key]
	if !ok {
		pb = &partialBlock{chunks: make([][]byte, total)}
		b.blocks[key] = pb
	}
	if len(pb.chunks) != total {
		return fmt.Errorf("%w: total changed from %d to %d for %s block %d", ErrInvalidChunk, len(pb.chunks), total, path, block)
	}

	if pb.chunks[chunk] == nil {
		pb.received++
	} else {
		pb.size -= int64(len(pb.chunks[chunk]))
	}
	pb.chunks[chunk] = data
	pb.size += int64(len(data))

	return nil
}

// Received returns how many distinct chunks of the block arrived and the expected total.
func (b *Buffer) Received(path string, block int) (int, int) {
	pb, ok := b.blocks[blockKey{path: path, index: block}]
	if !ok {
		return 0, 0
	}
	return pb.received, len(pb.chunks)
}

// Assemble concatenates the slots in index order into one contiguous buffer.
// Missing slots are not reported here: they shorten the buffer and the digest check catches it.
func (b *Buffer) Assemble(path string, block int) []byte {
	pb, ok := b.blocks[blockKey{path: path, index: block}]
	if !ok {
		return []byte{}
	}

	out := make([]byte, 0, pb.size)
	for _, chunk := range pb.chunks {
		out = append(out, chunk...)
	}
	return out
}

// Discard drops the slots of one block.
func (b *Buffer) Discard(path string, block int) {
	delete(b.blocks, blockKey{path: path, index: block})
}

// Reset drops every partial block, used when a transfer is aborted.
func (b *Buffer) Reset() {
	b.blocks = make(map[blockKey]*partialBlock)
}

// Len returns the number of partial blocks held.
func (b *Buffer) Len() int {
	return len(b.blocks)
}
