package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/foldersync/internal/models"
)

func TestManifestMessages(t *testing.T) {
	m := &models.Manifest{
		Version:   models.ManifestVersion,
		Folders:   []string{"docs"},
		TotalSize: 3,
		Files:     []models.FileEntry{{Path: "docs/a", Size: 3, Modified: 17, Blocks: []models.BlockDescriptor{{Index: 0, Hash: "ab"}}}},
	}

	msgs, err := NewManifestMessages(m)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	raw, err := json.Marshal(msgs[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"manifest"`)
	assert.Contains(t, string(raw), `"total":1`)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	var a ManifestAssembler
	got, err := a.Add(&decoded)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

// largeManifest манифест на models.MaxFiles файлов с длинными путями
func largeManifest() *models.Manifest {
	m := &models.Manifest{Version: models.ManifestVersion, Folders: []string{}}
	for i := 0; i < models.MaxFiles; i++ {
		m.Files = append(m.Files, models.FileEntry{
			Path:     fmt.Sprintf("projects/archive/2024/reports/quarterly/section-%05d/report.txt", i),
			Size:     1,
			Modified: int64(i),
			Blocks:   []models.BlockDescriptor{{Index: 0, Hash: strings.Repeat("f", 64)}},
		})
		m.TotalSize++
	}
	return m
}

func TestManifestMessages_SplitsLargeManifest(t *testing.T) {
	m := largeManifest()

	msgs, err := NewManifestMessages(m)
	require.NoError(t, err)
	require.Greater(t, len(msgs), 1)

	var a ManifestAssembler
	for i, msg := range msgs {
		assert.Equal(t, i, msg.Chunk)
		assert.Equal(t, len(msgs), msg.Total)

		raw, err := json.Marshal(msg)
		require.NoError(t, err)
		// каждая часть не больше кадра с чанком блока
		assert.Less(t, len(raw), 1<<20)

		var decoded Message
		require.NoError(t, json.Unmarshal(raw, &decoded))
		got, err := a.Add(&decoded)
		require.NoError(t, err)
		if i < len(msgs)-1 {
			assert.Nil(t, got)
			continue
		}
		assert.Equal(t, m, got)
	}
}

func TestManifestAssembler_Errors(t *testing.T) {
	msgs, err := NewManifestMessages(largeManifest())
	require.NoError(t, err)
	require.Greater(t, len(msgs), 2)

	tests := []struct {
		name string
		msgs []*Message
	}{
		{name: "not a manifest", msgs: []*Message{RequestManifest()}},
		{name: "no data", msgs: []*Message{{Type: TypeManifest, Total: 1}}},
		{name: "no part count", msgs: []*Message{{Type: TypeManifest, Data: msgs[0].Data}}},
		{name: "too many parts", msgs: []*Message{{Type: TypeManifest, Total: MaxManifestParts + 1, Data: msgs[0].Data}}},
		{name: "out of order", msgs: []*Message{msgs[0], msgs[2]}},
		{name: "part count changed", msgs: []*Message{msgs[0], {Type: TypeManifest, Chunk: 1, Total: 2, Data: msgs[1].Data}}},
		{name: "broken json", msgs: []*Message{{Type: TypeManifest, Total: 1, Data: []byte(`"e30"`)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a ManifestAssembler
			var err error
			for _, msg := range tt.msgs {
				if _, err = a.Add(msg); err != nil {
					break
				}
			}
			require.Error(t, err)
		})
	}
}

func TestBlockChunkWireFormat(t *testing.T) {
	msg, err := NewBlockChunk("f.bin", 1, 2, 3, []byte{0, 1, 2, 255})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"block_chunk","file":"f.bin","block":1,"chunk":2,"total":3,"data":"AAEC/w=="}`,
		string(raw))

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	data, err := decoded.ChunkData()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 255}, data)

	_, err = BlockComplete("f.bin", 1).ChunkData()
	require.Error(t, err)
}

func TestAcknowledge(t *testing.T) {
	raw, err := json.Marshal(Reject(ReasonTimeout))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"acknowledge","reason":"timeout"}`, string(raw))

	var decoded Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"acknowledge","accepted":true,"senderUsername":"alice"}`), &decoded))
	assert.Equal(t, *Accept("alice"), decoded)
}
