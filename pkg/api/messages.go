package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iudanet/foldersync/internal/models"
)

// MessageType тип сообщения протокола синхронизации
type MessageType string

const (
	TypeHello           MessageType = "hello"            // получатель -> отправитель: открыть запрос на одобрение
	TypeAcknowledge     MessageType = "acknowledge"      // отправитель -> получатель: одобрено или отклонено
	TypeRequestManifest MessageType = "request_manifest" // получатель -> отправитель
	TypeManifest        MessageType = "manifest"         // отправитель -> получатель, data = часть манифеста
	TypeRequestBlock    MessageType = "request_block"    // получатель -> отправитель
	TypeBlockChunk      MessageType = "block_chunk"      // отправитель -> получатель, data = байты чанка
	TypeBlockComplete   MessageType = "block_complete"   // отправитель -> получатель: конец потока чанков
	TypePause           MessageType = "pause"            // в обе стороны
	TypeResume          MessageType = "resume"           // в обе стороны
	TypeCancel          MessageType = "cancel"           // в обе стороны
	TypeHashMismatch    MessageType = "hash_mismatch"    // получатель -> отправитель
	TypeError           MessageType = "error"            // отправитель -> получатель
	TypeReceiverDone    MessageType = "receiver_done"    // получатель -> отправитель
)

// Reject reasons carried by a negative acknowledge.
const (
	ReasonRejected = "rejected"
	ReasonTimeout  = "timeout"
)

// Message is the single JSON envelope of every peer-to-peer message.
// Only the fields relevant to Type are set.
type Message struct {
	Type           MessageType     `json:"type"`
	Username       string          `json:"username,omitempty"`       // hello
	SenderUsername string          `json:"senderUsername,omitempty"` // acknowledge
	Reason         string          `json:"reason,omitempty"`         // acknowledge при отказе
	File           string          `json:"file,omitempty"`           // request_block, block_chunk, block_complete, hash_mismatch
	Message        string          `json:"message,omitempty"`        // error
	Data           json.RawMessage `json:"data,omitempty"`           // manifest, block_chunk
	Block          int             `json:"block,omitempty"`
	Chunk          int             `json:"chunk,omitempty"` // block_chunk, номер части manifest
	Total          int             `json:"total,omitempty"`
	Accepted       bool            `json:"accepted,omitempty"`
}

// Hello opens the approval gate on the sender.
func Hello(username string) *Message {
	return &Message{Type: TypeHello, Username: username}
}

// Accept is a positive acknowledge.
func Accept(senderUsername string) *Message {
	return &Message{Type: TypeAcknowledge, Accepted: true, SenderUsername: senderUsername}
}

// Reject is a negative acknowledge with a reason.
func Reject(reason string) *Message {
	return &Message{Type: TypeAcknowledge, Reason: reason}
}

// RequestManifest asks the sender for its manifest.
func RequestManifest() *Message {
	return &Message{Type: TypeRequestManifest}
}

// ManifestPartSize is the number of encoded manifest bytes carried by one manifest message.
// A manifest part stays the same size on the wire as a block chunk.
const ManifestPartSize = 256 << 10

// MaxManifestParts bounds how much manifest data a receiver accepts.
const MaxManifestParts = 1024

// NewManifestMessages splits an encoded manifest into numbered manifest messages.
// chunk is the part index and total the part count; data is base64 encoded on the wire.
func NewManifestMessages(m *models.Manifest) ([]*Message, error) {
	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	total := (len(encoded) + ManifestPartSize - 1) / ManifestPartSize
	if total > MaxManifestParts {
		return nil, fmt.Errorf("manifest of %d bytes exceeds %d parts", len(encoded), MaxManifestParts)
	}

	msgs := make([]*Message, 0, total)
	for i := 0; i < total; i++ {
		part := encoded[i*ManifestPartSize : min((i+1)*ManifestPartSize, len(encoded))]
		data, err := json.Marshal(part)
		if err != nil {
			return nil, fmt.Errorf("failed to encode manifest part: %w", err)
		}
		msgs = append(msgs, &Message{Type: TypeManifest, Chunk: i, Total: total, Data: data})
	}
	return msgs, nil
}

// ManifestAssembler collects manifest parts in order. The zero value is ready to use.
type ManifestAssembler struct {
	buf   bytes.Buffer
	next  int
	total int
}

// Add consumes one manifest message. It returns the decoded manifest after the last part
// and nil before that.
func (a *ManifestAssembler) Add(msg *Message) (*models.Manifest, error) {
	if msg.Type != TypeManifest {
		return nil, fmt.Errorf("message %q does not carry a manifest", msg.Type)
	}
	if msg.Total < 1 || msg.Total > MaxManifestParts {
		return nil, fmt.Errorf("manifest part count %d out of range", msg.Total)
	}
	if a.next == 0 {
		a.total = msg.Total
	}
	if msg.Total != a.total {
		return nil, fmt.Errorf("manifest part count changed from %d to %d", a.total, msg.Total)
	}
	if msg.Chunk != a.next {
		return nil, fmt.Errorf("manifest part %d received, expected %d", msg.Chunk, a.next)
	}
	if len(msg.Data) == 0 {
		return nil, fmt.Errorf("manifest part %d has no data", msg.Chunk)
	}

	var part []byte
	if err := json.Unmarshal(msg.Data, &part); err != nil {
		return nil, fmt.Errorf("failed to decode manifest part %d: %w", msg.Chunk, err)
	}
	a.buf.Write(part)
	a.next++

	if a.next < a.total {
		return nil, nil
	}

	var manifest models.Manifest
	if err := json.Unmarshal(a.buf.Bytes(), &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &manifest, nil
}

// RequestBlock asks for one block of a file.
func RequestBlock(file string, block int) *Message {
	return &Message{Type: TypeRequestBlock, File: file, Block: block}
}

// NewBlockChunk carries chunk number chunk of total for a block; data is base64 encoded on the wire.
func NewBlockChunk(file string, block, chunk, total int, data []byte) (*Message, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chunk: %w", err)
	}
	return &Message{Type: TypeBlockChunk, File: file, Block: block, Chunk: chunk, Total: total, Data: encoded}, nil
}

// ChunkData decodes the bytes of a block_chunk message.
func (m *Message) ChunkData() ([]byte, error) {
	if m.Type != TypeBlockChunk {
		return nil, fmt.Errorf("message %q does not carry chunk data", m.Type)
	}

	var data []byte
	if len(m.Data) == 0 {
		return []byte{}, nil
	}
	if err := json.Unmarshal(m.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode chunk: %w", err)
	}
	return data, nil
}

// BlockComplete ends the chunk stream of a block.
func BlockComplete(file string, block int) *Message {
	return &Message{Type: TypeBlockComplete, File: file, Block: block}
}

// HashMismatch tells the sender a received block failed verification.
func HashMismatch(file string, block int) *Message {
	return &Message{Type: TypeHashMismatch, File: file, Block: block}
}

// Error surfaces a sender-side failure to the receiver.
func Error(message string) *Message {
	return &Message{Type: TypeError, Message: message}
}

// Control builds pause, resume, cancel and receiver_done messages.
func Control(t MessageType) *Message {
	return &Message{Type: t}
}
