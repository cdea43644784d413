// Package hub pairs the two websocket ends of a relay session and forwards frames between them.
package hub

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// queueSize сколько кадров буферизуется в каждую сторону
	queueSize = 64
	// pingPeriod как часто relay пингует обе стороны
	pingPeriod = 20 * time.Second
	// pongWait сколько ждем любого кадра или pong
	pongWait = 60 * time.Second
	// writeWait ограничение на запись одного кадра
	writeWait = 10 * time.Second
	// maxFrameSize чанк блока или часть манифеста (256 KiB в base64) плюс конверт
	maxFrameSize = 1 << 20
)

var (
	// ErrHostConnected indicates that the sender slot is already taken
	ErrHostConnected = errors.New("sender already connected")
	// ErrHostAbsent indicates that nobody holds the sender slot
	ErrHostAbsent = errors.New("sender is not connected")
	// ErrSessionFull indicates that the session already has a receiver
	ErrSessionFull = errors.New("session already has a receiver")
)

// CloseFunc is called once per session when its room shuts down.
type CloseFunc func(sessionID string, bytesRelayed int64)

// Hub keeps one room per connected session.
type Hub struct {
	rooms   map[string]*room
	onClose CloseFunc
	logger  *slog.Logger
	wg      sync.WaitGroup
	mu      sync.Mutex
}

type frame struct {
	data []byte
	kind int
}

type room struct {
	id      string
	host    *websocket.Conn
	guest   *websocket.Conn
	toHost  chan frame
	toGuest chan frame
	done    chan struct{}
	bytes   atomic.Int64
}

// New creates a hub. onClose may be nil.
func New(logger *slog.Logger, onClose CloseFunc) *Hub {
	return &Hub{
		rooms:   make(map[string]*room),
		onClose: onClose,
		logger:  logger,
	}
}

// Host registers the sender end of a session and starts forwarding its frames.
func (h *Hub) Host(sessionID string, conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[sessionID]; ok {
		return ErrHostConnected
	}

	r := &room{
		id:      sessionID,
		host:    conn,
		toHost:  make(chan frame, queueSize),
		toGuest: make(chan frame, queueSize),
		done:    make(chan struct{}),
	}
	h.rooms[sessionID] = r

	h.start(r, conn, r.toGuest, r.toHost, "host")
	h.logger.Info("Sender connected", "session_id", sessionID)
	return nil
}

// HasHost reports whether the sender of sessionID is connected.
func (h *Hub) HasHost(sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.rooms[sessionID]
	return ok
}

// Join attaches the receiver end. A session carries exactly one receiver.
func (h *Hub) Join(sessionID string, conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[sessionID]
	if !ok {
		return ErrHostAbsent
	}
	if r.guest != nil {
		return ErrSessionFull
	}
	r.guest = conn

	h.start(r, conn, r.toHost, r.toGuest, "guest")
	h.logger.Info("Receiver joined", "session_id", sessionID)
	return nil
}

// Drop closes a room that still has no receiver. It reports whether a room was closed.
func (h *Hub) Drop(sessionID string) bool {
	h.mu.Lock()
	r, ok := h.rooms[sessionID]
	h.mu.Unlock()

	if !ok {
		return false
	}
	return h.closeRoom(r, true)
}

// Active returns the number of open rooms.
func (h *Hub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// Close shuts every room down and waits for the pumps to stop.
func (h *Hub) Close() {
	h.mu.Lock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.Unlock()

	for _, r := range rooms {
		h.shutdown(r)
	}
	h.wg.Wait()
}

// start запускает пару насосов для одного конца комнаты
func (h *Hub) start(r *room, conn *websocket.Conn, out chan<- frame, in <-chan frame, role string) {
	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		h.readPump(r, conn, out, role)
	}()
	go func() {
		defer h.wg.Done()
		h.writePump(r, conn, in)
	}()
}

// shutdown закрывает комнату один раз: убирает ее из hub и будит насосы
func (h *Hub) shutdown(r *room) {
	h.closeRoom(r, false)
}

func (h *Hub) closeRoom(r *room, onlyUnpaired bool) bool {
	h.mu.Lock()
	if current, ok := h.rooms[r.id]; !ok || current != r {
		h.mu.Unlock()
		return false
	}
	if onlyUnpaired && r.guest != nil {
		h.mu.Unlock()
		return false
	}
	delete(h.rooms, r.id)
	paired := r.guest != nil
	close(r.done)
	h.mu.Unlock()

	h.logger.Info("Session closed", "session_id", r.id, "bytes_relayed", r.bytes.Load(), "paired", paired)
	if h.onClose != nil {
		h.onClose(r.id, r.bytes.Load())
	}
	return true
}

// readPump читает кадры одной стороны и кладет их в очередь другой
func (h *Hub) readPump(r *room, conn *websocket.Conn, out chan<- frame, role string) {
	defer h.shutdown(r)

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("Connection error", "session_id", r.id, "role", role, "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		r.bytes.Add(int64(len(data)))

		select {
		case out <- frame{kind: kind, data: data}:
		case <-r.done:
			return
		}
	}
}

// writePump пишет очередь в соединение; после закрытия комнаты досылает остаток и закрывает сокет
func (h *Hub) writePump(r *room, conn *websocket.Conn, in <-chan frame) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case f := <-in:
			if err := write(conn, f); err != nil {
				h.shutdown(r)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.shutdown(r)
				return
			}

		case <-r.done:
			// кадры, прочитанные до закрытия другой стороны, доставляются
			for {
				select {
				case f := <-in:
					if err := write(conn, f); err != nil {
						return
					}
					continue
				default:
				}
				break
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "peer disconnected"))
			return
		}
	}
}

func write(conn *websocket.Conn, f frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(f.kind, f.data)
}
