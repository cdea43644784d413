package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/foldersync/internal/peer/transfer"
	"github.com/iudanet/foldersync/pkg/api"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 20 * time.Second
	// MaxMessageSize чанк блока или часть манифеста (256 KiB в base64) плюс конверт
	MaxMessageSize = 1 << 20
)

// Conn is a transfer.Channel over a websocket connection.
// Receive does not observe ctx while blocked in a read: Close unblocks it.
type Conn struct {
	ws      *websocket.Conn
	logger  *slog.Logger
	closed  chan struct{}
	writeMu sync.Mutex
	once    sync.Once
}

var _ transfer.Channel = (*Conn)(nil)

// NewConn wraps an established websocket and starts its keepalive pings.
func NewConn(ws *websocket.Conn, logger *slog.Logger) *Conn {
	ws.SetReadLimit(MaxMessageSize)
	c := &Conn{ws: ws, logger: logger, closed: make(chan struct{})}
	go c.keepalive()
	return c
}

func (c *Conn) Send(ctx context.Context, msg *api.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return c.mapError(err)
	}
	if err := c.ws.WriteJSON(msg); err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *Conn) Receive(ctx context.Context) (*api.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var msg api.Message
	if err := c.ws.ReadJSON(&msg); err != nil {
		return nil, c.mapError(err)
	}
	return &msg, nil
}

// Close sends a normal close frame and closes the socket. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closed)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		err = c.ws.Close()
	})
	return err
}

// mapError сводит закрытие соединения к transfer.ErrChannelClosed
func (c *Conn) mapError(err error) error {
	select {
	case <-c.closed:
		return transfer.ErrChannelClosed
	default:
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		if closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway {
			return transfer.ErrChannelClosed
		}
		return fmt.Errorf("%w: %w", transfer.ErrChannelClosed, err)
	}
	if errors.Is(err, websocket.ErrCloseSent) {
		return transfer.ErrChannelClosed
	}

	c.logger.Debug("Websocket error", "error", err)
	return fmt.Errorf("%w: %w", transfer.ErrChannelClosed, err)
}

// keepalive шлет ping, чтобы relay и NAT не закрыли простаивающее соединение
func (c *Conn) keepalive() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.logger.Debug("Ping failed", "error", err)
				return
			}
		}
	}
}
