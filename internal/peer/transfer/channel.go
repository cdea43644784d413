package transfer

import (
	"context"

	"github.com/iudanet/foldersync/pkg/api"
)

// Channel is a reliable, ordered, bidirectional message channel between two peers.
// Receive returns ErrChannelClosed (possibly wrapped) once the channel is closed by either side;
// messages sent before the close are still delivered first.
type Channel interface {
	Send(ctx context.Context, msg *api.Message) error
	Receive(ctx context.Context) (*api.Message, error)
	Close() error
}

// event входящее событие канала: сообщение или закрытие (err != nil)
type event struct {
	msg *api.Message
	err error
}

// pump читает канал и передает события в out до закрытия канала или отмены ctx
func pump(ctx context.Context, ch Channel, out chan<- event) {
	for {
		msg, err := ch.Receive(ctx)
		select {
		case out <- event{msg: msg, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}
