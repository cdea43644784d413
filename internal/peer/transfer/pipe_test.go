package transfer

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/iudanet/foldersync/pkg/api"
)

// pipeEnd один конец канала в памяти; сообщения проходят через JSON, как по сети
type pipeEnd struct {
	in   <-chan []byte
	out  chan<- []byte
	done chan struct{}
	once *sync.Once
}

// newPipe returns two connected ends. Closing either end closes both,
// messages sent before the close are still delivered.
func newPipe() (*pipeEnd, *pipeEnd) {
	ab := make(chan []byte, 1024)
	ba := make(chan []byte, 1024)
	done := make(chan struct{})
	once := &sync.Once{}
	return &pipeEnd{in: ba, out: ab, done: done, once: once},
		&pipeEnd{in: ab, out: ba, done: done, once: once}
}

func (p *pipeEnd) Send(ctx context.Context, msg *api.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case <-p.done:
		return ErrChannelClosed
	default:
	}
	select {
	case p.out <- data:
		return nil
	case <-p.done:
		return ErrChannelClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeEnd) Receive(ctx context.Context) (*api.Message, error) {
	select {
	case data := <-p.in:
		return decode(data)
	default:
	}
	select {
	case data := <-p.in:
		return decode(data)
	case <-p.done:
		// то, что успели отправить до закрытия, доставляется
		select {
		case data := <-p.in:
			return decode(data)
		default:
			return nil, ErrChannelClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *pipeEnd) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}

func decode(data []byte) (*api.Message, error) {
	var msg api.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
