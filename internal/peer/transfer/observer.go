package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/iudanet/foldersync/internal/peer/progress"
)

//go:generate moq -out observer_mock.go . Observer Approver
//go:generate moq -out controller_mock.go . Controller

// Observer receives engine notifications. Calls come from the engine goroutine.
type Observer interface {
	// OnState вызывается при каждом переходе автомата
	OnState(state State)
	// OnProgress получает снимок счетчиков после каждого шага
	OnProgress(snapshot progress.Snapshot)
	// OnPause сообщает о смене флага паузы (локального или удаленного)
	OnPause(paused, byPeer bool)
	// OnWarning нефатальное предупреждение
	OnWarning(message string)
	// OnError фатальная ошибка, движок остановлен
	OnError(err error)
	// OnComplete передача успешно завершена
	OnComplete(report *Report)
}

// Approver decides whether a receiver may connect. It must return when ctx is done.
type Approver interface {
	Approve(ctx context.Context, username string) (bool, error)
}

// ApproverFunc adapts a function to Approver.
type ApproverFunc func(ctx context.Context, username string) (bool, error)

// Approve calls f.
func (f ApproverFunc) Approve(ctx context.Context, username string) (bool, error) {
	return f(ctx, username)
}

// AutoApprove accepts every receiver.
var AutoApprove = ApproverFunc(func(context.Context, string) (bool, error) { return true, nil })

// Controller is the set of local actions a presentation layer can trigger.
type Controller interface {
	Pause()
	Resume()
	Cancel()
}

// Report is the completion summary of a transfer.
type Report struct {
	Warnings         []string
	ExtraFiles       []string
	Peer             string
	Duration         time.Duration
	BytesTransferred int64
	BytesReused      int64
	TotalSize        int64
	Files            int
	BlocksRequested  int
	BlocksReused     int
}

// Options tune an engine.
type Options struct {
	// Username имя, которое видит другая сторона
	Username string
	// PacingDelay пауза между чанками на отправителе
	PacingDelay time.Duration
	// HandshakeTimeout ожидание одобрения и ответа на hello
	HandshakeTimeout time.Duration
	// Now источник времени для трекера, nil означает time.Now
	Now func() time.Time
}

// DefaultOptions returns the stock pacing and handshake settings.
func DefaultOptions() Options {
	return Options{
		PacingDelay:      10 * time.Millisecond,
		HandshakeTimeout: 60 * time.Second,
	}
}

// LogObserver reports engine notifications to a logger only.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) OnState(state State) { o.Logger.Debug("State changed", "state", state) }

func (o LogObserver) OnProgress(progress.Snapshot) {}

func (o LogObserver) OnPause(paused, byPeer bool) {
	o.Logger.Info("Pause changed", "paused", paused, "by_peer", byPeer)
}

func (o LogObserver) OnWarning(message string) { o.Logger.Warn(message) }

func (o LogObserver) OnError(err error) { o.Logger.Error("Transfer failed", "error", err) }

func (o LogObserver) OnComplete(report *Report) {
	o.Logger.Info("Transfer completed", "bytes", report.BytesTransferred, "reused", report.BytesReused)
}
