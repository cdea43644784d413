package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/pkg/api"
)

// action локальное действие из слоя представления
type action int

const (
	actionPause action = iota
	actionResume
	actionCancel
)

// session общая часть отправителя и получателя: канал, события, пауза
type session struct {
	ch          Channel
	observer    Observer
	tracker     *progress.Tracker
	logger      *slog.Logger
	events      chan event
	actions     chan action
	state       State
	opts        Options
	localPaused bool
	peerPaused  bool
}

func newSession(ch Channel, observer Observer, logger *slog.Logger, opts Options, initial State) session {
	if observer == nil {
		observer = LogObserver{Logger: logger}
	}
	return session{
		ch:       ch,
		observer: observer,
		tracker:  progress.NewTracker(opts.Now),
		logger:   logger,
		events:   make(chan event, 16),
		actions:  make(chan action, 16),
		state:    initial,
		opts:     opts,
	}
}

// Pause suspends the engine's next step and informs the peer.
func (s *session) Pause() { s.request(actionPause) }

// Resume continues after Pause and informs the peer.
func (s *session) Resume() { s.request(actionResume) }

// Cancel aborts the transfer and informs the peer.
func (s *session) Cancel() { s.request(actionCancel) }

// Tracker exposes the progress counters of the engine.
func (s *session) Tracker() *progress.Tracker { return s.tracker }

func (s *session) request(a action) {
	select {
	case s.actions <- a:
	default:
		s.logger.Warn("Action queue full, dropping action", "action", a)
	}
}

func (s *session) paused() bool {
	return s.localPaused || s.peerPaused
}

func (s *session) setState(state State) {
	if s.state == state {
		return
	}
	s.logger.Debug("Transition", "from", s.state, "to", state)
	s.state = state
	s.observer.OnState(state)
}

func (s *session) send(ctx context.Context, msg *api.Message) error {
	if err := s.ch.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Type, err)
	}
	return nil
}

// handleAction применяет локальное действие; отмена всегда возвращает ErrCancelled
func (s *session) handleAction(ctx context.Context, a action) error {
	switch a {
	case actionPause:
		if s.localPaused {
			return nil
		}
		s.localPaused = true
		s.observer.OnPause(true, false)
		return s.send(ctx, api.Control(api.TypePause))
	case actionResume:
		if !s.localPaused {
			return nil
		}
		s.localPaused = false
		s.observer.OnPause(s.paused(), false)
		return s.send(ctx, api.Control(api.TypeResume))
	case actionCancel:
		if err := s.send(ctx, api.Control(api.TypeCancel)); err != nil {
			s.logger.Debug("Failed to notify peer about cancel", "error", err)
		}
		return ErrCancelled
	}
	return nil
}

// handlePeerPause обновляет флаг паузы другой стороны
func (s *session) handlePeerPause(msg *api.Message) {
	s.peerPaused = msg.Type == api.TypePause
	s.observer.OnPause(s.paused(), true)
}

// closedError переводит событие закрытия канала в ошибку передачи
func closedError(err error) error {
	if errors.Is(err, ErrChannelClosed) {
		return ErrPrematureDisconnect
	}
	return fmt.Errorf("%w: %w", ErrPrematureDisconnect, err)
}

func (s *session) notifyProgress() {
	s.observer.OnProgress(s.tracker.Snapshot())
}
