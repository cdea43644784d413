package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/fsys"
	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/validation"
	"github.com/iudanet/foldersync/pkg/api"
)

// Sender serves a manifest and its blocks to one receiver.
type Sender struct {
	session
	tree      fsys.FileSystem
	manifest  *models.Manifest
	approver  Approver
	pending   *api.Message // запрос блока, пришедший во время паузы
	peer      string
	started   time.Time
	bytesSent int64
	blocks    int
}

// NewSender creates a sender engine over an open channel. approver nil accepts everyone.
func NewSender(ch Channel, tree fsys.FileSystem, manifest *models.Manifest, approver Approver,
	observer Observer, logger *slog.Logger, opts Options,
) *Sender {
	if approver == nil {
		approver = AutoApprove
	}
	return &Sender{
		session:  newSession(ch, observer, logger, opts, SenderIdle),
		tree:     tree,
		manifest: manifest,
		approver: approver,
	}
}

// Run drives the sender until the receiver is done, the transfer fails or ctx is cancelled.
// The channel is closed when Run returns.
func (s *Sender) Run(ctx context.Context) (*Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.ch.Close()

	go pump(ctx, s.ch, s.events)

	report, err := s.loop(ctx)
	if err != nil {
		s.logger.Error("Sender stopped", "state", s.state, "error", err)
		s.setState(SenderIdle)
		s.observer.OnError(err)
		return nil, err
	}

	s.setState(SenderCompleted)
	s.observer.OnComplete(report)
	return report, nil
}

func (s *Sender) loop(ctx context.Context) (*Report, error) {
	for {
		var (
			done bool
			err  error
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case a := <-s.actions:
			err = s.handleAction(ctx, a)
			if err == nil && a == actionResume {
				done, err = s.servePending(ctx)
			}
		case ev := <-s.events:
			done, err = s.handleEvent(ctx, ev)
		}

		if err != nil {
			return nil, err
		}
		if done {
			return s.report(), nil
		}
	}
}

func (s *Sender) handleEvent(ctx context.Context, ev event) (bool, error) {
	if ev.err != nil {
		return s.handleClosed(ev.err)
	}

	msg := ev.msg
	switch msg.Type {
	case api.TypeHello:
		if s.state != SenderIdle {
			return false, fmt.Errorf("%w: hello in state %s", ErrProtocol, s.state)
		}
		if err := validation.ValidatePeerName(msg.Username); err != nil {
			return false, s.reject(ctx, api.ReasonRejected, fmt.Errorf("%w: %w", ErrProtocol, err))
		}
		return false, s.approve(ctx, msg.Username)

	case api.TypeRequestManifest:
		if s.state != SenderApprovedWaitingReceiver {
			return false, fmt.Errorf("%w: manifest requested in state %s", ErrProtocol, s.state)
		}
		return false, s.sendManifest(ctx)

	case api.TypeRequestBlock:
		if s.state != SenderSending {
			return false, fmt.Errorf("%w: block requested in state %s", ErrProtocol, s.state)
		}
		if s.pending != nil {
			return false, fmt.Errorf("%w: block %s/%d requested while another block is queued", ErrProtocol, msg.File, msg.Block)
		}
		if s.paused() {
			// запрос не теряется: будет обслужен после resume
			s.pending = msg
			return false, nil
		}
		return s.sendBlock(ctx, msg)

	case api.TypePause, api.TypeResume:
		s.handlePeerPause(msg)
		if msg.Type == api.TypeResume {
			return s.servePending(ctx)
		}
		return false, nil

	case api.TypeCancel:
		return false, ErrCancelledByPeer

	case api.TypeHashMismatch:
		return false, fmt.Errorf("%w: receiver rejected %s block %d", ErrIntegrity, msg.File, msg.Block)

	case api.TypeReceiverDone:
		if s.state != SenderSending {
			return false, fmt.Errorf("%w: receiver_done in state %s", ErrProtocol, s.state)
		}
		s.logger.Info("Receiver reported completion", "bytes_sent", s.bytesSent)
		return true, nil
	}

	return false, fmt.Errorf("%w: unexpected message %q", ErrProtocol, msg.Type)
}

// handleClosed: закрытие после передачи всего объема считается успехом
func (s *Sender) handleClosed(err error) (bool, error) {
	if s.state == SenderSending && s.bytesSent >= s.manifest.TotalSize {
		s.logger.Info("Receiver disconnected after full transfer", "bytes_sent", s.bytesSent)
		return true, nil
	}
	return false, closedError(err)
}

func (s *Sender) approve(ctx context.Context, username string) error {
	s.peer = username
	s.setState(SenderAwaitingApproval)
	s.logger.Info("Receiver asks to connect", "username", username)

	actx, cancel := context.WithTimeout(ctx, s.opts.HandshakeTimeout)
	defer cancel()

	type decision struct {
		err      error
		accepted bool
	}
	result := make(chan decision, 1)
	go func() {
		ok, err := s.approver.Approve(actx, username)
		result <- decision{accepted: ok, err: err}
	}()

	for {
		select {
		case d := <-result:
			if d.err != nil {
				if errors.Is(d.err, context.DeadlineExceeded) && ctx.Err() == nil {
					return s.reject(ctx, api.ReasonTimeout, ErrApprovalTimeout)
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				_ = s.send(ctx, api.Reject(api.ReasonRejected))
				return fmt.Errorf("approval failed: %w", d.err)
			}
			if !d.accepted {
				return s.reject(ctx, api.ReasonRejected, ErrRejected)
			}
			if err := s.send(ctx, api.Accept(s.opts.Username)); err != nil {
				return err
			}
			s.setState(SenderApprovedWaitingReceiver)
			return nil

		case <-actx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return s.reject(ctx, api.ReasonTimeout, ErrApprovalTimeout)

		case a := <-s.actions:
			if a == actionCancel {
				return s.reject(ctx, api.ReasonRejected, ErrRejected)
			}
			// пауза сохраняется и действует после одобрения
			if err := s.handleAction(ctx, a); err != nil {
				return err
			}

		case ev := <-s.events:
			if ev.err != nil {
				return closedError(ev.err)
			}
			switch ev.msg.Type {
			case api.TypeCancel:
				return ErrCancelledByPeer
			case api.TypePause, api.TypeResume:
				s.handlePeerPause(ev.msg)
			default:
				return fmt.Errorf("%w: %q while awaiting approval", ErrProtocol, ev.msg.Type)
			}
		}
	}
}

func (s *Sender) reject(ctx context.Context, reason string, cause error) error {
	s.logger.Info("Rejecting receiver", "username", s.peer, "reason", reason)
	if err := s.send(ctx, api.Reject(reason)); err != nil {
		s.logger.Debug("Failed to deliver rejection", "error", err)
	}
	return cause
}

func (s *Sender) sendManifest(ctx context.Context) error {
	// большой манифест уходит несколькими частями
	msgs, err := api.NewManifestMessages(s.manifest)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		if err := s.send(ctx, msg); err != nil {
			return err
		}
	}

	s.started = time.Now()
	s.tracker.Start(progress.PhaseTransferring, s.manifest.TotalSize, 0)
	s.setState(SenderSending)
	s.logger.Info("Manifest sent", "files", s.manifest.FileCount(), "total_size", s.manifest.TotalSize, "parts", len(msgs))
	return nil
}

func (s *Sender) servePending(ctx context.Context) (bool, error) {
	if s.pending == nil || s.paused() {
		return false, nil
	}
	msg := s.pending
	s.pending = nil
	return s.sendBlock(ctx, msg)
}

// sendBlock читает блок, режет его на чанки и отправляет их с паузой между чанками
func (s *Sender) sendBlock(ctx context.Context, req *api.Message) (bool, error) {
	file := s.manifest.File(req.File)
	if file == nil {
		return false, s.fail(ctx, fmt.Errorf("file not found: %s", req.File))
	}
	if req.Block < 0 || req.Block >= len(file.Blocks) {
		return false, s.fail(ctx, fmt.Errorf("block %d out of range for %s", req.Block, req.File))
	}

	start, end := models.BlockRange(file.Size, req.Block)
	data, err := s.tree.ReadRange(file.Path, start, end)
	if err != nil {
		return false, s.fail(ctx, err)
	}
	if int64(len(data)) != end-start {
		return false, s.fail(ctx, fmt.Errorf("short read of %s block %d: %d of %d bytes", file.Path, req.Block, len(data), end-start))
	}

	s.tracker.SetCurrent(file.Path, req.Block)
	total := int((int64(len(data)) + models.ChunkSize - 1) / models.ChunkSize)

	for i := 0; i < total; i++ {
		// между чанками обрабатываются pause/resume/cancel
		done, err := s.poll(ctx)
		if err != nil || done {
			return done, err
		}

		lo := int64(i) * models.ChunkSize
		hi := min(lo+models.ChunkSize, int64(len(data)))

		msg, err := api.NewBlockChunk(file.Path, req.Block, i, total, data[lo:hi])
		if err != nil {
			return false, err
		}
		if err := s.send(ctx, msg); err != nil {
			return false, err
		}

		s.bytesSent += hi - lo
		s.tracker.AddTransferred(hi - lo)
		s.notifyProgress()

		if err := s.pace(ctx); err != nil {
			return false, err
		}
	}

	if err := s.send(ctx, api.BlockComplete(file.Path, req.Block)); err != nil {
		return false, err
	}
	s.blocks++
	s.tracker.CompleteBlock()
	s.logger.Debug("Block sent", "path", file.Path, "block", req.Block, "chunks", total)

	return false, nil
}

// poll обрабатывает накопившиеся события без блокировки, а на паузе ждет resume
func (s *Sender) poll(ctx context.Context) (bool, error) {
	for {
		select {
		case a := <-s.actions:
			if err := s.handleAction(ctx, a); err != nil {
				return false, err
			}
			continue
		case ev := <-s.events:
			done, err := s.handleInFlight(ctx, ev)
			if err != nil || done {
				return done, err
			}
			continue
		default:
		}

		if !s.paused() {
			return false, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case a := <-s.actions:
			if err := s.handleAction(ctx, a); err != nil {
				return false, err
			}
		case ev := <-s.events:
			done, err := s.handleInFlight(ctx, ev)
			if err != nil || done {
				return done, err
			}
		}
	}
}

// handleInFlight события, пришедшие во время отправки блока
func (s *Sender) handleInFlight(ctx context.Context, ev event) (bool, error) {
	if ev.err != nil {
		return s.handleClosed(ev.err)
	}
	if ev.msg.Type == api.TypeRequestBlock {
		return false, fmt.Errorf("%w: block %s/%d requested while another block is in flight", ErrProtocol, ev.msg.File, ev.msg.Block)
	}
	return s.handleEvent(ctx, ev)
}

func (s *Sender) pace(ctx context.Context) error {
	if s.opts.PacingDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.opts.PacingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// fail сообщает получателю об ошибке отправителя и завершает передачу
func (s *Sender) fail(ctx context.Context, cause error) error {
	if err := s.send(ctx, api.Error("Failed to send block: "+cause.Error())); err != nil {
		s.logger.Debug("Failed to deliver error to receiver", "error", err)
	}
	return fmt.Errorf("%w: %w", ErrSenderFailure, cause)
}

func (s *Sender) report() *Report {
	return &Report{
		Peer:             s.peer,
		Duration:         time.Since(s.started),
		BytesTransferred: s.bytesSent,
		TotalSize:        s.manifest.TotalSize,
		Files:            s.manifest.FileCount(),
		BlocksRequested:  s.blocks,
	}
}
