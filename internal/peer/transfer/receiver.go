package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/foldersync/internal/crypto"
	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/delta"
	"github.com/iudanet/foldersync/internal/peer/fsys"
	"github.com/iudanet/foldersync/internal/peer/ignore"
	"github.com/iudanet/foldersync/internal/peer/manifest"
	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/peer/reassembly"
	"github.com/iudanet/foldersync/internal/peer/validator"
	"github.com/iudanet/foldersync/pkg/api"
)

// blockRef запрошенный и еще не завершенный блок
type blockRef struct {
	file  *models.FileEntry
	index int
}

// Receiver requests the blocks it lacks and writes them into a target tree.
type Receiver struct {
	session
	tree       fsys.FileSystem
	manifest   *models.Manifest
	parts      api.ManifestAssembler
	planner    *delta.Planner
	buffer     *reassembly.Buffer
	inFlight   *blockRef
	local      map[string]int64
	peer       string
	started    time.Time
	warnings   []string
	fileIdx    int
	received   int64
	reused     int64
	requested  int
	reusedBlks int
	finished   bool
	report     *Report
}

// NewReceiver creates a receiver engine writing into tree.
func NewReceiver(ch Channel, tree fsys.FileSystem, observer Observer, logger *slog.Logger, opts Options) *Receiver {
	return &Receiver{
		session: newSession(ch, observer, logger, opts, ReceiverIdle),
		tree:    tree,
		buffer:  reassembly.NewBuffer(),
	}
}

// Run performs the whole receive: handshake, target indexing, block fetching and validation.
// The channel is closed when Run returns.
func (r *Receiver) Run(ctx context.Context) (*Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer r.ch.Close()

	go pump(ctx, r.ch, r.events)

	err := r.run(ctx)
	if err != nil {
		r.buffer.Reset()
		r.logger.Error("Receiver stopped", "state", r.state, "error", err)
		r.setState(ReceiverIdle)
		r.observer.OnError(err)
		return nil, err
	}

	r.observer.OnComplete(r.report)
	return r.report, nil
}

func (r *Receiver) run(ctx context.Context) error {
	r.setState(ReceiverConnecting)
	if err := r.send(ctx, api.Hello(r.opts.Username)); err != nil {
		return err
	}

	r.setState(ReceiverAwaitingAcknowledge)
	if err := r.awaitAcknowledge(ctx); err != nil {
		return err
	}

	// папка назначения уже выбрана вызывающей стороной
	r.setState(ReceiverFolderPending)
	r.setState(ReceiverIndexingTarget)
	if err := r.indexTarget(ctx); err != nil {
		return err
	}

	r.setState(ReceiverRequestingManifest)
	if err := r.send(ctx, api.RequestManifest()); err != nil {
		return err
	}

	for !r.finished {
		var err error

		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-r.actions:
			err = r.handleAction(ctx, a)
			if err == nil && a == actionResume {
				err = r.advance(ctx)
			}
		case ev := <-r.events:
			err = r.handleEvent(ctx, ev)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Receiver) awaitAcknowledge(ctx context.Context) error {
	timer := time.NewTimer(r.opts.HandshakeTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			return ErrAcknowledgeTimeout

		case a := <-r.actions:
			if err := r.handleAction(ctx, a); err != nil {
				return err
			}

		case ev := <-r.events:
			if ev.err != nil {
				return closedError(ev.err)
			}
			switch ev.msg.Type {
			case api.TypeAcknowledge:
				if !ev.msg.Accepted {
					return fmt.Errorf("%w: %s", ErrRejected, ev.msg.Reason)
				}
				r.peer = ev.msg.SenderUsername
				r.logger.Info("Sender accepted connection", "sender", r.peer)
				return nil
			case api.TypeCancel:
				return ErrCancelledByPeer
			case api.TypeError:
				return fmt.Errorf("%w: %s", ErrSenderFailure, ev.msg.Message)
			case api.TypePause, api.TypeResume:
				r.handlePeerPause(ev.msg)
			default:
				return fmt.Errorf("%w: %q while awaiting acknowledge", ErrProtocol, ev.msg.Type)
			}
		}
	}
}

// indexTarget создает папку назначения и собирает размеры уже имеющихся файлов
func (r *Receiver) indexTarget(ctx context.Context) error {
	if err := r.tree.MkdirAll(""); err != nil {
		return fmt.Errorf("failed to create target folder: %w", err)
	}

	scanned, err := manifest.NewBuilder(r.tree, nil, r.logger).Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to index target folder: %w", err)
	}
	for _, w := range scanned.Warnings {
		r.logger.Debug("Target indexing warning", "warning", w)
	}

	r.local = scanned.Sizes()
	r.logger.Info("Target indexed", "files", len(r.local))
	return nil
}

func (r *Receiver) handleEvent(ctx context.Context, ev event) error {
	if ev.err != nil {
		return closedError(ev.err)
	}

	msg := ev.msg
	switch msg.Type {
	case api.TypeManifest:
		if r.state != ReceiverRequestingManifest {
			return fmt.Errorf("%w: manifest in state %s", ErrProtocol, r.state)
		}
		return r.onManifest(ctx, msg)

	case api.TypeBlockChunk:
		return r.onChunk(msg)

	case api.TypeBlockComplete:
		return r.onBlockComplete(ctx, msg)

	case api.TypePause, api.TypeResume:
		r.handlePeerPause(msg)
		if msg.Type == api.TypeResume {
			return r.advance(ctx)
		}
		return nil

	case api.TypeCancel:
		return ErrCancelledByPeer

	case api.TypeError:
		return fmt.Errorf("%w: %s", ErrSenderFailure, msg.Message)
	}

	return fmt.Errorf("%w: unexpected message %q", ErrProtocol, msg.Type)
}

func (r *Receiver) onManifest(ctx context.Context, msg *api.Message) error {
	m, err := r.parts.Add(msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	if m == nil {
		// ждем оставшиеся части
		return nil
	}
	if err := validator.ValidateManifest(m); err != nil {
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	r.manifest = m

	// дерево каталогов создается сразу целиком
	for _, folder := range m.Folders {
		if err := r.tree.MkdirAll(folder); err != nil {
			return fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
	}

	r.started = time.Now()
	r.tracker.Start(progress.PhaseChecking, m.TotalSize, m.BlockTotal())
	r.planner = delta.NewPlanner(r.tree, r.local, r.tracker, r.logger)
	r.setState(ReceiverPlanningAndFetching)
	r.logger.Info("Manifest received", "files", m.FileCount(), "blocks", m.BlockTotal(), "total_size", m.TotalSize)

	return r.advance(ctx)
}

// advance проходит блоки по порядку, пока не найдет блок для запроса.
// Возвращается сразу после request_block: в полете не больше одного блока.
func (r *Receiver) advance(ctx context.Context) error {
	if r.manifest == nil || r.inFlight != nil || r.finished {
		return nil
	}

	for r.fileIdx < len(r.manifest.Files) {
		if err := r.pollActions(ctx); err != nil {
			return err
		}
		if r.paused() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		file := &r.manifest.Files[r.fileIdx]
		if err := r.planner.PrepareFile(ctx, file); err != nil {
			return err
		}

		fp := r.planner.Progress(file)
		if fp.Done() {
			r.finalizeFile(file)
			r.fileIdx++
			continue
		}

		index := fp.NextBlock
		fetch, err := r.planner.ShouldDownload(ctx, file, index)
		if err != nil {
			return err
		}
		if !fetch {
			r.reusedBlks++
			r.reused += models.BlockLength(file.Size, index)
			r.planner.CompleteBlock(file)
			r.notifyProgress()
			continue
		}

		if err := r.send(ctx, api.RequestBlock(file.Path, index)); err != nil {
			return err
		}
		r.inFlight = &blockRef{file: file, index: index}
		r.requested++
		r.tracker.SetPhase(progress.PhaseTransferring)
		r.notifyProgress()
		return nil
	}

	return r.finish(ctx)
}

// pollActions забирает локальные действия без блокировки
func (r *Receiver) pollActions(ctx context.Context) error {
	for {
		select {
		case a := <-r.actions:
			if err := r.handleAction(ctx, a); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// validationActions забирает локальные действия во время проверки. Отправитель мог уже
// закрыть канал, поэтому сбой уведомления о паузе не прерывает проверку.
func (r *Receiver) validationActions(ctx context.Context) error {
	for {
		select {
		case a := <-r.actions:
			err := r.handleAction(ctx, a)
			if errors.Is(err, ErrCancelled) {
				return err
			}
			if err != nil {
				r.logger.Debug("Failed to notify sender during validation", "action", a, "error", err)
			}
		default:
			return nil
		}
	}
}

func (r *Receiver) expectInFlight(msg *api.Message) error {
	if r.inFlight == nil {
		return fmt.Errorf("%w: %s for %s block %d with no block in flight", ErrProtocol, msg.Type, msg.File, msg.Block)
	}
	if r.inFlight.file.Path != msg.File || r.inFlight.index != msg.Block {
		return fmt.Errorf("%w: %s for %s block %d, expected %s block %d",
			ErrProtocol, msg.Type, msg.File, msg.Block, r.inFlight.file.Path, r.inFlight.index)
	}
	return nil
}

func (r *Receiver) onChunk(msg *api.Message) error {
	if err := r.expectInFlight(msg); err != nil {
		return err
	}

	data, err := msg.ChunkData()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	if err := r.buffer.Add(msg.File, msg.Block, msg.Chunk, msg.Total, data); err != nil {
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}

	r.received += int64(len(data))
	r.tracker.AddTransferred(int64(len(data)))
	r.notifyProgress()
	return nil
}

func (r *Receiver) onBlockComplete(ctx context.Context, msg *api.Message) error {
	if err := r.expectInFlight(msg); err != nil {
		return err
	}

	ref := r.inFlight
	data := r.buffer.Assemble(ref.file.Path, ref.index)
	r.buffer.Discard(ref.file.Path, ref.index)

	if err := crypto.VerifyBlock(data, ref.file.Blocks[ref.index].Hash); err != nil {
		if sendErr := r.send(ctx, api.HashMismatch(ref.file.Path, ref.index)); sendErr != nil {
			r.logger.Debug("Failed to report hash mismatch", "error", sendErr)
		}
		return fmt.Errorf("%w: %s block %d: %w", ErrIntegrity, ref.file.Path, ref.index, err)
	}

	offset := int64(ref.index) * models.BlockSize
	if err := r.tree.WriteAt(ref.file.Path, offset, data); err != nil {
		return fmt.Errorf("failed to write %s block %d: %w", ref.file.Path, ref.index, err)
	}

	r.inFlight = nil
	r.planner.CompleteBlock(ref.file)
	r.tracker.SetPhase(progress.PhaseChecking)
	r.notifyProgress()
	r.logger.Debug("Block written", "path", ref.file.Path, "block", ref.index)

	return r.advance(ctx)
}

// finalizeFile восстанавливает время модификации; неудача только предупреждение
func (r *Receiver) finalizeFile(file *models.FileEntry) {
	if err := r.tree.SetModTime(file.Path, time.UnixMilli(file.Modified)); err != nil {
		r.logger.Warn("Failed to restore modification time", "path", file.Path, "error", err)
		r.warn("File date not preserved: " + file.Path)
	}
}

func (r *Receiver) warn(message string) {
	r.warnings = append(r.warnings, message)
	r.observer.OnWarning(message)
}

// finish сообщает отправителю о завершении и проверяет записанное дерево
func (r *Receiver) finish(ctx context.Context) error {
	if err := r.send(ctx, api.Control(api.TypeReceiverDone)); err != nil {
		// отправитель мог уже закрыть канал после последнего блока
		r.logger.Debug("Failed to send receiver_done", "error", err)
	}

	r.setState(ReceiverValidating)
	r.tracker.EnterValidating()
	r.notifyProgress()

	matcher, err := ignore.Load(r.tree, r.logger)
	if err != nil {
		r.logger.Warn("Failed to load ignore rules for validation", "error", err)
	}

	// локальные действия обрабатываются и во время проверки: cancel прерывает ее
	vctx, stop := context.WithCancel(ctx)
	defer stop()
	actionErr := r.validationActions(ctx)
	if actionErr != nil {
		return actionErr
	}

	v := validator.New(r.tree, matcher, r.tracker, r.logger)
	v.OnBlock(func() {
		r.notifyProgress()
		if actionErr == nil {
			if actionErr = r.validationActions(ctx); actionErr != nil {
				stop()
			}
		}
	})
	result, err := v.Validate(vctx, r.manifest)
	if actionErr == nil {
		actionErr = r.validationActions(ctx)
	}
	if actionErr != nil {
		return actionErr
	}
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		r.warn(w)
	}

	r.finished = true
	r.setState(ReceiverCompleted)
	r.report = &Report{
		Warnings:         r.warnings,
		ExtraFiles:       result.ExtraFiles,
		Peer:             r.peer,
		Duration:         time.Since(r.started),
		BytesTransferred: r.received,
		BytesReused:      r.reused,
		TotalSize:        r.manifest.TotalSize,
		Files:            r.manifest.FileCount(),
		BlocksRequested:  r.requested,
		BlocksReused:     r.reusedBlks,
	}
	r.logger.Info("Transfer completed",
		"bytes_transferred", r.received, "bytes_reused", r.reused, "warnings", len(r.warnings))

	return nil
}
