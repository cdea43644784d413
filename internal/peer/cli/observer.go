package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/foldersync/internal/peer/iocli"
	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/peer/transfer"
)

// progressInterval как часто печатается строка прогресса в текстовом режиме
const progressInterval = time.Second

// textObserver prints engine notifications as plain lines.
type textObserver struct {
	io        iocli.IO
	now       func() time.Time
	lastPrint time.Time
	lastPhase progress.Phase
	mu        sync.Mutex
}

var _ transfer.Observer = (*textObserver)(nil)

func newTextObserver(out iocli.IO) *textObserver {
	return &textObserver{io: out, now: time.Now}
}

func (o *textObserver) OnState(state transfer.State) {
	o.io.Printf("State: %s\n", strings.ReplaceAll(string(state), "_", " "))
}

func (o *textObserver) OnProgress(s progress.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	// смена фазы печатается сразу, остальное не чаще раза в секунду
	if s.Phase == o.lastPhase && now.Sub(o.lastPrint) < progressInterval && s.Percent < 100 {
		return
	}
	o.lastPrint = now
	o.lastPhase = s.Phase

	done := s.BytesTransferred
	if s.Phase != progress.PhaseTransferring {
		done = s.BytesProcessed
	}
	o.io.Printf("[%s] %5.1f%%  %s / %s  %s  ETA %s\n",
		s.Phase, s.Percent,
		progress.FormatBytes(done), progress.FormatBytes(s.TotalSize),
		progress.FormatRate(s.Rate), progress.FormatETA(s))
}

func (o *textObserver) OnPause(paused, byPeer bool) {
	switch {
	case paused && byPeer:
		o.io.Println("Paused by peer")
	case paused:
		o.io.Println("Paused")
	default:
		o.io.Println("Resumed")
	}
}

func (o *textObserver) OnWarning(message string) { o.io.Printf("Warning: %s\n", message) }

func (o *textObserver) OnError(error) {}

func (o *textObserver) OnComplete(*transfer.Report) {}

// promptApprover asks the operator on the terminal.
type promptApprover struct {
	io iocli.IO
}

var _ transfer.Approver = promptApprover{}

func (a promptApprover) Approve(ctx context.Context, username string) (bool, error) {
	prompt := fmt.Sprintf("%s wants to receive this folder. Allow? [y/N]", username)
	if deadline, ok := ctx.Deadline(); ok {
		prompt += fmt.Sprintf(" (%s)", progress.FormatDuration(time.Until(deadline)))
	}

	type answer struct {
		err  error
		text string
	}
	result := make(chan answer, 1)
	go func() {
		text, err := a.io.ReadInput(prompt + ": ")
		result <- answer{text: text, err: err}
	}()

	select {
	case r := <-result:
		if r.err != nil {
			return false, fmt.Errorf("failed to read answer: %w", r.err)
		}
		switch strings.ToLower(strings.TrimSpace(r.text)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	case <-ctx.Done():
		a.io.Println()
		return false, ctx.Err()
	}
}

// printReport выводит итог передачи
func printReport(out iocli.IO, report *transfer.Report) {
	out.Println()
	out.Println("✓ Transfer completed")
	if report.Peer != "" {
		out.Printf("Peer:        %s\n", report.Peer)
	}
	out.Printf("Files:       %d\n", report.Files)
	out.Printf("Total size:  %s\n", progress.FormatBytes(report.TotalSize))
	out.Printf("Transferred: %s (%d blocks)\n", progress.FormatBytes(report.BytesTransferred), report.BlocksRequested)
	if report.BlocksReused > 0 {
		out.Printf("Reused:      %s (%d blocks)\n", progress.FormatBytes(report.BytesReused), report.BlocksReused)
	}
	out.Printf("Time:        %s\n", progress.FormatDuration(report.Duration))

	if len(report.Warnings) > 0 {
		out.Println()
		out.Printf("Warnings (%d):\n", len(report.Warnings))
		for _, w := range report.Warnings {
			out.Printf("  - %s\n", w)
		}
	}
}
