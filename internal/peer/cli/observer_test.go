package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/foldersync/internal/peer/iocli"
	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/peer/transfer"
)

func progressLines(output string) int {
	n := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "[") {
			n++
		}
	}
	return n
}

func TestTextObserver_ThrottlesProgress(t *testing.T) {
	out, buf := newTestIO()
	clock := time.Unix(1700000000, 0)
	o := newTextObserver(out)
	o.now = func() time.Time { return clock }

	checking := progress.Snapshot{Phase: progress.PhaseChecking, TotalSize: 100, Percent: 10}
	o.OnProgress(checking)
	o.OnProgress(checking)
	assert.Equal(t, 1, progressLines(buf.String()), "second update within interval is dropped")

	// смена фазы печатается сразу
	o.OnProgress(progress.Snapshot{Phase: progress.PhaseTransferring, TotalSize: 100, Percent: 5})
	assert.Equal(t, 2, progressLines(buf.String()))

	clock = clock.Add(progressInterval)
	o.OnProgress(progress.Snapshot{Phase: progress.PhaseTransferring, TotalSize: 100, Percent: 50})
	assert.Equal(t, 3, progressLines(buf.String()))

	// 100% не пропускается даже внутри интервала
	o.OnProgress(progress.Snapshot{Phase: progress.PhaseTransferring, TotalSize: 100, Percent: 100})
	assert.Equal(t, 4, progressLines(buf.String()))
	assert.Contains(t, buf.String(), "[transferring] 100.0%")
}

func TestTextObserver_Messages(t *testing.T) {
	out, buf := newTestIO()
	o := newTextObserver(out)

	o.OnState(transfer.SenderAwaitingApproval)
	o.OnPause(true, true)
	o.OnPause(true, false)
	o.OnPause(false, false)
	o.OnWarning("File not in manifest: x.txt")

	output := buf.String()
	assert.Contains(t, output, "State: awaiting approval")
	assert.Contains(t, output, "Paused by peer\n")
	assert.Contains(t, output, "Paused\n")
	assert.Contains(t, output, "Resumed\n")
	assert.Contains(t, output, "Warning: File not in manifest: x.txt")
}

func TestPromptApprover(t *testing.T) {
	tests := []struct {
		answer   string
		expected bool
	}{
		{answer: "y", expected: true},
		{answer: " YES ", expected: true},
		{answer: "no", expected: false},
		{answer: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			out, _ := newTestIO(tt.answer)
			ok, err := promptApprover{io: out}.Approve(context.Background(), "bob")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)

			require.Len(t, out.ReadInputCalls(), 1)
			assert.Contains(t, out.ReadInputCalls()[0].Prompt, "bob wants to receive this folder")
		})
	}
}

func TestPromptApprover_Timeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	out := &iocli.IOMock{
		ReadInputFunc: func(prompt string) (string, error) {
			<-block
			return "y", nil
		},
		PrintlnFunc: func(a ...any) {},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok, err := promptApprover{io: out}.Approve(ctx, "bob")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ok)
}

func TestPrintReport(t *testing.T) {
	out, buf := newTestIO()
	printReport(out, &transfer.Report{
		Peer:             "alice",
		Files:            3,
		TotalSize:        2048,
		BytesTransferred: 1024,
		BlocksRequested:  1,
		BytesReused:      1024,
		BlocksReused:     1,
		Duration:         5 * time.Second,
		Warnings:         []string{"File not in manifest: old.txt"},
	})

	output := buf.String()
	assert.Contains(t, output, "✓ Transfer completed")
	assert.Contains(t, output, "Peer:        alice")
	assert.Contains(t, output, "Files:       3")
	assert.Contains(t, output, "Reused:")
	assert.Contains(t, output, "Time:        5s")
	assert.Contains(t, output, "Warnings (1):")
	assert.Contains(t, output, "  - File not in manifest: old.txt")
}
