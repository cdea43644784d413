package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/peer/transfer"
)

// Program runs the transfer screen and feeds engine notifications into it.
// It implements transfer.Observer and transfer.Approver.
type Program struct {
	program *tea.Program
	model   *Model
}

var (
	_ transfer.Observer = (*Program)(nil)
	_ transfer.Approver = (*Program)(nil)
)

// NewProgram wraps model in a Bubble Tea program.
func NewProgram(model *Model, opts ...tea.ProgramOption) *Program {
	return &Program{
		program: tea.NewProgram(model, opts...),
		model:   model,
	}
}

// Run blocks until the transfer ends and the screen is closed.
func (p *Program) Run() (*Model, error) {
	final, err := p.program.Run()
	if err != nil {
		return nil, fmt.Errorf("ui failed: %w", err)
	}
	m, ok := final.(*Model)
	if !ok {
		return p.model, nil
	}
	return m, nil
}

// Quit stops the screen when the engine exits without a final notification.
func (p *Program) Quit() { p.program.Quit() }

func (p *Program) OnState(state transfer.State) { p.program.Send(StateMsg{State: state}) }

func (p *Program) OnProgress(snapshot progress.Snapshot) {
	p.program.Send(ProgressMsg{Snapshot: snapshot})
}

func (p *Program) OnPause(paused, byPeer bool) {
	p.program.Send(PauseMsg{Paused: paused, ByPeer: byPeer})
}

func (p *Program) OnWarning(message string) { p.program.Send(WarningMsg{Warning: message}) }

func (p *Program) OnError(err error) { p.program.Send(ErrorMsg{Err: err}) }

func (p *Program) OnComplete(report *transfer.Report) { p.program.Send(CompleteMsg{Report: report}) }

// Approve shows the approval prompt and waits for y/n or ctx expiry.
func (p *Program) Approve(ctx context.Context, username string) (bool, error) {
	reply := make(chan bool, 1)
	deadline, _ := ctx.Deadline()
	p.program.Send(ApprovalRequestMsg{Username: username, Deadline: deadline, Reply: reply})

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		p.program.Send(ApprovalExpiredMsg{})
		return false, ctx.Err()
	}
}
