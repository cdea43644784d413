// Package ui renders a running transfer in the terminal with Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/peer/transfer"
)

// maxShownWarnings сколько последних предупреждений показывать на экране
const maxShownWarnings = 3

// Model represents the transfer screen.
type Model struct {
	Title      string
	Code       string
	controller transfer.Controller
	now        func() time.Time
	approval   *ApprovalRequestMsg
	report     *transfer.Report
	err        error
	state      transfer.State
	warnings   []string
	bar        bprogress.Model
	snapshot   progress.Snapshot
	paused     bool
	byPeer     bool
	done       bool
}

// NewModel creates the screen. code may be empty on the receiving side.
func NewModel(title, code string) *Model {
	return &Model{
		Title: title,
		Code:  code,
		now:   time.Now,
		bar:   bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(40)),
	}
}

// SetController attaches the engine that receives the p/r/c keys.
func (m *Model) SetController(controller transfer.Controller) {
	m.controller = controller
}

// Err returns the failure that ended the transfer, if any.
func (m *Model) Err() error { return m.err }

// Report returns the completion report, nil until the transfer succeeds.
func (m *Model) Report() *transfer.Report { return m.report }

// Warnings returns every warning received so far.
func (m *Model) Warnings() []string { return m.warnings }

func (m *Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > 60 {
			width = 60
		}
		if width > 10 {
			m.bar.Width = width
		}

	case StateMsg:
		m.state = msg.State

	case ProgressMsg:
		m.snapshot = msg.Snapshot

	case PauseMsg:
		m.paused = msg.Paused
		m.byPeer = msg.ByPeer

	case WarningMsg:
		m.warnings = append(m.warnings, msg.Warning)

	case ApprovalRequestMsg:
		m.approval = &msg
		return m, tick()

	case ApprovalExpiredMsg:
		m.approval = nil

	case tickMsg:
		if m.approval != nil {
			return m, tick()
		}

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		m.approval = nil
		return m, tea.Quit

	case CompleteMsg:
		m.report = msg.Report
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.approval != nil {
		switch key {
		case "y", "Y":
			m.answer(true)
			return m, nil
		case "n", "N":
			m.answer(false)
			return m, nil
		}
	}

	if m.controller == nil {
		if key == "ctrl+c" || key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "p":
		if !m.done {
			m.controller.Pause()
		}
	case "r":
		if !m.done {
			m.controller.Resume()
		}
	case "c", "ctrl+c", "esc":
		if m.done {
			return m, tea.Quit
		}
		// движок ответит ErrorMsg, после него программа завершится
		m.controller.Cancel()
	case "q":
		if m.done {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) answer(accepted bool) {
	// канал буферизован, ответ не блокирует цикл
	m.approval.Reply <- accepted
	m.approval = nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.Title))
	b.WriteString("\n")
	if m.Code != "" {
		b.WriteString("Share code: " + CodeStyle.Render(m.Code) + "\n")
	}
	if m.state != "" {
		b.WriteString(StatusStyle.Render("State: "+strings.ReplaceAll(string(m.state), "_", " ")) + "\n")
	}

	if m.approval != nil {
		b.WriteString("\n")
		b.WriteString(InfoBoxStyle.Render(m.approvalView()))
		b.WriteString("\n")
		return b.String()
	}

	if m.snapshot.Phase != "" {
		b.WriteString("\n")
		b.WriteString(m.progressView())
	}

	if m.paused {
		if m.byPeer {
			b.WriteString(PausedStyle.Render("Paused by peer") + "\n")
		} else {
			b.WriteString(PausedStyle.Render("Paused") + "\n")
		}
	}

	shown := m.warnings
	if len(shown) > maxShownWarnings {
		shown = shown[len(shown)-maxShownWarnings:]
	}
	for _, w := range shown {
		b.WriteString(WarningStyle.Render("! "+w) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.report != nil:
		b.WriteString("\n" + SuccessStyle.Render(m.reportView()) + "\n")
	default:
		b.WriteString("\n" + StatusStyle.Render("p pause • r resume • c cancel") + "\n")
	}

	return b.String()
}

func (m *Model) approvalView() string {
	left := "unknown"
	if !m.approval.Deadline.IsZero() {
		left = progress.FormatDuration(m.approval.Deadline.Sub(m.now()))
	}
	return fmt.Sprintf("%s wants to receive this folder.\nAllow? (y/n)  %s left", m.approval.Username, left)
}

func (m *Model) progressView() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(m.bar.ViewAs(s.Percent/100) + "\n")
	b.WriteString(string(s.Phase))
	if s.CurrentFile != "" {
		b.WriteString(fmt.Sprintf(": %s (block %d)", s.CurrentFile, s.CurrentBlock+1))
	}
	b.WriteString("\n")

	bytes := s.BytesTransferred
	if s.Phase != progress.PhaseTransferring {
		bytes = s.BytesProcessed
	}
	b.WriteString(fmt.Sprintf("%s / %s  %s  ETA %s\n",
		progress.FormatBytes(bytes),
		progress.FormatBytes(s.TotalSize),
		progress.FormatRate(s.Rate),
		progress.FormatETA(s),
	))

	return b.String()
}

func (m *Model) reportView() string {
	r := m.report
	return fmt.Sprintf("Done: %d files, %s transferred, %s reused in %s",
		r.Files,
		progress.FormatBytes(r.BytesTransferred),
		progress.FormatBytes(r.BytesReused),
		progress.FormatDuration(r.Duration),
	)
}
