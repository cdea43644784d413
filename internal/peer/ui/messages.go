package ui

import (
	"time"

	"github.com/iudanet/foldersync/internal/peer/progress"
	"github.com/iudanet/foldersync/internal/peer/transfer"
)

// StateMsg is sent on every engine state transition.
type StateMsg struct {
	State transfer.State
}

// ProgressMsg carries a tracker snapshot.
type ProgressMsg struct {
	Snapshot progress.Snapshot
}

// PauseMsg reports the effective pause flag and whether the peer set it.
type PauseMsg struct {
	Paused bool
	ByPeer bool
}

// WarningMsg is a non-fatal engine warning.
type WarningMsg struct {
	Warning string
}

// ErrorMsg ends the transfer with a failure.
type ErrorMsg struct {
	Err error
}

// CompleteMsg ends the transfer successfully.
type CompleteMsg struct {
	Report *transfer.Report
}

// ApprovalRequestMsg asks the operator to admit a receiver; the answer goes to Reply.
type ApprovalRequestMsg struct {
	Deadline time.Time
	Reply    chan<- bool
	Username string
}

// ApprovalExpiredMsg closes an unanswered approval prompt.
type ApprovalExpiredMsg struct{}

// tickMsg обновляет обратный отсчет одобрения
type tickMsg time.Time
