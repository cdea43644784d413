// Package storage defines the relay session ledger.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/foldersync/internal/models"
)

//go:generate moq -out session_mock.go . SessionStorage

// Common storage errors
var (
	// ErrSessionNotFound indicates that session was not found in storage
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionAlreadyExists indicates an ID or code digest collision
	ErrSessionAlreadyExists = errors.New("session already exists")

	// ErrSessionNotWaiting indicates that session is already paired, closed or expired
	ErrSessionNotWaiting = errors.New("session is not waiting for a receiver")
)

// SessionStorage defines interface for relay session persistence
type SessionStorage interface {
	// CreateSession stores a new waiting session
	// Returns ErrSessionAlreadyExists on ID or code digest collision
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves session by ID
	// Returns ErrSessionNotFound if session doesn't exist
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// GetSessionByCode retrieves the waiting session with the given code digest
	// Returns ErrSessionNotFound if no waiting session has it
	GetSessionByCode(ctx context.Context, codeHash string) (*models.Session, error)

	// MarkPaired moves a waiting session to paired
	// Returns ErrSessionNotWaiting if the session is not waiting anymore
	MarkPaired(ctx context.Context, id string, at time.Time) error

	// CloseSession records the end of a session and the bytes relayed
	CloseSession(ctx context.Context, id string, at time.Time, bytesRelayed int64) error

	// ExpireSessions marks waiting sessions past their deadline as expired
	// Returns IDs of expired sessions
	ExpireSessions(ctx context.Context, now time.Time) ([]string, error)

	// CountActive returns the number of waiting and paired sessions
	CountActive(ctx context.Context) (int, error)
}
