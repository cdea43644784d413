package models

import "time"

// SessionStatus is the lifecycle state of a relay session.
type SessionStatus string

const (
	// SessionWaiting отправитель создал сессию, получатель еще не подключился
	SessionWaiting SessionStatus = "waiting"
	// SessionPaired обе стороны подключены
	SessionPaired SessionStatus = "paired"
	// SessionClosed одна из сторон отключилась
	SessionClosed SessionStatus = "closed"
	// SessionExpired никто не подключился до истечения срока
	SessionExpired SessionStatus = "expired"
)

// Session is one relay rendezvous. The share code itself is never stored, only its keyed digest.
type Session struct {
	CreatedAt    time.Time     `json:"created_at"`
	ExpiresAt    time.Time     `json:"expires_at"`
	PairedAt     *time.Time    `json:"paired_at,omitempty"`
	ClosedAt     *time.Time    `json:"closed_at,omitempty"`
	ID           string        `json:"id"`
	CodeHash     string        `json:"-"`
	Status       SessionStatus `json:"status"`
	BytesRelayed int64         `json:"bytes_relayed"`
}

// Expired reports whether an unpaired session outlived its deadline.
func (s *Session) Expired(now time.Time) bool {
	return s.Status == SessionWaiting && !now.Before(s.ExpiresAt)
}
