package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/relay/storage"
)

var _ storage.SessionStorage = (*Storage)(nil)

const sessionColumns = `id, code_hash, status, created_at, expires_at, paired_at, closed_at, bytes_relayed`

// CreateSession stores a new session
func (s *Storage) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, code_hash, status, created_at, expires_at, bytes_relayed)
		VALUES (?, ?, ?, ?, ?, 0)
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.CodeHash,
		string(models.SessionWaiting),
		session.CreatedAt.Unix(),
		session.ExpiresAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrSessionAlreadyExists
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}

	session.Status = models.SessionWaiting
	return nil
}

// GetSession retrieves session by ID
func (s *Storage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	return scanSession(s.db.QueryRowContext(ctx, query, id))
}

// GetSessionByCode retrieves the waiting session with the given code digest
func (s *Storage) GetSessionByCode(ctx context.Context, codeHash string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE code_hash = ? AND status = ?`
	return scanSession(s.db.QueryRowContext(ctx, query, codeHash, string(models.SessionWaiting)))
}

// MarkPaired moves a waiting session to paired
func (s *Storage) MarkPaired(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE sessions SET status = ?, paired_at = ? WHERE id = ? AND status = ?`

	result, err := s.db.ExecContext(ctx, query, string(models.SessionPaired), at.Unix(), id, string(models.SessionWaiting))
	if err != nil {
		return fmt.Errorf("failed to mark session paired: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := s.GetSession(ctx, id); err != nil {
			return err
		}
		return storage.ErrSessionNotWaiting
	}

	return nil
}

// CloseSession records the end of a session; expired sessions keep their status
func (s *Storage) CloseSession(ctx context.Context, id string, at time.Time, bytesRelayed int64) error {
	query := `
		UPDATE sessions
		SET status = CASE WHEN status = ? THEN status ELSE ? END,
		    closed_at = ?, bytes_relayed = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, string(models.SessionExpired), string(models.SessionClosed), at.Unix(), bytesRelayed, id)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrSessionNotFound
	}

	return nil
}

// ExpireSessions marks waiting sessions past their deadline as expired
func (s *Storage) ExpireSessions(ctx context.Context, now time.Time) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM sessions WHERE status = ? AND expires_at <= ?`,
		string(models.SessionWaiting), now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query expired sessions: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	rows.Close()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE sessions SET status = ? WHERE id = ?`, string(models.SessionExpired), id); err != nil {
			return nil, fmt.Errorf("failed to expire session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ids, nil
}

// CountActive returns the number of waiting and paired sessions
func (s *Storage) CountActive(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE status IN (?, ?)`,
		string(models.SessionWaiting), string(models.SessionPaired)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var (
		session              models.Session
		status               string
		createdAt, expiresAt int64
		pairedAt, closedAt   sql.NullInt64
	)

	err := row.Scan(
		&session.ID,
		&session.CodeHash,
		&status,
		&createdAt,
		&expiresAt,
		&pairedAt,
		&closedAt,
		&session.BytesRelayed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Status = models.SessionStatus(status)
	session.CreatedAt = time.Unix(createdAt, 0)
	session.ExpiresAt = time.Unix(expiresAt, 0)
	if pairedAt.Valid {
		t := time.Unix(pairedAt.Int64, 0)
		session.PairedAt = &t
	}
	if closedAt.Valid {
		t := time.Unix(closedAt.Int64, 0)
		session.ClosedAt = &t
	}

	return &session, nil
}
