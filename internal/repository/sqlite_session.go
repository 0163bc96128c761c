package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fastbillx/checkout/internal/db"
	"github.com/fastbillx/checkout/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.Querier
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.Querier) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Save(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (id, started_at, saved_at, total_items, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			saved_at = excluded.saved_at,
			total_items = excluded.total_items,
			total_amount = excluded.total_amount`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.StartedAt.Format(time.RFC3339Nano),
		s.SavedAt.Format(time.RFC3339Nano),
		s.TotalItems,
		s.TotalAmount,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE session_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing cart lines: %w", err)
	}
	for pos, line := range s.Lines {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO cart_lines (session_id, name, quantity, unit_price, total_price, confidence, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.ID, line.Name, line.Quantity, line.UnitPrice, line.TotalPrice, line.LastConfidence, pos,
		)
		if err != nil {
			return fmt.Errorf("inserting cart line %s: %w", line.Name, err)
		}
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT id, started_at, saved_at, total_items, total_amount FROM sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := r.scanSession(row)
	if err != nil {
		return nil, err
	}

	lines, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return s, nil
}

func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT id, started_at, saved_at, total_items, total_amount
		FROM sessions ORDER BY saved_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		var startedAtStr, savedAtStr string
		if err := rows.Scan(&s.ID, &startedAtStr, &savedAtStr, &s.TotalItems, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if err := populateSessionTimes(&s, startedAtStr, savedAtStr); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) listLines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	query := `SELECT name, quantity, unit_price, total_price, confidence
		FROM cart_lines WHERE session_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.Name, &line.Quantity, &line.UnitPrice, &line.TotalPrice, &line.LastConfidence); err != nil {
			return nil, fmt.Errorf("scanning cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart lines: %w", err)
	}
	return lines, nil
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var startedAtStr, savedAtStr string

	err := row.Scan(&s.ID, &startedAtStr, &savedAtStr, &s.TotalItems, &s.TotalAmount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if err := populateSessionTimes(&s, startedAtStr, savedAtStr); err != nil {
		return nil, err
	}
	return &s, nil
}

func populateSessionTimes(s *domain.Session, startedAtStr, savedAtStr string) error {
	var err error
	s.StartedAt, err = time.Parse(time.RFC3339Nano, startedAtStr)
	if err != nil {
		return fmt.Errorf("parsing started_at: %w", err)
	}
	s.SavedAt, err = time.Parse(time.RFC3339Nano, savedAtStr)
	if err != nil {
		return fmt.Errorf("parsing saved_at: %w", err)
	}
	return nil
}
