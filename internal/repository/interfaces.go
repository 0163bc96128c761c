package repository

import (
	"context"
	"errors"

	"github.com/fastbillx/checkout/internal/domain"
)

// ErrNotFound is the sentinel wrapped by repositories when a row is absent.
var ErrNotFound = errors.New("not found")

// SessionRepo persists session snapshots and their cart lines. Save is an
// upsert of the full snapshot: existing lines for the session are replaced,
// never merged.
type SessionRepo interface {
	Save(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// HistoryRepo persists the append-only history log of a session. Replace
// rewrites the log atomically in entry order; order must survive a reload.
type HistoryRepo interface {
	Replace(ctx context.Context, sessionID string, entries []domain.HistoryEntry) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error)
}
