package service

import (
	"context"

	"github.com/fastbillx/checkout/internal/db"
	"github.com/fastbillx/checkout/internal/domain"
	"github.com/fastbillx/checkout/internal/repository"
)

type archiveService struct {
	sessions repository.SessionRepo
	history  repository.HistoryRepo
	tx       db.TxRunner
}

// NewArchiveService creates the session-archive service.
func NewArchiveService(sessions repository.SessionRepo, history repository.HistoryRepo, tx db.TxRunner) ArchiveService {
	return &archiveService{sessions: sessions, history: history, tx: tx}
}

// Archive upserts the snapshot and rewrites its history log in one
// transaction, so a partially written archive is never observable.
func (s *archiveService) Archive(ctx context.Context, snap *domain.Session) error {
	return s.tx.InTx(ctx, func(ctx context.Context, q db.Querier) error {
		txSessions := repository.NewSQLiteSessionRepo(q)
		txHistory := repository.NewSQLiteHistoryRepo(q)

		if err := txSessions.Save(ctx, snap); err != nil {
			return err
		}
		return txHistory.Replace(ctx, snap.ID, snap.History)
	})
}

func (s *archiveService) Get(ctx context.Context, id string) (*domain.Session, error) {
	snap, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snap.History, err = s.history.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *archiveService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.List(ctx)
}

func (s *archiveService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
