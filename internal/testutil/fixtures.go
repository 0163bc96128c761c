package testutil

import (
	"time"

	"github.com/fastbillx/checkout/internal/domain"
	"github.com/google/uuid"
)

// NewTestSession builds a session snapshot with two cart lines and a matching
// three-entry history log, suitable for repository and service tests.
func NewTestSession(id string) *domain.Session {
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	saved := started.Add(45 * time.Second)

	lines := []domain.CartLine{
		{Name: "apple", Quantity: 2, UnitPrice: 0.50, TotalPrice: 1.00, LastConfidence: 0.91},
		{Name: "milk", Quantity: 1, UnitPrice: 1.50, TotalPrice: 1.50, LastConfidence: 0.95},
	}

	history := []domain.HistoryEntry{
		NewTestHistoryEntry(id, "apple", 0.50, started.Add(5*time.Second)),
		NewTestHistoryEntry(id, "apple", 0.50, started.Add(12*time.Second)),
		NewTestHistoryEntry(id, "milk", 1.50, started.Add(20*time.Second)),
	}
	history[0].BBox = &domain.BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 220}

	return &domain.Session{
		ID:          id,
		StartedAt:   started,
		SavedAt:     saved,
		Lines:       lines,
		History:     history,
		TotalItems:  3,
		TotalAmount: 2.50,
	}
}

// NewTestHistoryEntry builds one accepted-addition record.
func NewTestHistoryEntry(sessionID, item string, price float64, at time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:         uuid.New().String(),
		Timestamp:  at,
		Item:       item,
		Price:      price,
		Confidence: 0.9,
		SessionID:  sessionID,
	}
}
