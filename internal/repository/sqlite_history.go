package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fastbillx/checkout/internal/db"
	"github.com/fastbillx/checkout/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
// Bounding boxes are stored as JSON text since they are audit payload,
// never queried by coordinate.
type SQLiteHistoryRepo struct {
	db db.Querier
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(conn db.Querier) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: conn}
}

func (r *SQLiteHistoryRepo) Replace(ctx context.Context, sessionID string, entries []domain.HistoryEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history_entries WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	for seq, entry := range entries {
		var bboxJSON interface{}
		if entry.BBox != nil {
			data, err := json.Marshal(entry.BBox)
			if err != nil {
				return fmt.Errorf("encoding bbox: %w", err)
			}
			bboxJSON = string(data)
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO history_entries (id, session_id, seq, at, item, price, confidence, bbox)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, sessionID, seq,
			entry.Timestamp.Format(time.RFC3339Nano),
			entry.Item, entry.Price, entry.Confidence, bboxJSON,
		)
		if err != nil {
			return fmt.Errorf("inserting history entry %d: %w", seq, err)
		}
	}
	return nil
}

func (r *SQLiteHistoryRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error) {
	query := `SELECT id, at, item, price, confidence, bbox
		FROM history_entries WHERE session_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var atStr string
		var bboxJSON sql.NullString

		if err := rows.Scan(&entry.ID, &atStr, &entry.Item, &entry.Price, &entry.Confidence, &bboxJSON); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entry.Timestamp, err = time.Parse(time.RFC3339Nano, atStr)
		if err != nil {
			return nil, fmt.Errorf("parsing history timestamp: %w", err)
		}
		if bboxJSON.Valid && bboxJSON.String != "" {
			var box domain.BoundingBox
			if err := json.Unmarshal([]byte(bboxJSON.String), &box); err != nil {
				return nil, fmt.Errorf("decoding bbox: %w", err)
			}
			entry.BBox = &box
		}
		entry.SessionID = sessionID
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}
