package domain

import (
	"fmt"
	"strings"
	"time"
)

// CartLine is the aggregated state for one distinct product name.
// TotalPrice accumulates the price charged at each accepted addition and is
// authoritative; UnitPrice only holds the most recently supplied price, so
// the two diverge if the price changes between additions.
type CartLine struct {
	Name           string
	Quantity       int
	UnitPrice      float64
	TotalPrice     float64
	LastDetectedAt time.Time
	LastConfidence float64
}

// HistoryEntry is an append-only audit record created for every accepted
// addition. Entries are never mutated or removed within a session.
type HistoryEntry struct {
	ID         string
	Timestamp  time.Time
	Item       string
	Price      float64
	Confidence float64
	SessionID  string
	BBox       *BoundingBox
}

// Session is a full snapshot of one checkout session: its cart lines in
// first-acceptance order and the complete history log. Repositories persist
// and reload this aggregate as a unit.
type Session struct {
	ID          string
	StartedAt   time.Time
	SavedAt     time.Time
	Lines       []CartLine
	History     []HistoryEntry
	TotalItems  int
	TotalAmount float64
}

// NormalizeName lowercases and trims a product name; normalized names are
// the unique cart-line keys.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewSessionID derives a session identifier from a creation time.
func NewSessionID(t time.Time) string {
	return fmt.Sprintf("cart_%d", t.Unix())
}
