package cart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fastbillx/checkout/internal/domain"
)

// SavedItem is the per-product block of the saved-cart document.
type SavedItem struct {
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"total_price"`
	Confidence float64 `json:"confidence"`
}

// SavedHistoryEntry is one history record of the saved-cart document.
type SavedHistoryEntry struct {
	Timestamp  string              `json:"timestamp"`
	Item       string              `json:"item"`
	Price      float64             `json:"price"`
	Confidence float64             `json:"confidence"`
	SessionID  string              `json:"session_id"`
	BBox       *domain.BoundingBox `json:"bbox"`
}

// Document is the durable on-disk representation of a session. The field
// set and names form the interoperability contract for downstream consumers
// of saved carts; do not rename or reorder fields.
type Document struct {
	SessionID   string               `json:"session_id"`
	Timestamp   string               `json:"timestamp"`
	StartTime   string               `json:"start_time"`
	Items       map[string]SavedItem `json:"items"`
	TotalItems  int                  `json:"total_items"`
	TotalAmount float64              `json:"total_amount"`
	History     []SavedHistoryEntry  `json:"history"`
}

const savedTimeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// Document builds the saved-cart document for the current session state.
func (a *Aggregator) Document() *Document {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make(map[string]SavedItem, len(a.lines))
	for key, line := range a.lines {
		items[key] = SavedItem{
			Quantity:   line.Quantity,
			Price:      line.UnitPrice,
			TotalPrice: line.TotalPrice,
			Confidence: line.LastConfidence,
		}
	}

	history := make([]SavedHistoryEntry, 0, len(a.history))
	for _, entry := range a.history {
		history = append(history, SavedHistoryEntry{
			Timestamp:  entry.Timestamp.Format(savedTimeLayout),
			Item:       entry.Item,
			Price:      entry.Price,
			Confidence: entry.Confidence,
			SessionID:  entry.SessionID,
			BBox:       entry.BBox,
		})
	}

	return &Document{
		SessionID:   a.sessionID,
		Timestamp:   a.displayNow().Format(savedTimeLayout),
		StartTime:   a.startedAt.Format(savedTimeLayout),
		Items:       items,
		TotalItems:  a.itemCountLocked(),
		TotalAmount: a.totalLocked(),
		History:     history,
	}
}

// Save writes the session document as indented JSON. An empty path defaults
// to "cart_<session_id>.json" in the working directory. The path actually
// written is returned; write failures surface to the caller.
func (a *Aggregator) Save(path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("cart_%s.json", a.sessionID)
	}

	doc := a.Document()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding cart document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing cart file: %w", err)
	}
	return path, nil
}

// Load reads a saved-cart document back from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cart file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing cart file %s: %w", path, err)
	}
	return &doc, nil
}
