package cart

import "time"

// ExportRecord is one per-unit record in the downstream API format:
// aggregated quantities are expanded back into individual units.
type ExportRecord struct {
	SessionID  string    `json:"session_id"`
	ItemName   string    `json:"item_name"`
	Price      float64   `json:"price"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// ExportForAPI emits one record per unit in the cart, in first-acceptance
// order, each stamped with the display clock at export time.
func (a *Aggregator) ExportForAPI() []ExportRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.displayNow()
	var records []ExportRecord
	for _, key := range a.order {
		line := a.lines[key]
		for i := 0; i < line.Quantity; i++ {
			records = append(records, ExportRecord{
				SessionID:  a.sessionID,
				ItemName:   line.Name,
				Price:      line.UnitPrice,
				Confidence: line.LastConfidence,
				Timestamp:  now,
			})
		}
	}
	return records
}
