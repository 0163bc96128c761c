package cart

import (
	"sync"
	"time"

	"github.com/fastbillx/checkout/internal/catalog"
	"github.com/fastbillx/checkout/internal/domain"
	"github.com/google/uuid"
)

// DefaultCooldown is the minimum gap before the same product name is counted
// again. Call sites historically disagreed on this value (2s in the main
// pipeline, 5s in the demo harness), so it is a constructor option rather
// than a fixed behavior; this constant is only the option's default.
const DefaultCooldown = 2 * time.Second

// Aggregator accumulates accepted detections into per-product cart lines and
// an append-only history log, applying a cooldown-based dedup rule on every
// addition. It is safe for one writer plus concurrent readers; the mutex
// keeps the cooldown check and the mutation it gates atomic.
//
// Two clocks are injected and never conflated: the control clock drives the
// cooldown decision, the display clock stamps human-readable timestamps in
// history, receipts and save files.
type Aggregator struct {
	mu        sync.Mutex
	lines     map[string]*domain.CartLine
	order     []string // first-acceptance order of line keys
	history   []domain.HistoryEntry
	sessionID string
	startedAt time.Time
	cooldown  time.Duration

	controlNow func() time.Time
	displayNow func() time.Time
}

// Option configures an Aggregator at construction time.
type Option func(*Aggregator)

// WithCooldown sets the dedup cooldown window.
func WithCooldown(d time.Duration) Option {
	return func(a *Aggregator) { a.cooldown = d }
}

// WithControlClock sets the clock used for cooldown decisions.
func WithControlClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.controlNow = now }
}

// WithDisplayClock sets the clock used for human-readable timestamps.
func WithDisplayClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.displayNow = now }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(a *Aggregator) { a.sessionID = id }
}

// New creates an empty aggregator for a fresh session.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		lines:      make(map[string]*domain.CartLine),
		cooldown:   DefaultCooldown,
		controlNow: time.Now,
		displayNow: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sessionID == "" {
		a.sessionID = domain.NewSessionID(a.controlNow())
	}
	a.startedAt = a.displayNow()
	return a
}

// Add records one detection of a product. If a line for the normalized name
// exists and its last accepted detection is within the cooldown window, the
// addition is rejected with no mutation and no history entry. Otherwise the
// line is created or incremented, price and confidence are captured, and a
// history entry is appended.
func (a *Aggregator) Add(name string, confidence, price float64, bbox *domain.BoundingBox) bool {
	key := domain.NormalizeName(name)
	if key == "" {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.controlNow()
	line, exists := a.lines[key]
	if exists {
		if now.Sub(line.LastDetectedAt) < a.cooldown {
			return false
		}
	} else {
		line = &domain.CartLine{Name: key}
		a.lines[key] = line
		a.order = append(a.order, key)
	}

	line.Quantity++
	line.TotalPrice += price
	line.UnitPrice = price
	line.LastDetectedAt = now
	line.LastConfidence = confidence

	a.history = append(a.history, domain.HistoryEntry{
		ID:         uuid.New().String(),
		Timestamp:  a.displayNow(),
		Item:       key,
		Price:      price,
		Confidence: confidence,
		SessionID:  a.sessionID,
		BBox:       bbox,
	})
	return true
}

// AddDetection adds one detection record without consulting a catalog. A
// non-positive price marks the detection as unpriced and bills DefaultPrice;
// callers holding a catalog should resolve the price and use Add, which
// bills exactly what it is given (including 0 for free items).
func (a *Aggregator) AddDetection(d domain.Detection) bool {
	price := d.Price
	if price <= 0 {
		price = catalog.DefaultPrice
	}
	return a.Add(d.Name, d.Confidence, price, d.BBox)
}

// Remove takes up to qty units of a product out of the cart and returns the
// amount refunded. Removing an absent name is a no-op returning 0. Removing
// qty >= the line's quantity deletes the line and refunds its full
// accumulated total. Partial removal refunds UnitPrice * qty, which uses the
// latest unit price rather than the per-addition prices.
func (a *Aggregator) Remove(name string, qty int) float64 {
	key := domain.NormalizeName(name)

	a.mu.Lock()
	defer a.mu.Unlock()

	line, ok := a.lines[key]
	if !ok || qty <= 0 {
		return 0
	}

	if qty >= line.Quantity {
		removed := line.TotalPrice
		delete(a.lines, key)
		for i, k := range a.order {
			if k == key {
				a.order = append(a.order[:i], a.order[i+1:]...)
				break
			}
		}
		return removed
	}

	removed := line.UnitPrice * float64(qty)
	line.Quantity -= qty
	line.TotalPrice -= removed
	return removed
}

// Summary returns a snapshot of the current cart lines keyed by name.
func (a *Aggregator) Summary() map[string]domain.CartLine {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]domain.CartLine, len(a.lines))
	for key, line := range a.lines {
		out[key] = *line
	}
	return out
}

// Lines returns snapshots of the cart lines in first-acceptance order.
func (a *Aggregator) Lines() []domain.CartLine {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.linesLocked()
}

func (a *Aggregator) linesLocked() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.lines[key])
	}
	return out
}

// Total returns the sum of every line's accumulated total price.
func (a *Aggregator) Total() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalLocked()
}

func (a *Aggregator) totalLocked() float64 {
	var total float64
	for _, line := range a.lines {
		total += line.TotalPrice
	}
	return total
}

// ItemCount returns the sum of every line's quantity.
func (a *Aggregator) ItemCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.itemCountLocked()
}

func (a *Aggregator) itemCountLocked() int {
	var count int
	for _, line := range a.lines {
		count += line.Quantity
	}
	return count
}

// Clear empties the cart lines. The history log is untouched so the audit
// trail survives a clear.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = make(map[string]*domain.CartLine)
	a.order = nil
}

// History returns a copy of the append-only history log.
func (a *Aggregator) History() []domain.HistoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.HistoryEntry, len(a.history))
	copy(out, a.history)
	return out
}

// SessionID returns the session identifier.
func (a *Aggregator) SessionID() string { return a.sessionID }

// StartedAt returns the session start time (display clock).
func (a *Aggregator) StartedAt() time.Time { return a.startedAt }

// Cooldown returns the configured dedup window.
func (a *Aggregator) Cooldown() time.Duration { return a.cooldown }

// Snapshot builds a Session aggregate of the current state, suitable for
// archiving. SavedAt is stamped with the display clock.
func (a *Aggregator) Snapshot() *domain.Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := make([]domain.HistoryEntry, len(a.history))
	copy(history, a.history)

	return &domain.Session{
		ID:          a.sessionID,
		StartedAt:   a.startedAt,
		SavedAt:     a.displayNow(),
		Lines:       a.linesLocked(),
		History:     history,
		TotalItems:  a.itemCountLocked(),
		TotalAmount: a.totalLocked(),
	}
}
