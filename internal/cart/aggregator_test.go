package cart

import (
	"testing"
	"time"

	"github.com/fastbillx/checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for cooldown tests; no sleeping.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestAggregator(clk *fakeClock, opts ...Option) *Aggregator {
	base := []Option{
		WithControlClock(clk.Now),
		WithDisplayClock(clk.Now),
		WithCooldown(2 * time.Second),
	}
	return New(append(base, opts...)...)
}

func TestAdd_FirstAdditionAccepted(t *testing.T) {
	agg := newTestAggregator(newFakeClock())

	ok := agg.Add("apple", 0.9, 0.50, nil)
	require.True(t, ok)

	assert.Equal(t, 1, agg.ItemCount())
	assert.InDelta(t, 0.50, agg.Total(), 1e-9)
	assert.Len(t, agg.History(), 1)
}

func TestAdd_WithinCooldownRejected(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("apple", 0.9, 0.50, nil))
	clk.Advance(100 * time.Millisecond)

	ok := agg.Add("apple", 0.95, 0.50, nil)
	assert.False(t, ok)

	// Rejection mutates nothing and logs nothing.
	assert.Equal(t, 1, agg.ItemCount())
	assert.InDelta(t, 0.50, agg.Total(), 1e-9)
	assert.Len(t, agg.History(), 1)
	assert.InDelta(t, 0.9, agg.Summary()["apple"].LastConfidence, 1e-9)
}

func TestAdd_PastCooldownAccepted(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("apple", 0.9, 0.50, nil))
	clk.Advance(100 * time.Millisecond)
	require.False(t, agg.Add("apple", 0.9, 0.50, nil))

	clk.Advance(2 * time.Second)
	ok := agg.Add("apple", 0.8, 0.50, nil)
	require.True(t, ok)

	assert.Equal(t, 2, agg.ItemCount())
	assert.InDelta(t, 1.00, agg.Total(), 1e-9)
	assert.Len(t, agg.History(), 2)
}

func TestAdd_CooldownIsPerName(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("apple", 0.9, 0.50, nil))
	clk.Advance(50 * time.Millisecond)
	// Different product is unaffected by apple's window.
	assert.True(t, agg.Add("banana", 0.8, 0.30, nil))
}

func TestAdd_NormalizesNames(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("Apple", 0.9, 0.50, nil))
	clk.Advance(time.Second)
	// Same key after normalization, still inside the window.
	assert.False(t, agg.Add("  APPLE", 0.9, 0.50, nil))

	summary := agg.Summary()
	require.Len(t, summary, 1)
	assert.Contains(t, summary, "apple")
}

func TestAdd_EmptyNameRejected(t *testing.T) {
	agg := newTestAggregator(newFakeClock())
	assert.False(t, agg.Add("   ", 0.9, 0.50, nil))
	assert.Empty(t, agg.History())
}

func TestAdd_PriceChangeBetweenAdditions(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("cheese", 0.9, 2.50, nil))
	clk.Advance(3 * time.Second)
	require.True(t, agg.Add("cheese", 0.9, 3.00, nil))

	line := agg.Summary()["cheese"]
	// TotalPrice accumulates per-addition prices; UnitPrice is only the latest.
	assert.InDelta(t, 5.50, line.TotalPrice, 1e-9)
	assert.InDelta(t, 3.00, line.UnitPrice, 1e-9)
	assert.Equal(t, 2, line.Quantity)
}

func TestAddDetection_ResolvesMissingPrice(t *testing.T) {
	agg := newTestAggregator(newFakeClock())

	require.True(t, agg.AddDetection(domain.Detection{Name: "mystery", Confidence: 0.7}))
	assert.InDelta(t, 1.00, agg.Total(), 1e-9)
}

func TestRemove_AbsentName(t *testing.T) {
	agg := newTestAggregator(newFakeClock())
	assert.InDelta(t, 0, agg.Remove("ghost", 1), 1e-9)
}

func TestRemove_AllDeletesLine(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("milk", 0.9, 1.50, nil))
	clk.Advance(3 * time.Second)
	require.True(t, agg.Add("milk", 0.9, 1.50, nil))

	removed := agg.Remove("milk", 2)
	assert.InDelta(t, 3.00, removed, 1e-9)
	assert.Empty(t, agg.Summary())
	assert.Equal(t, 0, agg.ItemCount())
}

func TestRemove_MoreThanQuantityDeletesLine(t *testing.T) {
	agg := newTestAggregator(newFakeClock())
	require.True(t, agg.Add("milk", 0.9, 1.50, nil))

	removed := agg.Remove("milk", 10)
	assert.InDelta(t, 1.50, removed, 1e-9)
	assert.NotContains(t, agg.Summary(), "milk")
}

func TestRemove_PartialDecrements(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	for i := 0; i < 3; i++ {
		require.True(t, agg.Add("milk", 0.9, 1.50, nil))
		clk.Advance(3 * time.Second)
	}

	removed := agg.Remove("Milk", 1)
	assert.InDelta(t, 1.50, removed, 1e-9)

	line := agg.Summary()["milk"]
	assert.Equal(t, 2, line.Quantity)
	assert.InDelta(t, 3.00, line.TotalPrice, 1e-9)
}

func TestRemove_RefundUsesLatestUnitPrice(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("cheese", 0.9, 2.00, nil))
	clk.Advance(3 * time.Second)
	require.True(t, agg.Add("cheese", 0.9, 4.00, nil))

	// Partial refund is unit_price * qty with the latest unit price.
	removed := agg.Remove("cheese", 1)
	assert.InDelta(t, 4.00, removed, 1e-9)
	assert.InDelta(t, 2.00, agg.Summary()["cheese"].TotalPrice, 1e-9)
}

func TestTotalsMatchLineSums(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	items := []struct {
		name  string
		price float64
	}{{"apple", 0.50}, {"banana", 0.30}, {"milk", 1.50}, {"apple", 0.50}}

	for _, it := range items {
		agg.Add(it.name, 0.9, it.price, nil)
		clk.Advance(3 * time.Second)
	}

	var wantTotal float64
	var wantCount int
	for _, line := range agg.Summary() {
		wantTotal += line.TotalPrice
		wantCount += line.Quantity
	}
	assert.InDelta(t, wantTotal, agg.Total(), 1e-9)
	assert.Equal(t, wantCount, agg.ItemCount())
	assert.Equal(t, 4, agg.ItemCount())
}

func TestClear_PreservesHistory(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	require.True(t, agg.Add("apple", 0.9, 0.50, nil))
	clk.Advance(3 * time.Second)
	require.True(t, agg.Add("banana", 0.8, 0.30, nil))

	agg.Clear()

	assert.Empty(t, agg.Summary())
	assert.Equal(t, 0, agg.ItemCount())
	assert.InDelta(t, 0, agg.Total(), 1e-9)
	assert.Len(t, agg.History(), 2)
}

func TestLines_FirstAcceptanceOrder(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)

	for _, name := range []string{"milk", "apple", "bread"} {
		require.True(t, agg.Add(name, 0.9, 1.00, nil))
	}
	clk.Advance(3 * time.Second)
	require.True(t, agg.Add("apple", 0.9, 1.00, nil))

	lines := agg.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "milk", lines[0].Name)
	assert.Equal(t, "apple", lines[1].Name)
	assert.Equal(t, "bread", lines[2].Name)
}

func TestHistory_CarriesBBoxAndSession(t *testing.T) {
	agg := newTestAggregator(newFakeClock(), WithSessionID("cart_test"))

	box := &domain.BoundingBox{X1: 1, Y1: 2, X2: 3, Y2: 4}
	require.True(t, agg.Add("apple", 0.9, 0.50, box))

	history := agg.History()
	require.Len(t, history, 1)
	entry := history[0]
	assert.Equal(t, "cart_test", entry.SessionID)
	assert.Equal(t, "apple", entry.Item)
	require.NotNil(t, entry.BBox)
	assert.Equal(t, *box, *entry.BBox)
	assert.NotEmpty(t, entry.ID)
}

// The scenario from the demo walkthrough: two rapid apples, then one more
// after the window passes.
func TestScenario_AppleCooldown(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk, WithCooldown(2*time.Second))

	require.True(t, agg.Add("apple", 0.9, 0.50, nil))
	clk.Advance(100 * time.Millisecond)
	require.False(t, agg.Add("apple", 0.9, 0.50, nil))

	assert.InDelta(t, 0.50, agg.Total(), 1e-9)
	assert.Equal(t, 1, agg.ItemCount())

	clk.Advance(2 * time.Second)
	require.True(t, agg.Add("apple", 0.9, 0.50, nil))

	assert.InDelta(t, 1.00, agg.Total(), 1e-9)
	assert.Equal(t, 2, agg.ItemCount())
}

func TestSnapshot(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk, WithSessionID("cart_snap"))

	require.True(t, agg.Add("apple", 0.9, 0.50, nil))
	clk.Advance(3 * time.Second)
	require.True(t, agg.Add("milk", 0.8, 1.50, nil))

	snap := agg.Snapshot()
	assert.Equal(t, "cart_snap", snap.ID)
	assert.Equal(t, 2, snap.TotalItems)
	assert.InDelta(t, 2.00, snap.TotalAmount, 1e-9)
	require.Len(t, snap.Lines, 2)
	assert.Equal(t, "apple", snap.Lines[0].Name)
	assert.Len(t, snap.History, 2)
}

func TestSessionIDDerivedFromControlClock(t *testing.T) {
	clk := newFakeClock()
	agg := newTestAggregator(clk)
	assert.Equal(t, domain.NewSessionID(clk.Now()), agg.SessionID())
}
