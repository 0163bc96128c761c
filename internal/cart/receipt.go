package cart

import (
	"fmt"
	"strings"
)

const receiptWidth = 50

// Receipt renders the session as a fixed-width plain-text receipt: banner,
// session metadata, one row per cart line in first-acceptance order, and a
// totals footer. Output is deterministic given the cart state and the
// display clock.
func (a *Aggregator) Receipt() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.displayNow()
	bar := strings.Repeat("=", receiptWidth)
	rule := strings.Repeat("-", receiptWidth)

	var b strings.Builder
	write := func(line string) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	write(bar)
	write("FASTBILLX - SMART CHECKOUT RECEIPT")
	write(bar)
	write(fmt.Sprintf("Session ID: %s", a.sessionID))
	write(fmt.Sprintf("Date & Time: %s", now.Format("2006-01-02 15:04:05")))
	write(fmt.Sprintf("Duration: %.1fs", now.Sub(a.startedAt).Seconds()))
	write(rule)
	write(fmt.Sprintf("%-25s %5s %8s %8s", "Item", "Qty", "Price", "Total"))
	write(rule)

	for _, key := range a.order {
		line := a.lines[key]
		name := line.Name
		if runes := []rune(name); len(runes) > 25 {
			name = string(runes[:25])
		}
		write(fmt.Sprintf("%-25s %5d $%7.2f $%7.2f",
			name, line.Quantity, line.UnitPrice, line.TotalPrice))
	}

	write(rule)
	write(fmt.Sprintf("Total Items: %-35d $%7.2f", a.itemCountLocked(), a.totalLocked()))
	write(bar)
	write("Thank you for shopping with FastBillX!")
	write("All items detected via AI computer vision")
	b.WriteString(bar)

	return b.String()
}
