package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/domain"
)

// CartTable renders cart lines as an Item/Qty/Price/Total table.
func CartTable(lines []domain.CartLine) string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{
			line.Name,
			strconv.Itoa(line.Quantity),
			Money(line.UnitPrice),
			Money(line.TotalPrice),
		})
	}
	return RenderTable([]string{"Item", "Qty", "Price", "Total"}, rows)
}

// CartTotals renders the one-line totals footer under a cart table.
func CartTotals(itemCount int, total float64) string {
	return fmt.Sprintf("%s %d  %s %s",
		Dim("items:"), itemCount, Dim("total:"), StyleBold.Render(Money(total)))
}

// SessionTable renders archived session summaries.
func SessionTable(sessions []*domain.Session) string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ID,
			s.SavedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(s.TotalItems),
			Money(s.TotalAmount),
		})
	}
	return RenderTable([]string{"Session", "Saved", "Items", "Amount"}, rows)
}

// HistoryTable renders an audit log in entry order.
func HistoryTable(entries []domain.HistoryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		bbox := "-"
		if e.BBox != nil {
			bbox = fmt.Sprintf("[%d %d %d %d]", e.BBox.X1, e.BBox.Y1, e.BBox.X2, e.BBox.Y2)
		}
		rows = append(rows, []string{
			e.Timestamp.Format("15:04:05.000"),
			e.Item,
			Money(e.Price),
			Confidence(e.Confidence),
			bbox,
		})
	}
	return RenderTable([]string{"Time", "Item", "Price", "Conf", "BBox"}, rows)
}

// DocumentReceipt renders a saved-cart document the way the live receipt
// looks, for inspecting cart files after the fact. Items print in name
// order since the document's mapping has no stable order of its own.
func DocumentReceipt(doc *cart.Document) string {
	var b strings.Builder

	b.WriteString(Header("checkout receipt"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("session:"), doc.SessionID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("saved:"), doc.Timestamp))
	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("started:"), doc.StartTime))

	names := make([]string, 0, len(doc.Items))
	for name := range doc.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		item := doc.Items[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(item.Quantity),
			Money(item.Price),
			Money(item.TotalPrice),
		})
	}
	b.WriteString(RenderTable([]string{"Item", "Qty", "Price", "Total"}, rows))
	b.WriteString("\n")
	b.WriteString(CartTotals(doc.TotalItems, doc.TotalAmount))
	b.WriteString("\n")

	return b.String()
}
