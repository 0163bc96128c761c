// Package tui implements the live checkout dashboard: a single-screen
// bubbletea model that ticks frames through the pipeline and renders the
// cart as a text overlay.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/cli/formatter"
	"github.com/fastbillx/checkout/internal/detect"
	"github.com/fastbillx/checkout/internal/service"
)

// DefaultFrameInterval approximates the demo's ~10 fps playback rate.
const DefaultFrameInterval = 100 * time.Millisecond

type frameTickMsg time.Time

// Watch is the dashboard model. The aggregator is shared with the caller so
// the final cart survives the TUI exiting.
type Watch struct {
	svc      service.CheckoutService
	agg      *cart.Aggregator
	src      detect.Source
	interval time.Duration

	spin      spinner.Model
	startedAt time.Time
	frames    int
	accepted  int
	rejected  int
	done      bool
	err       error
	status    string
}

// NewWatch builds the dashboard around an existing pipeline.
func NewWatch(svc service.CheckoutService, agg *cart.Aggregator, src detect.Source, interval time.Duration) Watch {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleBlue

	return Watch{
		svc:       svc,
		agg:       agg,
		src:       src,
		interval:  interval,
		spin:      sp,
		startedAt: time.Now(),
	}
}

func (m Watch) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.tick())
}

func (m Watch) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (m Watch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.agg.Clear()
			m.status = "Cart cleared"
			return m, nil
		case "s":
			path, err := m.agg.Save("")
			if err != nil {
				m.status = "Save failed: " + err.Error()
			} else {
				m.status = "Cart saved to " + path
			}
			return m, nil
		}
		return m, nil

	case frameTickMsg:
		if m.done {
			return m, nil
		}
		detections, err := m.src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			m.done = true
			m.status = "Source finished; q to quit"
			return m, nil
		}
		if err != nil {
			m.done = true
			m.err = err
			return m, nil
		}
		accepted := m.svc.ProcessFrame(context.Background(), detections)
		m.frames++
		m.accepted += accepted
		m.rejected += len(detections) - accepted
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Watch) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("fastbillx checkout"))
	b.WriteString("\n")

	elapsed := time.Since(m.startedAt).Seconds()
	fps := 0.0
	if elapsed > 0 {
		fps = float64(m.frames) / elapsed
	}

	indicator := m.spin.View()
	if m.done {
		indicator = formatter.StyleGreen.Render("●")
	}
	b.WriteString(fmt.Sprintf("%s frame %d  %s  %s\n\n",
		indicator,
		m.frames,
		formatter.Dim(fmt.Sprintf("%.1f fps", fps)),
		formatter.Dim(fmt.Sprintf("%d accepted / %d deduplicated", m.accepted, m.rejected)),
	))

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("source error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	lines := m.agg.Lines()
	if len(lines) == 0 {
		b.WriteString(formatter.Dim("Cart is empty."))
		b.WriteString("\n")
	} else {
		b.WriteString(formatter.CartTable(lines))
	}
	b.WriteString("\n")
	b.WriteString(formatter.CartTotals(m.agg.ItemCount(), m.agg.Total()))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(formatter.Dim("q quit · c clear cart · s save cart"))
	b.WriteString("\n")

	return b.String()
}

// Done reports whether the source is exhausted or failed.
func (m Watch) Done() bool { return m.done }

// Err returns the source error that stopped playback, if any.
func (m Watch) Err() error { return m.err }
