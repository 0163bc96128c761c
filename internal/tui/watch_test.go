package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/catalog"
	"github.com/fastbillx/checkout/internal/domain"
	"github.com/fastbillx/checkout/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource yields one fixed frame per call, then EOF.
type stubSource struct {
	frames [][]domain.Detection
	pos    int
}

func (s *stubSource) Next(ctx context.Context) ([]domain.Detection, error) {
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	return frame, nil
}

func newTestWatch(t *testing.T, frames [][]domain.Detection) Watch {
	t.Helper()
	agg := cart.New(cart.WithCooldown(0))
	svc := service.NewCheckoutService(agg, catalog.New())
	return NewWatch(svc, agg, &stubSource{frames: frames}, time.Millisecond)
}

func step(t *testing.T, m Watch, msg tea.Msg) Watch {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Watch)
	require.True(t, ok)
	return updated
}

func TestWatchProcessesFrames(t *testing.T) {
	m := newTestWatch(t, [][]domain.Detection{
		{{Name: "apple", Confidence: 0.9}},
		{{Name: "banana", Confidence: 0.8}},
	})

	m = step(t, m, frameTickMsg(time.Now()))
	m = step(t, m, frameTickMsg(time.Now()))

	assert.Equal(t, 2, m.frames)
	assert.Equal(t, 2, m.accepted)
	assert.False(t, m.Done())

	view := m.View()
	assert.Contains(t, view, "apple")
	assert.Contains(t, view, "banana")
}

func TestWatchStopsAtSourceEnd(t *testing.T) {
	m := newTestWatch(t, [][]domain.Detection{
		{{Name: "milk", Confidence: 0.95}},
	})

	m = step(t, m, frameTickMsg(time.Now()))
	m = step(t, m, frameTickMsg(time.Now()))

	assert.True(t, m.Done())
	require.NoError(t, m.Err())
	assert.Contains(t, m.View(), "Source finished")

	// Ticks after exhaustion are ignored.
	m = step(t, m, frameTickMsg(time.Now()))
	assert.Equal(t, 1, m.frames)
}

func TestWatchClearKey(t *testing.T) {
	m := newTestWatch(t, [][]domain.Detection{
		{{Name: "apple", Confidence: 0.9}},
	})
	m = step(t, m, frameTickMsg(time.Now()))
	require.Equal(t, 1, m.agg.ItemCount())

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	assert.Equal(t, 0, m.agg.ItemCount())
	assert.Contains(t, m.View(), "Cart cleared")
}

func TestWatchQuitKey(t *testing.T) {
	m := newTestWatch(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWatchSaveKey(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	m := newTestWatch(t, [][]domain.Detection{
		{{Name: "bread", Confidence: 0.7}},
	})
	m = step(t, m, frameTickMsg(time.Now()))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	assert.Contains(t, m.View(), "Cart saved to")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), ".json")
}

func TestWatchSourceError(t *testing.T) {
	agg := cart.New(cart.WithCooldown(0))
	svc := service.NewCheckoutService(agg, catalog.New())
	m := NewWatch(svc, agg, failingSource{}, time.Millisecond)

	m = step(t, m, frameTickMsg(time.Now()))

	assert.True(t, m.Done())
	assert.Error(t, m.Err())
	assert.Contains(t, m.View(), "source error")
}

type failingSource struct{}

func (failingSource) Next(ctx context.Context) ([]domain.Detection, error) {
	return nil, errors.New("camera unplugged")
}
