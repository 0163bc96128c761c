package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/catalog"
	"github.com/fastbillx/checkout/internal/detect"
	"github.com/fastbillx/checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DemoScriptEndToEnd(t *testing.T) {
	agg := cart.New(cart.WithCooldown(2 * time.Second))
	svc := NewCheckoutService(agg, catalog.New())

	result, err := svc.Run(context.Background(), detect.DemoScript(), RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 120, result.Frames)
	// Every scripted product shows up for many consecutive frames but the
	// cooldown collapses each burst to roughly one acceptance.
	assert.Greater(t, result.Rejected, result.Accepted)
	assert.GreaterOrEqual(t, result.Accepted, 4)

	summary := agg.Summary()
	for _, name := range []string{"apple", "banana", "milk", "bread"} {
		assert.Contains(t, summary, name)
	}
	assert.Equal(t, result.Accepted, agg.ItemCount())
	assert.Len(t, agg.History(), result.Accepted)
}

func TestRun_MaxFrames(t *testing.T) {
	agg := cart.New()
	svc := NewCheckoutService(agg, catalog.New())

	result, err := svc.Run(context.Background(), detect.DemoScript(), RunOptions{MaxFrames: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Frames)
}

func TestRun_FrameHookObservesProgress(t *testing.T) {
	agg := cart.New()
	svc := NewCheckoutService(agg, catalog.New())

	var frames []int
	opts := RunOptions{
		MaxFrames: 8,
		FrameHook: func(frame int, detections []domain.Detection, accepted int) {
			frames = append(frames, frame)
		},
	}
	_, err := svc.Run(context.Background(), detect.DemoScript(), opts)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, frames)
}

type failingSource struct{ err error }

func (f failingSource) Next(ctx context.Context) ([]domain.Detection, error) {
	return nil, f.err
}

func TestRun_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("camera unplugged")
	svc := NewCheckoutService(cart.New(), catalog.New())

	_, err := svc.Run(context.Background(), failingSource{err: boom}, RunOptions{})
	assert.ErrorIs(t, err, boom)
}

func TestProcessFrame_ResolvesPricesFromCatalog(t *testing.T) {
	agg := cart.New()
	svc := NewCheckoutService(agg, catalog.New())

	accepted := svc.ProcessFrame(context.Background(), []domain.Detection{
		{Name: "milk", Confidence: 0.9}, // no price on the detection
	})
	assert.Equal(t, 1, accepted)
	assert.InDelta(t, 1.50, agg.Total(), 1e-9)
}

func TestProcessFrame_ExplicitZeroCatalogPriceIsFree(t *testing.T) {
	agg := cart.New()
	cat := catalog.New()
	cat.SetPrice("store bag", 0) // promotional giveaway, explicitly free
	svc := NewCheckoutService(agg, cat)

	accepted := svc.ProcessFrame(context.Background(), []domain.Detection{
		{Name: "store bag", Confidence: 0.9},
	})
	assert.Equal(t, 1, accepted)
	assert.InDelta(t, 0.0, agg.Total(), 1e-9, "explicitly priced 0 must not bill the default price")

	line := agg.Summary()["store bag"]
	assert.Equal(t, 0.0, line.UnitPrice)
}

func TestProcessFrame_DetectionPriceWins(t *testing.T) {
	agg := cart.New()
	svc := NewCheckoutService(agg, catalog.New())

	svc.ProcessFrame(context.Background(), []domain.Detection{
		{Name: "milk", Confidence: 0.9, Price: 9.99},
	})
	assert.InDelta(t, 9.99, agg.Total(), 1e-9)
}
