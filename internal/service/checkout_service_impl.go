package service

import (
	"context"
	"errors"
	"io"

	"github.com/fastbillx/checkout/internal/cart"
	"github.com/fastbillx/checkout/internal/catalog"
	"github.com/fastbillx/checkout/internal/detect"
	"github.com/fastbillx/checkout/internal/domain"
)

type checkoutService struct {
	agg     *cart.Aggregator
	catalog *catalog.Catalog
}

// NewCheckoutService creates the pipeline service around one session's
// aggregator. Detections that arrive without a price are resolved through
// the catalog.
func NewCheckoutService(agg *cart.Aggregator, cat *catalog.Catalog) CheckoutService {
	return &checkoutService{agg: agg, catalog: cat}
}

// ProcessFrame feeds one frame's detections to the aggregator in the order
// received and returns how many were accepted. A non-positive detection
// price means the source carried no price; the catalog resolves it, and an
// explicit catalog entry of 0 bills the item as free rather than falling
// back to the default price.
func (s *checkoutService) ProcessFrame(ctx context.Context, detections []domain.Detection) int {
	accepted := 0
	for _, d := range detections {
		price := d.Price
		if price <= 0 {
			price = s.catalog.PriceOf(d.Name)
		}
		if s.agg.Add(d.Name, d.Confidence, price, d.BBox) {
			accepted++
		}
	}
	return accepted
}

func (s *checkoutService) Run(ctx context.Context, src detect.Source, opts RunOptions) (*RunResult, error) {
	result := &RunResult{}
	for {
		if opts.MaxFrames > 0 && result.Frames >= opts.MaxFrames {
			return result, nil
		}

		detections, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return result, err
		}

		accepted := s.ProcessFrame(ctx, detections)
		result.Frames++
		result.Accepted += accepted
		result.Rejected += len(detections) - accepted

		if opts.FrameHook != nil {
			opts.FrameHook(result.Frames, detections, accepted)
		}
	}
}
