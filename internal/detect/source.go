// Package detect provides detection sources for the checkout pipeline.
//
// The actual object-detection model is an external collaborator: a source
// only has to yield, per frame, the detections that model would report.
// The in-repo implementations are demo fixtures: a scripted timeline and
// a JSONL replay reader.
package detect

import (
	"context"

	"github.com/fastbillx/checkout/internal/domain"
)

// Source yields one frame's worth of detections per call. Next returns
// io.EOF when the source is exhausted; a frame with no detections returns
// an empty (or nil) slice and no error.
type Source interface {
	Next(ctx context.Context) ([]domain.Detection, error)
}
