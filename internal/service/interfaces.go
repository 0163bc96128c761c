package service

import (
	"context"

	"github.com/fastbillx/checkout/internal/detect"
	"github.com/fastbillx/checkout/internal/domain"
)

// RunOptions controls one pipeline run.
type RunOptions struct {
	// MaxFrames stops the run after this many frames; 0 means run until the
	// source is exhausted.
	MaxFrames int
	// FrameHook, if set, is called after each processed frame with the raw
	// detections and how many of them were accepted. Renderers read cart
	// state from here; they must not mutate it.
	FrameHook func(frame int, detections []domain.Detection, accepted int)
}

// RunResult summarizes a finished pipeline run.
type RunResult struct {
	Frames   int
	Accepted int
	Rejected int
}

// CheckoutService drives the frame loop: detections in, cart mutations out.
type CheckoutService interface {
	Run(ctx context.Context, src detect.Source, opts RunOptions) (*RunResult, error)
	ProcessFrame(ctx context.Context, detections []domain.Detection) int
}

// ArchiveService persists and manages session snapshots in the archive
// database.
type ArchiveService interface {
	Archive(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
