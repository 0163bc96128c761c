package detect

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fastbillx/checkout/internal/domain"
)

// Replay reads recorded detections from a JSONL stream: one line per frame,
// each line a JSON array of detection objects. Blank lines are skipped.
// This is the contract a model-backed capture process would emit.
type Replay struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
}

// NewReplay wraps an open JSONL stream.
func NewReplay(r io.Reader) *Replay {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Replay{scanner: sc}
}

// OpenReplay opens a JSONL detection file. Close releases the file handle.
func OpenReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay file: %w", err)
	}
	rp := NewReplay(f)
	rp.closer = f
	return rp, nil
}

func (r *Replay) Next(ctx context.Context) ([]domain.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}
		var detections []domain.Detection
		if err := json.Unmarshal([]byte(text), &detections); err != nil {
			return nil, fmt.Errorf("replay line %d: %w", r.line, err)
		}
		return detections, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading replay stream: %w", err)
	}
	return nil, io.EOF
}

// Close releases the underlying file, if any.
func (r *Replay) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
