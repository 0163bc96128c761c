package detect

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fastbillx/checkout/internal/domain"
	"gopkg.in/yaml.v3"
)

// ScriptStep places one product on the scripted timeline: it appears at
// Frame and stays visible for Frames consecutive frames, drifting slowly
// across the scene like an item moving over the scanner bed.
type ScriptStep struct {
	Name       string  `yaml:"name"`
	Frame      int     `yaml:"frame"`
	Frames     int     `yaml:"frames"`
	Confidence float64 `yaml:"confidence"`
	Price      float64 `yaml:"price"`
	BBox       []int   `yaml:"bbox"`
}

// ScriptFile is the YAML layout of a detection script.
type ScriptFile struct {
	TotalFrames int          `yaml:"total_frames"`
	Steps       []ScriptStep `yaml:"steps"`
}

// Script is a deterministic Source that plays back a scripted timeline of
// detections, one frame per Next call.
type Script struct {
	steps       []ScriptStep
	totalFrames int
	frame       int
}

// NewScript creates a scripted source. totalFrames caps playback; steps
// extending past it are cut off.
func NewScript(steps []ScriptStep, totalFrames int) *Script {
	return &Script{steps: steps, totalFrames: totalFrames}
}

// LoadScript reads a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}
	var sf ScriptFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing script file %s: %w", path, err)
	}
	if sf.TotalFrames <= 0 {
		return nil, fmt.Errorf("script file %s: total_frames must be positive", path)
	}
	return NewScript(sf.Steps, sf.TotalFrames), nil
}

// DemoScript returns the built-in demo timeline: a handful of groceries
// sliding past the scanner over 120 frames.
func DemoScript() *Script {
	steps := []ScriptStep{
		{Name: "apple", Frame: 5, Frames: 20, Confidence: 0.91, Price: 0.50, BBox: []int{60, 120, 180, 260}},
		{Name: "banana", Frame: 30, Frames: 18, Confidence: 0.87, Price: 0.30, BBox: []int{220, 140, 360, 240}},
		{Name: "milk", Frame: 55, Frames: 25, Confidence: 0.94, Price: 1.50, BBox: []int{120, 80, 230, 300}},
		{Name: "bread", Frame: 85, Frames: 20, Confidence: 0.82, Price: 2.00, BBox: []int{300, 160, 460, 280}},
		{Name: "apple", Frame: 95, Frames: 15, Confidence: 0.89, Price: 0.50, BBox: []int{40, 100, 160, 240}},
	}
	return NewScript(steps, 120)
}

func (s *Script) Next(ctx context.Context) ([]domain.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.frame >= s.totalFrames {
		return nil, io.EOF
	}

	var detections []domain.Detection
	for _, step := range s.steps {
		offset := s.frame - step.Frame
		if offset < 0 || offset >= step.Frames {
			continue
		}
		var bbox *domain.BoundingBox
		if len(step.BBox) == 4 {
			// Drift 2px per visible frame, deterministic for tests.
			box := domain.BoundingBox{
				X1: step.BBox[0], Y1: step.BBox[1], X2: step.BBox[2], Y2: step.BBox[3],
			}.Shift(2*offset, 0)
			bbox = &box
		}
		detections = append(detections, domain.Detection{
			Name:       step.Name,
			Confidence: step.Confidence,
			BBox:       bbox,
			Price:      step.Price,
		})
	}

	s.frame++
	return detections, nil
}

// Frame reports the zero-based index of the next frame to be played.
func (s *Script) Frame() int { return s.frame }

// TotalFrames reports the scripted frame count.
func (s *Script) TotalFrames() int { return s.totalFrames }
