package domain

import (
	"encoding/json"
	"fmt"
)

// BoundingBox is a pixel-space rectangle in [x1,y1,x2,y2] corner form,
// as produced by the detection collaborator. It marshals to and from a
// four-element JSON array to match the saved-cart contract.
type BoundingBox struct {
	X1, Y1, X2, Y2 int
}

func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.X1, b.Y1, b.X2, b.Y2})
}

func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var coords []int
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("parsing bounding box: %w", err)
	}
	if len(coords) != 4 {
		return fmt.Errorf("bounding box must have 4 coordinates, got %d", len(coords))
	}
	b.X1, b.Y1, b.X2, b.Y2 = coords[0], coords[1], coords[2], coords[3]
	return nil
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() int { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() int { return b.Y2 - b.Y1 }

// Shift returns a copy of the box translated by (dx, dy).
func (b BoundingBox) Shift(dx, dy int) BoundingBox {
	return BoundingBox{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// Detection is one product recognition reported for a single frame.
// Price is the unit price the detection collaborator resolved for the
// class; zero means "unknown, let the catalog decide".
type Detection struct {
	Name       string       `json:"name"`
	Confidence float64      `json:"confidence"`
	BBox       *BoundingBox `json:"bbox,omitempty"`
	Price      float64      `json:"price,omitempty"`
}
