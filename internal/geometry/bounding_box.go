package geometry

import "math"

// 2D extent accumulated over a set of coordinates
type BoundingBox struct {
	Xmin, Ymin float64
	Xmax, Ymax float64
	empty      bool
}

func NewEmptyBoundingBox() *BoundingBox {
	return &BoundingBox{
		Xmin:  math.Inf(1),
		Ymin:  math.Inf(1),
		Xmax:  math.Inf(-1),
		Ymax:  math.Inf(-1),
		empty: true,
	}
}

func (b *BoundingBox) IsEmpty() bool {
	return b.empty
}

// Grows the box to include the given GeoJSON position
func (b *BoundingBox) ExtendPosition(position []float64) {
	if len(position) < 2 {
		return
	}
	b.Xmin = math.Min(b.Xmin, position[0])
	b.Xmax = math.Max(b.Xmax, position[0])
	b.Ymin = math.Min(b.Ymin, position[1])
	b.Ymax = math.Max(b.Ymax, position[1])
	b.empty = false
}

func (b *BoundingBox) ExtendPositions(positions [][]float64) {
	for _, p := range positions {
		b.ExtendPosition(p)
	}
}

// Returns the box in GeoJSON bbox order [west, south, east, north], nil if nothing was added
func (b *BoundingBox) Slice() []float64 {
	if b.empty {
		return nil
	}
	return []float64{b.Xmin, b.Ymin, b.Xmax, b.Ymax}
}
