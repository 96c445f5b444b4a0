package geometry2D

import (
	"math"
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point {
	return Point{X: [2]float64{x, y}}
}

func (pt Point) Minus(rhs Point) Point {
	return Point{X: [2]float64{
		pt.X[0] - rhs.X[0],
		pt.X[1] - rhs.X[1],
	}}
}

func (pt Point) Distance(rhs Point) float64 {
	d := pt.Minus(rhs)
	return math.Hypot(d.X[0], d.X[1])
}

// Rotate turns the point counter-clockwise about the origin
func (pt Point) Rotate(degrees float64) Point {
	var (
		s, c = math.Sincos(degrees * math.Pi / 180)
	)
	return Point{X: [2]float64{
		c*pt.X[0] - s*pt.X[1],
		s*pt.X[0] + c*pt.X[1],
	}}
}

func (pt Point) IsFinite() bool {
	for _, x := range pt.X {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(Geometry []Point) (Box *BoundingBox) {
	if len(Geometry) == 0 {
		return nil
	}
	Box = new(BoundingBox)
	Box.XMin, Box.XMax = Geometry[0].X, Geometry[0].X
	for _, point := range Geometry {
		for i := 0; i < 2; i++ {
			Box.XMin[i] = math.Min(Box.XMin[i], point.X[i])
			Box.XMax[i] = math.Max(Box.XMax[i], point.X[i])
		}
	}
	return Box
}

func (bb *BoundingBox) Centroid() Point {
	return Point{X: [2]float64{
		0.5 * (bb.XMax[0] + bb.XMin[0]),
		0.5 * (bb.XMax[1] + bb.XMin[1]),
	}}
}

// Grow extends the box by margin on every side, e.g. half an assembly pitch around centroids
func (bb *BoundingBox) Grow(margin float64) (bbOut *BoundingBox) {
	bbOut = new(BoundingBox)
	for i := 0; i < 2; i++ {
		bbOut.XMin[i] = bb.XMin[i] - margin
		bbOut.XMax[i] = bb.XMax[i] + margin
	}
	return bbOut
}
