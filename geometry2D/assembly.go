package geometry2D

import (
	"fmt"
	"math"

	"github.com/notargets/goreactor/types"
)

/*
AssemblyGeometry describes the cross section of one fuel assembly. Pitch is the flat-to-flat
distance; everything except the volume is fixed at construction.
*/
type AssemblyGeometry struct {
	Shape     types.LatticeShape
	Pitch     float64
	Apothem   float64 // meaningful for hexagons, half the pitch
	Edge      float64
	Area      float64
	Perimeter float64
	NumEdges  int
	volume    float64
	hasVolume bool
}

func checkLength(name string, val float64) (err error) {
	if !(val > 0) || math.IsInf(val, 0) {
		err = fmt.Errorf("%s must be positive and finite, have %v: %w", name, val, types.ErrGeometry)
	}
	return
}

func NewHexagon(pitch float64) (ag *AssemblyGeometry, err error) {
	if err = checkLength("pitch", pitch); err != nil {
		return
	}
	ag = &AssemblyGeometry{
		Shape:    types.Hexagon,
		Pitch:    pitch,
		Apothem:  pitch / 2,
		NumEdges: 6,
	}
	ag.Edge = 2 * ag.Apothem / math.Sqrt(3)
	ag.Area = 1.5 * math.Sqrt(3) * ag.Edge * ag.Edge
	ag.Perimeter = 6 * ag.Edge
	return
}

func NewSquare(pitch float64) (ag *AssemblyGeometry, err error) {
	if err = checkLength("pitch", pitch); err != nil {
		return
	}
	ag = &AssemblyGeometry{
		Shape:    types.Square,
		Pitch:    pitch,
		Apothem:  pitch / 2,
		Edge:     pitch,
		NumEdges: 4,
	}
	ag.Area = ag.Edge * ag.Edge
	ag.Perimeter = 4 * ag.Edge
	return
}

func NewAssemblyGeometry(shape types.LatticeShape, pitch float64) (*AssemblyGeometry, error) {
	if shape == types.Square {
		return NewSquare(pitch)
	}
	return NewHexagon(pitch)
}

// ComputeVolume stores and returns the volume of a prism of the given height
func (ag *AssemblyGeometry) ComputeVolume(height float64) (volume float64, err error) {
	if err = checkLength("height", height); err != nil {
		return
	}
	ag.volume, ag.hasVolume = ag.Area*height, true
	return ag.volume, nil
}

func (ag *AssemblyGeometry) Volume() (volume float64, ok bool) {
	return ag.volume, ag.hasVolume
}
