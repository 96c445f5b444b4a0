package geometry2D

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/goreactor/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblyGeometry(t *testing.T) {
	{ // Hexagonal assembly with pitch 1.386 cm
		ag, err := NewHexagon(1.386)
		require.NoError(t, err)
		edge := 2 * 0.693 / math.Sqrt(3)
		assert.InDelta(t, 0.693, ag.Apothem, 1e-12)
		assert.InDelta(t, edge, ag.Edge, 1e-6)
		assert.InDelta(t, 0.8, ag.Edge, 1e-3)
		assert.InDelta(t, 3*math.Sqrt(3)/2*edge*edge, ag.Area, 1e-6)
		assert.InDelta(t, 1.664, ag.Area, 1e-3)
		assert.InDelta(t, 6*edge, ag.Perimeter, 1e-6)
		assert.Equal(t, 6, ag.NumEdges)
		_, ok := ag.Volume()
		assert.False(t, ok)
		v, err := ag.ComputeVolume(10)
		require.NoError(t, err)
		assert.InDelta(t, 10*ag.Area, v, 1e-12)
		v2, ok := ag.Volume()
		assert.True(t, ok)
		assert.Equal(t, v, v2)
	}
	{ // Square assembly
		ag, err := NewAssemblyGeometry(types.Square, 2.)
		require.NoError(t, err)
		assert.Equal(t, 2., ag.Edge)
		assert.Equal(t, 4., ag.Area)
		assert.Equal(t, 8., ag.Perimeter)
		assert.Equal(t, 4, ag.NumEdges)
	}
	{ // Preconditions
		_, err := NewHexagon(0)
		assert.True(t, errors.Is(err, types.ErrGeometry))
		_, err = NewSquare(-1)
		assert.True(t, errors.Is(err, types.ErrGeometry))
		_, err = NewSquare(math.NaN())
		assert.True(t, errors.Is(err, types.ErrGeometry))
		ag, _ := NewSquare(1)
		_, err = ag.ComputeVolume(0)
		assert.True(t, errors.Is(err, types.ErrGeometry))
	}
}

func TestPoint(t *testing.T) {
	p := NewPoint(1, 0).Rotate(90)
	assert.InDelta(t, 0, p.X[0], 1e-12)
	assert.InDelta(t, 1, p.X[1], 1e-12)
	assert.True(t, p.IsFinite())
	assert.InDelta(t, math.Sqrt(2), p.Distance(NewPoint(1, 0)), 1e-12)

	bb := NewBoundingBox([]Point{NewPoint(-1, 2), NewPoint(3, -4), NewPoint(0, 0)})
	assert.Equal(t, [2]float64{-1, -4}, bb.XMin)
	assert.Equal(t, [2]float64{3, 2}, bb.XMax)
	assert.Equal(t, NewPoint(1, -1), bb.Centroid())
	g := bb.Grow(0.5)
	assert.Equal(t, [2]float64{-1.5, -4.5}, g.XMin)
	assert.Nil(t, NewBoundingBox(nil))
}
