package coremap

import (
	"math"

	"github.com/notargets/goreactor/geometry2D"
	"github.com/notargets/goreactor/types"
)

// cell is a lattice position: axial (q, r) coordinates on a hexagonal lattice, (x, y) on a square one
type cell struct {
	i, j int
}

// Hexagonal axial directions, counter-clockwise starting east
var hexDirections = [6]cell{{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1}}

// NumPositions is the size of a lattice envelope of the given number of rings, ring 1 being the
// central assembly alone
func NumPositions(shape types.LatticeShape, rings int) int {
	if rings < 1 {
		return 0
	}
	if shape == types.Square {
		return (2*rings - 1) * (2*rings - 1)
	}
	return 3*rings*(rings-1) + 1
}

// spiral lists the envelope cells in alternate numbering order: the centre, then each ring
// counter-clockwise from its east corner
func spiral(shape types.LatticeShape, rings int) (cells []cell) {
	cells = make([]cell, 0, NumPositions(shape, rings))
	cells = append(cells, cell{0, 0})
	for k := 1; k < rings; k++ {
		if shape == types.Square {
			cells = append(cells, squareRing(k)...)
		} else {
			cells = append(cells, hexRing(k)...)
		}
	}
	return
}

func hexRing(k int) (cells []cell) {
	var (
		c = cell{k * hexDirections[0].i, k * hexDirections[0].j}
	)
	for side := 0; side < 6; side++ {
		dir := hexDirections[(side+2)%6]
		for step := 0; step < k; step++ {
			cells = append(cells, c)
			c.i += dir.i
			c.j += dir.j
		}
	}
	return
}

func squareRing(k int) (cells []cell) {
	var (
		c    = cell{k, 0}
		legs = []struct {
			dir   cell
			steps int
		}{
			{cell{0, 1}, k},
			{cell{-1, 0}, 2 * k},
			{cell{0, -1}, 2 * k},
			{cell{1, 0}, 2 * k},
			{cell{0, 1}, k - 1},
		}
	)
	cells = append(cells, c)
	for _, leg := range legs {
		for step := 0; step < leg.steps; step++ {
			c.i += leg.dir.i
			c.j += leg.dir.j
			cells = append(cells, c)
		}
	}
	return
}

// gridPosition places a cell in the (2n-1)x(2n-1) type grid, the top row holding the largest y
func gridPosition(c cell, rings int) (row, col int) {
	return (rings - 1) - c.j, c.i + (rings - 1)
}

// position is the unrotated centroid of a cell, neighbours are one pitch apart
func position(shape types.LatticeShape, c cell, pitch float64) geometry2D.Point {
	if shape == types.Square {
		return geometry2D.NewPoint(pitch*float64(c.i), pitch*float64(c.j))
	}
	return geometry2D.NewPoint(
		pitch*(float64(c.i)+0.5*float64(c.j)),
		pitch*0.5*math.Sqrt(3)*float64(c.j),
	)
}
