package coremap

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/goreactor/geometry2D"
	"github.com/notargets/goreactor/types"
	"github.com/notargets/goreactor/utils"
	"gonum.org/v1/gonum/mat"
)

type configuration struct {
	Time     float64
	Types    []int  // indexed by native index - 1
	Replaced []bool // set by this or an earlier configuration change, not inherited from the base
}

/*
CoreMap holds the lattice topology of a core: the type grid, the translation between native
(row scan) and alternate (ring spiral) assembly numbering, and the centroid of every populated
assembly.

The index maps and centroids never change after Build. LoadAssembly and AddConfiguration modify
the type configurations and must not run concurrently with readers; every other method is safe
for concurrent use.
*/
type CoreMap struct {
	shape       types.LatticeShape
	rings       int
	pitch       float64
	rotation    float64
	Geometry    *geometry2D.AssemblyGeometry
	cells       []cell      // native index - 1 -> lattice cell
	nativeToAlt []int       // native index - 1 -> alternate index
	altToNative map[int]int // alternate index -> native index
	centroids   []geometry2D.Point
	configs     []configuration
}

// Build lays out the populated positions of a layout, numbers them in both conventions and
// places their centroids, rotated counter-clockwise by rotation degrees
func Build(lay Layout, pitch, rotation float64) (cm *CoreMap, err error) {
	var (
		nEnv  = NumPositions(lay.Shape, lay.Rings)
		angle = lay.Shape.SymmetryAngle()
	)
	if lay.Rings < 1 {
		err = fmt.Errorf("lattice needs at least one ring, have %d: %w", lay.Rings, types.ErrGeometry)
		return
	}
	if rem := math.Remainder(rotation, angle); math.IsNaN(rem) || math.Abs(rem) > 1.e-9 {
		err = fmt.Errorf("rotation %v is not a multiple of %v degrees for a %s lattice: %w",
			rotation, angle, lay.Shape, types.ErrGeometry)
		return
	}
	if len(lay.Types) > nEnv {
		err = fmt.Errorf("layout lists %d positions, a %s lattice of %d rings holds %d: %w",
			len(lay.Types), lay.Shape, lay.Rings, nEnv, types.ErrGeometry)
		return
	}
	cm = &CoreMap{
		shape:       lay.Shape,
		rings:       lay.Rings,
		pitch:       pitch,
		rotation:    rotation,
		altToNative: make(map[int]int),
	}
	if cm.Geometry, err = geometry2D.NewAssemblyGeometry(lay.Shape, pitch); err != nil {
		return nil, err
	}
	altTypes := make([]int, nEnv)
	for k, code := range lay.Types {
		if code < 0 {
			return nil, fmt.Errorf("negative type code %d at position %d: %w", code, k+1, types.ErrGeometry)
		}
		altTypes[k] = code
	}
	for _, code := range sortedKeys(lay.Replace) {
		if code < 1 {
			return nil, fmt.Errorf("replacement type must be positive, have %d: %w", code, types.ErrGeometry)
		}
		for _, alt := range lay.Replace[code] {
			if alt < 1 || alt > nEnv {
				return nil, fmt.Errorf("replacement position %d outside the %d position envelope: %w",
					alt, nEnv, types.ErrGeometry)
			}
			altTypes[alt-1] = code
		}
	}
	// Native numbering is the row-major scan of the populated grid
	var (
		spiralCells = spiral(lay.Shape, lay.Rings)
		side        = 2*lay.Rings - 1
		altAt       = make([]int, side*side)
		baseTypes   []int
	)
	for k, c := range spiralCells {
		row, col := gridPosition(c, lay.Rings)
		altAt[row*side+col] = k + 1
	}
	for _, alt := range altAt {
		if alt == 0 || altTypes[alt-1] == 0 {
			continue
		}
		cm.cells = append(cm.cells, spiralCells[alt-1])
		cm.nativeToAlt = append(cm.nativeToAlt, alt)
		cm.altToNative[alt] = len(cm.nativeToAlt)
		baseTypes = append(baseTypes, altTypes[alt-1])
	}
	cm.configs = []configuration{{Time: 0, Types: baseTypes, Replaced: make([]bool, len(baseTypes))}}
	if cm.centroids, err = cm.placeCentroids(); err != nil {
		return nil, err
	}
	if err = cm.validate(); err != nil {
		return nil, err
	}
	return
}

func sortedKeys(m map[int][]int) (keys []int) {
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return
}

func (cm *CoreMap) placeCentroids() (centroids []geometry2D.Point, err error) {
	var (
		n = len(cm.cells)
	)
	if n == 0 {
		err = fmt.Errorf("layout has no populated position: %w", types.ErrGeometry)
		return
	}
	s, c := math.Sincos(cm.rotation * math.Pi / 180)
	R := mat.NewDense(2, 2, []float64{c, -s, s, c})
	X := utils.NewMatrix(2, n)
	for k, cc := range cm.cells {
		pt := position(cm.shape, cc, cm.pitch)
		X.Set(0, k, pt.X[0])
		X.Set(1, k, pt.X[1])
	}
	var XR mat.Dense
	XR.Mul(R, X.M)
	centroids = make([]geometry2D.Point, n)
	for k := range centroids {
		centroids[k] = geometry2D.NewPoint(snap(XR.At(0, k)), snap(XR.At(1, k)))
	}
	return
}

func snap(x float64) float64 {
	if math.Abs(x) < utils.NODETOL {
		return 0
	}
	return x
}

// validate checks that both index maps are mutual inverses and every assembly has its own
// finite centroid, at the rotated lattice position of its cell
func (cm *CoreMap) validate() (err error) {
	var (
		seen = make(map[[2]int64]int, len(cm.centroids))
		tol  = 1.e-9 * cm.pitch
	)
	if len(cm.altToNative) != len(cm.nativeToAlt) {
		return fmt.Errorf("index maps differ in size, %d != %d: %w",
			len(cm.altToNative), len(cm.nativeToAlt), types.ErrGeometry)
	}
	for k, alt := range cm.nativeToAlt {
		if alt < 1 || cm.altToNative[alt] != k+1 {
			return fmt.Errorf("native index %d does not round trip through alternate %d: %w",
				k+1, alt, types.ErrGeometry)
		}
		pt := cm.centroids[k]
		if !pt.IsFinite() {
			return fmt.Errorf("centroid of native index %d is not finite: %w", k+1, types.ErrGeometry)
		}
		want := position(cm.shape, cm.cells[k], cm.pitch).Rotate(cm.rotation)
		if d := pt.Distance(want); d > tol {
			return fmt.Errorf("centroid of native index %d is %g away from its lattice position: %w",
				k+1, d, types.ErrGeometry)
		}
		key := [2]int64{int64(math.Round(pt.X[0] / cm.pitch * 1.e6)), int64(math.Round(pt.X[1] / cm.pitch * 1.e6))}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("native indices %d and %d share a centroid: %w", other, k+1, types.ErrGeometry)
		}
		seen[key] = k + 1
	}
	return
}

// native resolves an index in either convention to a native index
func (cm *CoreMap) native(index int, conv types.Convention) (nat int, err error) {
	switch conv {
	case types.Native:
		if index >= 1 && index <= len(cm.nativeToAlt) {
			return index, nil
		}
	case types.Alternate:
		var ok bool
		if nat, ok = cm.altToNative[index]; ok {
			return
		}
	}
	err = fmt.Errorf("%s index %d: %w", conv, index, types.ErrUnknownAssembly)
	return
}

func (cm *CoreMap) Translate(index int, from, to types.Convention) (out int, err error) {
	var nat int
	if nat, err = cm.native(index, from); err != nil {
		return
	}
	if to == types.Alternate {
		return cm.nativeToAlt[nat-1], nil
	}
	return nat, nil
}

func (cm *CoreMap) CentroidOf(index int, conv types.Convention) (pt geometry2D.Point, err error) {
	var nat int
	if nat, err = cm.native(index, conv); err != nil {
		return
	}
	return cm.centroids[nat-1], nil
}

/*
LoadAssembly puts a new assembly type at the listed positions of the base configuration. Later
configurations follow the change wherever they still carry the base type of a position, and keep
their own replacements. All positions are checked before anything changes, so a failed call
leaves the map untouched.
*/
func (cm *CoreMap) LoadAssembly(newType int, positions []int, conv types.Convention) (err error) {
	var (
		natives utils.Index
	)
	if newType < 1 {
		return fmt.Errorf("assembly type must be positive, have %d: %w", newType, types.ErrGeometry)
	}
	if natives, err = utils.Index(positions).ApplyErr(func(p int) (int, error) {
		return cm.native(p, conv)
	}); err != nil {
		return
	}
	for _, nat := range natives {
		for k := range cm.configs {
			if k == 0 || !cm.configs[k].Replaced[nat-1] {
				cm.configs[k].Types[nat-1] = newType
			}
		}
	}
	return
}

/*
AddConfiguration appends a configuration starting at time, copied from the latest one with the
replacements (type code -> positions) applied. It returns the new step number.
*/
func (cm *CoreMap) AddConfiguration(time float64, replace map[int][]int, conv types.Convention) (step int, err error) {
	var (
		last = cm.configs[len(cm.configs)-1]
	)
	if !(time > last.Time) {
		err = fmt.Errorf("configuration time %v must follow %v: %w", time, last.Time, types.ErrConfig)
		return
	}
	next := configuration{
		Time:     time,
		Types:    append([]int{}, last.Types...),
		Replaced: append([]bool{}, last.Replaced...),
	}
	for _, code := range sortedKeys(replace) {
		if code < 1 {
			return 0, fmt.Errorf("assembly type must be positive, have %d: %w", code, types.ErrGeometry)
		}
		for _, p := range replace[code] {
			var nat int
			if nat, err = cm.native(p, conv); err != nil {
				return
			}
			next.Types[nat-1] = code
			next.Replaced[nat-1] = true
		}
	}
	cm.configs = append(cm.configs, next)
	return len(cm.configs) - 1, nil
}

func (cm *CoreMap) checkStep(step int) (err error) {
	if step < 0 || step >= len(cm.configs) {
		err = fmt.Errorf("configuration step %d, have %d: %w", step, len(cm.configs), types.ErrDimensionMismatch)
	}
	return
}

// AssemblyType returns the type at a position for a configuration step, the first one by default
func (cm *CoreMap) AssemblyType(index int, conv types.Convention, step ...int) (code int, err error) {
	var (
		k, nat int
	)
	if len(step) != 0 {
		k = step[0]
	}
	if err = cm.checkStep(k); err != nil {
		return
	}
	if nat, err = cm.native(index, conv); err != nil {
		return
	}
	return cm.configs[k].Types[nat-1], nil
}

// StepAt returns the configuration in force at time t, the base configuration before any change
func (cm *CoreMap) StepAt(t float64) (step int) {
	for k, cfg := range cm.configs {
		if cfg.Time <= t {
			step = k
		}
	}
	return
}

func (cm *CoreMap) NumSteps() int { return len(cm.configs) }

// Grid is the type grid of a configuration step, 0 marks an empty position
func (cm *CoreMap) Grid(step int) (grid [][]int, err error) {
	if err = cm.checkStep(step); err != nil {
		return
	}
	side := 2*cm.rings - 1
	grid = make([][]int, side)
	for i := range grid {
		grid[i] = make([]int, side)
	}
	for k, c := range cm.cells {
		row, col := gridPosition(c, cm.rings)
		grid[row][col] = cm.configs[step].Types[k]
	}
	return
}

func (cm *CoreMap) NumAssemblies() int { return len(cm.nativeToAlt) }

// Indices lists every populated position in a convention, ascending
func (cm *CoreMap) Indices(conv types.Convention) (I utils.Index) {
	if conv == types.Native {
		return utils.NewRange(1, len(cm.nativeToAlt))
	}
	return utils.Index(cm.nativeToAlt).Sorted()
}

// BoundingBox covers every assembly of the core, not only the centroids
func (cm *CoreMap) BoundingBox() *geometry2D.BoundingBox {
	circumradius := cm.Geometry.Edge
	if cm.shape == types.Square {
		circumradius = cm.Geometry.Edge / math.Sqrt2
	}
	return geometry2D.NewBoundingBox(cm.centroids).Grow(circumradius)
}

func (cm *CoreMap) Pitch() float64            { return cm.pitch }
func (cm *CoreMap) Shape() types.LatticeShape { return cm.shape }
func (cm *CoreMap) Rotation() float64         { return cm.rotation }
func (cm *CoreMap) Rings() int                { return cm.rings }
