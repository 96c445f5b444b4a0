package types

import (
	"fmt"
	"strings"
)

// Axis identifies one dimension of a distributed quantity as stored in the archive
type Axis uint8

const (
	AxisTime Axis = iota
	AxisAxial
	AxisAssembly
	AxisGroup
	AxisSecondaryGroup
	AxisPrecursor
)

var AxisNameMap = map[string]Axis{
	"time":      AxisTime,
	"t":         AxisTime,
	"axial":     AxisAxial,
	"z":         AxisAxial,
	"assembly":  AxisAssembly,
	"hex":       AxisAssembly,
	"group":     AxisGroup,
	"gro":       AxisGroup,
	"secondary": AxisSecondaryGroup,
	"grp":       AxisSecondaryGroup,
	"precursor": AxisPrecursor,
	"pre":       AxisPrecursor,
}

var axisNames = [...]string{"time", "axial", "assembly", "group", "secondary", "precursor"}

func (a Axis) String() string {
	if int(a) < len(axisNames) {
		return axisNames[a]
	}
	return fmt.Sprintf("Axis(%d)", a)
}

func NewAxis(label string) (a Axis, err error) {
	var ok bool
	if a, ok = AxisNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown axis [%s]: %w", label, ErrDimensionMismatch)
	}
	return
}

// Convention selects one of the two assembly numbering schemes
type Convention uint8

const (
	// Alternate is the 1-based ring spiral used by the upstream geometry description and by
	// the assembly axis of the archive
	Alternate Convention = iota
	// Native is the 1-based row-major scan of the populated lattice grid
	Native
)

func (c Convention) String() string {
	switch c {
	case Alternate:
		return "alternate"
	case Native:
		return "native"
	}
	return fmt.Sprintf("Convention(%d)", c)
}

func NewConvention(label string) (c Convention, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "alt", "alternate", "fren", "":
		c = Alternate
	case "native", "serpent":
		c = Native
	default:
		err = fmt.Errorf("unknown numbering convention [%s]: %w", label, ErrConfig)
	}
	return
}

// LatticeShape is the assembly cross section, which also fixes the lattice symmetry
type LatticeShape uint8

const (
	Hexagon LatticeShape = iota
	Square
)

func (s LatticeShape) String() string {
	switch s {
	case Hexagon:
		return "hexagon"
	case Square:
		return "square"
	}
	return fmt.Sprintf("LatticeShape(%d)", s)
}

func NewLatticeShape(label string) (s LatticeShape, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "h", "hex", "hexagon":
		s = Hexagon
	case "s", "sq", "square":
		s = Square
	default:
		err = fmt.Errorf("unknown lattice shape [%s]: %w", label, ErrConfig)
	}
	return
}

// SymmetryAngle is the natural rotation step of the lattice in degrees
func (s LatticeShape) SymmetryAngle() float64 {
	if s == Square {
		return 90
	}
	return 60
}

type Category uint8

const (
	Integral Category = iota
	Distributed
)

func (c Category) String() string {
	if c == Distributed {
		return "distributed"
	}
	return "integral"
}

// Module is the solver that writes a quantity; each module has its own archive
type Module string

const (
	NE Module = "NE" // neutronics
	TH Module = "TH" // thermal-hydraulics
)
