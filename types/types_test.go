package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Axis labels, including the short forms used in the namelist
		tokens := []string{"time", "Z", "assembly", "gro", "grp", "PRE"}
		axes := []Axis{AxisTime, AxisAxial, AxisAssembly, AxisGroup, AxisSecondaryGroup, AxisPrecursor}
		for i, token := range tokens {
			a, err := NewAxis(token)
			assert.NoError(t, err)
			assert.Equal(t, axes[i], a)
		}
		_, err := NewAxis("energy")
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
		assert.Equal(t, "secondary", AxisSecondaryGroup.String())
	}
	{ // Lattice symmetry
		s, err := NewLatticeShape("Hex")
		assert.NoError(t, err)
		assert.Equal(t, 60., s.SymmetryAngle())
		s, err = NewLatticeShape("square")
		assert.NoError(t, err)
		assert.Equal(t, 90., s.SymmetryAngle())
		_, err = NewLatticeShape("triangle")
		assert.True(t, errors.Is(err, ErrConfig))
	}
	{ // Specialised errors unwrap to their family
		assert.True(t, errors.Is(ErrQuantityNotFound, ErrNotFound))
		assert.True(t, errors.Is(ErrUnknownAssembly, ErrNotFound))
		assert.True(t, errors.Is(ErrArchiveMissing, ErrMissingFile))
		assert.False(t, errors.Is(ErrArchiveMissing, ErrNotFound))
	}
	{
		c, err := NewConvention("serpent")
		assert.NoError(t, err)
		assert.Equal(t, Native, c)
		c, err = NewConvention("")
		assert.NoError(t, err)
		assert.Equal(t, Alternate, c)
	}
}
