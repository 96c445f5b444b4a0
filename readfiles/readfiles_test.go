package readfiles

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/goreactor/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var legacyPower = `# time power powerfiss powerdec
# units: s W W W
0.0  1.0E+06  9.3E+05 7.0E+04
0.5  1.1D+06  1.03E+06 7.0E+04

1.0  1.2E+06  1.13E+06 7.0E+04
`

var macroNML = `&MACRO
 NGRO = 2,
 NPRE = 8 ! delayed neutron precursors
 NGRP = 2
 nprp = 3
 TITLE = 'test case'
/
 NGRO = 99
`

func writeFile(t *testing.T, dir, name, contents string) string {
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	return filename
}

func TestReadLegacy(t *testing.T) {
	dir := t.TempDir()
	filename := writeFile(t, dir, "power.out", legacyPower)
	{ // Whole table, comments and blank lines skipped, Fortran exponents accepted
		T, err := ReadTable(filename, false)
		require.NoError(t, err)
		nr, nc := T.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 4, nc)
		assert.Equal(t, 1.1e6, T.At(1, 1))
	}
	{ // Time column plus one quantity
		TV, err := ReadLegacy(filename, 2, false)
		require.NoError(t, err)
		nr, nc := TV.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 2, nc)
		assert.Equal(t, []float64{0, 0.5, 1}, TV.Col(0))
		assert.Equal(t, []float64{9.3e5, 1.03e6, 1.13e6}, TV.Col(1))
	}
	{ // Failure modes
		_, err := ReadLegacy(filename, 4, false)
		assert.True(t, errors.Is(err, types.ErrDimensionMismatch))
		_, err = ReadLegacy(filename, 0, false)
		assert.True(t, errors.Is(err, types.ErrDimensionMismatch))
		_, err = ReadLegacy(filepath.Join(dir, "missing.out"), 1, false)
		assert.True(t, errors.Is(err, types.ErrMissingFile))
		ragged := writeFile(t, dir, "ragged.out", "0 1 2\n1 2\n")
		_, err = ReadTable(ragged, false)
		assert.True(t, errors.Is(err, types.ErrConfig))
		empty := writeFile(t, dir, "empty.out", "# nothing\n")
		_, err = ReadTable(empty, false)
		assert.True(t, errors.Is(err, types.ErrConfig))
	}
}

func TestReadNamelist(t *testing.T) {
	params, err := readNamelist(strings.NewReader(macroNML))
	require.NoError(t, err)
	assert.Equal(t, "2", params["NGRO"]) // values after the terminator are not read
	assert.Equal(t, "8", params["NPRE"])
	assert.Equal(t, "2", params["NGRP"])
	assert.Equal(t, "3", params["NPRP"])
	assert.Equal(t, "test case", params["TITLE"])

	_, err = readNamelist(strings.NewReader("NGRO 2\n/\n"))
	assert.True(t, errors.Is(err, types.ErrConfig))

	_, err = ReadNamelist(filepath.Join(t.TempDir(), "macro.nml"), false)
	assert.True(t, errors.Is(err, types.ErrMissingFile))
}

func TestParameters(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "params.txt")
	{ // Round trip
		require.NoError(t, WriteParameters(filename, []string{"a", "b"}, []string{"1.0", "2.0"}, false))
		params, err := ReadParameters(filename)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1.0", "b": "2.0"}, params)
		names, values, err := ReadParameterList(filename)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, names)
		assert.Equal(t, []string{"1.0", "2.0"}, values)
	}
	{ // Existing files are protected unless overwrite is set
		err := WriteParameters(filename, []string{"c"}, []string{"3"}, false)
		assert.True(t, errors.Is(err, types.ErrConfig))
		require.NoError(t, WriteParameters(filename, []string{"c"}, []string{"3"}, true))
		params, err := ReadParameters(filename)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"c": "3"}, params)
	}
	{ // Whitespace delimited header
		other := writeFile(t, dir, "other.txt", "% x y z\n1 2 3\n")
		params, err := ReadParameters(other)
		require.NoError(t, err)
		assert.Equal(t, "3", params["z"])
		bad := writeFile(t, dir, "bad.txt", "% x, y\n1\n")
		_, err = ReadParameters(bad)
		assert.True(t, errors.Is(err, types.ErrConfig))
		err = WriteParameters(filepath.Join(dir, "n.txt"), []string{"a"}, []string{"1", "2"}, false)
		assert.True(t, errors.Is(err, types.ErrConfig))
	}
}
