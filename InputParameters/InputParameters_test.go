package InputParameters

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/goreactor/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inputJSON = `{
  "CI": {"shape": "H", "pitch": 16.2, "tEnd": 2.5},
  "NE": {
    "filename": "core.lay",
    "assemblynames": ["FUEL", "REFL", "CR"],
    "rotation": 60,
    "replace": {"CR": [1]},
    "config": {"1.5": {"REFL": [1]}, "0.5": {"FUEL": [2]}},
    "cuts": [10, 20],
    "mycuts": [15],
    "fren": true
  },
  "TH": {
    "coolingzonesfile": "zones.txt",
    "massflowrates": [1.2, 3.4],
    "temperatures": [673, 673],
    "pressures": [1.0e5, 1.0e5],
    "coolingzonenames": ["inner", "outer"]
  }
}`

var coreLayout = `# seven assembly core
hexagon 2
1 1 1 1 2 2 2
`

func TestParse(t *testing.T) {
	{ // Defaults
		ip := &InputParameters{}
		require.NoError(t, ip.Parse([]byte(inputJSON)))
		assert.Equal(t, 16.2, ip.CI.Pitch)
		assert.Equal(t, 1., ip.CI.Power)
		assert.Equal(t, 1, ip.CI.NProf)
		assert.Equal(t, 2.5, ip.CI.TEnd)
		assert.False(t, ip.CI.Trans)
		shape, err := ip.CI.LatticeShape()
		require.NoError(t, err)
		assert.Equal(t, types.Hexagon, shape)

		assert.Equal(t, []string{"FUEL", "REFL", "CR"}, ip.NE.AssemblyLabel)
		assert.Equal(t, []float64{15}, ip.NE.Cuts)
		assert.Equal(t, types.Alternate, ip.NE.Convention())
		assert.False(t, ip.NE.RegionsPlot)
		assert.Equal(t, "CR", ip.NE.Label(3))
		assert.Equal(t, "", ip.NE.Label(4))
		code, err := ip.NE.TypeCode("REFL")
		require.NoError(t, err)
		assert.Equal(t, 2, code)

		require.NotNil(t, ip.TH.Rotation)
		assert.Equal(t, 60., *ip.TH.Rotation)
		assert.False(t, ip.TH.Fren)
	}
	{ // YAML is accepted as well, TH only
		ip := &InputParameters{}
		require.NoError(t, ip.Parse([]byte(`
CI:
  shape: square
  pitch: 21.5
TH:
  coolingzonesfile: zones.txt
  massflowrates: [1]
  temperatures: [600]
  pressures: [100000]
  coolingzonenames: [all]
  rotation: 90
`)))
		assert.Nil(t, ip.NE)
		assert.Equal(t, 90., *ip.TH.Rotation)
		_, err := ip.BuildCoreMap(false)
		assert.True(t, errors.Is(err, types.ErrConfig))
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"CI":                  `{"NE": {"filename": "a", "assemblynames": ["A"], "rotation": 0}}`,
		"CI.shape":            `{"CI": {"pitch": 1}}`,
		"NE.rotation":         `{"CI": {"shape": "H"}, "NE": {"filename": "a", "assemblynames": ["A"]}}`,
		"TH.coolingzonenames": `{"CI": {"shape": "H"}, "TH": {"coolingzonesfile": "z", "massflowrates": [1], "temperatures": [1], "pressures": [1]}}`,
	}
	for missing, input := range cases {
		err := (&InputParameters{}).Parse([]byte(input))
		assert.True(t, errors.Is(err, types.ErrConfig), missing)
		if err != nil {
			assert.Contains(t, err.Error(), missing)
		}
	}
	{
		err := (&InputParameters{}).Parse([]byte(`{"CI": {"shape": "triangle"}}`))
		assert.True(t, errors.Is(err, types.ErrConfig))
		err = (&InputParameters{}).Parse([]byte(`{"CI": {"shape": "H", "pitch": -1}}`))
		assert.True(t, errors.Is(err, types.ErrConfig))
		err = (&InputParameters{}).Parse([]byte(`{"CI": `))
		assert.True(t, errors.Is(err, types.ErrConfig))
		_, err = ReadInputParameters("/nonexistent/input.json", false)
		assert.True(t, errors.Is(err, types.ErrMissingFile))
	}
}

func TestBuildCoreMap(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core.lay"), []byte(coreLayout), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.json"), []byte(inputJSON), 0644))
	ip, err := ReadInputParameters(filepath.Join(dir, "input.json"), false)
	require.NoError(t, err)
	cm, err := ip.BuildCoreMap(false)
	require.NoError(t, err)
	assert.Equal(t, 7, cm.NumAssemblies())
	assert.Equal(t, 60., cm.Rotation())
	assert.Equal(t, 16.2, cm.Pitch())
	{ // Replacement applied in alternate numbering
		code, err := cm.AssemblyType(1, types.Alternate)
		require.NoError(t, err)
		assert.Equal(t, 3, code)
		code, err = cm.AssemblyType(5, types.Alternate)
		require.NoError(t, err)
		assert.Equal(t, 2, code)
	}
	{ // Configurations in time order
		assert.Equal(t, 3, cm.NumSteps())
		assert.Equal(t, 1, cm.StepAt(1))
		code, err := cm.AssemblyType(2, types.Alternate, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, code)
		code, err = cm.AssemblyType(1, types.Alternate, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, code)
		code, err = cm.AssemblyType(1, types.Alternate, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, code)
	}
	{ // Unknown assembly names and shape mismatches
		ip.NE.Replace = map[string][]int{"BLANKET": {2}}
		_, err = ip.BuildCoreMap(false)
		assert.True(t, errors.Is(err, types.ErrConfig))
		ip.NE.Replace = nil
		ip.CI.Shape = "square"
		_, err = ip.BuildCoreMap(false)
		assert.True(t, errors.Is(err, types.ErrConfig))
	}
	{ // Native positions are loaded after the build
		ip.CI.Shape = "hexagon"
		ip.NE.Fren = false
		ip.NE.Config = nil
		ip.NE.Replace = map[string][]int{"CR": {4}}
		cm, err = ip.BuildCoreMap(false)
		require.NoError(t, err)
		code, err := cm.AssemblyType(1, types.Alternate)
		require.NoError(t, err)
		assert.Equal(t, 3, code)
		assert.Equal(t, 1, cm.NumSteps())
	}
}
