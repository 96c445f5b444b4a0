package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/goreactor/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	powerTable = `# time power powerfiss powerdec
0.0 1.0E+06 9.0E+05 1.0E+05
1.0 2.0E+06 1.8E+06 2.0E+05
`
	thermoTable = `# time tfuelmax tcladmax tcoolout mflow
0.0 900. 650. 580. 1200.
1.0 910. 655. 585. 1200.
`
	input = `{
  "CI": {"shape": "hexagon", "pitch": 2.0},
  "NE": {"filename": "core.lay", "assemblynames": ["FUEL", "REFL"], "assemblylabel": ["F", "R"],
         "rotation": 0, "fren": true}
}`
	layout = "hexagon 2\n1 1 1 1 2 2 2\n"
)

func writeFiles(t *testing.T, files map[string]string) (dir string) {
	dir = t.TempDir()
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
	}
	return
}

func TestConvertExtract(t *testing.T) {
	var (
		dir = writeFiles(t, map[string]string{"power.out": powerTable, "thermohydraulics.out": thermoTable})
		out bytes.Buffer
	)
	{ // Legacy tables go into the module archives
		require.NoError(t, RunConvert(dir, false, false, &out))
		assert.Contains(t, out.String(), "output_NE.h5: integralParameters/power 2x4")
		assert.Contains(t, out.String(), "output_TH.h5: integralParameters/thermohydraulics 2x5")
		assert.FileExists(t, filepath.Join(dir, "output_NE.h5"))
		err := RunConvert(dir, false, false, &out)
		assert.True(t, errors.Is(err, types.ErrConfig))
		require.NoError(t, RunConvert(dir, true, false, &out))
	}
	{ // The archive and legacy paths agree
		var fromArchive, fromLegacy bytes.Buffer
		er := &ExtractRun{Root: dir, Quantities: []string{"powerfiss", "tcoolout"}, Parallel: 2}
		require.NoError(t, RunExtract(er, &fromArchive))
		er.Legacy = true
		require.NoError(t, RunExtract(er, &fromLegacy))
		assert.Equal(t, fromArchive.String(), fromLegacy.String())
		assert.True(t, strings.HasPrefix(fromArchive.String(), "powerfiss [W] NE axes(time) shape[2 2]"))
		assert.Contains(t, fromArchive.String(), "tcoolout [K] TH")
		assert.Contains(t, fromArchive.String(), "5.850000e+02")
	}
	{ // Time selection from the command line syntax
		var buf bytes.Buffer
		er := &ExtractRun{Root: dir, Quantities: []string{"power"}, Filters: map[string]string{"time": "end"}}
		require.NoError(t, RunExtract(er, &buf))
		assert.Contains(t, buf.String(), "shape[1 2]")
		er.Filters = map[string]string{"time": "1:x"}
		assert.True(t, errors.Is(RunExtract(er, &buf), types.ErrConfig))
		er.Filters = map[string]string{"energy": "1"}
		assert.True(t, errors.Is(RunExtract(er, &buf), types.ErrDimensionMismatch))
	}
	{
		err := RunExtract(&ExtractRun{Root: dir, Quantities: []string{"doesnotexist"}}, &out)
		assert.True(t, errors.Is(err, types.ErrQuantityNotFound))
		err = RunExtract(&ExtractRun{Root: dir, Quantities: []string{"powertot"}, Native: true}, &out)
		assert.True(t, errors.Is(err, types.ErrConfig))
	}
}

func TestQuantities(t *testing.T) {
	var out bytes.Buffer
	{
		dir := writeFiles(t, map[string]string{"macro.nml": "&MACRO\n NGRO = 2\n NPRE = 2\n NGRP = 2\n NPRP = 1\n/\n"})
		require.NoError(t, RunQuantities(dir, "integral", false, &out))
		assert.Contains(t, out.String(), "betaeff(1)")
		assert.NotContains(t, out.String(), "powertot")
		assert.NotContains(t, out.String(), "not expanded")
	}
	{
		out.Reset()
		require.NoError(t, RunQuantities(t.TempDir(), "distributed", false, &out))
		assert.Contains(t, out.String(), "not expanded")
		assert.Contains(t, out.String(), "powertot")
		assert.NotContains(t, out.String(), "reactivity")
		assert.True(t, errors.Is(RunQuantities(t.TempDir(), "scalar", false, &out), types.ErrConfig))
	}
}

func TestCore(t *testing.T) {
	var (
		dir = writeFiles(t, map[string]string{"input.json": input, "core.lay": layout})
		out bytes.Buffer
	)
	cr := &CoreRun{InputFile: filepath.Join(dir, "input.json"), Translate: 1, Centroid: 5, From: types.Alternate}
	require.NoError(t, RunCore(cr, &out))
	assert.Contains(t, out.String(), "hexagon lattice, 2 rings, 7 assemblies")
	assert.Contains(t, out.String(), "alternate 1 = native 4")
	assert.Contains(t, out.String(), "centre (0.0000, 0.0000)")
	assert.Contains(t, out.String(), "alternate 5 at (-2.000000, 0.000000), type 2 R")
	{
		cr.Translate = 9
		assert.True(t, errors.Is(RunCore(cr, &out), types.ErrUnknownAssembly))
		cr.Translate, cr.Step = 0, 1
		assert.True(t, errors.Is(RunCore(cr, &out), types.ErrDimensionMismatch))
		assert.True(t, errors.Is(RunCore(&CoreRun{}, &out), types.ErrConfig))
	}
	{ // Flags reach the run through the root command
		var cli bytes.Buffer
		rootCmd.SetOut(&cli)
		defer rootCmd.SetOut(nil)
		rootCmd.SetArgs([]string{"core", "-I", filepath.Join(dir, "input.json"), "--translate", "4",
			"--from", "native"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, cli.String(), "native 4 = alternate 1")
		rootCmd.SetArgs([]string{"core", "-I", filepath.Join(dir, "input.json"), "--from", "diagonal"})
		assert.True(t, errors.Is(rootCmd.Execute(), types.ErrConfig))
	}
	{ // Native extraction through the core map
		er := &ExtractRun{
			Root:       dir,
			Quantities: []string{"power"},
			Native:     true,
			InputFile:  filepath.Join(dir, "input.json"),
		}
		assert.True(t, errors.Is(RunExtract(er, &out), types.ErrArchiveMissing))
	}
}

func TestParams(t *testing.T) {
	var (
		dir      = t.TempDir()
		filename = filepath.Join(dir, "params.txt")
		out      bytes.Buffer
	)
	rootCmd.SetArgs([]string{"params", "write", filename, "--names", "a,b", "--values", "1.0,2.0"})
	require.NoError(t, rootCmd.Execute())
	require.NoError(t, RunParamsRead(filename, &out))
	assert.Equal(t, "a = 1.0\nb = 2.0\n", out.String())
	rootCmd.SetArgs([]string{"params", "write", filename, "--names", "a", "--values", "3"})
	assert.True(t, errors.Is(rootCmd.Execute(), types.ErrConfig))
}
