/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/notargets/goreactor/InputParameters"
	"github.com/notargets/goreactor/coremap"
	"github.com/notargets/goreactor/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type CoreRun struct {
	InputFile string
	Translate int // 0 when no translation is asked for
	Centroid  int
	From      types.Convention
	Step      int
	Verbose   bool
}

// CoreCmd represents the core command
var CoreCmd = &cobra.Command{
	Use:   "core",
	Short: "Build the core map and print its grid, index translations and centroids",
	Long: `
Builds the core map from the NE section of the input file (layout, replacements,
rotation and time dependent configurations) and prints the assembly type grid of a
configuration step.

goreactor core -I input.json --translate 7 --from alt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			cr   = &CoreRun{Verbose: viper.GetBool("verbose")}
			from string
		)
		if cr.InputFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if cr.Translate, err = cmd.Flags().GetInt("translate"); err != nil {
			return
		}
		if cr.Centroid, err = cmd.Flags().GetInt("centroid"); err != nil {
			return
		}
		if cr.Step, err = cmd.Flags().GetInt("step"); err != nil {
			return
		}
		if from, err = cmd.Flags().GetString("from"); err != nil {
			return
		}
		if cr.From, err = types.NewConvention(from); err != nil {
			return
		}
		return RunCore(cr, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(CoreCmd)
	CoreCmd.Flags().StringP("inputConditionsFile", "I", "", "JSON input file describing the core")
	CoreCmd.Flags().Int("translate", 0, "assembly index to translate to the other numbering")
	CoreCmd.Flags().Int("centroid", 0, "assembly index to locate")
	CoreCmd.Flags().String("from", "alt", "numbering of --translate and --centroid: alt or native")
	CoreCmd.Flags().IntP("step", "s", 0, "configuration step of the printed grid")
}

func RunCore(cr *CoreRun, w io.Writer) (err error) {
	var (
		ip   *InputParameters.InputParameters
		cm   *coremap.CoreMap
		grid [][]int
	)
	if len(cr.InputFile) == 0 {
		return fmt.Errorf("must supply an input file (-I, --inputConditionsFile): %w", types.ErrConfig)
	}
	if ip, err = InputParameters.ReadInputParameters(cr.InputFile, cr.Verbose); err != nil {
		return
	}
	if cr.Verbose {
		ip.Print()
	}
	if cm, err = ip.BuildCoreMap(cr.Verbose); err != nil {
		return
	}
	if grid, err = cm.Grid(cr.Step); err != nil {
		return
	}
	bb := cm.BoundingBox()
	fmt.Fprintf(w, "%s lattice, %d rings, %d assemblies, pitch %g, rotation %g, %d configuration(s)\n",
		cm.Shape(), cm.Rings(), cm.NumAssemblies(), cm.Pitch(), cm.Rotation(), cm.NumSteps())
	centre := bb.Centroid()
	fmt.Fprintf(w, "extent [%.4f, %.4f] x [%.4f, %.4f], centre (%.4f, %.4f)\n",
		bb.XMin[0], bb.XMax[0], bb.XMin[1], bb.XMax[1], centre.X[0], centre.X[1])
	for i, row := range grid {
		// hexagonal rows are staggered by half a cell, upper rows to the right
		if cm.Shape() == types.Hexagon {
			fmt.Fprint(w, strings.Repeat("  ", len(grid)-1-i))
		}
		for _, code := range row {
			if code == 0 {
				fmt.Fprint(w, "   .")
				continue
			}
			fmt.Fprintf(w, "%4d", code)
		}
		fmt.Fprintln(w)
	}
	to := types.Native
	if cr.From == types.Native {
		to = types.Alternate
	}
	if cr.Translate != 0 {
		var idx int
		if idx, err = cm.Translate(cr.Translate, cr.From, to); err != nil {
			return
		}
		fmt.Fprintf(w, "%s %d = %s %d\n", cr.From, cr.Translate, to, idx)
	}
	if cr.Centroid != 0 {
		pt, err := cm.CentroidOf(cr.Centroid, cr.From)
		if err != nil {
			return err
		}
		code, err := cm.AssemblyType(cr.Centroid, cr.From, cr.Step)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %d at (%.6f, %.6f), type %d %s\n", cr.From, cr.Centroid, pt.X[0], pt.X[1],
			code, ip.NE.Label(code))
	}
	return
}
