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
	"log"
	"strings"

	"github.com/notargets/goreactor/InputParameters"
	"github.com/notargets/goreactor/catalog"
	"github.com/notargets/goreactor/extract"
	"github.com/notargets/goreactor/types"
	"github.com/notargets/goreactor/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ExtractRun struct {
	Root       string
	Quantities []string
	Filters    map[string]string // axis name -> selection text
	Legacy     bool
	Native     bool
	InputFile  string // JSON input with the NE section, needed for native numbering
	Parallel   int
	Verbose    bool
}

var axisFlags = []string{"time", "axial", "assembly", "group", "secondary", "precursor"}

// ExtractCmd represents the extract command
var ExtractCmd = &cobra.Command{
	Use:   "extract QUANTITY...",
	Short: "Extract integral or distributed quantities",
	Long: `
Extracts one or more quantities from the output archives (or the legacy text tables with
--legacy). Selections are an index "2", a list "1,3,5", a range "lo:hi" (hi excluded), "end"
or ":" for everything. Assemblies are numbered from 1 in the alternate convention unless
--native is given together with an input file describing the core.

goreactor extract powertot --time 0 --assembly 1,2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		er := &ExtractRun{
			Root:       viper.GetString("root"),
			Quantities: args,
			Filters:    make(map[string]string),
			Parallel:   viper.GetInt("parallel"),
			Verbose:    viper.GetBool("verbose"),
		}
		for _, name := range axisFlags {
			if cmd.Flags().Changed(name) {
				if er.Filters[name], err = cmd.Flags().GetString(name); err != nil {
					return
				}
			}
		}
		if er.Legacy, err = cmd.Flags().GetBool("legacy"); err != nil {
			return
		}
		if er.Native, err = cmd.Flags().GetBool("native"); err != nil {
			return
		}
		if er.InputFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		return RunExtract(er, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(ExtractCmd)
	ExtractCmd.Flags().StringP("time", "t", "", "time steps, the first one by default")
	ExtractCmd.Flags().StringP("axial", "z", "", "axial levels, all by default")
	ExtractCmd.Flags().StringP("assembly", "a", "", "assemblies (1-based), all by default")
	ExtractCmd.Flags().StringP("group", "g", "", "energy groups, all by default")
	ExtractCmd.Flags().String("secondary", "", "secondary energy groups, all by default")
	ExtractCmd.Flags().String("precursor", "", "precursor families, all by default")
	ExtractCmd.Flags().BoolP("legacy", "l", false, "read the legacy <group>.out tables")
	ExtractCmd.Flags().Bool("native", false, "assembly selection uses the native (row scan) numbering")
	ExtractCmd.Flags().StringP("inputConditionsFile", "I", "", "JSON input file describing the core")
}

func (er *ExtractRun) requests() (reqs []extract.Request, err error) {
	var (
		filters = make(extract.Filters)
		conv    = types.Alternate
	)
	for name, text := range er.Filters {
		var (
			axis types.Axis
			sel  utils.Selection
		)
		if axis, err = types.NewAxis(name); err != nil {
			return
		}
		if sel, err = utils.ParseSelection(text); err != nil {
			return nil, fmt.Errorf("--%s %s: %w", name, text, err)
		}
		filters[axis] = sel
	}
	if er.Native {
		conv = types.Native
	}
	for _, q := range er.Quantities {
		reqs = append(reqs, extract.Request{
			Quantity:   q,
			Filters:    filters,
			Legacy:     er.Legacy,
			Convention: conv,
		})
	}
	return
}

func RunExtract(er *ExtractRun, w io.Writer) (err error) {
	var (
		cat  *catalog.Catalog
		reqs []extract.Request
	)
	if reqs, err = er.requests(); err != nil {
		return
	}
	if cat, err = catalog.Load(er.Root, er.Verbose); err != nil {
		return
	}
	ex := extract.NewExtractor(er.Root, cat)
	ex.Verbose = er.Verbose
	if er.Native {
		if len(er.InputFile) == 0 {
			return fmt.Errorf("--native needs an input file (-I, --inputConditionsFile): %w", types.ErrConfig)
		}
		var ip *InputParameters.InputParameters
		if ip, err = InputParameters.ReadInputParameters(er.InputFile, er.Verbose); err != nil {
			return
		}
		if ex.CoreMap, err = ip.BuildCoreMap(er.Verbose); err != nil {
			return
		}
	}
	profiles, errs := ex.GetMany(reqs, er.Parallel)
	if er.Verbose {
		fmt.Printf("Extracted %d profiles, %s\n", len(profiles), utils.GetMemUsage())
	}
	for i, p := range profiles {
		if errs[i] != nil {
			return errs[i]
		}
		if n := utils.CountNaN(p.Values); n != 0 {
			log.Printf("%s holds %d NaN values", p.Entry.Name, n)
		}
		printProfile(w, p)
	}
	return
}

func printProfile(w io.Writer, p *extract.Profile) {
	var (
		axes = make([]string, len(p.Axes))
	)
	for i, a := range p.Axes {
		axes[i] = a.String()
	}
	fmt.Fprintf(w, "%s [%s] %s axes(%s) shape%v\n", p.Entry.Name, p.Entry.Unit, p.Entry.Module,
		strings.Join(axes, ","), p.Values.Shape)
	if M, err := p.Matrix(); err == nil {
		fmt.Fprint(w, M.String())
		return
	}
	fmt.Fprintln(w, p.Values.Data)
}
