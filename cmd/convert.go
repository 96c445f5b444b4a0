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
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/notargets/goreactor/archive"
	"github.com/notargets/goreactor/catalog"
	"github.com/notargets/goreactor/readfiles"
	"github.com/notargets/goreactor/types"
	"github.com/notargets/goreactor/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Store the legacy <group>.out tables in the module archives",
	Long: `
Reads every legacy integral table found under the output root and writes it to
integralParameters/<group> of the archive of its module (output_NE.h5, output_TH.h5).
Existing archives are only replaced with --force.

goreactor convert --root ./run01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var force bool
		if force, err = cmd.Flags().GetBool("force"); err != nil {
			return
		}
		return RunConvert(viper.GetString("root"), force, viper.GetBool("verbose"), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	ConvertCmd.Flags().BoolP("force", "f", false, "replace existing archives")
}

func RunConvert(root string, force, verbose bool, w io.Writer) (err error) {
	var (
		cat    *catalog.Catalog
		tables = make(map[types.Module]map[string]utils.Matrix)
		order  []types.Module
	)
	if cat, err = catalog.Load(root, verbose); err != nil {
		return
	}
	for _, group := range cat.Groups() {
		var (
			T       utils.Matrix
			entries = cat.GroupEntries(group)
			module  = entries[0].Module
		)
		if T, err = readfiles.ReadTable(filepath.Join(root, entries[0].LegacyFile()), verbose); err != nil {
			if errors.Is(err, types.ErrMissingFile) {
				log.Printf("no legacy table for %s, skipped", group)
				err = nil
				continue
			}
			return
		}
		if _, nc := T.Dims(); cat.Expanded() && nc != len(entries)+1 {
			log.Printf("%s has %d columns, the catalog lists %d quantities", group, nc, len(entries))
		}
		if tables[module] == nil {
			tables[module] = make(map[string]utils.Matrix)
			order = append(order, module)
		}
		tables[module][group] = T
	}
	for _, module := range order {
		path := archive.Path(root, module)
		if _, statErr := os.Stat(path); statErr == nil && !force {
			return fmt.Errorf("%s exists, use --force to replace it: %w", path, types.ErrConfig)
		}
		var aw *archive.Writer
		if aw, err = archive.Create(path); err != nil {
			return
		}
		for _, group := range cat.Groups() {
			T, ok := tables[module][group]
			if !ok {
				continue
			}
			if err = aw.WriteDataset(catalog.IntegralGroup+"/"+group, utils.NDArrayFromMatrix(T)); err != nil {
				aw.Close()
				return
			}
			nr, nc := T.Dims()
			fmt.Fprintf(w, "%s: %s/%s %dx%d\n", filepath.Base(path), catalog.IntegralGroup, group, nr, nc)
		}
		if err = aw.Close(); err != nil {
			return
		}
	}
	if len(order) == 0 {
		fmt.Fprintf(w, "no legacy tables under %s\n", root)
	}
	return
}
