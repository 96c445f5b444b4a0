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

	"github.com/notargets/goreactor/catalog"
	"github.com/notargets/goreactor/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// QuantitiesCmd represents the quantities command
var QuantitiesCmd = &cobra.Command{
	Use:   "quantities",
	Short: "List the quantities available under the output root",
	Long: `
Lists the catalog of the output root, with templated quantities expanded from macro.nml
when it is present.

goreactor quantities --category distributed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var category string
		if category, err = cmd.Flags().GetString("category"); err != nil {
			return
		}
		return RunQuantities(viper.GetString("root"), category, viper.GetBool("verbose"), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(QuantitiesCmd)
	QuantitiesCmd.Flags().StringP("category", "c", "", "integral or distributed, both by default")
}

func RunQuantities(root, category string, verbose bool, w io.Writer) (err error) {
	var (
		cat  *catalog.Catalog
		show = map[types.Category]bool{types.Integral: true, types.Distributed: true}
	)
	switch strings.ToLower(category) {
	case "":
	case "integral":
		show[types.Distributed] = false
	case "distributed":
		show[types.Integral] = false
	default:
		return fmt.Errorf("unknown category [%s], use integral or distributed: %w", category, types.ErrConfig)
	}
	if cat, err = catalog.Load(root, verbose); err != nil {
		return
	}
	if !cat.Expanded() {
		fmt.Fprintf(w, "# no %s, templated quantities are not expanded\n", catalog.NamelistFile)
	}
	for _, e := range cat.Entries() {
		if !show[e.Category] {
			continue
		}
		axes := make([]string, len(e.Axes))
		for i, a := range e.Axes {
			axes[i] = a.String()
		}
		fmt.Fprintf(w, "%-14s %-11s %s %-10s %-18s (%s) %s\n", e.Name, e.Category, e.Module, e.Unit,
			e.DatasetPath(), strings.Join(axes, ","), e.Description)
	}
	return
}
