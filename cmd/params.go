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

	"github.com/notargets/goreactor/readfiles"
	"github.com/spf13/cobra"
)

// ParamsCmd groups the legacy parameter file commands
var ParamsCmd = &cobra.Command{
	Use:   "params",
	Short: "Write or read legacy parameter files",
	Long: `
Legacy parameter files hold a "% name, name" header line and one line of values.

goreactor params write params.txt --names a,b --values 1.0,2.0
goreactor params read params.txt`,
}

var paramsWriteCmd = &cobra.Command{
	Use:   "write FILE",
	Short: "Write a legacy parameter file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			names, values []string
			overwrite     bool
		)
		if names, err = cmd.Flags().GetStringSlice("names"); err != nil {
			return
		}
		if values, err = cmd.Flags().GetStringSlice("values"); err != nil {
			return
		}
		if overwrite, err = cmd.Flags().GetBool("overwrite"); err != nil {
			return
		}
		return readfiles.WriteParameters(args[0], names, values, overwrite)
	},
}

var paramsReadCmd = &cobra.Command{
	Use:   "read FILE",
	Short: "Print the parameters of a legacy parameter file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunParamsRead(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(ParamsCmd)
	ParamsCmd.AddCommand(paramsWriteCmd, paramsReadCmd)
	paramsWriteCmd.Flags().StringSlice("names", nil, "parameter names, comma separated")
	paramsWriteCmd.Flags().StringSlice("values", nil, "parameter values, comma separated")
	paramsWriteCmd.Flags().Bool("overwrite", false, "replace an existing file")
}

func RunParamsRead(filename string, w io.Writer) (err error) {
	var (
		names, values []string
		width         int
	)
	if names, values, err = readfiles.ReadParameterList(filename); err != nil {
		return
	}
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for i, name := range names {
		fmt.Fprintf(w, "%s%s = %s\n", name, strings.Repeat(" ", width-len(name)), values[i])
	}
	return
}
