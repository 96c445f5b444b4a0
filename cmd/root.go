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
	"os"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "goreactor",
	Short: "Post-processing of reactor core simulation output",
	Long: `
Reads the integral and distributed quantities written by the neutronics (NE) and
thermal-hydraulics (TH) modules, from the HDF5 output archives or the legacy text
tables, and maps assembly data onto the hexagonal or square core lattice.

goreactor extract powertot --time 0 --assembly 1,2`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if dir := viper.GetString("cpuprofile"); len(dir) != 0 {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// Execute runs the root command, errors are printed once here
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.goreactor.yaml)")
	rootCmd.PersistentFlags().StringP("root", "r", ".", "directory holding the simulation output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntP("parallel", "p", runtime.NumCPU(), "number of concurrent extractions")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this directory")
	for _, key := range []string{"root", "verbose", "parallel", "cpuprofile"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".goreactor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix("GOREACTOR")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
