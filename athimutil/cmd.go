/*
Copyright © 2024 the ATHIM authors.
This file is part of ATHIM.

ATHIM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ATHIM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ATHIM.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package athimutil provides the command-line interface and
// configuration handling for the ATHIM model.
package athimutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/athim"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to ATHIM.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the location of the comparison
              configuration file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output specifies the file to write the burden delta table
              to, overriding the configuration file. If empty, results
              are written to standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{compareCmd.Flags()},
		},
		{
			name: "seed",
			usage: `
              seed overrides the Monte-Carlo random seed. Comparisons
              with equal seed and sample size are reproducible.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{compareCmd.Flags()},
		},
		{
			name: "samplesize",
			usage: `
              samplesize overrides the number of Monte-Carlo draws per
              population stratum.`,
			defaultVal: 100000,
			flagsets:   []*pflag.FlagSet{compareCmd.Flags()},
		},
		{
			name: "verbose",
			usage: `
              verbose enables debug logging.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ATHIM")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(compareCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "athim",
	Short: "A comparative risk assessment model for active travel.",
	Long: `ATHIM estimates the change in population health burden attributable
to a shift in walking and cycling between a baseline and an alternative
travel scenario.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'ATHIM_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if Cfg.GetBool("verbose") {
			log.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ATHIM.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("ATHIM v%s\n", athim.Version)
	},
	DisableAutoGenTag: true,
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the health burden of two travel scenarios.",
	Long: `compare runs the comparative risk assessment for the baseline and
scenario inputs named in the configuration file and writes the resulting
burden delta table as CSV.`,
	DisableAutoGenTag: true,
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle between compareCmd and RunCompare.
	compareCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfgFile := Cfg.GetString("config")
		if cfgFile == "" {
			return fmt.Errorf("athim: no configuration file specified; use --config")
		}
		return RunCompare(cfgFile)
	}
}
