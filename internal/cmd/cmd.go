/*
Copyright © 2026 the harpcore authors.
This file is part of harpcore.

harpcore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

harpcore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with harpcore.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cmd wires harpcore's cobra/viper CLI, following the shape of
// github.com/spatialmodel/inmap/inmaputil.InitializeConfig: a package-level
// Root command, a persistent --config flag read through viper, and one
// subcommand per library operation. list-conversions and regrid-fixed are
// the two operations worth a command-line entry point; the rest of
// harpcore's surface (get_derived/add_derived, collocation regridding) is a
// library call, not a CLI concern (§1).
package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/harpcore"
	"github.com/spatialmodel/harpcore/adapters/csvgrid"
	"github.com/spatialmodel/harpcore/adapters/importer"
	"github.com/spatialmodel/harpcore/adapters/interp"
	"github.com/spatialmodel/harpcore/adapters/units"
	_ "github.com/spatialmodel/harpcore/conversions"
	"github.com/spf13/cobra"
)

var cfg = viper.New()

var (
	configFile string
	inputFile  string
	gridFile   string
	outputUnit string
)

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", "", "optional TOML configuration file overriding the flags below")
	Root.AddCommand(versionCmd)
	Root.AddCommand(listCmd)
	Root.AddCommand(regridFixedCmd)

	regridFixedCmd.Flags().StringVar(&inputFile, "input", "", "product file to regrid (required)")
	regridFixedCmd.Flags().StringVar(&gridFile, "grid", "", "CSV vertical-grid file naming the target axis (required)")
	regridFixedCmd.Flags().StringVar(&outputUnit, "unit", "", "target axis unit, if different from the grid file's own unit")
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "harpcore",
	Short: "A derived-variable resolver and vertical regridder for atmospheric remote-sensing products.",
	Long: `harpcore resolves derived variables from a registered conversion catalog
and regrids vertical profiles, either onto a fixed axis or by collocation
with averaging-kernel smoothing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile == "" {
			return nil
		}
		var tree map[string]interface{}
		if _, err := toml.DecodeFile(configFile, &tree); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		for k, v := range tree {
			cfg.Set(k, v)
		}
		if v := cfg.GetString("input"); v != "" {
			inputFile = v
		}
		if v := cfg.GetString("grid"); v != "" {
			gridFile = v
		}
		if v := cfg.GetString("unit"); v != "" {
			outputUnit = v
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("harpcore (development build)")
	},
	DisableAutoGenTag: true,
}

var listCmd = &cobra.Command{
	Use:   "list-conversions",
	Short: "List the registered derived-variable conversion catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		r := harpcore.NewResolver(harpcore.DefaultRegistry, units.NewConverter())
		fmt.Print(r.ListConversions(nil))
	},
	DisableAutoGenTag: true,
}

var regridFixedCmd = &cobra.Command{
	Use:   "regrid-fixed",
	Short: "Regrid every vertical variable in a product onto a fixed target axis.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == "" || gridFile == "" {
			return fmt.Errorf("--input and --grid are required")
		}
		p, err := importer.Importer{}.Import(inputFile)
		if err != nil {
			return err
		}

		gf, err := os.Open(gridFile)
		if err != nil {
			return err
		}
		defer gf.Close()
		grid, err := csvgrid.Load(gf)
		if err != nil {
			return err
		}
		target := grid.Variable()
		if outputUnit != "" {
			target.Unit = outputUnit
		}

		engine := harpcore.NewRegridEngine(
			harpcore.NewResolver(harpcore.DefaultRegistry, units.NewConverter()),
			interp.Kernels{},
			importer.Importer{},
		)
		if err := engine.RegridFixed(p, target); err != nil {
			return err
		}
		fmt.Printf("regridded %d variables onto a %d-level %s axis\n", len(p.Variables()), len(grid.Values), grid.Name)
		return nil
	},
	DisableAutoGenTag: true,
}
