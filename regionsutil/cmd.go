/*
Copyright © 2019 the regions authors.
This file is part of regions.

regions is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

regions is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with regions.  If not, see <http://www.gnu.org/licenses/>.
*/

package regionsutil

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/lnashier/viper"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/regions"
	"github.com/spatialmodel/regions/vectors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to regions.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "scene",
			usage: `
              scene specifies the TOML file holding the region
              definitions.`,
			shorthand:  "f",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "region",
			usage: `
              region is the name of the scene region to use. The
              default is the last region in the scene file.`,
			shorthand:  "r",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "seed",
			usage: `
              seed initializes the random number generator, so that
              runs with the same seed draw the same points.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose turns on debugging messages, including one for
              every rejected sample.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "count",
			usage: `
              count is the number of points to draw.`,
			shorthand:  "n",
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "maxtries",
			usage: `
              maxtries is the number of times a rejected draw is
              retried before giving up. Zero or less means no limit.`,
			defaultVal: 10000,
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the file the points are written to. Paths
              ending in .shp are written as shapefiles and other paths
              as GeoJSON; "-" means standard output.`,
			shorthand:  "o",
			defaultVal: "-",
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "tolerance",
			usage: `
              tolerance is the distance by which a polygonal region is
              grown when checking whether it contains another region.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{infoCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("REGIONS")

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
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
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
	Root.AddCommand(sampleCmd)
	Root.AddCommand(containsCmd)
	Root.AddCommand(infoCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("regions: problem reading configuration file: %v", err)
		}
	}
	if l, ok := Log.(*logrus.Logger); ok {
		if Cfg.GetBool("verbose") {
			l.SetLevel(logrus.DebugLevel)
		} else {
			l.SetLevel(logrus.InfoLevel)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "regions",
	Short: "Sample points from two-dimensional regions.",
	Long: `regions draws points uniformly from regions of the plane defined in a
scene file, and answers membership and bounding-box queries about them.

A scene file is a TOML file with one [[Region]] table per region. Regions
may be circles, sectors, rectangles, polygons, polylines, point sets,
occupancy grids, GeoJSON or shapefile geometry, or intersections,
differences and unions of regions defined earlier in the file. Numeric
parameters may be given as [min, max] ranges to be drawn at random.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'REGIONS_var' where 'var' is the
name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of regions.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("regions v%s\n", regions.Version)
	},
	DisableAutoGenTag: true,
}

// sceneRegion loads the configured region of the configured scene.
func sceneRegion() (regions.Symbolic, error) {
	path := Cfg.GetString("scene")
	if path == "" {
		return nil, errors.New("regions: no scene file given; set --scene")
	}
	s, err := LoadScene(path)
	if err != nil {
		return nil, err
	}
	return s.Region(Cfg.GetString("region"))
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(int64(Cfg.GetInt("seed"))))
}

// fixedRegion loads the configured region and fixes any random
// parameters with the configured seed.
func fixedRegion() (regions.Region, error) {
	sym, err := sceneRegion()
	if err != nil {
		return nil, err
	}
	return sym.Fix(regions.NewValues(newRand()))
}

// parsePoint reads a point from two command-line arguments.
func parsePoint(args []string) (vectors.Vector, error) {
	if len(args) != 2 {
		return vectors.Vector{}, errors.Errorf("regions: want 2 coordinates; got %d", len(args))
	}
	x, err := cast.ToFloat64E(args[0])
	if err != nil {
		return vectors.Vector{}, errors.Wrap(err, "regions: x coordinate")
	}
	y, err := cast.ToFloat64E(args[1])
	if err != nil {
		return vectors.Vector{}, errors.Wrap(err, "regions: y coordinate")
	}
	return vectors.New(x, y), nil
}

// sampleCmd draws points from a region.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw points from a region.",
	Long: `sample draws points uniformly from a scene region and writes them
as GeoJSON or as a shapefile. Random region parameters are drawn anew for
every point.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sym, err := sceneRegion()
		if err != nil {
			return err
		}
		pts, err := Sample(context.Background(), sym, Cfg.GetInt("count"), Cfg.GetInt("maxtries"), newRand())
		if err != nil {
			return err
		}
		return writeSamples(Cfg.GetString("output"), cmd.OutOrStdout(), pts)
	},
	DisableAutoGenTag: true,
}

// containsCmd checks whether a point is in a region.
var containsCmd = &cobra.Command{
	Use:   "contains x y",
	Short: "Check whether a point is in a region.",
	Long:  `contains prints true if the point (x, y) is in the scene region and false otherwise.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args)
		if err != nil {
			return err
		}
		r, err := fixedRegion()
		if err != nil {
			return err
		}
		cmd.Println(r.ContainsPoint(p))
		return nil
	},
	DisableAutoGenTag: true,
}

// infoCmd describes a region.
var infoCmd = &cobra.Command{
	Use:   "info [x y]",
	Short: "Describe a region.",
	Long: `info prints the type and bounding box of the scene region. Given a
point, it also prints the distance from the point to the region. Given
--tolerance and a polygonal region, it also reports whether the region
contains every other region of the scene.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := fixedRegion()
		if err != nil {
			return err
		}
		cmd.Printf("region: %v\n", r)
		if box, err := r.AABB(); err == nil {
			cmd.Printf("bounds: [%g, %g] × [%g, %g]\n", box.X.Lo, box.X.Hi, box.Y.Lo, box.Y.Hi)
		} else {
			cmd.Printf("bounds: %v\n", err)
		}
		if len(args) > 0 {
			p, err := parsePoint(args)
			if err != nil {
				return err
			}
			d, err := r.DistanceTo(p)
			if err != nil {
				cmd.Printf("distance: %v\n", err)
			} else {
				cmd.Printf("distance: %g\n", d)
			}
		}
		if poly, ok := r.(*regions.Polygonal); ok && Cfg.GetFloat64("tolerance") > 0 {
			return containsOthers(cmd, poly)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

func containsOthers(cmd *cobra.Command, poly *regions.Polygonal) error {
	s, err := LoadScene(Cfg.GetString("scene"))
	if err != nil {
		return err
	}
	self := Cfg.GetString("region")
	if self == "" && len(s.Names) > 0 {
		self = s.Names[len(s.Names)-1]
	}
	v := regions.NewValues(newRand())
	for _, name := range s.Names {
		if name == self {
			continue
		}
		sym, _ := s.Region(name)
		other, err := sym.Fix(v)
		if err != nil {
			return err
		}
		in, err := poly.ContainsRegion(other, Cfg.GetFloat64("tolerance"))
		if err != nil {
			cmd.Printf("contains %s: %v\n", name, err)
			continue
		}
		cmd.Printf("contains %s: %v\n", name, in)
	}
	return nil
}
