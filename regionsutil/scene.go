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
	"io"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/pkg/errors"
	"github.com/spatialmodel/regions"
	"github.com/spatialmodel/regions/vectors"
	"github.com/spf13/cast"
)

// RegionConfig is the definition of one region in a scene file.
// Scalar fields hold either a number, a [min, max] range drawn
// uniformly, or a table with Mean and StdDev for a normal draw.
// Vector fields hold two such scalars.
type RegionConfig struct {
	Name string
	Type string

	Center, Position interface{}
	Radius, Heading  interface{}
	Angle            interface{}
	Width, Length    interface{}

	// Points are the vertices of a Polygon, Polyline or PointSet.
	Points [][]float64

	// Cells, Scale and Offset define a Grid: cell (x, y) is at
	// (Scale[0]·x + Offset[0], Scale[1]·y + Offset[1]).
	Cells  [][]int
	Scale  []float64
	Offset []float64

	// File is a GeoJSON geometry and Shapefile a shapefile whose shapes
	// are merged into one region.
	File      string
	Shapefile string

	// Of names the regions combined by Intersection, Difference and
	// Union.
	Of []string

	// Orientation, if set, is a constant preferred heading.
	Orientation interface{}

	Tolerance  float64
	Resolution int
}

// SceneConfig is the contents of a scene file.
type SceneConfig struct {
	Region []RegionConfig
}

// Scene holds the regions of a scene file by name.
type Scene struct {
	Names   []string
	regions map[string]regions.Symbolic
}

// Region returns the region with the given name, or the last region in
// the scene when name is empty.
func (s *Scene) Region(name string) (regions.Symbolic, error) {
	if name == "" {
		if len(s.Names) == 0 {
			return nil, errors.New("regionsutil: scene has no regions")
		}
		name = s.Names[len(s.Names)-1]
	}
	r, ok := s.regions[name]
	if !ok {
		return nil, errors.Errorf("regionsutil: scene has no region named %q", name)
	}
	return r, nil
}

// LoadScene reads a TOML scene file.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, errors.Wrap(err, "regionsutil: opening scene file")
	}
	defer f.Close()
	s, err := ReadScene(f)
	if err != nil {
		return nil, errors.Wrapf(err, "regionsutil: loading scene %s", path)
	}
	return s, nil
}

// ReadScene decodes a TOML scene. Regions may refer only to regions
// defined before them.
func ReadScene(r io.Reader) (*Scene, error) {
	var cfg SceneConfig
	if _, err := toml.DecodeReader(r, &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	s := &Scene{regions: make(map[string]regions.Symbolic)}
	for i, rc := range cfg.Region {
		if rc.Name == "" {
			return nil, errors.Errorf("region %d has no name", i)
		}
		if _, ok := s.regions[rc.Name]; ok {
			return nil, errors.Errorf("region %q is defined twice", rc.Name)
		}
		sym, err := s.build(rc)
		if err != nil {
			return nil, errors.Wrapf(err, "region %q", rc.Name)
		}
		s.regions[rc.Name] = sym
		s.Names = append(s.Names, rc.Name)
	}
	return s, nil
}

func (s *Scene) build(rc RegionConfig) (regions.Symbolic, error) {
	opts := []regions.Option{regions.WithName(rc.Name)}
	if rc.Orientation != nil {
		h, err := cast.ToFloat64E(rc.Orientation)
		if err != nil {
			return nil, errors.Wrap(err, "Orientation")
		}
		opts = append(opts, regions.WithOrientation(regions.ConstantField(h)))
	}
	if rc.Tolerance > 0 {
		opts = append(opts, regions.WithTolerance(rc.Tolerance))
	}
	if rc.Resolution > 0 {
		opts = append(opts, regions.WithResolution(rc.Resolution))
	}

	switch rc.Type {
	case "Everywhere":
		return regions.Known(regions.Everywhere), nil
	case "Nowhere":
		return regions.Known(regions.Nowhere), nil
	case "Circle":
		center, err := vectorParam("Center", rc.Center)
		if err != nil {
			return nil, err
		}
		radius, err := param("Radius", rc.Radius)
		if err != nil {
			return nil, err
		}
		return regions.CircleOf(center, radius, opts...), nil
	case "Sector":
		center, err := vectorParam("Center", rc.Center)
		if err != nil {
			return nil, err
		}
		ps, err := params(map[string]interface{}{"Radius": rc.Radius, "Heading": rc.Heading, "Angle": rc.Angle})
		if err != nil {
			return nil, err
		}
		return regions.SectorOf(center, ps["Radius"], ps["Heading"], ps["Angle"], opts...), nil
	case "Rectangle":
		pos, err := vectorParam("Position", rc.Position)
		if err != nil {
			return nil, err
		}
		ps, err := params(map[string]interface{}{"Heading": rc.Heading, "Width": rc.Width, "Length": rc.Length})
		if err != nil {
			return nil, err
		}
		return regions.RectangleOf(pos, ps["Heading"], ps["Width"], ps["Length"], opts...), nil
	case "Polygon", "PointSet", "Polyline":
		pts, err := points(rc.Points)
		if err != nil {
			return nil, err
		}
		switch rc.Type {
		case "Polygon":
			return regions.PolygonOf(fixedVectors(pts), opts...)
		case "PointSet":
			return regions.PointSetOf(fixedVectors(pts), opts...)
		}
		pl, err := regions.NewPolyline(pts, opts...)
		if err != nil {
			return nil, err
		}
		return regions.Known(pl), nil
	case "Grid":
		if len(rc.Scale) != 2 || len(rc.Offset) != 2 {
			return nil, errors.New("Grid needs a 2-element Scale and Offset")
		}
		g, err := regions.NewGrid(rc.Cells, rc.Scale[0], rc.Scale[1], rc.Offset[0], rc.Offset[1], opts...)
		if err != nil {
			return nil, err
		}
		return regions.Known(g), nil
	case "File":
		g, err := readGeoJSON(rc.File)
		if err != nil {
			return nil, err
		}
		return fromGeom(g, opts)
	case "Shapefile":
		g, err := readShapefile(rc.Shapefile)
		if err != nil {
			return nil, err
		}
		return fromGeom(g, opts)
	case "Intersection", "Difference", "Union":
		parts := make([]regions.Symbolic, len(rc.Of))
		for i, name := range rc.Of {
			p, ok := s.regions[name]
			if !ok {
				return nil, errors.Errorf("unknown region %q", name)
			}
			parts[i] = p
		}
		switch rc.Type {
		case "Intersection":
			if len(parts) < 2 {
				return nil, errors.New("Intersection needs at least 2 regions")
			}
			return regions.IntersectionOf(parts...), nil
		case "Difference":
			if len(parts) != 2 {
				return nil, errors.New("Difference needs exactly 2 regions")
			}
			return regions.DifferenceOf(parts[0], parts[1]), nil
		}
		if len(parts) == 0 {
			return nil, errors.New("Union needs at least 1 region")
		}
		return &unionOf{parts: parts}, nil
	}
	return nil, errors.Errorf("unknown region type %q", rc.Type)
}

func fromGeom(g geom.Geom, opts []regions.Option) (regions.Symbolic, error) {
	r, err := regions.FromGeom(g, opts...)
	if err != nil {
		return nil, err
	}
	return regions.Known(r), nil
}

// unionOf is the union of regions, formed once they are fixed.
type unionOf struct {
	parts []regions.Symbolic
}

func (u *unionOf) NeedsSampling() bool {
	for _, p := range u.parts {
		if p.NeedsSampling() {
			return true
		}
	}
	return false
}

func (u *unionOf) Fix(v *regions.Values) (regions.Region, error) {
	var acc regions.Region = regions.Nowhere
	for _, p := range u.parts {
		r, err := p.Fix(v)
		if err != nil {
			return nil, err
		}
		if acc, err = regions.Union(acc, r); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// param converts a scene value to a parameter.
func param(field string, v interface{}) (regions.Param, error) {
	if v == nil {
		return regions.Fixed(0), nil
	}
	switch t := v.(type) {
	case []interface{}:
		r, err := cast.ToSliceE(t)
		if err != nil || len(r) != 2 {
			return regions.Param{}, errors.Errorf("%s: a range needs 2 values; got %v", field, v)
		}
		lo, err := cast.ToFloat64E(r[0])
		if err != nil {
			return regions.Param{}, errors.Wrap(err, field)
		}
		hi, err := cast.ToFloat64E(r[1])
		if err != nil {
			return regions.Param{}, errors.Wrap(err, field)
		}
		return regions.Uniform(lo, hi), nil
	case map[string]interface{}:
		m, err := cast.ToStringMapE(t)
		if err != nil {
			return regions.Param{}, errors.Wrap(err, field)
		}
		if c, ok := m["Choice"]; ok {
			vals, err := cast.ToSliceE(c)
			if err != nil {
				return regions.Param{}, errors.Wrap(err, field)
			}
			fs := make([]float64, len(vals))
			for i, x := range vals {
				if fs[i], err = cast.ToFloat64E(x); err != nil {
					return regions.Param{}, errors.Wrap(err, field)
				}
			}
			if len(fs) == 0 {
				return regions.Param{}, errors.Errorf("%s: empty Choice", field)
			}
			return regions.Choice(fs...), nil
		}
		mean, err := cast.ToFloat64E(m["Mean"])
		if err != nil {
			return regions.Param{}, errors.Wrap(err, field+".Mean")
		}
		sd, err := cast.ToFloat64E(m["StdDev"])
		if err != nil {
			return regions.Param{}, errors.Wrap(err, field+".StdDev")
		}
		return regions.Normal(mean, sd), nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return regions.Param{}, errors.Wrap(err, field)
	}
	return regions.Fixed(f), nil
}

func params(fields map[string]interface{}) (map[string]regions.Param, error) {
	o := make(map[string]regions.Param, len(fields))
	for name, v := range fields {
		p, err := param(name, v)
		if err != nil {
			return nil, err
		}
		o[name] = p
	}
	return o, nil
}

func vectorParam(field string, v interface{}) (regions.VectorParam, error) {
	if v == nil {
		return regions.FixedVector(vectors.New(0, 0)), nil
	}
	xy, err := cast.ToSliceE(v)
	if err != nil || len(xy) != 2 {
		return regions.VectorParam{}, errors.Errorf("%s: a vector needs 2 values; got %v", field, v)
	}
	x, err := param(field+"[0]", xy[0])
	if err != nil {
		return regions.VectorParam{}, err
	}
	y, err := param(field+"[1]", xy[1])
	if err != nil {
		return regions.VectorParam{}, err
	}
	return regions.VectorParam{X: x, Y: y}, nil
}

func points(ps [][]float64) ([]vectors.Vector, error) {
	o := make([]vectors.Vector, len(ps))
	for i, p := range ps {
		if len(p) != 2 {
			return nil, errors.Errorf("point %d has %d coordinates; want 2", i, len(p))
		}
		o[i] = vectors.New(p[0], p[1])
	}
	return o, nil
}

func fixedVectors(pts []vectors.Vector) []regions.VectorParam {
	o := make([]regions.VectorParam, len(pts))
	for i, p := range pts {
		o[i] = regions.FixedVector(p)
	}
	return o
}

// readGeoJSON reads a GeoJSON geometry file.
func readGeoJSON(path string) (geom.Geom, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, errors.Wrap(err, "opening GeoJSON file")
	}
	defer f.Close()
	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	g, err := geojson.Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return g, nil
}

// readShapefile merges the shapes of a shapefile into one geometry. All
// shapes must be of the same kind.
func readShapefile(path string) (geom.Geom, error) {
	d, err := shp.NewDecoder(os.ExpandEnv(path))
	if err != nil {
		return nil, errors.Wrapf(err, "opening shapefile %s", path)
	}
	defer d.Close()
	var (
		polys geom.MultiPolygon
		lines geom.MultiLineString
		pts   geom.MultiPoint
	)
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		switch t := g.(type) {
		case geom.Polygon:
			polys = append(polys, t)
		case geom.MultiPolygon:
			polys = append(polys, t...)
		case geom.LineString:
			lines = append(lines, t)
		case geom.MultiLineString:
			lines = append(lines, t...)
		case geom.Point:
			pts = append(pts, t)
		case geom.MultiPoint:
			pts = append(pts, t...)
		default:
			return nil, errors.Errorf("shapefile %s: unsupported shape %T", path, g)
		}
	}
	if err := d.Error(); err != nil {
		return nil, errors.Wrapf(err, "reading shapefile %s", path)
	}
	switch {
	case len(polys) > 0 && len(lines) == 0 && len(pts) == 0:
		return polys, nil
	case len(lines) > 0 && len(polys) == 0 && len(pts) == 0:
		return lines, nil
	case len(pts) > 0 && len(polys) == 0 && len(lines) == 0:
		return pts, nil
	case len(polys)+len(lines)+len(pts) == 0:
		return geom.MultiPolygon{}, nil
	}
	return nil, errors.Errorf("shapefile %s mixes shape kinds", path)
}
