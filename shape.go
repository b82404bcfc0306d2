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

package regions

import (
	"github.com/ctessum/geom"
	"github.com/spatialmodel/regions/planar"
	"github.com/spatialmodel/regions/vectors"
)

// shaper is implemented by regions with an exact or approximate polygon
// or line form.
type shaper interface {
	shape() geom.Geom
}

// shapeOf returns the polygon or line form of r, or nil if r has none.
func shapeOf(r Region) geom.Geom {
	if s, ok := r.(shaper); ok {
		return s.shape()
	}
	return nil
}

// Shape returns the polygon or line form of r as a geom.Geom, or false if
// r has none.
func Shape(r Region) (geom.Geom, bool) {
	g := shapeOf(r)
	return g, g != nil
}

func planarIntersects(a, b geom.Geom) (bool, error) {
	return planar.Intersects(a, b)
}

// circumscribed is implemented by regions that know a circle enclosing
// them.
type circumscribed interface {
	circumcircle() (center vectors.Vector, radius float64)
}

// FromGeom builds a region from a geometry: polygons become Polygonal
// regions, lines Polyline regions and points PointSet regions. Empty
// geometry yields Nowhere. The orientation of the result is only what
// opts specify.
func FromGeom(g geom.Geom, opts ...Option) (Region, error) {
	if planar.IsEmpty(g) {
		return Nowhere, nil
	}
	// The caller's orientation, or none, overrides any default.
	o := newOptions(opts)
	if !o.orientationSet {
		opts = append(opts, WithOrientation(nil))
	}
	var (
		r   Region
		err error
	)
	switch planar.KindOf(g) {
	case planar.PolygonKind:
		r, err = NewPolygonalFromGeom(g, opts...)
	case planar.LineKind:
		r, err = NewPolylineFromGeom(g, opts...)
	case planar.PointKind:
		pts, _ := planar.Points(g)
		if o.name == "" {
			opts = append(opts, WithName("PointSet"))
		}
		r, err = NewPointSet(vectors.FromGeomSlice(pts), opts...)
	default:
		return nil, &TypeError{Op: "FromGeom", Value: g}
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// fromResult turns the result of a polygon or line operation into a
// region, keeping only the members of highest dimension when the engine
// returns a mixed collection. It returns false if no valid region can be
// built from g, so that dispatch falls through to a generic composite.
func fromResult(g geom.Geom, opts ...Option) (Region, bool) {
	if planar.KindOf(g) == planar.CollectionKind {
		switch {
		case planar.Area(g) > 0:
			g = planar.Filter(g, planar.PolygonKind)
		case planar.Length(g) > 0:
			g = planar.Filter(g, planar.LineKind)
		default:
			g = planar.Filter(g, planar.PointKind)
		}
	}
	r, err := FromGeom(g, opts...)
	if err != nil {
		return nil, false
	}
	return r, true
}
