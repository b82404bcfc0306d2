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

// Package planar is the planar-geometry engine behind regions. It works on
// github.com/ctessum/geom shapes and adds the operations that package does
// not provide: distance, linear referencing, buffering, triangulation,
// line clipping and spatially indexed polygons and point sets.
//
// Polygons are interpreted with the even-odd rule, so a multi-part polygon
// may be represented as a single geom.Polygon holding every ring.
package planar

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Tolerance is the distance below which two points are considered to
// coincide.
const Tolerance = 1.e-9

// DefaultResolution is the number of segments used to approximate a
// quarter circle.
const DefaultResolution = 8

type segment struct {
	a, b geom.Point
}

func (s segment) length() float64 { return dist(s.a, s.b) }

func dist(a, b geom.Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func lerp(a, b geom.Point, t float64) geom.Point {
	return geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func samePoint(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) <= Tolerance && math.Abs(a.Y-b.Y) <= Tolerance
}

// cross returns the z component of (b-a)×(c-a).
func cross(a, b, c geom.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// openRing returns r without its closing point, if it has one.
func openRing(r []geom.Point) []geom.Point {
	if len(r) > 1 && samePoint(r[0], r[len(r)-1]) {
		return r[:len(r)-1]
	}
	return r
}

// closeRing returns a copy of r that ends with its first point.
func closeRing(r []geom.Point) []geom.Point {
	r = openRing(r)
	o := make([]geom.Point, len(r), len(r)+1)
	copy(o, r)
	if len(r) > 0 {
		o = append(o, r[0])
	}
	return o
}

func ringSegments(r []geom.Point) []segment {
	r = openRing(r)
	if len(r) < 2 {
		return nil
	}
	s := make([]segment, len(r))
	for i := range r {
		s[i] = segment{r[i], r[(i+1)%len(r)]}
	}
	return s
}

func lineSegments(l []geom.Point) []segment {
	if len(l) < 2 {
		return nil
	}
	s := make([]segment, len(l)-1)
	for i := 0; i < len(l)-1; i++ {
		s[i] = segment{l[i], l[i+1]}
	}
	return s
}

// Segments returns the boundary segments of a polygonal or linear geometry
// as two-point line strings.
func Segments(g geom.Geom) []geom.LineString {
	var o []geom.LineString
	for _, s := range segmentsOf(g) {
		o = append(o, geom.LineString{s.a, s.b})
	}
	return o
}

func segmentsOf(g geom.Geom) []segment {
	var o []segment
	switch t := g.(type) {
	case geom.Polygon:
		for _, r := range t {
			o = append(o, ringSegments(r)...)
		}
	case geom.MultiPolygon:
		for _, p := range t {
			o = append(o, segmentsOf(p)...)
		}
	case geom.LineString:
		o = lineSegments(t)
	case geom.MultiLineString:
		for _, l := range t {
			o = append(o, lineSegments(l)...)
		}
	case geom.GeometryCollection:
		for _, gg := range t {
			o = append(o, segmentsOf(gg)...)
		}
	}
	return o
}

// Flatten merges the parts of a polygonal geometry into a single even-odd
// polygon. It returns false if g is not polygonal.
func Flatten(g geom.Geom) (geom.Polygon, bool) {
	switch t := g.(type) {
	case geom.Polygon:
		return t, true
	case geom.MultiPolygon:
		var o geom.Polygon
		for _, p := range t {
			for _, r := range p {
				o = append(o, r)
			}
		}
		return o, true
	}
	return nil, false
}

// Lines merges the parts of a linear geometry into a MultiLineString.
// It returns false if g is not linear.
func Lines(g geom.Geom) (geom.MultiLineString, bool) {
	switch t := g.(type) {
	case geom.LineString:
		return geom.MultiLineString{t}, true
	case geom.MultiLineString:
		return t, true
	}
	return nil, false
}

// Points returns the points of a point geometry. It returns false if g is
// not point-like.
func Points(g geom.Geom) ([]geom.Point, bool) {
	switch t := g.(type) {
	case geom.Point:
		return []geom.Point{t}, true
	case geom.MultiPoint:
		return t, true
	}
	return nil, false
}

// Kind describes the dimension of a geometry.
type Kind int

// The geometry kinds.
const (
	Unknown Kind = iota
	PointKind
	LineKind
	PolygonKind
	CollectionKind
)

// KindOf returns the kind of g.
func KindOf(g geom.Geom) Kind {
	switch g.(type) {
	case geom.Point, geom.MultiPoint:
		return PointKind
	case geom.LineString, geom.MultiLineString:
		return LineKind
	case geom.Polygon, geom.MultiPolygon:
		return PolygonKind
	case geom.GeometryCollection:
		return CollectionKind
	}
	return Unknown
}

// Area returns the area of g, which is zero for non-polygonal geometry.
func Area(g geom.Geom) float64 {
	switch t := g.(type) {
	case geom.Polygon:
		return t.Area()
	case geom.MultiPolygon:
		return t.Area()
	case geom.GeometryCollection:
		var a float64
		for _, gg := range t {
			a += Area(gg)
		}
		return a
	}
	return 0
}

// Length returns the length of the linear parts of g.
func Length(g geom.Geom) float64 {
	switch t := g.(type) {
	case geom.LineString:
		return t.Length()
	case geom.MultiLineString:
		return t.Length()
	case geom.GeometryCollection:
		var l float64
		for _, gg := range t {
			l += Length(gg)
		}
		return l
	}
	return 0
}

// IsEmpty reports whether g holds no points.
func IsEmpty(g geom.Geom) bool {
	switch t := g.(type) {
	case nil:
		return true
	case geom.Polygon:
		for _, r := range t {
			if len(openRing(r)) >= 3 {
				return false
			}
		}
		return true
	case geom.MultiPolygon:
		for _, p := range t {
			if !IsEmpty(p) {
				return false
			}
		}
		return true
	case geom.LineString:
		return len(t) == 0
	case geom.MultiLineString:
		for _, l := range t {
			if len(l) > 0 {
				return false
			}
		}
		return true
	case geom.MultiPoint:
		return len(t) == 0
	case geom.Point:
		return false
	case geom.GeometryCollection:
		for _, gg := range t {
			if !IsEmpty(gg) {
				return false
			}
		}
		return true
	}
	return false
}

// Filter returns the members of collection g that have the given kind,
// merged into a single geometry of that kind.
func Filter(g geom.Geom, k Kind) geom.Geom {
	gc, ok := g.(geom.GeometryCollection)
	if !ok {
		if KindOf(g) == k {
			return g
		}
		gc = geom.GeometryCollection{g}
	}
	switch k {
	case PolygonKind:
		var o geom.Polygon
		for _, gg := range gc {
			if p, ok := Flatten(gg); ok {
				for _, r := range p {
					o = append(o, r)
				}
			}
		}
		return o
	case LineKind:
		var o geom.MultiLineString
		for _, gg := range gc {
			if l, ok := Lines(gg); ok {
				o = append(o, l...)
			}
		}
		return o
	case PointKind:
		var o geom.MultiPoint
		for _, gg := range gc {
			if p, ok := Points(gg); ok {
				o = append(o, p...)
			}
		}
		return o
	}
	return geom.GeometryCollection{}
}

// UnsupportedError is returned when an operation is not defined for the
// kinds of geometry it was given.
type UnsupportedError struct {
	Op   string
	A, B geom.Geom
}

func (e *UnsupportedError) Error() string {
	if e.B == nil {
		return fmt.Sprintf("planar: %s is not supported for %T", e.Op, e.A)
	}
	return fmt.Sprintf("planar: %s is not supported for %T and %T", e.Op, e.A, e.B)
}
