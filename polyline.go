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
	"fmt"
	"math/rand"

	"github.com/ctessum/geom"
	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/planar"
	"github.com/spatialmodel/regions/vectors"
	"gonum.org/v1/gonum/floats"
)

// Segment is a directed line segment.
type Segment struct {
	A, B vectors.Vector
}

// Heading returns the heading of the segment from A to B.
func (s Segment) Heading() float64 { return vectors.HeadingOfSegment(s.A, s.B) }

// Polyline is a set of one or more polylines. Unless another orientation
// is given, its orientation at a point is the heading of the nearest
// segment.
type Polyline struct {
	base
	lines       geom.MultiLineString
	points      []vectors.Vector
	segments    []Segment
	cumLengths  []float64
	usesDefault bool
}

// NewPolyline returns the polyline through points, which must number at
// least two.
func NewPolyline(points []vectors.Vector, opts ...Option) (*Polyline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("regions: polyline needs at least 2 points; got %d", len(points))
	}
	pl, err := newPolyline(geom.MultiLineString{vectors.ToGeomSlice(points)}, opts)
	if err != nil {
		return nil, err
	}
	pl.points = append([]vectors.Vector(nil), points...)
	return pl, nil
}

// NewPolylineFromGeom returns a polyline region for a geom.LineString or
// geom.MultiLineString. Every line must have at least two points.
func NewPolylineFromGeom(g geom.Geom, opts ...Option) (*Polyline, error) {
	l, ok := planar.Lines(g)
	if !ok {
		return nil, fmt.Errorf("regions: cannot build polyline from %T", g)
	}
	if len(l) == 0 {
		return nil, fmt.Errorf("regions: cannot build polyline from empty MultiLineString")
	}
	pl, err := newPolyline(l, opts)
	if err != nil {
		return nil, err
	}
	var last *vectors.Vector
	for _, s := range pl.segments {
		if last == nil || *last != s.A {
			pl.points = append(pl.points, s.A)
		}
		pl.points = append(pl.points, s.B)
		b := s.B
		last = &b
	}
	return pl, nil
}

func newPolyline(l geom.MultiLineString, opts []Option) (*Polyline, error) {
	if err := planar.IsValid(l); err != nil {
		return nil, fmt.Errorf("regions: invalid polyline: %v", err)
	}
	o := newOptions(opts)
	pl := &Polyline{
		base:  base{name: o.name, orientation: o.orientation},
		lines: l,
	}
	if !o.orientationSet {
		pl.usesDefault = true
		pl.orientation = NewVectorField("Polyline", pl.defaultOrientation)
	}
	lengths := make([]float64, 0)
	for _, line := range l {
		for i := 0; i < len(line)-1; i++ {
			s := Segment{A: vectors.FromGeom(line[i]), B: vectors.FromGeom(line[i+1])}
			pl.segments = append(pl.segments, s)
			lengths = append(lengths, vectors.Distance(s.A, s.B))
		}
	}
	pl.cumLengths = floats.CumSum(make([]float64, len(lengths)), lengths)
	return pl, nil
}

func (pl *Polyline) defaultOrientation(p vectors.Vector) float64 {
	return pl.NearestSegmentTo(p).Heading()
}

// Segments returns the segments of the polyline, line after line.
func (pl *Polyline) Segments() []Segment { return pl.segments }

// Len returns the number of vertices.
func (pl *Polyline) Len() int { return len(pl.points) }

// Point returns the i-th vertex. Vertices are in order along each line,
// and the lines follow one another.
func (pl *Polyline) Point(i int) vectors.Vector { return pl.points[i] }

// Points returns the vertices.
func (pl *Polyline) Points() []vectors.Vector { return pl.points }

// Length returns the total length.
func (pl *Polyline) Length() float64 { return pl.cumLengths[len(pl.cumLengths)-1] }

// Start returns the first vertex, facing along the first segment when the
// default orientation is in use.
func (pl *Polyline) Start() vectors.OrientedVector {
	s := pl.segments[0]
	switch {
	case pl.usesDefault:
		return vectors.WithHeading(s.A, s.Heading())
	case pl.orientation != nil:
		return vectors.WithHeading(s.A, pl.orientation.Heading(s.A))
	}
	return vectors.WithHeading(s.A, 0)
}

// End returns the last vertex, facing along the last segment when the
// default orientation is in use.
func (pl *Polyline) End() vectors.OrientedVector {
	s := pl.segments[len(pl.segments)-1]
	switch {
	case pl.usesDefault:
		return vectors.WithHeading(s.B, s.Heading())
	case pl.orientation != nil:
		return vectors.WithHeading(s.B, pl.orientation.Heading(s.B))
	}
	return vectors.WithHeading(s.B, 0)
}

// UniformPointInner picks a segment with probability proportional to its
// length, then a point uniformly along it.
func (pl *Polyline) UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error) {
	s := pl.segments[weightedIndex(r, pl.cumLengths)]
	w := r.Float64()
	p := s.A.Mul(1 - w).Add(s.B.Mul(w))
	if pl.usesDefault {
		return vectors.WithHeading(p, s.Heading()), nil
	}
	return pl.orient(p), nil
}

func (pl *Polyline) ContainsPoint(p vectors.Vector) bool {
	return planar.Contains(pl.lines, vectors.ToGeom(p))
}

// ContainsObject is always false: objects have area and polylines do not.
func (pl *Polyline) ContainsObject(Object) bool { return false }

func (pl *Polyline) DistanceTo(p vectors.Vector) (float64, error) {
	return planar.Distance(pl.lines, vectors.ToGeom(p))
}

// SignedDistanceTo returns the distance to p, positive when p is to the
// left of the nearest segment and negative otherwise.
func (pl *Polyline) SignedDistanceTo(p vectors.Vector) float64 {
	d, _ := pl.DistanceTo(p)
	s := pl.NearestSegmentTo(p)
	if s.B.Sub(s.A).Cross(p.Sub(s.A)) >= 0 {
		return d
	}
	return -d
}

// Project returns the point of the polyline nearest to p.
func (pl *Polyline) Project(p vectors.Vector) vectors.Vector {
	return vectors.FromGeom(planar.NearestPoint(pl.lines, vectors.ToGeom(p)))
}

// NearestSegmentTo returns the segment containing the point of the
// polyline nearest to p.
func (pl *Polyline) NearestSegmentTo(p vectors.Vector) Segment {
	d := planar.Project(pl.lines, vectors.ToGeom(p))
	for i, cum := range pl.cumLengths {
		if d <= cum {
			return pl.segments[i]
		}
	}
	// Rounding can leave d just past the last cumulative length.
	return pl.segments[len(pl.segments)-1]
}

// PointAlongBy returns the point at distance d along the polyline. If
// normalized is true, d is a fraction of the total length.
func (pl *Polyline) PointAlongBy(d float64, normalized bool) vectors.Vector {
	if normalized {
		d *= pl.Length()
	}
	return vectors.FromGeom(planar.Interpolate(pl.lines, d))
}

// EquallySpacedPoints returns n points evenly spaced from the start to the
// end of the polyline.
func (pl *Polyline) EquallySpacedPoints(n int) []vectors.Vector {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []vectors.Vector{pl.PointAlongBy(0, false)}
	}
	ds := floats.Span(make([]float64, n), 0, pl.Length())
	o := make([]vectors.Vector, n)
	for i, d := range ds {
		o[i] = pl.PointAlongBy(d, false)
	}
	return o
}

// PointsSeparatedBy returns the points at distances 0, d, 2d, ... along
// the polyline, stopping before its length.
func (pl *Polyline) PointsSeparatedBy(d float64) []vectors.Vector {
	if d <= 0 {
		return nil
	}
	var o []vectors.Vector
	for x := 0.; x < pl.Length(); x += d {
		o = append(o, pl.PointAlongBy(x, false))
	}
	return o
}

func (pl *Polyline) AABB() (r2.Rect, error) {
	b := pl.lines.Bounds()
	return rectFromBounds(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y), nil
}

func (pl *Polyline) String() string {
	if pl.name != "" {
		return describe("Polyline", pl.name)
	}
	return fmt.Sprintf("<Polyline %d points>", len(pl.points))
}

func (pl *Polyline) shape() geom.Geom { return pl.lines }

// Lines returns the polyline geometry.
func (pl *Polyline) Lines() geom.MultiLineString { return pl.lines }

func (pl *Polyline) intersect(other Region, reversed bool) (Region, bool) {
	s := shapeOf(other)
	if s == nil {
		return nil, false
	}
	g, err := planar.Intersection(pl.lines, s)
	if err != nil {
		return nil, false
	}
	if planar.KindOf(g) == planar.CollectionKind && planar.Length(g) > 0 {
		g = planar.Filter(g, planar.LineKind)
	}
	return fromResult(g, WithOrientation(orientationFor(pl, other, reversed)))
}

func (pl *Polyline) intersects(other Region) (bool, bool) {
	s := shapeOf(other)
	if s == nil {
		return false, false
	}
	v, err := planar.Intersects(pl.lines, s)
	if err != nil {
		return false, false
	}
	return v, true
}

func (pl *Polyline) difference(other Region) (Region, bool) {
	s := shapeOf(other)
	if s == nil {
		return nil, false
	}
	g, err := planar.Difference(pl.lines, s)
	if err != nil {
		return nil, false
	}
	return fromResult(g)
}

// Concat returns a polyline holding the lines of pl followed by those of
// other.
func (pl *Polyline) Concat(other *Polyline) (*Polyline, error) {
	l := append(append(geom.MultiLineString(nil), pl.lines...), other.lines...)
	return NewPolylineFromGeom(l)
}

// PolylineUnionAll joins polylines into one region, keeping the order of
// their points. It returns a *TypeError if any region is not a Polyline,
// and Nowhere when regions is empty.
func PolylineUnionAll(regions []Region) (Region, error) {
	if len(regions) == 0 {
		return Nowhere, nil
	}
	var l geom.MultiLineString
	for _, r := range regions {
		pl, ok := r.(*Polyline)
		if !ok {
			return nil, &TypeError{Op: "PolylineUnionAll", Value: r}
		}
		l = append(l, pl.lines...)
	}
	pl, err := NewPolylineFromGeom(l)
	if err != nil {
		return nil, err
	}
	return pl, nil
}
