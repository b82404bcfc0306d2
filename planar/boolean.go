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

package planar

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// Intersection returns the points shared by a and b. Polygon-polygon
// intersections are polygons, polygon-line intersections are lines and
// line-line intersections are points.
func Intersection(a, b geom.Geom) (geom.Geom, error) {
	ka, kb := KindOf(a), KindOf(b)
	switch {
	case ka == PolygonKind && kb == PolygonKind:
		pa, _ := Flatten(a)
		pb, _ := Flatten(b)
		if IsEmpty(pa) || IsEmpty(pb) || !pa.Bounds().Overlaps(pb.Bounds()) {
			return geom.Polygon{}, nil
		}
		o, err := overlayPolygons("Intersection", pa, pb)
		if err != nil {
			return nil, err
		}
		return o.inter, nil
	case ka == LineKind && kb == PolygonKind:
		l, _ := Lines(a)
		p, _ := Flatten(b)
		return clipLines(l, p, true), nil
	case ka == PolygonKind && kb == LineKind:
		return Intersection(b, a)
	case ka == LineKind && kb == LineKind:
		return lineCrossings(a, b), nil
	}
	return nil, &UnsupportedError{Op: "Intersection", A: a, B: b}
}

// Difference returns the points of a that are not in b.
func Difference(a, b geom.Geom) (geom.Geom, error) {
	ka, kb := KindOf(a), KindOf(b)
	switch {
	case ka == PolygonKind && kb == PolygonKind:
		pa, _ := Flatten(a)
		pb, _ := Flatten(b)
		if IsEmpty(pa) || IsEmpty(pb) || !pa.Bounds().Overlaps(pb.Bounds()) {
			return pa, nil
		}
		o, err := overlayPolygons("Difference", pa, pb)
		if err != nil {
			return nil, err
		}
		return o.aOnly, nil
	case ka == LineKind && kb == PolygonKind:
		l, _ := Lines(a)
		p, _ := Flatten(b)
		return clipLines(l, p, false), nil
	case ka == PolygonKind && kb == LineKind:
		// Removing a zero-area set leaves the polygon unchanged.
		p, _ := Flatten(a)
		return p, nil
	case ka == LineKind && kb == LineKind:
		l, _ := Lines(a)
		return l, nil
	}
	return nil, &UnsupportedError{Op: "Difference", A: a, B: b}
}

// Union returns the points in a or b.
func Union(a, b geom.Polygon) (geom.Polygon, error) {
	switch {
	case IsEmpty(a):
		return b, nil
	case IsEmpty(b):
		return a, nil
	case !a.Bounds().Overlaps(b.Bounds()):
		o := make(geom.Polygon, 0, len(a)+len(b))
		return append(append(o, a...), b...), nil
	}
	o, err := overlayPolygons("Union", a, b)
	if err != nil {
		return nil, err
	}
	return o.union, nil
}

// UnionAll returns the union of polys, each first grown by buf when buf
// is positive.
func UnionAll(polys []geom.Polygon, buf float64) (geom.Polygon, error) {
	var o geom.Polygon
	for _, p := range polys {
		var err error
		if buf > 0 {
			if p, err = Buffer(p, buf, DefaultResolution); err != nil {
				return nil, err
			}
		}
		if o, err = Union(o, p); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// DegenerateError is returned when two polygons cannot be clipped
// against each other consistently.
type DegenerateError struct {
	Op   string
	A, B geom.Polygon
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("planar: %s of polygons with %d and %d rings has no consistent result",
		e.Op, len(e.A), len(e.B))
}

// overlay holds the pieces of two polygons a and b laid over each other.
type overlay struct {
	inter, aOnly, bOnly, union geom.Polygon
}

// nudges are the offsets, as fractions of the operands' extent, applied to
// the second operand in turn until its overlay with the first is
// consistent. None is parallel to the axes or the diagonals.
var nudges = []geom.Point{
	{X: 0, Y: 0},
	{X: 7.0710678e-10, Y: 3.1830989e-10},
	{X: -2.7182818e-8, Y: 5.7721566e-8},
	{X: 1.4142136e-6, Y: -1.7320508e-6},
}

// overlayPolygons clips a and b with every boolean operation. The sweep in
// the clipper can drop rings, or return nothing at all, when a vertex of
// one polygon lies on the boundary of the other. Those results break the
// area identities between the pieces, so when the identities fail b is
// nudged by a tiny offset and the clip is repeated. Slivers and
// near-duplicate vertices no wider than the nudge are removed from the
// result.
func overlayPolygons(op string, a, b geom.Polygon) (overlay, error) {
	ext := extent(a, b)
	for _, n := range nudges {
		bb, w := b, Tolerance
		if n.X != 0 || n.Y != 0 {
			bb = translate(b, n.X*ext, n.Y*ext)
			w = 4 * math.Hypot(n.X, n.Y) * ext
		}
		o, ok := clip(a, bb)
		if ok && o.consistent(a, bb) {
			return overlay{
				inter: simplify(o.inter, w),
				aOnly: simplify(o.aOnly, w),
				bOnly: simplify(o.bOnly, w),
				union: simplify(o.union, w),
			}, nil
		}
	}
	return overlay{}, &DegenerateError{Op: op, A: a, B: b}
}

// clip runs the clipper. It returns false if the clipper panicked.
func clip(a, b geom.Polygon) (o overlay, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	o = overlay{
		inter: clean(a.Intersection(b)),
		aOnly: clean(a.Difference(b)),
		bOnly: clean(b.Difference(a)),
		union: clean(a.Union(b)),
	}
	return o, true
}

// consistent checks o against the identities
//
//	|a∩b| + |a−b| = |a|
//	|a∩b| + |b−a| = |b|
//	|a∩b| + |a−b| + |b−a| = |a∪b|
//
// and, when the intersection is empty, that a and b really have no
// interior point in common.
func (o overlay) consistent(a, b geom.Polygon) bool {
	aa, ab := a.Area(), b.Area()
	ai, ad, ae, au := o.inter.Area(), o.aOnly.Area(), o.bOnly.Area(), o.union.Area()
	eps := 1.e-6 * (aa + ab)
	switch {
	case math.Abs(ai+ad-aa) > eps, math.Abs(ai+ae-ab) > eps, math.Abs(ai+ad+ae-au) > eps:
		return false
	case ai <= eps:
		return !interiorsMeet(a, b)
	}
	return true
}

// interiorsMeet reports whether a and b overlap with positive area: their
// boundaries cross, or a vertex or triangle centroid of one lies strictly
// inside the other.
func interiorsMeet(a, b geom.Polygon) bool {
	sb := segmentsOf(b)
	for _, s := range segmentsOf(a) {
		for _, t := range sb {
			if properlyCross(s, t) {
				return true
			}
		}
	}
	return anyInside(a, b) || anyInside(b, a)
}

func anyInside(p, q geom.Polygon) bool {
	for _, r := range p {
		for _, v := range r {
			if Within(v, q) == geom.Inside {
				return true
			}
		}
	}
	tris, _ := Triangulate(p)
	for _, t := range tris {
		c := geom.Point{X: (t[0].X + t[1].X + t[2].X) / 3, Y: (t[0].Y + t[1].Y + t[2].Y) / 3}
		if Within(c, q) == geom.Inside {
			return true
		}
	}
	return false
}

// extent returns the larger side of the box bounding a and b.
func extent(a, b geom.Polygon) float64 {
	bb := a.Bounds()
	bb.Extend(b.Bounds())
	return math.Max(bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y)
}

func translate(p geom.Polygon, dx, dy float64) geom.Polygon {
	o := make(geom.Polygon, len(p))
	for i, r := range p {
		o[i] = make([]geom.Point, len(r))
		for j, v := range r {
			o[i][j] = geom.Point{X: v.X + dx, Y: v.Y + dy}
		}
	}
	return o
}

// clean drops degenerate rings left over from clipping.
func clean(p geom.Polygon) geom.Polygon {
	var o geom.Polygon
	for _, r := range p {
		r = openRing(r)
		if len(r) < 3 {
			continue
		}
		if (geom.Polygon{r}).Area() <= Tolerance*Tolerance {
			continue
		}
		o = append(o, closeRing(r))
	}
	return o
}

// simplify removes the vertices of p that lie within w of the edge joining
// their neighbours, then the rings thinner than w.
func simplify(p geom.Polygon, w float64) geom.Polygon {
	var o geom.Polygon
	for _, r := range p {
		r = simplifyRing(openRing(r), w)
		if len(r) < 3 {
			continue
		}
		var perimeter float64
		for _, s := range ringSegments(r) {
			perimeter += s.length()
		}
		if 2*math.Abs(signedArea(r)) <= w*perimeter {
			continue
		}
		o = append(o, closeRing(r))
	}
	return o
}

func simplifyRing(r []geom.Point, w float64) []geom.Point {
	for changed := true; changed && len(r) >= 3; {
		changed = false
		for i := 0; i < len(r) && len(r) >= 3; i++ {
			prev, next := r[(i+len(r)-1)%len(r)], r[(i+1)%len(r)]
			if dist(prev, r[i]) <= w || distToSegment(segment{prev, next}, r[i]) <= w {
				r = append(r[:i:i], r[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return r
}

// clipLines returns the parts of l inside p, boundary included, when
// inside is true and the parts outside p otherwise.
func clipLines(l geom.MultiLineString, p geom.Polygon, inside bool) geom.MultiLineString {
	edges := segmentsOf(p)
	var o geom.MultiLineString
	var cur geom.LineString
	flush := func() {
		if len(cur) >= 2 {
			o = append(o, cur)
		}
		cur = nil
	}
	for _, line := range l {
		for _, s := range lineSegments(line) {
			if s.length() == 0 {
				continue
			}
			ts := []float64{0, 1}
			for _, e := range edges {
				ts = append(ts, segmentParams(s, e)...)
			}
			sort.Float64s(ts)
			for k := 0; k < len(ts)-1; k++ {
				t0, t1 := ts[k], ts[k+1]
				if t1-t0 <= 1.e-12 {
					continue
				}
				mid := lerp(s.a, s.b, (t0+t1)/2)
				if (Within(mid, p) != geom.Outside) != inside {
					flush()
					continue
				}
				p0, p1 := lerp(s.a, s.b, t0), lerp(s.a, s.b, t1)
				if len(cur) > 0 && samePoint(cur[len(cur)-1], p0) {
					cur = append(cur, p1)
				} else {
					flush()
					cur = geom.LineString{p0, p1}
				}
			}
		}
		flush()
	}
	return o
}

// lineCrossings returns the points where the linear geometries a and b
// meet.
func lineCrossings(a, b geom.Geom) geom.MultiPoint {
	var o geom.MultiPoint
	for _, s := range segmentsOf(a) {
		for _, t := range segmentsOf(b) {
			for _, u := range segmentParams(s, t) {
				p := lerp(s.a, s.b, u)
				dup := false
				for _, q := range o {
					if samePoint(p, q) {
						dup = true
						break
					}
				}
				if !dup {
					o = append(o, p)
				}
			}
		}
	}
	return o
}
