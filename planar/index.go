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
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Prepared is a polygon with a spatial index over its edges, for
// repeated containment queries.
type Prepared struct {
	poly   geom.Polygon
	bounds *geom.Bounds
	edges  *rtree.Rtree
}

type indexedEdge struct {
	geom.LineString
	s segment
}

// Prepare indexes the edges of p.
func Prepare(p geom.Polygon) *Prepared {
	pp := &Prepared{
		poly:   p,
		bounds: p.Bounds(),
		edges:  rtree.NewTree(25, 50),
	}
	for _, s := range segmentsOf(p) {
		pp.edges.Insert(indexedEdge{LineString: geom.LineString{s.a, s.b}, s: s})
	}
	return pp
}

// Polygon returns the prepared polygon.
func (pp *Prepared) Polygon() geom.Polygon { return pp.poly }

func pad(b *geom.Bounds, d float64) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: geom.Point{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

func (pp *Prepared) nearbyEdges(b *geom.Bounds) []segment {
	found := pp.edges.SearchIntersect(pad(b, Tolerance))
	o := make([]segment, len(found))
	for i, f := range found {
		o[i] = f.(indexedEdge).s
	}
	return o
}

// ContainsPoint reports whether p is in the polygon, boundary included.
func (pp *Prepared) ContainsPoint(p geom.Point) bool {
	if !pad(pp.bounds, Tolerance).Overlaps(geom.NewBoundsPoint(p)) {
		return false
	}
	for _, s := range pp.nearbyEdges(geom.NewBoundsPoint(p)) {
		if onSegment(s, p) {
			return true
		}
	}
	return p.Within(pp.poly) != geom.Outside
}

// Contains reports whether g lies entirely in the polygon. g may be
// polygonal, linear or a set of points; boundaries may touch.
func (pp *Prepared) Contains(g geom.Geom) bool {
	if IsEmpty(g) {
		return true
	}
	if !pad(pp.bounds, Tolerance).Overlaps(g.Bounds()) {
		return false
	}
	var verts []geom.Point
	switch KindOf(g) {
	case PointKind:
		verts, _ = Points(g)
	case LineKind, PolygonKind:
		for _, s := range segmentsOf(g) {
			verts = append(verts, s.a, s.b)
		}
	default:
		return false
	}
	for _, v := range verts {
		if !pp.ContainsPoint(v) {
			return false
		}
	}
	segs := segmentsOf(g)
	for _, s := range segs {
		b := geom.LineString{s.a, s.b}.Bounds()
		for _, e := range pp.nearbyEdges(b) {
			if properlyCross(s, e) {
				return false
			}
		}
		// Edges running between two boundary points may still leave the
		// polygon through the exterior.
		if !pp.ContainsPoint(lerp(s.a, s.b, 0.5)) {
			return false
		}
	}
	if q, ok := Flatten(g); ok {
		// A vertex of the polygon strictly inside g means g covers part of
		// the exterior or a hole.
		for _, s := range segmentsOf(pp.poly) {
			if Within(s.a, q) == geom.Inside {
				return false
			}
		}
	}
	return true
}

// PointIndex is a set of points with a spatial index for nearest-neighbor
// and radius queries.
type PointIndex struct {
	pts    []geom.Point
	tree   *rtree.Rtree
	bounds *geom.Bounds
}

type indexedPoint struct {
	geom.Point
	i int
}

// NewPointIndex indexes pts. Indices returned by queries refer to pts.
func NewPointIndex(pts []geom.Point) *PointIndex {
	x := &PointIndex{
		pts:    pts,
		tree:   rtree.NewTree(25, 50),
		bounds: geom.NewBounds(),
	}
	for i, p := range pts {
		x.tree.Insert(indexedPoint{Point: p, i: i})
		x.bounds.Extend(p.Bounds())
	}
	return x
}

// Len returns the number of indexed points.
func (x *PointIndex) Len() int { return len(x.pts) }

// Point returns the i-th point.
func (x *PointIndex) Point(i int) geom.Point { return x.pts[i] }

func (x *PointIndex) search(c geom.Point, r float64) []int {
	found := x.tree.SearchIntersect(pad(geom.NewBoundsPoint(c), r))
	o := make([]int, len(found))
	for i, f := range found {
		o[i] = f.(indexedPoint).i
	}
	return o
}

// Nearest returns the index of the point closest to p and its distance.
// It returns -1 and +Inf when the index is empty.
func (x *PointIndex) Nearest(p geom.Point) (int, float64) {
	if len(x.pts) == 0 {
		return -1, math.Inf(1)
	}
	b := x.bounds
	extent := math.Max(b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)
	r := extent / math.Sqrt(float64(len(x.pts)))
	if r <= 0 {
		r = Tolerance
	}
	// Distance from p to the bounding box, so the first search can succeed.
	dx := math.Max(0, math.Max(b.Min.X-p.X, p.X-b.Max.X))
	dy := math.Max(0, math.Max(b.Min.Y-p.Y, p.Y-b.Max.Y))
	r += math.Hypot(dx, dy)
	for {
		cand := x.search(p, r)
		if len(cand) > 0 {
			best, bestD := -1, math.Inf(1)
			for _, i := range x.search(p, bestCandidate(x, cand, p)) {
				if d := dist(p, x.pts[i]); d < bestD || (d == bestD && i < best) {
					best, bestD = i, d
				}
			}
			return best, bestD
		}
		r *= 2
	}
}

func bestCandidate(x *PointIndex, cand []int, p geom.Point) float64 {
	d := math.Inf(1)
	for _, i := range cand {
		d = math.Min(d, dist(p, x.pts[i]))
	}
	return d
}

// WithinRadius returns, in ascending order, the indices of the points at
// most r from c.
func (x *PointIndex) WithinRadius(c geom.Point, r float64) []int {
	var o []int
	for _, i := range x.search(c, r) {
		if dist(c, x.pts[i]) <= r {
			o = append(o, i)
		}
	}
	sort.Ints(o)
	return o
}
