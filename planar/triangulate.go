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

// Triangle is a triangle in the plane.
type Triangle [3]geom.Point

// Area returns the area of t.
func (t Triangle) Area() float64 { return math.Abs(cross(t[0], t[1], t[2])) / 2 }

// Bounds returns the bounding box of t.
func (t Triangle) Bounds() *geom.Bounds {
	return geom.LineString{t[0], t[1], t[2]}.Bounds()
}

// Contains reports whether p is in t, edges included.
func (t Triangle) Contains(p geom.Point) bool {
	return inTriangle(p, t[0], t[1], t[2], Tolerance)
}

// Polygon returns t as a polygon.
func (t Triangle) Polygon() geom.Polygon {
	return geom.Polygon{[]geom.Point{t[0], t[1], t[2], t[0]}}
}

func inTriangle(p, a, b, c geom.Point, eps float64) bool {
	d1, d2, d3 := cross(a, b, p), cross(b, c, p), cross(c, a, p)
	scale := eps * (dist(a, b) + dist(b, c) + dist(c, a))
	hasNeg := d1 < -scale || d2 < -scale || d3 < -scale
	hasPos := d1 > scale || d2 > scale || d3 > scale
	return !(hasNeg && hasPos)
}

func signedArea(r []geom.Point) float64 {
	var a float64
	for i := range r {
		j := (i + 1) % len(r)
		a += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return a / 2
}

func reversed(r []geom.Point) []geom.Point {
	o := make([]geom.Point, len(r))
	for i, p := range r {
		o[len(r)-1-i] = p
	}
	return o
}

// Components splits an even-odd polygon into polygons that each have one
// outer ring followed by the holes directly inside it.
func Components(p geom.Polygon) []geom.Polygon {
	var rings [][]geom.Point
	for _, r := range p {
		if r = openRing(r); len(r) >= 3 {
			rings = append(rings, r)
		}
	}
	n := len(rings)
	depth := make([]int, n)
	parent := make([]int, n)
	areas := make([]float64, n)
	for i, r := range rings {
		areas[i] = math.Abs(signedArea(r))
	}
	for i, r := range rings {
		parent[i] = -1
		q := ringTestPoint(r, rings, i)
		for j, other := range rings {
			if i == j {
				continue
			}
			if q.Within(geom.Polygon{other}) == geom.Inside {
				depth[i]++
				if parent[i] < 0 || areas[j] < areas[parent[i]] {
					parent[i] = j
				}
			}
		}
	}
	index := make(map[int]int)
	var o []geom.Polygon
	for i, r := range rings {
		if depth[i]%2 == 0 {
			index[i] = len(o)
			o = append(o, geom.Polygon{closeRing(r)})
		}
	}
	for i, r := range rings {
		if depth[i]%2 == 1 && parent[i] >= 0 {
			if k, ok := index[parent[i]]; ok {
				o[k] = append(o[k], closeRing(r))
			}
		}
	}
	return o
}

// ringTestPoint returns a vertex of rings[i] that does not lie on any other
// ring, or the midpoint of its first edge if there is none.
func ringTestPoint(r []geom.Point, rings [][]geom.Point, i int) geom.Point {
	for _, v := range r {
		onOther := false
		for j, other := range rings {
			if j == i {
				continue
			}
			for _, s := range ringSegments(other) {
				if onSegment(s, v) {
					onOther = true
					break
				}
			}
		}
		if !onOther {
			return v
		}
	}
	return lerp(r[0], r[1], 0.5)
}

// Triangulate decomposes p into triangles by ear clipping. Holes are
// joined to their outer ring by bridge edges first.
func Triangulate(p geom.Polygon) ([]Triangle, error) {
	var o []Triangle
	for _, c := range Components(p) {
		ring := bridgeHoles(c)
		tris, err := earClip(ring)
		if err != nil {
			return nil, err
		}
		o = append(o, tris...)
	}
	return o, nil
}

// bridgeHoles returns the outer ring of c, counter-clockwise, with each
// hole spliced in through a bridge to a visible outer vertex.
func bridgeHoles(c geom.Polygon) []geom.Point {
	outer := openRing(c[0])
	if signedArea(outer) < 0 {
		outer = reversed(outer)
	}
	var holes [][]geom.Point
	for _, h := range c[1:] {
		h = openRing(h)
		if signedArea(h) > 0 {
			h = reversed(h)
		}
		holes = append(holes, h)
	}
	maxX := func(h []geom.Point) (int, float64) {
		mi := 0
		for i, q := range h {
			if q.X > h[mi].X {
				mi = i
			}
		}
		return mi, h[mi].X
	}
	sort.SliceStable(holes, func(i, j int) bool {
		_, xi := maxX(holes[i])
		_, xj := maxX(holes[j])
		return xi > xj
	})
	var holeSegs []segment
	for _, h := range holes {
		holeSegs = append(holeSegs, ringSegments(h)...)
	}
	for _, h := range holes {
		mi, _ := maxX(h)
		m := h[mi]
		order := make([]int, len(outer))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return dist(m, outer[order[i]]) < dist(m, outer[order[j]])
		})
		best := order[0]
		for _, vi := range order {
			if bridgeVisible(segment{m, outer[vi]}, outer, holeSegs, c) {
				best = vi
				break
			}
		}
		merged := make([]geom.Point, 0, len(outer)+len(h)+2)
		merged = append(merged, outer[:best+1]...)
		merged = append(merged, h[mi:]...)
		merged = append(merged, h[:mi+1]...)
		merged = append(merged, outer[best:]...)
		outer = merged
	}
	return outer
}

func bridgeVisible(b segment, outer []geom.Point, holeSegs []segment, c geom.Polygon) bool {
	for _, s := range ringSegments(outer) {
		if properlyCross(b, s) {
			return false
		}
	}
	for _, s := range holeSegs {
		if properlyCross(b, s) {
			return false
		}
	}
	return Within(lerp(b.a, b.b, 0.5), c) != geom.Outside
}

// earClip triangulates the simple counter-clockwise ring r.
func earClip(r []geom.Point) ([]Triangle, error) {
	idx := make([]int, len(r))
	for i := range idx {
		idx[i] = i
	}
	var o []Triangle
	remove := func(i int) { idx = append(idx[:i], idx[i+1:]...) }
	for len(idx) > 3 {
		n := len(idx)
		clipped := false
		firstConvex := -1
		for i := 0; i < n; i++ {
			a, b, c := r[idx[(i+n-1)%n]], r[idx[i]], r[idx[(i+1)%n]]
			if cross(a, b, c) <= Tolerance*Tolerance {
				continue
			}
			if firstConvex < 0 {
				firstConvex = i
			}
			if earBlocked(a, b, c, idx, r) {
				continue
			}
			o = append(o, Triangle{a, b, c})
			remove(i)
			clipped = true
			break
		}
		if clipped {
			continue
		}
		// No clean ear: drop a degenerate vertex if there is one, otherwise
		// clip the first convex vertex.
		removed := false
		for i := 0; i < n; i++ {
			a, b, c := r[idx[(i+n-1)%n]], r[idx[i]], r[idx[(i+1)%n]]
			if math.Abs(cross(a, b, c)) <= Tolerance*Tolerance {
				remove(i)
				removed = true
				break
			}
		}
		if removed {
			continue
		}
		if firstConvex < 0 {
			return nil, fmt.Errorf("planar: cannot triangulate ring with %d vertices", len(r))
		}
		i := firstConvex
		o = append(o, Triangle{r[idx[(i+n-1)%n]], r[idx[i]], r[idx[(i+1)%n]]})
		remove(i)
	}
	if len(idx) == 3 {
		if t := (Triangle{r[idx[0]], r[idx[1]], r[idx[2]]}); t.Area() > 0 {
			o = append(o, t)
		}
	}
	return o, nil
}

func earBlocked(a, b, c geom.Point, idx []int, r []geom.Point) bool {
	for _, k := range idx {
		p := r[k]
		if samePoint(p, a) || samePoint(p, b) || samePoint(p, c) {
			continue
		}
		if inTriangle(p, a, b, c, Tolerance) {
			return true
		}
	}
	return false
}
