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

	"github.com/ctessum/geom"
)

// closestOnSegment returns the parameter t in [0, 1] of the point on s
// closest to p.
func closestOnSegment(s segment, p geom.Point) float64 {
	dx, dy := s.b.X-s.a.X, s.b.Y-s.a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	t := ((p.X-s.a.X)*dx + (p.Y-s.a.Y)*dy) / l2
	return math.Max(0, math.Min(1, t))
}

func distToSegment(s segment, p geom.Point) float64 {
	return dist(p, lerp(s.a, s.b, closestOnSegment(s, p)))
}

func onSegment(s segment, p geom.Point) bool {
	return distToSegment(s, p) <= Tolerance
}

// segmentParams returns the parameters along s at which it meets t: a
// single value for a crossing or touch, and the ends of the shared part
// when the segments overlap.
func segmentParams(s, t segment) []float64 {
	r := geom.Point{X: s.b.X - s.a.X, Y: s.b.Y - s.a.Y}
	q := geom.Point{X: t.b.X - t.a.X, Y: t.b.Y - t.a.Y}
	denom := r.X*q.Y - r.Y*q.X
	w := geom.Point{X: t.a.X - s.a.X, Y: t.a.Y - s.a.Y}
	rr := r.X*r.X + r.Y*r.Y
	if rr == 0 {
		if onSegment(t, s.a) {
			return []float64{0}
		}
		return nil
	}
	if math.Abs(denom) <= Tolerance*Tolerance*rr {
		// Parallel.
		if math.Abs(w.X*r.Y-w.Y*r.X) > Tolerance*math.Sqrt(rr) {
			return nil
		}
		t0 := (w.X*r.X + w.Y*r.Y) / rr
		t1 := ((t.b.X-s.a.X)*r.X + (t.b.Y-s.a.Y)*r.Y) / rr
		lo, hi := math.Max(0, math.Min(t0, t1)), math.Min(1, math.Max(t0, t1))
		if lo > hi {
			return nil
		}
		if lo == hi {
			return []float64{lo}
		}
		return []float64{lo, hi}
	}
	ts := (w.X*q.Y - w.Y*q.X) / denom
	us := (w.X*r.Y - w.Y*r.X) / denom
	const eps = 1.e-12
	if ts < -eps || ts > 1+eps || us < -eps || us > 1+eps {
		// Near misses at the segment ends still count as touches.
		for _, p := range []geom.Point{t.a, t.b} {
			if onSegment(s, p) {
				return []float64{closestOnSegment(s, p)}
			}
		}
		for _, p := range []geom.Point{s.a, s.b} {
			if onSegment(t, p) {
				return []float64{closestOnSegment(s, p)}
			}
		}
		return nil
	}
	return []float64{math.Max(0, math.Min(1, ts))}
}

func segmentsTouch(s, t segment) bool { return len(segmentParams(s, t)) > 0 }

// properlyCross reports whether s and t cross at a single point interior
// to both.
func properlyCross(s, t segment) bool {
	d1 := cross(t.a, t.b, s.a)
	d2 := cross(t.a, t.b, s.b)
	d3 := cross(s.a, s.b, t.a)
	d4 := cross(s.a, s.b, t.b)
	scale := Tolerance * (s.length() + t.length())
	return ((d1 > scale && d2 < -scale) || (d1 < -scale && d2 > scale)) &&
		((d3 > scale && d4 < -scale) || (d3 < -scale && d4 > scale))
}

// Within returns the position of p relative to polygon g.
func Within(p geom.Point, g geom.Polygon) geom.WithinStatus {
	for _, s := range segmentsOf(g) {
		if onSegment(s, p) {
			return geom.OnEdge
		}
	}
	return p.Within(g)
}

// Distance returns the distance from p to g. Points inside a polygon are at
// distance zero.
func Distance(g geom.Geom, p geom.Point) (float64, error) {
	switch KindOf(g) {
	case PolygonKind:
		poly, _ := Flatten(g)
		if Within(p, poly) != geom.Outside {
			return 0, nil
		}
		return segmentDistance(segmentsOf(poly), p), nil
	case LineKind:
		return segmentDistance(segmentsOf(g), p), nil
	case PointKind:
		pts, _ := Points(g)
		d := math.Inf(1)
		for _, q := range pts {
			d = math.Min(d, dist(p, q))
		}
		return d, nil
	case CollectionKind:
		d := math.Inf(1)
		for _, gg := range g.(geom.GeometryCollection) {
			dd, err := Distance(gg, p)
			if err != nil {
				return 0, err
			}
			d = math.Min(d, dd)
		}
		return d, nil
	}
	return 0, &UnsupportedError{Op: "Distance", A: g}
}

func segmentDistance(segs []segment, p geom.Point) float64 {
	d := math.Inf(1)
	for _, s := range segs {
		d = math.Min(d, distToSegment(s, p))
	}
	return d
}

// Contains reports whether p lies in g, boundary included.
func Contains(g geom.Geom, p geom.Point) bool {
	d, err := Distance(g, p)
	return err == nil && d <= Tolerance
}

// Intersects reports whether a and b share at least one point.
func Intersects(a, b geom.Geom) (bool, error) {
	ka, kb := KindOf(a), KindOf(b)
	if ka == Unknown || kb == Unknown || ka == CollectionKind || kb == CollectionKind {
		return false, &UnsupportedError{Op: "Intersects", A: a, B: b}
	}
	if IsEmpty(a) || IsEmpty(b) {
		return false, nil
	}
	if !a.Bounds().Overlaps(b.Bounds()) {
		return false, nil
	}
	if ka == PointKind || kb == PointKind {
		pg, other := a, b
		if kb == PointKind {
			pg, other = b, a
		}
		pts, _ := Points(pg)
		for _, p := range pts {
			if Contains(other, p) {
				return true, nil
			}
		}
		return false, nil
	}
	sa, sb := segmentsOf(a), segmentsOf(b)
	for _, s := range sa {
		for _, t := range sb {
			if segmentsTouch(s, t) {
				return true, nil
			}
		}
	}
	// No boundary contact, so one may lie inside the other.
	if pa, ok := Flatten(a); ok && len(sb) > 0 && Within(sb[0].a, pa) != geom.Outside {
		return true, nil
	}
	if pb, ok := Flatten(b); ok && len(sa) > 0 && Within(sa[0].a, pb) != geom.Outside {
		return true, nil
	}
	return false, nil
}

// Project returns the distance along l of the point of l nearest to p.
func Project(l geom.MultiLineString, p geom.Point) float64 {
	best, bestD, cum := 0., math.Inf(1), 0.
	for _, s := range segmentsOf(l) {
		t := closestOnSegment(s, p)
		if d := dist(p, lerp(s.a, s.b, t)); d < bestD {
			bestD = d
			best = cum + t*s.length()
		}
		cum += s.length()
	}
	return best
}

// Interpolate returns the point at distance d along l. Negative distances
// are measured back from the end; distances beyond the ends are clamped.
func Interpolate(l geom.MultiLineString, d float64) geom.Point {
	segs := segmentsOf(l)
	if len(segs) == 0 {
		if len(l) > 0 && len(l[0]) > 0 {
			return l[0][0]
		}
		return geom.Point{}
	}
	total := l.Length()
	if d < 0 {
		d += total
	}
	d = math.Max(0, math.Min(total, d))
	cum := 0.
	for _, s := range segs {
		sl := s.length()
		if d <= cum+sl && sl > 0 {
			return lerp(s.a, s.b, (d-cum)/sl)
		}
		cum += sl
	}
	return segs[len(segs)-1].b
}

// NearestPoint returns the point of l nearest to p.
func NearestPoint(l geom.MultiLineString, p geom.Point) geom.Point {
	best, bestD := p, math.Inf(1)
	for _, s := range segmentsOf(l) {
		q := lerp(s.a, s.b, closestOnSegment(s, p))
		if d := dist(p, q); d < bestD {
			best, bestD = q, d
		}
	}
	return best
}
