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

// Circle returns a polygon approximating the circle of radius r around c,
// with resolution segments per quarter circle.
func Circle(c geom.Point, r float64, resolution int) geom.Polygon {
	if resolution < 1 {
		resolution = 1
	}
	n := 4 * resolution
	ring := make([]geom.Point, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = geom.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	ring[n] = ring[0]
	return geom.Polygon{ring}
}

// Buffer grows p outward by d. It is the union of p with a capsule around
// every boundary edge, each capsule being the points within d of the edge.
// Non-positive distances return p unchanged.
func Buffer(p geom.Polygon, d float64, resolution int) (geom.Polygon, error) {
	if d <= 0 || IsEmpty(p) {
		return p, nil
	}
	o := clean(p)
	for _, s := range segmentsOf(p) {
		if s.length() == 0 {
			continue
		}
		var err error
		if o, err = Union(o, capsule(s, d, resolution)); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// capsule returns the counter-clockwise polygon within d of s, with its
// round ends approximated by resolution segments per quarter circle.
func capsule(s segment, d float64, resolution int) geom.Polygon {
	if resolution < 1 {
		resolution = 1
	}
	n := 2 * resolution
	theta := math.Atan2(s.b.Y-s.a.Y, s.b.X-s.a.X)
	ring := make([]geom.Point, 0, 2*n+3)
	for _, end := range []struct {
		c     geom.Point
		start float64
	}{{s.b, theta - math.Pi/2}, {s.a, theta + math.Pi/2}} {
		for i := 0; i <= n; i++ {
			a := end.start + math.Pi*float64(i)/float64(n)
			ring = append(ring, geom.Point{X: end.c.X + d*math.Cos(a), Y: end.c.Y + d*math.Sin(a)})
		}
	}
	return geom.Polygon{append(ring, ring[0])}
}
