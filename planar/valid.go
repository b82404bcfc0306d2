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

	"github.com/ctessum/geom"
)

// InvalidError describes why a geometry is not valid.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string { return "planar: invalid geometry: " + e.Reason }

func invalid(format string, a ...interface{}) error {
	return &InvalidError{Reason: fmt.Sprintf(format, a...)}
}

func finite(p geom.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// IsValid returns an error if g is malformed: non-finite coordinates,
// lines with fewer than two points, rings with fewer than three distinct
// points, self-crossing rings or polygons without area.
func IsValid(g geom.Geom) error {
	switch t := g.(type) {
	case geom.Point:
		if !finite(t) {
			return invalid("non-finite point %v", t)
		}
	case geom.MultiPoint:
		for _, p := range t {
			if !finite(p) {
				return invalid("non-finite point %v", p)
			}
		}
	case geom.LineString:
		return validLine(t)
	case geom.MultiLineString:
		for _, l := range t {
			if err := validLine(l); err != nil {
				return err
			}
		}
	case geom.Polygon:
		for i, r := range t {
			if err := validRing(r); err != nil {
				return fmt.Errorf("ring %d: %v", i, err)
			}
		}
		if t.Area() <= 0 {
			return invalid("polygon has no area")
		}
	case geom.MultiPolygon:
		for _, p := range t {
			if err := IsValid(p); err != nil {
				return err
			}
		}
	case geom.GeometryCollection:
		for _, gg := range t {
			if err := IsValid(gg); err != nil {
				return err
			}
		}
	default:
		return invalid("unsupported geometry type %T", g)
	}
	return nil
}

func validLine(l []geom.Point) error {
	if len(l) < 2 {
		return invalid("line has %d points; at least 2 are needed", len(l))
	}
	for _, p := range l {
		if !finite(p) {
			return invalid("non-finite point %v", p)
		}
	}
	return nil
}

func validRing(r []geom.Point) error {
	r = openRing(r)
	if len(r) < 3 {
		return invalid("ring has %d distinct points; at least 3 are needed", len(r))
	}
	for _, p := range r {
		if !finite(p) {
			return invalid("non-finite point %v", p)
		}
	}
	segs := ringSegments(r)
	n := len(segs)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closing point
			}
			if properlyCross(segs[i], segs[j]) {
				return invalid("ring self-intersects between edges %d and %d", i, j)
			}
		}
	}
	return nil
}
