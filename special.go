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
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/vectors"
)

// AllRegion is the whole plane.
type AllRegion struct{ base }

// EmptyRegion contains no points.
type EmptyRegion struct{ base }

var (
	// Everywhere is the region containing every point.
	Everywhere = &AllRegion{base{name: "everywhere"}}

	// Nowhere is the region containing no points.
	Nowhere = &EmptyRegion{base{name: "nowhere"}}
)

// IsEverywhere reports whether r is an AllRegion. All AllRegions are
// equal regardless of name.
func IsEverywhere(r Region) bool {
	_, ok := r.(*AllRegion)
	return ok
}

// IsNowhere reports whether r is an EmptyRegion. All EmptyRegions are
// equal regardless of name.
func IsNowhere(r Region) bool {
	_, ok := r.(*EmptyRegion)
	return ok
}

func (a *AllRegion) ContainsPoint(vectors.Vector) bool { return true }

func (a *AllRegion) ContainsObject(Object) bool { return true }

// ContainsRegion reports whether other is a subset of the plane, which it
// always is.
func (a *AllRegion) ContainsRegion(Region, float64) (bool, error) { return true, nil }

func (a *AllRegion) DistanceTo(vectors.Vector) (float64, error) { return 0, nil }

func (a *AllRegion) AABB() (r2.Rect, error) { return r2.EmptyRect(), notImplemented("AABB", a) }

func (a *AllRegion) UniformPointInner(*rand.Rand) (vectors.OrientedVector, error) {
	return vectors.OrientedVector{}, notImplemented("UniformPointInner", a)
}

func (a *AllRegion) String() string { return describe("AllRegion", a.name) }

func (a *AllRegion) intersect(other Region, _ bool) (Region, bool) { return other, true }

func (a *AllRegion) intersects(other Region) (bool, bool) { return !IsNowhere(other), true }

func (a *AllRegion) union(Region, bool) (Region, bool, error) { return a, true, nil }

func (e *EmptyRegion) ContainsPoint(vectors.Vector) bool { return false }

func (e *EmptyRegion) ContainsObject(Object) bool { return false }

// ContainsRegion reports whether other is empty.
func (e *EmptyRegion) ContainsRegion(other Region, _ float64) (bool, error) {
	return IsNowhere(other), nil
}

func (e *EmptyRegion) DistanceTo(vectors.Vector) (float64, error) { return math.Inf(1), nil }

func (e *EmptyRegion) AABB() (r2.Rect, error) { return r2.EmptyRect(), notImplemented("AABB", e) }

func (e *EmptyRegion) UniformPointInner(*rand.Rand) (vectors.OrientedVector, error) {
	return vectors.OrientedVector{}, reject("sampling empty region")
}

func (e *EmptyRegion) String() string { return describe("EmptyRegion", e.name) }

func (e *EmptyRegion) intersect(Region, bool) (Region, bool) { return e, true }

func (e *EmptyRegion) intersects(Region) (bool, bool) { return false, true }

func (e *EmptyRegion) difference(Region) (Region, bool) { return e, true }

func (e *EmptyRegion) union(other Region, _ bool) (Region, bool, error) { return other, true, nil }
