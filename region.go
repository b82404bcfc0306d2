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

// Package regions is an algebra of two-dimensional regions: circles,
// sectors, rectangles, polylines, polygons, point sets and obstacle grids,
// together with their intersections, unions and differences.
//
// Every region answers point and object membership queries and can draw
// points uniformly from its interior. Combining two regions uses the most
// specific rule available for that pair of types and falls back to a
// generic composite that samples by rejection, so that callers can always
// combine regions without knowing their concrete types.
package regions

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/vectors"
)

// Version gives the version number.
const Version = "0.1.0"

// Region is a set of points in the plane.
type Region interface {
	// Name returns the region's name, which may be empty.
	Name() string

	// Orientation returns the region's preferred orientation field, or
	// nil if it has none.
	Orientation() Orientation

	// ContainsPoint reports whether p is in the region.
	ContainsPoint(p vectors.Vector) bool

	// ContainsObject reports whether o lies entirely in the region.
	ContainsObject(o Object) bool

	// DistanceTo returns the distance from p to the region, which is zero
	// for points inside it.
	DistanceTo(p vectors.Vector) (float64, error)

	// AABB returns the axis-aligned bounding box of the region.
	AABB() (r2.Rect, error)

	// UniformPointInner draws a point uniformly from the region. It
	// returns a *RejectionError if the draw failed and may be retried.
	UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error)

	String() string
}

// Object is something that can be placed in a region.
type Object interface {
	// Corners returns the corners of the object's footprint, in order
	// around its boundary.
	Corners() []vectors.Vector

	// ContainsPoint reports whether p is in the object's footprint.
	ContainsPoint(p vectors.Vector) bool
}

// base holds the fields shared by all regions.
type base struct {
	name        string
	orientation Orientation
}

func (b *base) Name() string { return b.name }

func (b *base) Orientation() Orientation { return b.orientation }

func (b *base) orient(v vectors.Vector) vectors.OrientedVector {
	if b.orientation == nil {
		return vectors.Plain(v)
	}
	return vectors.WithHeading(v, b.orientation.Heading(v))
}

func describe(kind, name string) string {
	if name == "" {
		return "<" + kind + ">"
	}
	return "<" + kind + " " + name + ">"
}

// containsCorners is the default object test, exact for convex regions.
func containsCorners(r Region, o Object) bool {
	for _, c := range o.Corners() {
		if !r.ContainsPoint(c) {
			return false
		}
	}
	return true
}

// Option configures a region at construction.
type Option func(*options)

type options struct {
	name           string
	orientation    Orientation
	orientationSet bool
	resolution     int
	tolerance      float64
}

func newOptions(opts []Option) *options {
	o := &options{resolution: defaultResolution, tolerance: defaultPointTolerance}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the name of a region.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithOrientation sets the preferred orientation of a region. Passing nil
// removes any default orientation the region would otherwise have.
func WithOrientation(or Orientation) Option {
	return func(o *options) {
		o.orientation = or
		o.orientationSet = true
	}
}

// WithResolution sets the number of segments per quarter circle used when
// a curved region is approximated by a polygon.
func WithResolution(n int) Option {
	return func(o *options) { o.resolution = n }
}

// WithTolerance sets the distance within which a point is considered to
// belong to a point set.
func WithTolerance(tol float64) Option {
	return func(o *options) { o.tolerance = tol }
}

// Dispatch hooks. A hook returns ok == false when it has no specialised
// rule for the other region, in which case the next rule in the fallback
// order is tried.
type (
	intersecter interface {
		intersect(other Region, reversed bool) (result Region, ok bool)
	}
	intersectsTester interface {
		intersects(other Region) (result bool, ok bool)
	}
	differencer interface {
		difference(other Region) (result Region, ok bool)
	}
	unioner interface {
		union(other Region, reversed bool) (result Region, ok bool, err error)
	}
)

// Intersect returns the intersection of a and b. A specialised rule of a
// is tried first, then one of b. Otherwise the result is a generic
// Intersection that samples by rejection, oriented like a if a has an
// orientation and like b otherwise.
func Intersect(a, b Region) Region {
	if i, ok := a.(intersecter); ok {
		if r, ok := i.intersect(b, false); ok {
			return r
		}
	}
	if i, ok := b.(intersecter); ok {
		if r, ok := i.intersect(a, true); ok {
			return r
		}
	}
	return newIntersection([]Region{b, a}, nil, orientationFor(b, a, true), "")
}

// Intersects reports whether a and b share any point. As a last resort
// both regions are converted to polygons or lines; a *NotImplementedError
// is returned when that is not possible.
func Intersects(a, b Region) (bool, error) {
	if t, ok := a.(intersectsTester); ok {
		if v, ok := t.intersects(b); ok {
			return v, nil
		}
	}
	if t, ok := b.(intersectsTester); ok {
		if v, ok := t.intersects(a); ok {
			return v, nil
		}
	}
	sa, sb := shapeOf(a), shapeOf(b)
	if sa == nil || sb == nil {
		return false, notImplemented("Intersects", a, b)
	}
	return planarIntersects(sa, sb)
}

// Difference returns the points of a that are not in b.
func Difference(a, b Region) Region {
	if d, ok := a.(differencer); ok {
		if r, ok := d.difference(b); ok {
			return r
		}
	}
	switch b.(type) {
	case *EmptyRegion:
		return a
	case *AllRegion:
		return Nowhere
	}
	return newDifference(a, b, nil, a.Orientation(), "")
}

// Union returns the union of a and b. Only some combinations of regions
// support it; a *NotImplementedError is returned for the rest.
func Union(a, b Region) (Region, error) {
	if u, ok := a.(unioner); ok {
		r, ok, err := u.union(b, false)
		if err != nil || ok {
			return r, err
		}
	}
	if u, ok := b.(unioner); ok {
		r, ok, err := u.union(a, true)
		if err != nil || ok {
			return r, err
		}
	}
	return nil, notImplemented("Union", a, b)
}

// Contains reports whether thing, a vector or an Object, is in r.
func Contains(r Region, thing interface{}) (bool, error) {
	switch t := thing.(type) {
	case vectors.Vector:
		return r.ContainsPoint(t), nil
	case vectors.OrientedVector:
		return r.ContainsPoint(t.Vector), nil
	case Object:
		return r.ContainsObject(t), nil
	}
	return false, &TypeError{Op: "Contains", Value: thing}
}

func rectFromBounds(minX, minY, maxX, maxY float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: minX, Y: minY}, r2.Point{X: maxX, Y: maxY})
}

func checkFinite(what string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("regions: %s has non-finite value %g", what, v)
		}
	}
	return nil
}
