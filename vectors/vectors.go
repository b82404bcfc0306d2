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

// Package vectors holds the planar vector type used throughout regions and
// the heading arithmetic that goes with it.
//
// Headings are measured in radians counter-clockwise from the +Y axis, so a
// heading of 0 points "north" and a heading of π/2 points toward -X.
package vectors

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/golang/geo/r2"
)

// Vector is a point or displacement in the plane.
type Vector = r2.Point

// New returns the vector (x, y).
func New(x, y float64) Vector { return Vector{X: x, Y: y} }

// OrientedVector is a point tagged with an optional heading.
type OrientedVector struct {
	Vector

	// Heading is only meaningful when Oriented is true.
	Heading  float64
	Oriented bool
}

// Plain returns an OrientedVector without a heading.
func Plain(v Vector) OrientedVector { return OrientedVector{Vector: v} }

// WithHeading returns v tagged with heading h.
func WithHeading(v Vector, h float64) OrientedVector {
	return OrientedVector{Vector: v, Heading: h, Oriented: true}
}

func (o OrientedVector) String() string {
	if !o.Oriented {
		return o.Vector.String()
	}
	return fmt.Sprintf("%v @ %.6g", o.Vector, o.Heading)
}

// NormalizeAngle maps an angle into the interval (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// RotatedBy rotates v counter-clockwise by angle a.
func RotatedBy(v Vector, a float64) Vector {
	s, c := math.Sincos(a)
	return Vector{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

// OffsetRotated returns base plus offset, where offset is expressed in the
// local frame of heading.
func OffsetRotated(base Vector, heading float64, offset Vector) Vector {
	return base.Add(RotatedBy(offset, heading))
}

// OffsetRadially returns the point at distance r from base along heading.
func OffsetRadially(base Vector, r, heading float64) Vector {
	return OffsetRotated(base, heading, Vector{X: 0, Y: r})
}

// AngleTo returns the heading that points from `from` toward `to`.
func AngleTo(from, to Vector) float64 {
	d := to.Sub(from)
	return NormalizeAngle(math.Atan2(d.Y, d.X) - math.Pi/2)
}

// HeadingOfSegment returns the heading of the directed segment a→b.
func HeadingOfSegment(a, b Vector) float64 { return AngleTo(a, b) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector) float64 { return a.Sub(b).Norm() }

// PointIsInCone reports whether point lies within the cone with apex base,
// bisector heading and full opening angle. The apex itself is in the cone.
func PointIsInCone(point, base Vector, heading, angle float64) bool {
	if angle >= 2*math.Pi {
		return true
	}
	if point == base {
		return true
	}
	return math.Abs(NormalizeAngle(AngleTo(base, point)-heading)) <= angle/2
}

// ToGeom converts v to a geom.Point.
func ToGeom(v Vector) geom.Point { return geom.Point{X: v.X, Y: v.Y} }

// FromGeom converts p to a Vector.
func FromGeom(p geom.Point) Vector { return Vector{X: p.X, Y: p.Y} }

// ToGeomSlice converts vs to geom points.
func ToGeomSlice(vs []Vector) []geom.Point {
	o := make([]geom.Point, len(vs))
	for i, v := range vs {
		o[i] = ToGeom(v)
	}
	return o
}

// FromGeomSlice converts ps to vectors.
func FromGeomSlice(ps []geom.Point) []Vector {
	o := make([]Vector, len(ps))
	for i, p := range ps {
		o[i] = FromGeom(p)
	}
	return o
}
