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
	"math"
	"math/rand"

	"github.com/ctessum/geom"
	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/vectors"
)

// rotatedRectangle is a rectangle centred on Position whose length axis
// points along Heading.
type rotatedRectangle struct {
	Position vectors.Vector
	Heading  float64
	Width    float64
	Length   float64

	hw, hl  float64
	corners []vectors.Vector
}

func newRotatedRectangle(position vectors.Vector, heading, width, length float64) (rotatedRectangle, error) {
	if err := checkFinite("rectangle", position.X, position.Y, heading, width, length); err != nil {
		return rotatedRectangle{}, err
	}
	if width < 0 || length < 0 {
		return rotatedRectangle{}, fmt.Errorf("regions: rectangle size %g×%g is negative", width, length)
	}
	rr := rotatedRectangle{
		Position: position,
		Heading:  heading,
		Width:    width,
		Length:   length,
		hw:       width / 2,
		hl:       length / 2,
	}
	for _, off := range [][2]float64{{rr.hw, rr.hl}, {-rr.hw, rr.hl}, {-rr.hw, -rr.hl}, {rr.hw, -rr.hl}} {
		rr.corners = append(rr.corners, vectors.OffsetRotated(position, heading, vectors.New(off[0], off[1])))
	}
	return rr, nil
}

// Corners returns the four corners, counter-clockwise from the front
// right one.
func (rr *rotatedRectangle) Corners() []vectors.Vector { return rr.corners }

// ContainsPoint reports whether p is in the rectangle, edges included.
func (rr *rotatedRectangle) ContainsPoint(p vectors.Vector) bool {
	d := vectors.RotatedBy(p.Sub(rr.Position), -rr.Heading)
	const eps = 1.e-12
	return math.Abs(d.X) <= rr.hw+eps && math.Abs(d.Y) <= rr.hl+eps
}

// Polygon returns the rectangle as a polygon.
func (rr *rotatedRectangle) Polygon() geom.Polygon {
	ring := vectors.ToGeomSlice(rr.corners)
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

func (rr *rotatedRectangle) circumcircle() (vectors.Vector, float64) {
	return rr.Position, math.Hypot(rr.hw, rr.hl)
}

func (rr *rotatedRectangle) aabb() r2.Rect {
	return r2.RectFromPoints(rr.corners...)
}

// Rectangular is a rotated rectangle.
type Rectangular struct {
	base
	rotatedRectangle
}

// NewRectangular returns the rectangle centred on position with its length
// axis along heading.
func NewRectangular(position vectors.Vector, heading, width, length float64, opts ...Option) (*Rectangular, error) {
	rr, err := newRotatedRectangle(position, heading, width, length)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &Rectangular{
		base:             base{name: o.name, orientation: o.orientation},
		rotatedRectangle: rr,
	}, nil
}

func (r *Rectangular) ContainsObject(o Object) bool { return containsCorners(r, o) }

func (r *Rectangular) DistanceTo(p vectors.Vector) (float64, error) {
	d := vectors.RotatedBy(p.Sub(r.Position), -r.Heading)
	dx := math.Max(0, math.Abs(d.X)-r.hw)
	dy := math.Max(0, math.Abs(d.Y)-r.hl)
	return math.Hypot(dx, dy), nil
}

func (r *Rectangular) AABB() (r2.Rect, error) { return r.aabb(), nil }

func (r *Rectangular) UniformPointInner(rnd *rand.Rand) (vectors.OrientedVector, error) {
	rx := uniform(rnd, -r.hw, r.hw)
	ry := uniform(rnd, -r.hl, r.hl)
	return r.orient(vectors.OffsetRotated(r.Position, r.Heading, vectors.New(rx, ry))), nil
}

func (r *Rectangular) String() string {
	if r.name != "" {
		return describe("Rectangular", r.name)
	}
	return fmt.Sprintf("<Rectangular %v heading=%g %g×%g>", r.Position, r.Heading, r.Width, r.Length)
}

func (r *Rectangular) shape() geom.Geom { return r.Polygon() }

// Box is an Object with a rectangular footprint, such as a vehicle or a
// building.
type Box struct {
	rotatedRectangle
}

// NewBox returns a box centred on position facing heading.
func NewBox(position vectors.Vector, heading, width, length float64) (*Box, error) {
	rr, err := newRotatedRectangle(position, heading, width, length)
	if err != nil {
		return nil, err
	}
	return &Box{rotatedRectangle: rr}, nil
}

func (b *Box) String() string {
	return fmt.Sprintf("Box(%v, %g, %g, %g)", b.Position, b.Heading, b.Width, b.Length)
}
