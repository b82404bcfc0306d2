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
	"sync"

	"github.com/ctessum/geom"
	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/planar"
	"github.com/spatialmodel/regions/vectors"
)

const (
	// defaultResolution is the number of segments per quarter circle used
	// to approximate discs by polygons.
	defaultResolution = 32

	// defaultPointTolerance is the distance within which a point belongs
	// to a point set.
	defaultPointTolerance = 1.e-6
)

// Circular is a disc.
type Circular struct {
	base
	Center vectors.Vector
	Radius float64

	resolution int
	polyOnce   sync.Once
	poly       geom.Polygon
}

// NewCircular returns the disc of the given radius around center.
func NewCircular(center vectors.Vector, radius float64, opts ...Option) (*Circular, error) {
	if err := checkFinite("circle", center.X, center.Y, radius); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("regions: circle radius %g is negative", radius)
	}
	o := newOptions(opts)
	return &Circular{
		base:       base{name: o.name, orientation: o.orientation},
		Center:     center,
		Radius:     radius,
		resolution: o.resolution,
	}, nil
}

func (c *Circular) ContainsPoint(p vectors.Vector) bool {
	return vectors.Distance(p, c.Center) <= c.Radius
}

func (c *Circular) ContainsObject(o Object) bool { return containsCorners(c, o) }

func (c *Circular) DistanceTo(p vectors.Vector) (float64, error) {
	return math.Max(0, vectors.Distance(p, c.Center)-c.Radius), nil
}

func (c *Circular) AABB() (r2.Rect, error) {
	return rectFromBounds(c.Center.X-c.Radius, c.Center.Y-c.Radius,
		c.Center.X+c.Radius, c.Center.Y+c.Radius), nil
}

// UniformPointInner draws a radius from triangular(0, R, R) and an angle
// uniformly, which is uniform over the disc.
func (c *Circular) UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error) {
	rad := triangular(r, 0, c.Radius, c.Radius)
	t := uniform(r, -math.Pi, math.Pi)
	p := vectors.Vector{X: c.Center.X + rad*math.Cos(t), Y: c.Center.Y + rad*math.Sin(t)}
	return c.orient(p), nil
}

func (c *Circular) String() string {
	if c.name != "" {
		return describe("Circular", c.name)
	}
	return fmt.Sprintf("<Circular %v r=%g>", c.Center, c.Radius)
}

func (c *Circular) circumcircle() (vectors.Vector, float64) { return c.Center, c.Radius }

func (c *Circular) shape() geom.Geom {
	c.polyOnce.Do(func() {
		c.poly = planar.Circle(vectors.ToGeom(c.Center), c.Radius, c.resolution)
	})
	return c.poly
}

func (c *Circular) intersects(other Region) (bool, bool) {
	o, ok := other.(*Circular)
	if !ok {
		return false, false
	}
	return vectors.Distance(c.Center, o.Center) <= c.Radius+o.Radius, true
}

// Sector is the part of a disc within a cone of directions.
type Sector struct {
	base
	Center  vectors.Vector
	Radius  float64
	Heading float64 // heading of the bisector
	Angle   float64 // full opening angle

	resolution int
	polyOnce   sync.Once
	poly       geom.Polygon
}

// NewSector returns the sector of the disc around center with the given
// bisector heading and opening angle.
func NewSector(center vectors.Vector, radius, heading, angle float64, opts ...Option) (*Sector, error) {
	if err := checkFinite("sector", center.X, center.Y, radius, heading, angle); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("regions: sector radius %g is negative", radius)
	}
	if angle < 0 {
		return nil, fmt.Errorf("regions: sector angle %g is negative", angle)
	}
	o := newOptions(opts)
	return &Sector{
		base:       base{name: o.name, orientation: o.orientation},
		Center:     center,
		Radius:     radius,
		Heading:    heading,
		Angle:      angle,
		resolution: o.resolution,
	}, nil
}

func (s *Sector) ContainsPoint(p vectors.Vector) bool {
	if !vectors.PointIsInCone(p, s.Center, s.Heading, s.Angle) {
		return false
	}
	return vectors.Distance(p, s.Center) <= s.Radius
}

func (s *Sector) ContainsObject(o Object) bool { return containsCorners(s, o) }

func (s *Sector) DistanceTo(p vectors.Vector) (float64, error) {
	return planar.Distance(s.shape(), vectors.ToGeom(p))
}

func (s *Sector) AABB() (r2.Rect, error) {
	b := s.shape().Bounds()
	return rectFromBounds(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y), nil
}

func (s *Sector) UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error) {
	rad := triangular(r, 0, s.Radius, s.Radius)
	ha := s.Angle / 2
	t := uniform(r, -ha, ha) + s.Heading + math.Pi/2
	p := vectors.Vector{X: s.Center.X + rad*math.Cos(t), Y: s.Center.Y + rad*math.Sin(t)}
	return s.orient(p), nil
}

func (s *Sector) String() string {
	if s.name != "" {
		return describe("Sector", s.name)
	}
	return fmt.Sprintf("<Sector %v r=%g heading=%g angle=%g>", s.Center, s.Radius, s.Heading, s.Angle)
}

// circumcircle returns the circle centred on the bisector at distance
// r = radius/2·cos(angle/2) from the centre, with radius r. It is only a
// pre-filter for candidate points; membership is always checked exactly.
func (s *Sector) circumcircle() (vectors.Vector, float64) {
	r := (s.Radius / 2) * math.Cos(s.Angle/2)
	return vectors.OffsetRadially(s.Center, r, s.Heading), r
}

// shape is the full circle polygon for sectors of at least a full turn,
// and otherwise the centre followed by the arc.
func (s *Sector) shape() geom.Geom {
	s.polyOnce.Do(func() {
		c := vectors.ToGeom(s.Center)
		if s.Angle >= 2*math.Pi-0.001 {
			s.poly = planar.Circle(c, s.Radius, s.resolution)
			return
		}
		n := int(math.Ceil(s.Angle / (math.Pi / 2) * float64(s.resolution)))
		if n < 1 {
			n = 1
		}
		ring := []geom.Point{c}
		for i := 0; i <= n; i++ {
			h := s.Heading - s.Angle/2 + s.Angle*float64(i)/float64(n)
			ring = append(ring, vectors.ToGeom(vectors.OffsetRadially(s.Center, s.Radius, h)))
		}
		ring = append(ring, c)
		s.poly = geom.Polygon{ring}
	})
	return s.poly
}
