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

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/planar"
	"github.com/spatialmodel/regions/vectors"
)

// PointSet is a finite set of points. A point belongs to the set when it
// is within the set's tolerance of one of its members.
type PointSet struct {
	base
	points    []vectors.Vector
	index     *planar.PointIndex
	tolerance float64
}

// NewPointSet returns the set of the given points.
func NewPointSet(points []vectors.Vector, opts ...Option) (*PointSet, error) {
	for _, p := range points {
		if err := checkFinite("point set member", p.X, p.Y); err != nil {
			return nil, err
		}
	}
	o := newOptions(opts)
	pts := append([]vectors.Vector(nil), points...)
	return &PointSet{
		base:      base{name: o.name, orientation: o.orientation},
		points:    pts,
		index:     planar.NewPointIndex(vectors.ToGeomSlice(pts)),
		tolerance: o.tolerance,
	}, nil
}

// Points returns the members of the set.
func (ps *PointSet) Points() []vectors.Vector { return ps.points }

// Tolerance returns the membership tolerance.
func (ps *PointSet) Tolerance() float64 { return ps.tolerance }

// UniformPointInner picks one of the points at random.
func (ps *PointSet) UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error) {
	if len(ps.points) == 0 {
		return vectors.OrientedVector{}, reject("sampling empty point set %v", ps)
	}
	return ps.orient(ps.points[r.Intn(len(ps.points))]), nil
}

func (ps *PointSet) ContainsPoint(p vectors.Vector) bool {
	_, d := ps.index.Nearest(vectors.ToGeom(p))
	return d <= ps.tolerance
}

// ContainsObject is always false: objects have area and point sets do not.
func (ps *PointSet) ContainsObject(Object) bool { return false }

// DistanceTo returns the distance from p to the nearest member, which is
// +Inf for an empty set.
func (ps *PointSet) DistanceTo(p vectors.Vector) (float64, error) {
	_, d := ps.index.Nearest(vectors.ToGeom(p))
	return d, nil
}

func (ps *PointSet) AABB() (r2.Rect, error) { return r2.EmptyRect(), notImplemented("AABB", ps) }

func (ps *PointSet) String() string {
	if ps.name != "" {
		return describe("PointSet", ps.name)
	}
	return fmt.Sprintf("<PointSet %d points>", len(ps.points))
}

func (ps *PointSet) intersect(other Region, reversed bool) (Region, bool) {
	return pointSetIntersect(ps, ps, other, reversed), true
}

// pointSetIntersect returns self ∩ other, sampled by choosing among the
// points of ps inside other. Candidates are found with a radius query
// around other's circumcircle when it has one, and every candidate is
// checked exactly. The result takes the orientation of whichever operand
// came first in the call, falling back to the other one.
func pointSetIntersect(self Region, ps *PointSet, other Region, reversed bool) Region {
	switch other.(type) {
	case *AllRegion:
		return self
	case *EmptyRegion:
		return other
	}
	sampler := func(r *rand.Rand) (vectors.OrientedVector, error) {
		var cand []int
		if c, ok := other.(circumscribed); ok {
			center, radius := c.circumcircle()
			cand = ps.index.WithinRadius(vectors.ToGeom(center), radius)
		} else {
			cand = make([]int, len(ps.points))
			for i := range cand {
				cand[i] = i
			}
		}
		var in []vectors.Vector
		for _, i := range cand {
			if p := ps.points[i]; other.ContainsPoint(p) {
				in = append(in, p)
			}
		}
		if len(in) == 0 {
			return vectors.OrientedVector{}, reject("empty intersection of %v and %v", self, other)
		}
		return ps.orient(in[r.Intn(len(in))]), nil
	}
	return newIntersection([]Region{self, other}, sampler, orientationFor(self, other, reversed), "")
}

// Grid is a point set built from an occupancy grid: cells equal to 0 are
// free and become points, other cells are obstacles. Cell (x, y) is at
// (ax·x + bx, ay·y + by).
type Grid struct {
	*PointSet
	cells        [][]int
	ax, ay       float64
	bx, by       float64
	sizeX, sizeY int
}

// NewGrid returns the grid region for cells, indexed cells[y][x].
func NewGrid(cells [][]int, ax, ay, bx, by float64, opts ...Option) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("regions: grid is empty")
	}
	if ax == 0 || ay == 0 {
		return nil, fmt.Errorf("regions: grid scale (%g, %g) must be non-zero", ax, ay)
	}
	if err := checkFinite("grid transform", ax, ay, bx, by); err != nil {
		return nil, err
	}
	g := &Grid{
		ax: ax, ay: ay, bx: bx, by: by,
		sizeX: len(cells[0]),
		sizeY: len(cells),
	}
	var free []vectors.Vector
	for y, row := range cells {
		if len(row) != g.sizeX {
			return nil, fmt.Errorf("regions: grid row %d has %d cells; want %d", y, len(row), g.sizeX)
		}
		g.cells = append(g.cells, append([]int(nil), row...))
		for x, c := range row {
			if c == 0 {
				free = append(free, g.gridToPoint(x, y))
			}
		}
	}
	ps, err := NewPointSet(free, opts...)
	if err != nil {
		return nil, err
	}
	g.PointSet = ps
	return g, nil
}

func (g *Grid) gridToPoint(x, y int) vectors.Vector {
	return vectors.New(g.ax*float64(x)+g.bx, g.ay*float64(y)+g.by)
}

// pointToGrid returns the cell nearest to p, rounding halves to even, or
// false if that cell is off the grid.
func (g *Grid) pointToGrid(p vectors.Vector) (x, y int, ok bool) {
	fx := math.RoundToEven((p.X - g.bx) / g.ax)
	fy := math.RoundToEven((p.Y - g.by) / g.ay)
	if fx < 0 || fx >= float64(g.sizeX) || fy < 0 || fy >= float64(g.sizeY) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// ContainsPoint reports whether the cell nearest to p is free.
func (g *Grid) ContainsPoint(p vectors.Vector) bool {
	x, y, ok := g.pointToGrid(p)
	return ok && g.cells[y][x] == 0
}

// ContainsObject checks that every corner of o is in a free cell and that
// no obstacle cell within the range of the corners lies inside o.
func (g *Grid) ContainsObject(o Object) bool {
	corners := o.Corners()
	for _, c := range corners {
		if !g.ContainsPoint(c) {
			return false
		}
	}
	minX, minY := math.MaxInt32, math.MaxInt32
	maxX, maxY := -1, -1
	for _, c := range corners {
		x, y, _ := g.pointToGrid(c)
		minX, maxX = minInt(minX, x), maxInt(maxX, x)
		minY, maxY = minInt(minY, y), maxInt(maxY, y)
	}
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			if g.cells[y][x] != 0 && o.ContainsPoint(g.gridToPoint(x, y)) {
				return false
			}
		}
	}
	return true
}

func (g *Grid) String() string {
	if g.name != "" {
		return describe("Grid", g.name)
	}
	return fmt.Sprintf("<Grid %d×%d>", g.sizeX, g.sizeY)
}

func (g *Grid) intersect(other Region, reversed bool) (Region, bool) {
	return pointSetIntersect(g, g.PointSet, other, reversed), true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
