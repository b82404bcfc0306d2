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
	"math/rand"
	"sync"

	"github.com/ctessum/geom"
	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/planar"
	"github.com/spatialmodel/regions/vectors"
	"gonum.org/v1/gonum/floats"
)

// Polygonal is a region bounded by one or more polygons, possibly with
// holes.
type Polygonal struct {
	base
	poly       geom.Polygon
	points     []vectors.Vector
	resolution int

	triangles []planar.Triangle
	cumAreas  []float64

	preparedOnce sync.Once
	prepared     *planar.Prepared
}

// NewPolygonal returns the polygon with the given boundary points, in
// order. The ring is closed automatically.
func NewPolygonal(points []vectors.Vector, opts ...Option) (*Polygonal, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("regions: polygon needs at least one point")
	}
	ring := vectors.ToGeomSlice(points)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	p, err := NewPolygonalFromGeom(geom.Polygon{ring}, opts...)
	if err != nil {
		return nil, err
	}
	p.points = append([]vectors.Vector(nil), points...)
	return p, nil
}

// NewPolygonalFromGeom returns the region covered by a geom.Polygon or
// geom.MultiPolygon. Rings are combined with the even-odd rule.
func NewPolygonalFromGeom(g geom.Geom, opts ...Option) (*Polygonal, error) {
	poly, ok := planar.Flatten(g)
	if !ok {
		return nil, fmt.Errorf("regions: cannot build polygon from %T", g)
	}
	if planar.IsEmpty(poly) {
		return nil, fmt.Errorf("regions: cannot build polygon from empty geometry")
	}
	if err := planar.IsValid(poly); err != nil {
		return nil, fmt.Errorf("regions: invalid polygon: %v", err)
	}
	tris, err := planar.Triangulate(poly)
	if err != nil {
		return nil, fmt.Errorf("regions: triangulating polygon: %v", err)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("regions: polygon has no area")
	}
	o := newOptions(opts)
	p := &Polygonal{
		base:       base{name: o.name, orientation: o.orientation},
		poly:       poly,
		resolution: o.resolution,
		triangles:  tris,
	}
	areas := make([]float64, len(tris))
	for i, t := range tris {
		areas[i] = t.Area()
	}
	p.cumAreas = floats.CumSum(make([]float64, len(areas)), areas)
	if len(poly) == 1 {
		ring := poly[0]
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		p.points = vectors.FromGeomSlice(ring)
	}
	return p, nil
}

func (p *Polygonal) prepare() *planar.Prepared {
	p.preparedOnce.Do(func() {
		p.prepared = planar.Prepare(p.poly)
	})
	return p.prepared
}

// UniformPointInner picks a triangle with probability proportional to its
// area, then draws points from the triangle's bounding box until one
// falls inside the triangle.
func (p *Polygonal) UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error) {
	t := p.triangles[weightedIndex(r, p.cumAreas)]
	b := t.Bounds()
	for {
		q := geom.Point{X: uniform(r, b.Min.X, b.Max.X), Y: uniform(r, b.Min.Y, b.Max.Y)}
		if t.Contains(q) {
			return p.orient(vectors.FromGeom(q)), nil
		}
	}
}

func (p *Polygonal) ContainsPoint(v vectors.Vector) bool {
	return p.prepare().ContainsPoint(vectors.ToGeom(v))
}

// ContainsObject tests the whole footprint of o: its Polygon() if it has
// one, or else the polygon through its corners.
func (p *Polygonal) ContainsObject(o Object) bool {
	var footprint geom.Polygon
	if po, ok := o.(interface{ Polygon() geom.Polygon }); ok {
		footprint = po.Polygon()
	} else {
		ring := vectors.ToGeomSlice(o.Corners())
		if len(ring) == 0 {
			return true
		}
		footprint = geom.Polygon{append(ring, ring[0])}
	}
	return p.prepare().Contains(footprint)
}

// ContainsRegion reports whether other lies within p grown by tolerance.
// other must have a polygon or line form unless it is empty.
func (p *Polygonal) ContainsRegion(other Region, tolerance float64) (bool, error) {
	if IsNowhere(other) {
		return true, nil
	}
	s := shapeOf(other)
	if s == nil {
		return false, &TypeError{Op: "ContainsRegion", Value: other}
	}
	pp := p.prepare()
	if tolerance > 0 {
		grown, err := planar.Buffer(p.poly, tolerance, p.resolution)
		if err != nil {
			return false, err
		}
		pp = planar.Prepare(grown)
	}
	return pp.Contains(s), nil
}

func (p *Polygonal) DistanceTo(v vectors.Vector) (float64, error) {
	if p.ContainsPoint(v) {
		return 0, nil
	}
	return planar.Distance(p.poly, vectors.ToGeom(v))
}

func (p *Polygonal) AABB() (r2.Rect, error) {
	b := p.poly.Bounds()
	return rectFromBounds(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y), nil
}

// Boundary returns the rings of the polygon as a polyline without an
// orientation.
func (p *Polygonal) Boundary() (*Polyline, error) {
	var l geom.MultiLineString
	for _, ring := range p.poly {
		if len(ring) == 0 {
			continue
		}
		ls := append(geom.LineString(nil), ring...)
		if ls[0] != ls[len(ls)-1] {
			ls = append(ls, ls[0])
		}
		l = append(l, ls)
	}
	return NewPolylineFromGeom(l, WithName(p.name), WithOrientation(nil))
}

// Buffer returns p grown outward by d, keeping its orientation.
func (p *Polygonal) Buffer(d float64) (*Polygonal, error) {
	grown, err := planar.Buffer(p.poly, d, p.resolution)
	if err != nil {
		return nil, err
	}
	return NewPolygonalFromGeom(grown, WithOrientation(p.orientation), WithResolution(p.resolution))
}

// Area returns the area of the region.
func (p *Polygonal) Area() float64 { return p.cumAreas[len(p.cumAreas)-1] }

// Polygon returns the region's polygon.
func (p *Polygonal) Polygon() geom.Polygon { return p.poly }

// Points returns the boundary points when the region is a single polygon
// without holes, and nil otherwise.
func (p *Polygonal) Points() []vectors.Vector { return p.points }

func (p *Polygonal) String() string {
	if p.name != "" {
		return describe("Polygonal", p.name)
	}
	return fmt.Sprintf("<Polygonal %d rings>", len(p.poly))
}

func (p *Polygonal) shape() geom.Geom { return p.poly }

func (p *Polygonal) intersect(other Region, reversed bool) (Region, bool) {
	s := shapeOf(other)
	if s == nil {
		return nil, false
	}
	g, err := planar.Intersection(p.poly, s)
	if err != nil {
		return nil, false
	}
	return fromResult(g, WithOrientation(orientationFor(p, other, reversed)))
}

func (p *Polygonal) intersects(other Region) (bool, bool) {
	s := shapeOf(other)
	if s == nil {
		return false, false
	}
	v, err := planar.Intersects(p.poly, s)
	if err != nil {
		return false, false
	}
	return v, true
}

func (p *Polygonal) difference(other Region) (Region, bool) {
	s := shapeOf(other)
	if s == nil {
		return nil, false
	}
	g, err := planar.Difference(p.poly, s)
	if err != nil {
		return nil, false
	}
	return fromResult(g, WithOrientation(p.orientation))
}

func (p *Polygonal) union(other Region, reversed bool) (Region, bool, error) {
	s := shapeOf(other)
	if s == nil || planar.KindOf(s) != planar.PolygonKind {
		return nil, false, nil
	}
	q, _ := planar.Flatten(s)
	polys := []geom.Polygon{p.poly, q}
	regs := []Region{p, other}
	if reversed {
		polys[0], polys[1] = polys[1], polys[0]
		regs[0], regs[1] = regs[1], regs[0]
	}
	return unionPolygons(polys, regs, 0)
}

func unionPolygons(polys []geom.Polygon, regs []Region, buf float64) (Region, bool, error) {
	u, err := planar.UnionAll(polys, buf)
	if err != nil {
		return nil, true, err
	}
	var opt Option = WithOrientation(nil)
	if o := forUnionOf(regs, buf); o != nil {
		opt = WithOrientation(o)
	}
	r, err := NewPolygonalFromGeom(u, opt)
	if err != nil {
		return nil, true, err
	}
	return r, true, nil
}

// PolygonalUnionAll returns the union of regions, each first grown by buf
// when buf is positive. Empty regions are skipped and Nowhere is returned
// when nothing is left. Every other region must be Polygonal or have a
// polygon form, otherwise a *TypeError is returned.
func PolygonalUnionAll(regions []Region, buf float64) (Region, error) {
	var (
		polys []geom.Polygon
		regs  []Region
	)
	for _, r := range regions {
		if IsNowhere(r) {
			continue
		}
		s := shapeOf(r)
		if s == nil || planar.KindOf(s) != planar.PolygonKind {
			return nil, &TypeError{Op: "PolygonalUnionAll", Value: r}
		}
		q, _ := planar.Flatten(s)
		polys = append(polys, q)
		regs = append(regs, r)
	}
	if len(polys) == 0 {
		return Nowhere, nil
	}
	r, _, err := unionPolygons(polys, regs, buf)
	return r, err
}
