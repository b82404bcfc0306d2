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
	"github.com/spatialmodel/regions/vectors"
)

// Orientation is a preferred-orientation field: it gives the heading that
// objects placed at a point should face.
type Orientation interface {
	Heading(p vectors.Vector) float64
}

// VectorField is an Orientation defined by a function.
type VectorField struct {
	Name string
	F    func(vectors.Vector) float64
}

// NewVectorField returns a named orientation field computed by f.
func NewVectorField(name string, f func(vectors.Vector) float64) *VectorField {
	return &VectorField{Name: name, F: f}
}

// Heading implements Orientation.
func (v *VectorField) Heading(p vectors.Vector) float64 { return v.F(p) }

func (v *VectorField) String() string { return "<VectorField " + v.Name + ">" }

// ConstantField returns a field with the same heading everywhere.
func ConstantField(heading float64) *VectorField {
	return NewVectorField("Constant", func(vectors.Vector) float64 { return heading })
}

// PiecewiseField is the orientation of a union of regions. At each point
// it uses the orientation of the first constituent region containing the
// point, or lying within Tolerance of it.
type PiecewiseField struct {
	Regions   []Region
	Tolerance float64

	// Default is used for points no constituent covers.
	Default float64
}

// Heading implements Orientation.
func (f *PiecewiseField) Heading(p vectors.Vector) float64 {
	for _, r := range f.Regions {
		if r.ContainsPoint(p) {
			return r.Orientation().Heading(p)
		}
	}
	if f.Tolerance > 0 {
		for _, r := range f.Regions {
			if d, err := r.DistanceTo(p); err == nil && d <= f.Tolerance {
				return r.Orientation().Heading(p)
			}
		}
	}
	return f.Default
}

// forUnionOf returns the orientation of the union of regions, or nil if
// none of them has one.
func forUnionOf(regions []Region, tolerance float64) Orientation {
	var oriented []Region
	for _, r := range regions {
		if r.Orientation() != nil {
			oriented = append(oriented, r)
		}
	}
	if len(oriented) == 0 {
		return nil
	}
	return &PiecewiseField{Regions: oriented, Tolerance: tolerance}
}

// orientationFor picks the orientation of a combination of two regions:
// that of first, falling back to that of second. When reversed is true
// the operands were swapped by dispatch, so the preference is swapped too.
func orientationFor(first, second Region, reversed bool) Orientation {
	o1, o2 := first.Orientation(), second.Orientation()
	if reversed {
		o1, o2 = o2, o1
	}
	if o1 == nil {
		return o2
	}
	return o1
}

// Orient tags v with the heading of r's orientation at v. Vectors are
// returned unchanged when r has no orientation.
func Orient(r Region, v vectors.OrientedVector) vectors.OrientedVector {
	o := r.Orientation()
	if o == nil {
		return v
	}
	return vectors.WithHeading(v.Vector, o.Heading(v.Vector))
}
