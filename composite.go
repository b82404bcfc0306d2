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
	"strings"

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/regions/vectors"
)

// Sampler draws a point from a composite region. Specialised samplers are
// supplied by regions that can sample a combination more efficiently than
// by rejection.
type Sampler func(r *rand.Rand) (vectors.OrientedVector, error)

// Intersection is the set of points common to all of its regions.
type Intersection struct {
	base
	regions []Region
	sampler Sampler
}

// NewIntersection returns the intersection of at least two regions. If
// sampler is nil, points are drawn from the first region and rejected
// unless all the others contain them.
func NewIntersection(regions []Region, sampler Sampler, opts ...Option) (*Intersection, error) {
	if len(regions) < 2 {
		return nil, fmt.Errorf("regions: intersection needs at least 2 regions; got %d", len(regions))
	}
	o := newOptions(opts)
	return newIntersection(regions, sampler, o.orientation, o.name), nil
}

func newIntersection(regions []Region, sampler Sampler, orientation Orientation, name string) *Intersection {
	return &Intersection{
		base:    base{name: name, orientation: orientation},
		regions: append([]Region(nil), regions...),
		sampler: sampler,
	}
}

// Regions returns the intersected regions.
func (in *Intersection) Regions() []Region { return in.regions }

// Specialised reports whether in has its own sampler rather than the
// generic rejection sampler.
func (in *Intersection) Specialised() bool { return in.sampler != nil }

func (in *Intersection) ContainsPoint(p vectors.Vector) bool {
	for _, r := range in.regions {
		if !r.ContainsPoint(p) {
			return false
		}
	}
	return true
}

func (in *Intersection) ContainsObject(o Object) bool { return containsCorners(in, o) }

func (in *Intersection) DistanceTo(vectors.Vector) (float64, error) {
	return 0, notImplemented("DistanceTo", in)
}

// AABB returns the intersection of the bounding boxes of the regions that
// have one.
func (in *Intersection) AABB() (r2.Rect, error) {
	var (
		box   r2.Rect
		found bool
	)
	for _, r := range in.regions {
		b, err := r.AABB()
		if err != nil {
			continue
		}
		if !found {
			box, found = b, true
			continue
		}
		box = box.Intersection(b)
	}
	if !found {
		return r2.EmptyRect(), notImplemented("AABB", in)
	}
	return box, nil
}

func (in *Intersection) UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error) {
	var (
		p   vectors.OrientedVector
		err error
	)
	if in.sampler != nil {
		p, err = in.sampler(r)
	} else {
		p, err = in.genericSample(r)
	}
	if err != nil {
		return vectors.OrientedVector{}, err
	}
	return Orient(in, p), nil
}

func (in *Intersection) genericSample(r *rand.Rand) (vectors.OrientedVector, error) {
	p, err := in.regions[0].UniformPointInner(r)
	if err != nil {
		return p, err
	}
	for _, reg := range in.regions[1:] {
		if !reg.ContainsPoint(p.Vector) {
			return vectors.OrientedVector{}, reject("sampling intersection of %v and %v", in.regions[0], reg)
		}
	}
	return p, nil
}

func (in *Intersection) String() string {
	if in.name != "" {
		return describe("Intersection", in.name)
	}
	names := make([]string, len(in.regions))
	for i, r := range in.regions {
		names[i] = r.String()
	}
	return "<Intersection " + strings.Join(names, " & ") + ">"
}

// DifferenceRegion is the set of points of A that are not in B.
type DifferenceRegion struct {
	base
	A, B    Region
	sampler Sampler
}

// NewDifference returns the points of a not in b. It is oriented like a
// unless an orientation option is given. If sampler is nil, points are
// drawn from a and rejected when b contains them.
func NewDifference(a, b Region, sampler Sampler, opts ...Option) *DifferenceRegion {
	o := newOptions(opts)
	or := a.Orientation()
	if o.orientationSet {
		or = o.orientation
	}
	return newDifference(a, b, sampler, or, o.name)
}

func newDifference(a, b Region, sampler Sampler, orientation Orientation, name string) *DifferenceRegion {
	return &DifferenceRegion{
		base:    base{name: name, orientation: orientation},
		A:       a,
		B:       b,
		sampler: sampler,
	}
}

func (d *DifferenceRegion) ContainsPoint(p vectors.Vector) bool {
	return d.A.ContainsPoint(p) && !d.B.ContainsPoint(p)
}

func (d *DifferenceRegion) ContainsObject(o Object) bool { return containsCorners(d, o) }

func (d *DifferenceRegion) DistanceTo(vectors.Vector) (float64, error) {
	return 0, notImplemented("DistanceTo", d)
}

// AABB returns the bounding box of A.
func (d *DifferenceRegion) AABB() (r2.Rect, error) { return d.A.AABB() }

func (d *DifferenceRegion) UniformPointInner(r *rand.Rand) (vectors.OrientedVector, error) {
	var (
		p   vectors.OrientedVector
		err error
	)
	if d.sampler != nil {
		p, err = d.sampler(r)
	} else {
		p, err = d.A.UniformPointInner(r)
		if err == nil && d.B.ContainsPoint(p.Vector) {
			err = reject("sampling difference of %v and %v", d.A, d.B)
		}
	}
	if err != nil {
		return vectors.OrientedVector{}, err
	}
	return Orient(d, p), nil
}

func (d *DifferenceRegion) String() string {
	if d.name != "" {
		return describe("Difference", d.name)
	}
	return fmt.Sprintf("<Difference %v - %v>", d.A, d.B)
}
