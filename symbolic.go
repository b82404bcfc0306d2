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

	"github.com/spatialmodel/regions/vectors"
)

// Random is a random scalar. Implementations must be comparable, as a
// Values memoises draws by Random.
type Random interface {
	Sample(r *rand.Rand) float64
}

// Param is a scalar that is either fixed or drawn from a Random.
type Param struct {
	Value  float64
	Random Random
}

// IsRandom reports whether the value of p is drawn at random.
func (p Param) IsRandom() bool { return p.Random != nil }

// Fixed returns a parameter with the fixed value v.
func Fixed(v float64) Param { return Param{Value: v} }

type uniformDist struct{ lo, hi float64 }

func (d *uniformDist) Sample(r *rand.Rand) float64 { return uniform(r, d.lo, d.hi) }

// Uniform returns a parameter drawn uniformly from [lo, hi).
func Uniform(lo, hi float64) Param { return Param{Random: &uniformDist{lo: lo, hi: hi}} }

type normalDist struct{ mean, stddev float64 }

func (d *normalDist) Sample(r *rand.Rand) float64 { return d.mean + d.stddev*r.NormFloat64() }

// Normal returns a normally distributed parameter.
func Normal(mean, stddev float64) Param {
	return Param{Random: &normalDist{mean: mean, stddev: stddev}}
}

type choiceDist struct{ values []float64 }

func (d *choiceDist) Sample(r *rand.Rand) float64 { return d.values[r.Intn(len(d.values))] }

// Choice returns a parameter equal to one of values, chosen uniformly.
// A single value gives a fixed parameter.
func Choice(values ...float64) Param {
	if len(values) == 1 {
		return Fixed(values[0])
	}
	return Param{Random: &choiceDist{values: append([]float64(nil), values...)}}
}

// VectorParam is a vector whose coordinates are parameters.
type VectorParam struct {
	X, Y Param
}

// FixedVector returns the parameter with the fixed value v.
func FixedVector(v vectors.Vector) VectorParam {
	return VectorParam{X: Fixed(v.X), Y: Fixed(v.Y)}
}

// IsRandom reports whether either coordinate is random.
func (v VectorParam) IsRandom() bool { return v.X.IsRandom() || v.Y.IsRandom() }

// Values holds the draws made during one sampling pass, so that a random
// parameter shared by several regions takes the same value in all of them.
type Values struct {
	r    *rand.Rand
	memo map[Random]float64
}

// NewValues starts a sampling pass drawing from r.
func NewValues(r *rand.Rand) *Values {
	return &Values{r: r, memo: make(map[Random]float64)}
}

// Rand returns the pass's source of randomness.
func (v *Values) Rand() *rand.Rand { return v.r }

// Scalar returns the value of p in this pass.
func (v *Values) Scalar(p Param) float64 {
	if p.Random == nil {
		return p.Value
	}
	if x, ok := v.memo[p.Random]; ok {
		return x
	}
	x := p.Random.Sample(v.r)
	v.memo[p.Random] = x
	return x
}

// Vector returns the value of p in this pass.
func (v *Values) Vector(p VectorParam) vectors.Vector {
	return vectors.New(v.Scalar(p.X), v.Scalar(p.Y))
}

// Symbolic is a region that may depend on random parameters. Fix returns
// the concrete region for the values of a sampling pass.
type Symbolic interface {
	NeedsSampling() bool
	Fix(v *Values) (Region, error)
}

type known struct{ r Region }

// Known wraps a concrete region.
func Known(r Region) Symbolic { return known{r: r} }

func (k known) NeedsSampling() bool         { return false }
func (k known) Fix(*Values) (Region, error) { return k.r, nil }
func (k known) String() string              { return k.r.String() }

type circleOf struct {
	center VectorParam
	radius Param
	opts   []Option
}

// CircleOf returns a circle whose centre and radius may be random.
func CircleOf(center VectorParam, radius Param, opts ...Option) Symbolic {
	return &circleOf{center: center, radius: radius, opts: opts}
}

func (c *circleOf) NeedsSampling() bool { return c.center.IsRandom() || c.radius.IsRandom() }

func (c *circleOf) Fix(v *Values) (Region, error) {
	r, err := NewCircular(v.Vector(c.center), v.Scalar(c.radius), c.opts...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type sectorOf struct {
	center                 VectorParam
	radius, heading, angle Param
	opts                   []Option
}

// SectorOf returns a sector whose parameters may be random.
func SectorOf(center VectorParam, radius, heading, angle Param, opts ...Option) Symbolic {
	return &sectorOf{center: center, radius: radius, heading: heading, angle: angle, opts: opts}
}

func (s *sectorOf) NeedsSampling() bool {
	return s.center.IsRandom() || s.radius.IsRandom() || s.heading.IsRandom() || s.angle.IsRandom()
}

func (s *sectorOf) Fix(v *Values) (Region, error) {
	r, err := NewSector(v.Vector(s.center), v.Scalar(s.radius), v.Scalar(s.heading), v.Scalar(s.angle), s.opts...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type rectangleOf struct {
	position               VectorParam
	heading, width, length Param
	opts                   []Option
}

// RectangleOf returns a rectangle whose parameters may be random.
func RectangleOf(position VectorParam, heading, width, length Param, opts ...Option) Symbolic {
	return &rectangleOf{position: position, heading: heading, width: width, length: length, opts: opts}
}

func (rr *rectangleOf) NeedsSampling() bool {
	return rr.position.IsRandom() || rr.heading.IsRandom() || rr.width.IsRandom() || rr.length.IsRandom()
}

func (rr *rectangleOf) Fix(v *Values) (Region, error) {
	r, err := NewRectangular(v.Vector(rr.position), v.Scalar(rr.heading), v.Scalar(rr.width), v.Scalar(rr.length), rr.opts...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func fixedPoints(kind string, points []VectorParam) ([]vectors.Vector, error) {
	o := make([]vectors.Vector, len(points))
	for i, p := range points {
		if p.IsRandom() {
			return nil, fmt.Errorf("regions: %s point %d is random", kind, i)
		}
		o[i] = vectors.New(p.X.Value, p.Y.Value)
	}
	return o, nil
}

// PolygonOf returns a polygon through points, none of which may be
// random.
func PolygonOf(points []VectorParam, opts ...Option) (Symbolic, error) {
	pts, err := fixedPoints("polygon", points)
	if err != nil {
		return nil, err
	}
	p, err := NewPolygonal(pts, opts...)
	if err != nil {
		return nil, err
	}
	return Known(p), nil
}

// PointSetOf returns the set of points, none of which may be random.
func PointSetOf(points []VectorParam, opts ...Option) (Symbolic, error) {
	pts, err := fixedPoints("point set", points)
	if err != nil {
		return nil, err
	}
	ps, err := NewPointSet(pts, opts...)
	if err != nil {
		return nil, err
	}
	return Known(ps), nil
}

type intersectionOf struct{ parts []Symbolic }

// IntersectionOf returns the intersection of parts, which is combined
// once the parts are fixed so that a specialised rule can apply.
func IntersectionOf(parts ...Symbolic) Symbolic {
	return &intersectionOf{parts: append([]Symbolic(nil), parts...)}
}

func (in *intersectionOf) NeedsSampling() bool { return anyNeedsSampling(in.parts) }

// Fix fixes the parts and intersects them in order. If any step falls
// back to the generic rejection sampler, the result is the generic
// intersection of all the parts.
func (in *intersectionOf) Fix(v *Values) (Region, error) {
	regs := make([]Region, len(in.parts))
	for i, p := range in.parts {
		r, err := p.Fix(v)
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	switch len(regs) {
	case 0:
		return Everywhere, nil
	case 1:
		return regs[0], nil
	}
	acc := regs[0]
	for _, r := range regs[1:] {
		acc = Intersect(acc, r)
		if i, ok := acc.(*Intersection); ok && !i.Specialised() {
			return newIntersection(regs, nil, firstOrientation(regs), ""), nil
		}
	}
	return acc, nil
}

func firstOrientation(regs []Region) Orientation {
	for _, r := range regs {
		if o := r.Orientation(); o != nil {
			return o
		}
	}
	return nil
}

type differenceOf struct{ a, b Symbolic }

// DifferenceOf returns the points of a not in b, combined once both are
// fixed.
func DifferenceOf(a, b Symbolic) Symbolic { return &differenceOf{a: a, b: b} }

func (d *differenceOf) NeedsSampling() bool { return d.a.NeedsSampling() || d.b.NeedsSampling() }

func (d *differenceOf) Fix(v *Values) (Region, error) {
	a, err := d.a.Fix(v)
	if err != nil {
		return nil, err
	}
	b, err := d.b.Fix(v)
	if err != nil {
		return nil, err
	}
	return Difference(a, b), nil
}

func anyNeedsSampling(ss []Symbolic) bool {
	for _, s := range ss {
		if s.NeedsSampling() {
			return true
		}
	}
	return false
}

// PointInRegion is a point to be drawn uniformly from a region that may
// not be fixed yet.
type PointInRegion struct {
	Region Symbolic
}

// UniformPointIn returns a deferred uniform point in s.
func UniformPointIn(s Symbolic) *PointInRegion { return &PointInRegion{Region: s} }

// SampleGiven fixes the region with the values of v, then draws a point
// from it.
func (p *PointInRegion) SampleGiven(v *Values) (vectors.OrientedVector, error) {
	r, err := p.Region.Fix(v)
	if err != nil {
		return vectors.OrientedVector{}, err
	}
	return r.UniformPointInner(v.Rand())
}
