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
	"testing"

	"github.com/spatialmodel/regions/vectors"
)

func TestCircular(t *testing.T) {
	c, err := NewCircular(vectors.New(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    vectors.Vector
		in   bool
		dist float64
	}{
		{p: vectors.New(1, 0), in: true},
		{p: vectors.New(1.0000001, 0), in: false, dist: 1.e-7},
		{p: vectors.New(0, -3), in: false, dist: 2},
		{p: vectors.New(0.2, 0.2), in: true},
	} {
		if got := c.ContainsPoint(test.p); got != test.in {
			t.Errorf("%v: in = %v; want %v", test.p, got, test.in)
		}
		d, _ := c.DistanceTo(test.p)
		if math.Abs(d-test.dist) > 1.e-12 {
			t.Errorf("%v: distance = %g; want %g", test.p, d, test.dist)
		}
	}
	box, _ := c.AABB()
	if box.Lo() != vectors.New(-1, -1) || box.Hi() != vectors.New(1, 1) {
		t.Errorf("aabb = %v", box)
	}
	if _, err := NewCircular(vectors.New(0, 0), -1); err == nil {
		t.Error("negative radius should fail")
	}
	if _, err := NewCircular(vectors.New(math.NaN(), 0), 1); err == nil {
		t.Error("NaN centre should fail")
	}
	if _, err := NewCircular(vectors.New(0, 0), math.Inf(1)); err == nil {
		t.Error("infinite radius should fail")
	}
	if _, err := NewCircular(vectors.New(math.Inf(-1), 0), 1); err == nil {
		t.Error("infinite centre should fail")
	}
}

// TestCircularUniform checks that half the samples of a disc fall within
// radius R/√2.
func TestCircularUniform(t *testing.T) {
	c, _ := NewCircular(vectors.New(3, -2), 2)
	inner, _ := NewCircular(vectors.New(3, -2), 2/math.Sqrt2)
	rnd := newRand(11)
	const n = 20000
	var k int
	for i := 0; i < n; i++ {
		p, _ := c.UniformPointInner(rnd)
		if inner.ContainsPoint(p.Vector) {
			k++
		}
	}
	if f := float64(k) / n; math.Abs(f-0.5) > 0.015 {
		t.Errorf("inner fraction = %g; want 0.5", f)
	}
}

func TestRectangular(t *testing.T) {
	r, err := NewRectangular(vectors.New(0, 0), math.Pi/2, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    vectors.Vector
		want bool
	}{
		{vectors.New(-4.9, 0), true},
		{vectors.New(4.9, 0.9), true},
		{vectors.New(0, 4.9), false},
		{vectors.New(0, 1.1), false},
		{vectors.New(5, 1), true},
	} {
		if got := r.ContainsPoint(test.p); got != test.want {
			t.Errorf("%v: got %v; want %v", test.p, got, test.want)
		}
	}
	d, _ := r.DistanceTo(vectors.New(0, 4))
	if different(d, 3) {
		t.Errorf("distance = %g; want 3", d)
	}
	d, _ = r.DistanceTo(vectors.New(8, 5))
	if different(d, 5) {
		t.Errorf("corner distance = %g; want 5", d)
	}
	box, _ := r.AABB()
	if different(box.X.Lo, -5) || different(box.X.Hi, 5) || different(box.Y.Lo, -1) || different(box.Y.Hi, 1) {
		t.Errorf("aabb = %v", box)
	}
	cs := r.Corners()
	if len(cs) != 4 {
		t.Fatalf("%d corners", len(cs))
	}
	// Front right corner of a box facing west.
	if different(cs[0].X, -5) || different(cs[0].Y, 1) {
		t.Errorf("first corner = %v", cs[0])
	}
	if _, err := NewRectangular(vectors.New(0, 0), 0, -1, 1); err == nil {
		t.Error("negative width should fail")
	}
}

func TestSector(t *testing.T) {
	// A quarter disc facing north-west.
	s, err := NewSector(vectors.New(0, 0), 2, math.Pi/4, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    vectors.Vector
		want bool
	}{
		{vectors.New(-1, 1), true},
		{vectors.New(-0.1, 1.5), true},
		{vectors.New(-1.5, 0.1), true},
		{vectors.New(1, 1), false},
		{vectors.New(-1, -1), false},
		{vectors.New(-1.5, 1.5), false},
		{vectors.New(0, 0), true},
	} {
		if got := s.ContainsPoint(test.p); got != test.want {
			t.Errorf("%v: got %v; want %v", test.p, got, test.want)
		}
	}
	d, _ := s.DistanceTo(vectors.New(-3, 3))
	if math.Abs(d-(3*math.Sqrt2-2)) > 1.e-3 {
		t.Errorf("distance = %g", d)
	}
	box, _ := s.AABB()
	if math.Abs(box.X.Lo+2) > 1.e-3 || math.Abs(box.Y.Hi-2) > 1.e-3 ||
		math.Abs(box.X.Hi) > 1.e-9 || math.Abs(box.Y.Lo) > 1.e-9 {
		t.Errorf("aabb = %v", box)
	}
	center, radius := s.circumcircle()
	for _, p := range []vectors.Vector{vectors.New(-1, 1), vectors.New(-0.5, 0.5)} {
		if vectors.Distance(p, center) > radius+1.e-9 {
			t.Errorf("%v is not in the circumcircle", p)
		}
	}
}

func TestBox(t *testing.T) {
	c, _ := NewCircular(vectors.New(0, 0), 5)
	for _, test := range []struct {
		name string
		pos  vectors.Vector
		want bool
	}{
		{"centre", vectors.New(0, 0), true},
		{"edge", vectors.New(3, 0), true},
		{"outside", vectors.New(4, 0), false},
	} {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewBox(test.pos, 0, 2, 4)
			if err != nil {
				t.Fatal(err)
			}
			if got := c.ContainsObject(b); got != test.want {
				t.Errorf("got %v; want %v", got, test.want)
			}
		})
	}
}
