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

package vectors

import (
	"math"
	"testing"
)

const tolerance = 1.e-9

func different(a, b float64) bool {
	return math.Abs(a-b) > tolerance
}

func TestNormalizeAngle(t *testing.T) {
	for _, test := range []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
		{4 * math.Pi, 0},
	} {
		if got := NormalizeAngle(test.in); different(got, test.want) {
			t.Errorf("NormalizeAngle(%g) = %g; want %g", test.in, got, test.want)
		}
	}
}

func TestHeadingConvention(t *testing.T) {
	tests := []struct {
		name string
		to   Vector
		want float64
	}{
		{"north", New(0, 1), 0},
		{"west", New(-1, 0), math.Pi / 2},
		{"east", New(1, 0), -math.Pi / 2},
		{"south", New(0, -1), math.Pi},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := AngleTo(New(0, 0), test.to); different(got, test.want) {
				t.Errorf("AngleTo = %g; want %g", got, test.want)
			}
			p := OffsetRadially(New(0, 0), 1, test.want)
			if different(p.X, test.to.X) || different(p.Y, test.to.Y) {
				t.Errorf("OffsetRadially = %v; want %v", p, test.to)
			}
		})
	}
}

func TestOffsetRotated(t *testing.T) {
	p := OffsetRotated(New(1, 1), math.Pi/2, New(2, 0))
	if different(p.X, 1) || different(p.Y, 3) {
		t.Errorf("got %v", p)
	}
}

func TestPointIsInCone(t *testing.T) {
	base := New(0, 0)
	for _, test := range []struct {
		p     Vector
		angle float64
		want  bool
	}{
		{New(0, 1), math.Pi / 2, true},
		{New(0.9, 1), math.Pi / 2, true},
		{New(1, 0.9), math.Pi / 2, false},
		{New(0, -1), math.Pi / 2, false},
		{New(0, -1), 2 * math.Pi, true},
		{base, 0.1, true},
	} {
		if got := PointIsInCone(test.p, base, 0, test.angle); got != test.want {
			t.Errorf("PointIsInCone(%v, %g) = %v; want %v", test.p, test.angle, got, test.want)
		}
	}
}
