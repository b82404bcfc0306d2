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

package planar

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ctessum/geom"
)

const testTolerance = 1.e-6

func different(a, b, tol float64) bool {
	return math.Abs(a-b) > tol
}

func square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{[]geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}}
}

func TestCircle(t *testing.T) {
	c := Circle(geom.Point{X: 1, Y: 2}, 3, 16)
	if n := len(c[0]); n != 65 {
		t.Errorf("vertices: got %d, want 65", n)
	}
	want := math.Pi * 9
	if a := c.Area(); a > want || a < want*0.99 {
		t.Errorf("area: got %g, want about %g", a, want)
	}
}

func TestIntersectionPolygons(t *testing.T) {
	a := square(0, 0, 2, 2)
	b := square(1, 1, 3, 3)
	g, err := Intersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if different(Area(g), 1, testTolerance) {
		t.Errorf("area: got %g, want 1", Area(g))
	}
	g, err = Intersection(a, square(5, 5, 6, 6))
	if err != nil {
		t.Fatal(err)
	}
	if !IsEmpty(g) {
		t.Errorf("disjoint squares should not intersect: %v", g)
	}
}

func TestDifferencePolygons(t *testing.T) {
	g, err := Difference(square(0, 0, 2, 2), square(1, 0, 3, 2))
	if err != nil {
		t.Fatal(err)
	}
	if different(Area(g), 2, testTolerance) {
		t.Errorf("area: got %g, want 2", Area(g))
	}
}

// TestTouchingPolygons covers operands whose vertices lie on each other's
// boundaries, including circles centred on a polygon vertex.
func TestTouchingPolygons(t *testing.T) {
	const tol = 1.e-4
	sq := square(0, 0, 2, 2)
	disc := Circle(geom.Point{}, 1, DefaultResolution).Area()
	tests := []struct {
		name              string
		a, b              geom.Polygon
		inter, diff, both float64
	}{
		{"circle at vertex", sq, Circle(geom.Point{}, 1, DefaultResolution), disc / 4, 4 - disc/4, 4 + disc*3/4},
		{"circle at corner", sq, Circle(geom.Point{X: 2, Y: 2}, 1, DefaultResolution), disc / 4, 4 - disc/4, 4 + disc*3/4},
		{"circle on edge", sq, Circle(geom.Point{X: 1, Y: 0}, 1, DefaultResolution), disc / 2, 4 - disc/2, 4 + disc/2},
		{"circle inside", sq, Circle(geom.Point{X: 1, Y: 1}, 1, DefaultResolution), disc, 4 - disc, 4},
		{"identical", sq, square(0, 0, 2, 2), 4, 0, 4},
		{"shared edge", square(0, 0, 1, 1), square(1, 0, 2, 1), 0, 1, 2},
		{"overlapping edges", sq, square(1, 0, 3, 2), 2, 2, 6},
		{"shared corner", square(0, 0, 1, 1), square(1, 1, 2, 2), 0, 1, 2},
		{"hole", append(square(0, 0, 4, 4), square(1, 1, 3, 3)[0]), square(1, 1, 3, 3), 0, 12, 16},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in, err := Intersection(test.a, test.b)
			if err != nil {
				t.Fatal(err)
			}
			if different(Area(in), test.inter, tol) {
				t.Errorf("intersection area: got %g, want %g", Area(in), test.inter)
			}
			diff, err := Difference(test.a, test.b)
			if err != nil {
				t.Fatal(err)
			}
			if different(Area(diff), test.diff, tol) {
				t.Errorf("difference area: got %g, want %g", Area(diff), test.diff)
			}
			u, err := Union(test.a, test.b)
			if err != nil {
				t.Fatal(err)
			}
			if different(u.Area(), test.both, tol) {
				t.Errorf("union area: got %g, want %g", u.Area(), test.both)
			}
		})
	}
}

func TestIntersectionKeepsInterior(t *testing.T) {
	in, err := Intersection(square(0, 0, 2, 2), Circle(geom.Point{}, 1, DefaultResolution))
	if err != nil {
		t.Fatal(err)
	}
	p, _ := Flatten(in)
	for _, q := range []geom.Point{{X: 0.5, Y: 0.5}, {X: 0.1, Y: 0.8}, {X: 0.8, Y: 0.1}} {
		if Within(q, p) != geom.Inside {
			t.Errorf("%v should be inside %v", q, p)
		}
	}
	for _, q := range []geom.Point{{X: -0.5, Y: 0.5}, {X: 0.5, Y: -0.5}, {X: 1.5, Y: 1.5}} {
		if Within(q, p) != geom.Outside {
			t.Errorf("%v should be outside %v", q, p)
		}
	}
}

func TestClipLines(t *testing.T) {
	l := geom.LineString{{X: -1, Y: 1}, {X: 3, Y: 1}}
	in, err := Intersection(l, square(0, 0, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if different(Length(in), 2, testTolerance) {
		t.Errorf("inside length: got %g, want 2", Length(in))
	}
	out, err := Difference(l, square(0, 0, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if different(Length(out), 2, testTolerance) {
		t.Errorf("outside length: got %g, want 2", Length(out))
	}
	if n := len(out.(geom.MultiLineString)); n != 2 {
		t.Errorf("outside parts: got %d, want 2", n)
	}
}

func TestLineCrossings(t *testing.T) {
	a := geom.LineString{{X: 0, Y: 0}, {X: 2, Y: 2}}
	b := geom.LineString{{X: 0, Y: 2}, {X: 2, Y: 0}}
	g, err := Intersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	pts := g.(geom.MultiPoint)
	if len(pts) != 1 || different(pts[0].X, 1, testTolerance) || different(pts[0].Y, 1, testTolerance) {
		t.Errorf("got %v, want [(1, 1)]", pts)
	}
}

func TestDistance(t *testing.T) {
	sq := square(0, 0, 2, 2)
	tests := []struct {
		name string
		g    geom.Geom
		p    geom.Point
		want float64
	}{
		{"inside polygon", sq, geom.Point{X: 1, Y: 1}, 0},
		{"outside polygon", sq, geom.Point{X: 5, Y: 1}, 3},
		{"polygon corner", sq, geom.Point{X: 5, Y: 6}, 5},
		{"line", geom.LineString{{X: 0, Y: 0}, {X: 10, Y: 0}}, geom.Point{X: 5, Y: -2}, 2},
		{"points", geom.MultiPoint{{X: 0, Y: 0}, {X: 3, Y: 4}}, geom.Point{X: 3, Y: 5}, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Distance(test.g, test.p)
			if err != nil {
				t.Fatal(err)
			}
			if different(d, test.want, testTolerance) {
				t.Errorf("got %g, want %g", d, test.want)
			}
		})
	}
}

func TestIntersects(t *testing.T) {
	sq := square(0, 0, 2, 2)
	tests := []struct {
		name string
		a, b geom.Geom
		want bool
	}{
		{"overlapping", sq, square(1, 1, 3, 3), true},
		{"touching", sq, square(2, 0, 3, 2), true},
		{"nested", sq, square(0.5, 0.5, 1, 1), true},
		{"disjoint", sq, square(3, 3, 4, 4), false},
		{"line through", sq, geom.LineString{{X: -1, Y: 1}, {X: 3, Y: 1}}, true},
		{"line inside", sq, geom.LineString{{X: 0.5, Y: 1}, {X: 1.5, Y: 1}}, true},
		{"line outside", sq, geom.LineString{{X: 3, Y: 0}, {X: 3, Y: 2}}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Intersects(test.a, test.b)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Errorf("got %v, want %v", got, test.want)
			}
		})
	}
}

func TestProjectInterpolate(t *testing.T) {
	l := geom.MultiLineString{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}}
	if d := Project(l, geom.Point{X: 12, Y: 4}); different(d, 14, testTolerance) {
		t.Errorf("project: got %g, want 14", d)
	}
	p := Interpolate(l, 15)
	if different(p.X, 10, testTolerance) || different(p.Y, 5, testTolerance) {
		t.Errorf("interpolate: got %v, want (10, 5)", p)
	}
	p = Interpolate(l, -5)
	if different(p.Y, 5, testTolerance) {
		t.Errorf("interpolate from end: got %v, want (10, 5)", p)
	}
	p = NearestPoint(l, geom.Point{X: 4, Y: -3})
	if different(p.X, 4, testTolerance) || different(p.Y, 0, testTolerance) {
		t.Errorf("nearest point: got %v, want (4, 0)", p)
	}
}

func TestIsValid(t *testing.T) {
	bowtie := geom.Polygon{[]geom.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}}}
	tests := []struct {
		name  string
		g     geom.Geom
		valid bool
	}{
		{"square", square(0, 0, 1, 1), true},
		{"bowtie", bowtie, false},
		{"two points", geom.Polygon{[]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}, false},
		{"collinear", geom.Polygon{[]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}, false},
		{"line", geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 1}}, true},
		{"short line", geom.MultiLineString{{{X: 0, Y: 0}, {X: 1, Y: 1}}, {{X: 3, Y: 3}}}, false},
		{"nan", geom.LineString{{X: 0, Y: 0}, {X: math.NaN(), Y: 1}}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := IsValid(test.g)
			if (err == nil) != test.valid {
				t.Errorf("valid = %v, want %v (err: %v)", err == nil, test.valid, err)
			}
		})
	}
}

func triangleArea(tris []Triangle) float64 {
	var a float64
	for _, t := range tris {
		a += t.Area()
	}
	return a
}

func TestTriangulate(t *testing.T) {
	withHole := square(0, 0, 4, 4)
	withHole = append(withHole, square(1, 1, 3, 3)[0])
	lShape := geom.Polygon{[]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 9}, {X: 10, Y: 9}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	twoParts := append(square(0, 0, 1, 1), square(5, 5, 7, 7)[0])
	tests := []struct {
		name string
		p    geom.Polygon
		area float64
	}{
		{"square", square(0, 0, 2, 3), 6},
		{"hole", withHole, 12},
		{"L", lShape, 19},
		{"two parts", twoParts, 5},
		{"circle", Circle(geom.Point{}, 1, 8), Circle(geom.Point{}, 1, 8).Area()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tris, err := Triangulate(test.p)
			if err != nil {
				t.Fatal(err)
			}
			if a := triangleArea(tris); different(a, test.area, 1.e-6) {
				t.Errorf("area: got %g, want %g", a, test.area)
			}
			for _, tri := range tris {
				c := geom.Point{X: (tri[0].X + tri[1].X + tri[2].X) / 3, Y: (tri[0].Y + tri[1].Y + tri[2].Y) / 3}
				if Within(c, test.p) == geom.Outside {
					t.Errorf("triangle %v lies outside the polygon", tri)
				}
			}
		})
	}
}

func TestComponents(t *testing.T) {
	p := square(0, 0, 10, 10)
	p = append(p, square(2, 2, 8, 8)[0], square(4, 4, 6, 6)[0], square(20, 20, 21, 21)[0])
	c := Components(p)
	if len(c) != 3 {
		t.Fatalf("components: got %d, want 3", len(c))
	}
	if len(c[0]) != 2 {
		t.Errorf("first component rings: got %d, want 2", len(c[0]))
	}
}

func TestBuffer(t *testing.T) {
	b, err := Buffer(square(0, 0, 2, 2), 1, DefaultResolution)
	if err != nil {
		t.Fatal(err)
	}
	want := 4 + 4*2 + math.Pi
	if a := b.Area(); different(a, want, 0.05) {
		t.Errorf("area: got %g, want about %g", a, want)
	}
	if Within(geom.Point{X: 2.9, Y: 1}, b) == geom.Outside {
		t.Error("buffer should cover a point 0.9 from an edge")
	}
	if Within(geom.Point{X: 2.9, Y: 2.9}, b) != geom.Outside {
		t.Error("buffer should not cover a point 1.27 from a corner")
	}
}

func TestPrepared(t *testing.T) {
	p := square(0, 0, 10, 10)
	p = append(p, square(4, 4, 6, 6)[0])
	pp := Prepare(p)
	for _, test := range []struct {
		p    geom.Point
		want bool
	}{
		{geom.Point{X: 1, Y: 1}, true},
		{geom.Point{X: 0, Y: 5}, true},
		{geom.Point{X: 5, Y: 5}, false},
		{geom.Point{X: 4, Y: 5}, true},
		{geom.Point{X: 11, Y: 5}, false},
	} {
		if got := pp.ContainsPoint(test.p); got != test.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", test.p, got, test.want)
		}
	}
	for _, test := range []struct {
		name string
		g    geom.Geom
		want bool
	}{
		{"small square", square(1, 1, 2, 2), true},
		{"square around hole", square(3, 3, 7, 7), false},
		{"square across edge", square(9, 1, 11, 2), false},
		{"itself without hole", square(0, 0, 10, 10), false},
		{"line", geom.LineString{{X: 1, Y: 1}, {X: 1, Y: 9}}, true},
		{"line across hole", geom.LineString{{X: 1, Y: 5}, {X: 9, Y: 5}}, false},
	} {
		if got := pp.Contains(test.g); got != test.want {
			t.Errorf("Contains(%s) = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestPointIndex(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	pts := make([]geom.Point, 500)
	for i := range pts {
		pts[i] = geom.Point{X: r.Float64() * 100, Y: r.Float64() * 50}
	}
	x := NewPointIndex(pts)
	for k := 0; k < 100; k++ {
		p := geom.Point{X: r.Float64()*300 - 100, Y: r.Float64()*150 - 50}
		wantI, wantD := -1, math.Inf(1)
		for i, q := range pts {
			if d := dist(p, q); d < wantD {
				wantI, wantD = i, d
			}
		}
		i, d := x.Nearest(p)
		if i != wantI || different(d, wantD, testTolerance) {
			t.Fatalf("Nearest(%v) = (%d, %g), want (%d, %g)", p, i, d, wantI, wantD)
		}
	}
	c := geom.Point{X: 50, Y: 25}
	got := x.WithinRadius(c, 10)
	var want []int
	for i, q := range pts {
		if dist(c, q) <= 10 {
			want = append(want, i)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("WithinRadius: got %d points, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("WithinRadius[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if i, d := NewPointIndex(nil).Nearest(c); i != -1 || !math.IsInf(d, 1) {
		t.Errorf("empty index: got (%d, %g)", i, d)
	}
}
