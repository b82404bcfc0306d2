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

package regionsutil

import (
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/regions"
	"github.com/spatialmodel/regions/vectors"
)

const testScene = `
[[Region]]
Name = "lot"
Type = "Rectangle"
Position = [0.0, 0.0]
Width = 10.0
Length = 20.0
Orientation = 0.5

[[Region]]
Name = "hole"
Type = "Circle"
Center = [0.0, 0.0]
Radius = 3.0

[[Region]]
Name = "spot"
Type = "Circle"
Center = [[-2.0, 2.0], [0.0, 0.0]]
Radius = [1.0, 2.0]

[[Region]]
Name = "road"
Type = "Polyline"
Points = [[0.0, -10.0], [0.0, 10.0]]

[[Region]]
Name = "yard"
Type = "Polygon"
Points = [[4.0, 0.0], [8.0, 0.0], [8.0, 4.0], [4.0, 4.0]]

[[Region]]
Name = "cells"
Type = "Grid"
Cells = [[0, 1], [0, 0]]
Scale = [1.0, 1.0]
Offset = [0.0, 0.0]

[[Region]]
Name = "free"
Type = "Difference"
Of = ["lot", "hole"]

[[Region]]
Name = "both"
Type = "Intersection"
Of = ["lot", "spot"]

[[Region]]
Name = "grounds"
Type = "Union"
Of = ["yard", "lot"]
`

func loadTestScene(t *testing.T) *Scene {
	s, err := ReadScene(strings.NewReader(testScene))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func fix(t *testing.T, s *Scene, name string) regions.Region {
	sym, err := s.Region(name)
	if err != nil {
		t.Fatal(err)
	}
	r, err := sym.Fix(regions.NewValues(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestReadScene(t *testing.T) {
	s := loadTestScene(t)
	want := []string{"lot", "hole", "spot", "road", "yard", "cells", "free", "both", "grounds"}
	if strings.Join(s.Names, ",") != strings.Join(want, ",") {
		t.Fatalf("names = %v; want %v", s.Names, want)
	}
	for _, test := range []struct {
		name  string
		check func(regions.Region) bool
	}{
		{"lot", func(r regions.Region) bool { _, ok := r.(*regions.Rectangular); return ok }},
		{"hole", func(r regions.Region) bool { _, ok := r.(*regions.Circular); return ok }},
		{"road", func(r regions.Region) bool { _, ok := r.(*regions.Polyline); return ok }},
		{"yard", func(r regions.Region) bool { _, ok := r.(*regions.Polygonal); return ok }},
		{"cells", func(r regions.Region) bool { _, ok := r.(*regions.Grid); return ok }},
		{"free", func(r regions.Region) bool { _, ok := r.(*regions.DifferenceRegion); return ok }},
		{"both", func(r regions.Region) bool { _, ok := r.(*regions.Intersection); return ok }},
		{"grounds", func(r regions.Region) bool { _, ok := r.(*regions.Polygonal); return ok }},
	} {
		t.Run(test.name, func(t *testing.T) {
			r := fix(t, s, test.name)
			if !test.check(r) {
				t.Errorf("got %T", r)
			}
			if r.Name() != test.name && test.name != "free" && test.name != "both" && test.name != "grounds" {
				t.Errorf("name = %q", r.Name())
			}
		})
	}

	last, err := s.Region("")
	if err != nil {
		t.Fatal(err)
	}
	grounds, _ := s.Region("grounds")
	if last != grounds {
		t.Error("default region should be the last one")
	}

	spot, _ := s.Region("spot")
	if !spot.NeedsSampling() {
		t.Error("spot has random parameters")
	}
	hole, _ := s.Region("hole")
	if hole.NeedsSampling() {
		t.Error("hole has no random parameters")
	}

	lot := fix(t, s, "lot")
	if h := lot.Orientation().Heading(vectors.New(1, 1)); h != 0.5 {
		t.Errorf("lot heading = %g; want 0.5", h)
	}
	if !fix(t, s, "grounds").ContainsPoint(vectors.New(7, 2)) {
		t.Error("union should contain a point of the yard")
	}
}

func TestReadSceneErrors(t *testing.T) {
	for _, test := range []struct {
		name, scene string
	}{
		{"unknown type", `
[[Region]]
Name = "a"
Type = "Hexagon"
`},
		{"duplicate", `
[[Region]]
Name = "a"
Type = "Everywhere"
[[Region]]
Name = "a"
Type = "Nowhere"
`},
		{"unknown reference", `
[[Region]]
Name = "a"
Type = "Intersection"
Of = ["b", "c"]
`},
		{"bad range", `
[[Region]]
Name = "a"
Type = "Circle"
Radius = [1.0, 2.0, 3.0]
`},
		{"no name", `
[[Region]]
Type = "Everywhere"
`},
		{"short point", `
[[Region]]
Name = "a"
Type = "Polyline"
Points = [[0.0], [1.0, 1.0]]
`},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ReadScene(strings.NewReader(test.scene)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParam(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, test := range []struct {
		name     string
		in       interface{}
		lo, hi   float64
		isRandom bool
	}{
		{"int", int64(3), 3, 3, false},
		{"float", 2.5, 2.5, 2.5, false},
		{"range", []interface{}{1.0, 2.0}, 1, 2, true},
		{"choice", map[string]interface{}{"Choice": []interface{}{4.0, 5.0}}, 4, 5, true},
	} {
		t.Run(test.name, func(t *testing.T) {
			p, err := param("x", test.in)
			if err != nil {
				t.Fatal(err)
			}
			if p.IsRandom() != test.isRandom {
				t.Errorf("IsRandom = %v", p.IsRandom())
			}
			for i := 0; i < 100; i++ {
				v := regions.NewValues(r).Scalar(p)
				if v < test.lo || v > test.hi {
					t.Fatalf("value %g outside [%g, %g]", v, test.lo, test.hi)
				}
			}
		})
	}
	if _, err := param("x", "abc"); err == nil {
		t.Error("expected an error for a string")
	}
}

func TestGeoJSONRegion(t *testing.T) {
	dir, err := ioutil.TempDir("", "regionsutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	f := filepath.Join(dir, "zone.json")
	err = ioutil.WriteFile(f, []byte(`{"type": "Polygon","coordinates": [ [ [0, 0], [2, 0], [2, 2], [0, 2], [0, 0] ] ] }`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	s, err := ReadScene(strings.NewReader(`
[[Region]]
Name = "zone"
Type = "File"
File = "` + f + `"
`))
	if err != nil {
		t.Fatal(err)
	}
	r := fix(t, s, "zone")
	if _, ok := r.(*regions.Polygonal); !ok {
		t.Fatalf("got %T", r)
	}
	if !r.ContainsPoint(vectors.New(1, 1)) || r.ContainsPoint(vectors.New(3, 1)) {
		t.Error("wrong membership")
	}
	if r.Name() != "zone" {
		t.Errorf("name = %q", r.Name())
	}
}
