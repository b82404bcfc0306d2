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
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestScene writes the test scene to a temporary directory, which
// the returned function removes.
func writeTestScene(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "regionsutil")
	if err != nil {
		t.Fatal(err)
	}
	f := filepath.Join(dir, "scene.toml")
	if err := ioutil.WriteFile(f, []byte(testScene), 0644); err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return f, func() { os.RemoveAll(dir) }
}

func run(t *testing.T, args ...string) string {
	var b bytes.Buffer
	Root.SetOutput(&b)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestVersion(t *testing.T) {
	if out := run(t, "version"); !strings.HasPrefix(out, "regions v") {
		t.Errorf("version output = %q", out)
	}
}

func TestContainsCmd(t *testing.T) {
	f, cleanup := writeTestScene(t)
	defer cleanup()
	Cfg.Set("scene", f)
	Cfg.Set("region", "free")
	defer Cfg.Set("region", "")
	for _, test := range []struct {
		x, y, want string
	}{
		{"4", "9", "true"},
		{"0", "0", "false"},
		{"6", "0", "false"},
	} {
		if out := strings.TrimSpace(run(t, "contains", test.x, test.y)); out != test.want {
			t.Errorf("contains %s %s = %s; want %s", test.x, test.y, out, test.want)
		}
	}
}

func TestInfoCmd(t *testing.T) {
	f, cleanup := writeTestScene(t)
	defer cleanup()
	Cfg.Set("scene", f)
	Cfg.Set("region", "hole")
	defer Cfg.Set("region", "")
	out := run(t, "info", "5", "0")
	for _, want := range []string{"<Circular hole>", "bounds: [-3, 3] × [-3, 3]", "distance: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestInfoContainsRegions(t *testing.T) {
	f, cleanup := writeTestScene(t)
	defer cleanup()
	Cfg.Set("scene", f)
	Cfg.Set("region", "grounds")
	Cfg.Set("tolerance", 0.1)
	defer func() {
		Cfg.Set("region", "")
		Cfg.Set("tolerance", 0.0)
	}()
	out := run(t, "info")
	for _, want := range []string{"contains yard: true", "contains hole: true", "contains road: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestSampleCmd(t *testing.T) {
	f, cleanup := writeTestScene(t)
	defer cleanup()
	Cfg.Set("scene", f)
	Cfg.Set("region", "yard")
	Cfg.Set("count", 10)
	Cfg.Set("output", "-")
	defer func() {
		Cfg.Set("region", "")
		Cfg.Set("count", 100)
	}()
	out := run(t, "sample")
	var fc struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64
			}
		}
	}
	if err := json.Unmarshal([]byte(out), &fc); err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != 10 {
		t.Fatalf("got %d features", len(fc.Features))
	}
	for _, ft := range fc.Features {
		c := ft.Geometry.Coordinates
		if c[0] < 4 || c[0] > 8 || c[1] < 0 || c[1] > 4 {
			t.Errorf("point %v is outside the yard", c)
		}
	}
}
