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
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/regions"
	"github.com/spatialmodel/regions/vectors"
)

// Log receives progress messages from the command-line tools.
var Log logrus.FieldLogger = logrus.StandardLogger()

// Sample draws n points uniformly from s. Each point comes from a fresh
// sampling pass, so random region parameters are redrawn for every point.
// Rejected draws are retried, up to maxTries times per point when maxTries
// is positive and indefinitely otherwise.
func Sample(ctx context.Context, s regions.Symbolic, n, maxTries int, r *rand.Rand) ([]vectors.OrientedVector, error) {
	pt := regions.UniformPointIn(s)
	o := make([]vectors.OrientedVector, 0, n)
	rejections := 0
	for i := 0; i < n; i++ {
		for try := 1; ; try++ {
			if err := ctx.Err(); err != nil {
				return o, err
			}
			p, err := pt.SampleGiven(regions.NewValues(r))
			if err == nil {
				o = append(o, p)
				break
			}
			if !regions.IsRejection(err) {
				return o, errors.Wrapf(err, "regionsutil: sampling point %d", i)
			}
			rejections++
			Log.WithFields(logrus.Fields{
				"point":  i,
				"try":    try,
				"reason": err.Error(),
			}).Debug("sample rejected")
			if maxTries > 0 && try >= maxTries {
				return o, errors.Errorf("regionsutil: no point found for sample %d after %d tries", i, try)
			}
		}
	}
	Log.WithFields(logrus.Fields{
		"points":     len(o),
		"rejections": rejections,
	}).Info("sampling finished")
	return o, nil
}

type feature struct {
	Type       string                 `json:"type"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// WriteGeoJSON writes points as a GeoJSON FeatureCollection. Oriented
// points have a "heading" property.
func WriteGeoJSON(w io.Writer, pts []vectors.OrientedVector) error {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, len(pts))}
	for i, p := range pts {
		g, err := geojson.ToGeoJSON(vectors.ToGeom(p.Vector))
		if err != nil {
			return errors.Wrap(err, "regionsutil: encoding point")
		}
		props := map[string]interface{}{}
		if p.Oriented {
			props["heading"] = p.Heading
		}
		fc.Features[i] = feature{Type: "Feature", Geometry: g, Properties: props}
	}
	return json.NewEncoder(w).Encode(fc)
}

// sampleRecord is a row of a sample shapefile.
type sampleRecord struct {
	geom.Point
	Heading  float64
	Oriented int
}

// WriteShapefile writes points to a point shapefile.
func WriteShapefile(path string, pts []vectors.OrientedVector) error {
	e, err := shp.NewEncoder(path, sampleRecord{})
	if err != nil {
		return errors.Wrapf(err, "regionsutil: creating shapefile %s", path)
	}
	defer e.Close()
	for _, p := range pts {
		rec := sampleRecord{Point: vectors.ToGeom(p.Vector), Heading: p.Heading}
		if p.Oriented {
			rec.Oriented = 1
		}
		if err := e.Encode(&rec); err != nil {
			return errors.Wrapf(err, "regionsutil: writing shapefile %s", path)
		}
	}
	return nil
}

// writeSamples writes to a shapefile when path ends in .shp, to standard
// output when path is "-" or empty, and otherwise to a GeoJSON file.
func writeSamples(path string, stdout io.Writer, pts []vectors.OrientedVector) error {
	switch {
	case path == "" || path == "-":
		return WriteGeoJSON(stdout, pts)
	case strings.ToLower(filepath.Ext(path)) == ".shp":
		return WriteShapefile(path, pts)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "regionsutil: creating output file")
	}
	if err := WriteGeoJSON(f, pts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
