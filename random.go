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
	"math/rand"
	"sort"
)

// uniform returns a value drawn uniformly from [lo, hi).
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// triangular draws from the triangular distribution on [lo, hi] with the
// given mode. triangular(r, 0, R, R) is the radius of a point uniform in
// a disc of radius R.
func triangular(r *rand.Rand, lo, hi, mode float64) float64 {
	u := r.Float64()
	if hi == lo {
		return lo
	}
	c := (mode - lo) / (hi - lo)
	if u > c {
		u = 1 - u
		c = 1 - c
		lo, hi = hi, lo
	}
	return lo + (hi-lo)*math.Sqrt(u*c)
}

// weightedIndex picks an index with probability proportional to the
// increments of the cumulative weights cum.
func weightedIndex(r *rand.Rand, cum []float64) int {
	total := cum[len(cum)-1]
	x := r.Float64() * total
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > x })
	if i == len(cum) {
		i--
	}
	return i
}
