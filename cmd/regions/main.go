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

// Command regions is a command-line interface for sampling points from
// two-dimensional regions.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/regions/regionsutil"
)

func main() {
	if err := regionsutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
