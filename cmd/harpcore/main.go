/*
Copyright © 2026 the harpcore authors.
This file is part of harpcore.

harpcore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

harpcore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with harpcore.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command harpcore is a command-line interface over the harpcore library:
// listing the registered conversion catalog and regridding a product onto
// a fixed vertical axis. Its own design is out of scope (§1); it exists
// to carry the teacher's cobra/viper CLI convention, the way
// github.com/spatialmodel/inmap/inmap wraps inmaputil.Cfg.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/harpcore/internal/cmd"
)

func main() {
	if err := cmd.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
