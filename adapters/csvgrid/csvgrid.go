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

// Package csvgrid loads the §6 CSV vertical-grid file: a header naming the
// axis ("altitude" or "pressure", with a bracketed unit) followed by one
// decimal value per line. This uses bufio.Scanner rather than
// encoding/csv — the format has no quoting, delimiters, or multiple
// columns, so encoding/csv's general-purpose dialect machinery buys
// nothing over a line scan; see the design notes for the full
// stdlib-vs-library reasoning.
package csvgrid

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spatialmodel/harpcore"
)

// Grid is a decoded vertical-grid file: the axis name ("altitude" or
// "pressure"), its unit, and the decoded values in file order.
type Grid struct {
	Name   string
	Unit   string
	Values []float64
}

var allowedNames = map[string]bool{"altitude": true, "pressure": true}

// Load decodes a §6 CSV vertical-grid file from r.
func Load(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, &harpcore.Error{Kind: harpcore.FileRead, Cause: err}
		}
		return nil, &harpcore.Error{Kind: harpcore.CSVParse, Message: "empty file"}
	}
	name, unit, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	var values []float64
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, &harpcore.Error{Kind: harpcore.CSVParse, Message: fmt.Sprintf("invalid value %q", line), Cause: err}
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, &harpcore.Error{Kind: harpcore.FileRead, Cause: err}
	}
	if len(values) == 0 {
		return nil, &harpcore.Error{Kind: harpcore.CSVParse, Message: "at least one value is required"}
	}
	return &Grid{Name: name, Unit: unit, Values: values}, nil
}

// parseHeader parses a "name [unit]" header line, rejecting any name other
// than altitude or pressure.
func parseHeader(line string) (name, unit string, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", &harpcore.Error{Kind: harpcore.CSVParse, Message: fmt.Sprintf("malformed header %q", line)}
	}
	name = fields[0]
	if !allowedNames[name] {
		return "", "", &harpcore.Error{Kind: harpcore.CSVParse, Message: fmt.Sprintf("unrecognized axis name %q", name)}
	}
	unit = strings.Join(fields[1:], " ")
	unit = strings.TrimPrefix(unit, "[")
	unit = strings.TrimSuffix(unit, "]")
	return name, unit, nil
}

// Variable converts the decoded grid into a one-dimensional harpcore
// Variable along the vertical axis, ready to use as the target axis of
// RegridEngine.RegridFixed.
func (g *Grid) Variable() *harpcore.Variable {
	v := harpcore.NewVariable(g.Name, harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Vertical, Length: len(g.Values)}}, g.Unit)
	for i, x := range g.Values {
		v.SetFloat64At(i, x)
	}
	return v
}
