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

// Package units is a reference implementation of harpcore's UnitConverter
// collaborator (§6), backed by github.com/ctessum/unit's dimensional
// analysis the way the teacher's emissions/slca/greet package uses it to
// keep physical quantities honest across unit systems. Unlike the
// teacher's usage, which builds *unit.Unit values directly in Go code,
// this package keys a symbol table by the unit *strings* a Variable
// carries, since harpcore's data model stores units as strings (§3).
package units

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/harpcore"
)

// entry is one registered unit symbol: its dimensional signature (for
// compatibility checks) and its multiplicative scale relative to the
// symbol table's chosen SI reference for that dimension.
type entry struct {
	dims  unit.Dimensions
	scale float64 // value in reference-unit terms = scale * value in this unit
}

// Converter is a symbol-table-backed UnitConverter. The zero value is not
// usable; construct with NewConverter, which seeds the atmospheric units
// harpcore's regridder and resolver conversions need.
type Converter struct {
	symbols map[string]entry
}

// NewConverter returns a Converter pre-populated with the SI and
// atmospheric-science unit symbols harpcore's built-in conversions and
// adapters reference: pressure (Pa, hPa, atm), length (m, km), volume
// mixing ratio (ppv, ppmv, ppbv, pptv), and number density (molec/cm3,
// molec/m3). Additional symbols can be added with Register.
func NewConverter() *Converter {
	c := &Converter{symbols: make(map[string]entry)}
	pressureDims := unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
	lengthDims := unit.Dimensions{unit.LengthDim: 1}
	dimless := unit.Dimless

	c.Register("Pa", pressureDims, 1)
	c.Register("hPa", pressureDims, 100)
	c.Register("atm", pressureDims, 101325)

	c.Register("m", lengthDims, 1)
	c.Register("km", lengthDims, 1000)

	c.Register("1", dimless, 1)
	c.Register("ppv", dimless, 1)
	c.Register("ppmv", dimless, 1e-6)
	c.Register("ppbv", dimless, 1e-9)
	c.Register("pptv", dimless, 1e-12)

	numberDensityDims := unit.Dimensions{unit.LengthDim: -3}
	c.Register("molec/m3", numberDensityDims, 1)
	c.Register("molec/cm3", numberDensityDims, 1e6)
	return c
}

// Register adds or overwrites a unit symbol's dimensional signature and
// scale (relative to any other symbol sharing the same dims).
func (c *Converter) Register(symbol string, dims unit.Dimensions, scale float64) {
	c.symbols[symbol] = entry{dims: dims, scale: scale}
}

// CanConvert reports whether src and dst are both registered and share a
// dimensional signature.
func (c *Converter) CanConvert(src, dst string) bool {
	if src == dst {
		return true
	}
	s, ok1 := c.symbols[src]
	d, ok2 := c.symbols[dst]
	return ok1 && ok2 && s.dims.Matches(d.dims)
}

// VariableHasUnit reports whether v.Unit is exactly the string u (e.g. a
// variable stored as "hPa" satisfies HasUnit("hPa") but not
// HasUnit("Pa") even though they're convertible). No normalization is
// applied: two different spellings of the same unit do not match.
func (c *Converter) VariableHasUnit(v *harpcore.Variable, u string) bool {
	return v.Unit == u
}

// ConvertVariable rescales every element of v's buffer from v.Unit to
// dstUnit and updates v.Unit, using unit.New/unit.Div under the hood to
// get the conversion factor so harpcore never hand-computes unit algebra
// itself — that's the entire reason this adapter exists.
func (c *Converter) ConvertVariable(v *harpcore.Variable, dstUnit string) error {
	if v.Unit == dstUnit {
		return nil
	}
	src, ok := c.symbols[v.Unit]
	if !ok {
		return &harpcore.Error{Kind: harpcore.UnitConversion, Message: fmt.Sprintf("unknown source unit %q", v.Unit)}
	}
	dst, ok := c.symbols[dstUnit]
	if !ok {
		return &harpcore.Error{Kind: harpcore.UnitConversion, Message: fmt.Sprintf("unknown destination unit %q", dstUnit)}
	}
	if !src.dims.Matches(dst.dims) {
		return &harpcore.Error{Kind: harpcore.UnitConversion, Message: fmt.Sprintf("cannot convert %q to %q: incompatible dimensions", v.Unit, dstUnit)}
	}

	ratio := unit.Div(unit.New(src.scale, src.dims), unit.New(dst.scale, dst.dims))
	factor := ratio.Value()

	for i := range v.Data {
		f := v.Float64At(i)
		if math.IsNaN(f) {
			continue
		}
		v.SetFloat64At(i, f*factor)
	}
	v.Unit = dstUnit
	return nil
}
