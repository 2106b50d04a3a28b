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

// Package conversions registers a handful of built-in Conversions on
// harpcore.DefaultRegistry via init, the way the teacher's
// science/chem/simplechem package registers a Mechanism: importing this
// package for its side effect is how a caller opts into these derivations.
// Callers building their own catalog of conversions should follow the same
// pattern rather than mutating DefaultRegistry directly from outside an
// init function.
package conversions

import (
	"github.com/spatialmodel/harpcore"
	"gonum.org/v1/gonum/floats"
)

func init() {
	mustRegister(altitudeBoundsConversion())
	mustRegister(columnDensityConversion())
	mustRegister(pressurePaFromHPaConversion())
}

func mustRegister(c *harpcore.Conversion) {
	if err := harpcore.Register(c); err != nil {
		panic(err)
	}
}

// altitudeBoundsConversion derives an "altitude_bounds" variable, shaped
// [vertical, independent(2)], from a rank-1 "altitude" profile, using
// harpcore.AltitudeBoundsFromAltitude (§8 R1/scenario 2).
func altitudeBoundsConversion() *harpcore.Conversion {
	two := 2
	return &harpcore.Conversion{
		Output: harpcore.Signature{
			Name: "altitude_bounds",
			Type: harpcore.Float64,
			Unit: "m",
			Dims: []harpcore.DimSpec{
				{Kind: harpcore.Vertical},
				{Kind: harpcore.Independent, Length: &two},
			},
		},
		Sources: []harpcore.Signature{
			{
				Name: "altitude",
				Type: harpcore.Float64,
				Unit: "m",
				Dims: []harpcore.DimSpec{{Kind: harpcore.Vertical}},
			},
		},
		Note: "layer bounds from a monotonic altitude profile",
		Compute: func(sources []*harpcore.Variable) (*harpcore.Variable, error) {
			alt := sources[0]
			n := alt.NumElements()
			profile := make([]float64, n)
			for i := range profile {
				profile[i] = alt.Float64At(i)
			}
			bounds := harpcore.AltitudeBoundsFromAltitude(profile)

			out := harpcore.NewVariable("altitude_bounds", harpcore.Float64, []harpcore.Dimension{
				{Kind: harpcore.Vertical, Length: n},
				{Kind: harpcore.Independent, Length: 2},
			}, "m")
			for i, b := range bounds {
				out.SetFloat64At(i, b)
			}
			return out, nil
		},
	}
}

// columnDensityConversion derives a scalar "column_density" from a rank-1
// "partial_column" profile along the vertical axis, summing non-NaN
// contributions per §8 R2/scenario 3.
func columnDensityConversion() *harpcore.Conversion {
	return &harpcore.Conversion{
		Output: harpcore.Signature{
			Name: "column_density",
			Type: harpcore.Float64,
			Dims: nil,
		},
		Sources: []harpcore.Signature{
			{
				Name: "partial_column",
				Type: harpcore.Float64,
				Dims: []harpcore.DimSpec{{Kind: harpcore.Vertical}},
			},
		},
		Note: "sum of non-NaN partial-column contributions",
		Compute: func(sources []*harpcore.Variable) (*harpcore.Variable, error) {
			partial := sources[0]
			n := partial.NumElements()
			profile := make([]float64, n)
			for i := range profile {
				profile[i] = partial.Float64At(i)
			}
			sum := harpcore.ColumnFromPartialColumn(profile)

			out := harpcore.NewVariable("column_density", harpcore.Float64, nil, partial.Unit)
			out.SetFloat64At(0, sum)
			return out, nil
		},
	}
}

// pressurePaFromHPaConversion derives "pressure_pa" from "pressure_hpa" by
// scaling every element by 100, using gonum/floats.Scale for the bulk
// multiply the way the teacher's vargrid.go leans on gonum/floats for
// vectorized reductions rather than a hand-rolled loop.
func pressurePaFromHPaConversion() *harpcore.Conversion {
	return &harpcore.Conversion{
		Output: harpcore.Signature{
			Name: "pressure_pa",
			Type: harpcore.Float64,
			Unit: "Pa",
			Dims: []harpcore.DimSpec{{Kind: harpcore.Vertical}},
		},
		Sources: []harpcore.Signature{
			{
				Name: "pressure_hpa",
				Type: harpcore.Float64,
				Unit: "hPa",
				Dims: []harpcore.DimSpec{{Kind: harpcore.Vertical}},
			},
		},
		Note: "hPa to Pa",
		Compute: func(sources []*harpcore.Variable) (*harpcore.Variable, error) {
			src := sources[0]
			n := src.NumElements()
			buf := make([]float64, n)
			for i := range buf {
				buf[i] = src.Float64At(i)
			}
			floats.Scale(100, buf)

			out := harpcore.NewVariable("pressure_pa", harpcore.Float64, append([]harpcore.Dimension(nil), src.Dimensions...), "Pa")
			for i, f := range buf {
				out.SetFloat64At(i, f)
			}
			return out, nil
		},
	}
}
