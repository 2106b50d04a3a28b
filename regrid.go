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

package harpcore

import (
	"math"

	"github.com/sirupsen/logrus"
)

// RegridEngine is the vertical regridding/smoothing engine (§4.3). It
// calls through the Interpolator and ProductImporter collaborators and
// uses a Resolver to derive axis and bounds variables on demand.
type RegridEngine struct {
	Resolver *Resolver
	Interp   Interpolator
	Importer ProductImporter
	Log      *logrus.Logger
}

// NewRegridEngine returns an engine backed by resolver, interp, and
// importer (importer may be nil if RegridCollocated will not be called).
func NewRegridEngine(resolver *Resolver, interp Interpolator, importer ProductImporter) *RegridEngine {
	return &RegridEngine{Resolver: resolver, Interp: interp, Importer: importer, Log: logrus.StandardLogger()}
}

func (e *RegridEngine) logger() *logrus.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logrus.StandardLogger()
}

// isPressureAxis reports whether axis name designates a pressure grid, the
// one axis kind §4.3 log-transforms before linear interpolation.
func isPressureAxis(name string) bool {
	return name == "pressure"
}

// RegridFixed implements §4.3 "Regrid with fixed axis": resamples every
// resamplable variable of p onto the 1-D vertical axis described by
// target (Dimensions == {Vertical: Nt}, Unit == target's unit).
func (e *RegridEngine) RegridFixed(p *Product, target *Variable) error {
	if len(target.Dimensions) != 1 || target.Dimensions[0].Kind != Vertical {
		return &Error{Kind: InvalidArgument, Message: "target axis must have a single vertical dimension"}
	}
	nt := target.Dimensions[0].Length
	tgtX := asFloat64Slice(target)
	pressure := isPressureAxis(target.Name)

	srcAxis, timeDependent, err := e.deriveSourceAxis(p, target.Name, target.Unit)
	if err != nil {
		return err
	}

	vars := p.Variables()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if name == target.Name {
			continue
		}
		v := p.Variable(name)
		if v == nil {
			continue // already removed as a side effect of an earlier step
		}
		switch CategoryOf(v) {
		case Skip:
			continue
		case Remove:
			e.logger().WithField("variable", name).Warn("dropping variable not resamplable onto vertical grid")
			if err := p.RemoveVariable(name); err != nil {
				return err
			}
			continue
		case Linear, Interval:
			if err := v.ConvertType(Float64); err != nil {
				return err
			}
			if timeDependent && !hasKind(v.Dimensions, Time) {
				broadcastLeading(v, Time, mustTimeLength(p))
			}
			if err := e.resampleVariable(v, srcAxis, tgtX, nt, pressure); err != nil {
				return err
			}
		}
	}

	newAxis := target.Copy()
	newAxis.Name = target.Name
	if err := p.RemoveVariable(target.Name); err != nil && !isNotFound(err) {
		return err
	}
	p.SetDimensionLength(Vertical, nt)
	if err := p.AddVariable(newAxis); err != nil {
		return err
	}
	return nil
}

// deriveSourceAxis derives the source vertical axis with the given name
// and unit, preferring a 1-D {Vertical} variable and falling back to 2-D
// {Time, Vertical} (§4.3 step 1). The second return value reports whether
// the source axis is time-dependent.
func (e *RegridEngine) deriveSourceAxis(p *Product, name, unit string) (*Variable, bool, error) {
	f64 := Float64
	if v, err := e.Resolver.GetDerived(p, name, unit, &f64, []DimSpec{{Kind: Vertical}}); err == nil {
		return v, false, nil
	}
	v, err := e.Resolver.GetDerived(p, name, unit, &f64, []DimSpec{{Kind: Time}, {Kind: Vertical}})
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// resampleVariable resamples v's trailing vertical axis from srcAxis onto
// a grid of length nt, in place.
func (e *RegridEngine) resampleVariable(v *Variable, srcAxis *Variable, tgtX []float64, nt int, pressure bool) error {
	vertLen := v.Dimensions[len(v.Dimensions)-1].Length
	numColumns := v.NumElements() / maxInt(vertLen, 1)
	outerDims := v.Dimensions[:len(v.Dimensions)-1]
	timeAxisPos := axisPosition(outerDims, Time)
	srcTimeDependent := len(srcAxis.Dimensions) == 2
	srcVertLen := srcAxis.Dimensions[len(srcAxis.Dimensions)-1].Length

	out := make([]interface{}, numColumns*nt)
	cat := CategoryOf(v)

	tgtXForInterp := tgtX
	if pressure {
		tgtXForInterp = logSlice(tgtX)
	}

	for c := 0; c < numColumns; c++ {
		tIdx := 0
		if timeAxisPos >= 0 {
			tIdx = multiIndex(c, outerDims)[timeAxisPos]
		}
		var srcX []float64
		if srcTimeDependent {
			srcX = asFloat64Slice(srcAxis)[tIdx*srcVertLen : (tIdx+1)*srcVertLen]
		} else {
			srcX = asFloat64Slice(srcAxis)
		}
		if pressure {
			srcX = logSlice(srcX)
		}

		srcY := make([]float64, vertLen)
		for j := 0; j < vertLen; j++ {
			srcY[j] = v.Float64At(c*vertLen + j)
		}

		outY := make([]float64, nt)
		switch cat {
		case Linear:
			e.Interp.Linear1D(srcX, srcY, tgtXForInterp, outY, false)
		case Interval:
			srcBounds := boundsFromProfile(srcX)
			tgtBounds := boundsFromProfile(tgtXForInterp)
			e.Interp.Interval(srcBounds, srcY, tgtBounds, outY)
		}
		for j := 0; j < nt; j++ {
			out[c*nt+j] = outY[j]
		}
	}

	v.Dimensions[len(v.Dimensions)-1].Length = nt
	if err := v.ReplaceData(out); err != nil {
		return err
	}
	return nil
}

func boundsFromProfile(x []float64) [][2]float64 {
	b := AltitudeBoundsFromAltitude(x)
	out := make([][2]float64, len(x))
	for i := range out {
		out[i] = [2]float64{b[2*i], b[2*i+1]}
	}
	return out
}

func logSlice(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Log(v)
	}
	return out
}

func asFloat64Slice(v *Variable) []float64 {
	out := make([]float64, len(v.Data))
	for i := range v.Data {
		out[i] = v.Float64At(i)
	}
	return out
}

func hasKind(dims []Dimension, kind DimensionKind) bool {
	for _, d := range dims {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func axisPosition(dims []Dimension, kind DimensionKind) int {
	for i, d := range dims {
		if d.Kind == kind {
			return i
		}
	}
	return -1
}

// multiIndex decomposes flat row-major column index c into per-axis
// indices over dims.
func multiIndex(c int, dims []Dimension) []int {
	idx := make([]int, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		idx[i] = c % dims[i].Length
		c /= dims[i].Length
	}
	return idx
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func mustTimeLength(p *Product) int {
	n, _ := p.DimensionLength(Time)
	return n
}

// broadcastLeading prepends a new leading axis of kind/length to v,
// replicating v's existing buffer length times (outermost = slowest
// varying, matching row-major layout).
func broadcastLeading(v *Variable, kind DimensionKind, length int) {
	old := v.Data
	out := make([]interface{}, len(old)*length)
	for t := 0; t < length; t++ {
		copy(out[t*len(old):(t+1)*len(old)], old)
	}
	v.Data = out
	v.Dimensions = append([]Dimension{{Kind: kind, Length: length}}, v.Dimensions...)
}

func isNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == VariableNotFound
}
