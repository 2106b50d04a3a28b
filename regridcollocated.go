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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// matchState holds the per-invocation cache the design notes call for:
// "the regridder's caches (target axis, target bounds, current match
// product)... owned by the regrid invocation and released on both normal
// and error exit". Being plain Go values, "release" here just means the
// matchState going out of scope; there is no file handle analogue to close
// since ProductImporter hands back a fully decoded Product.
type matchState struct {
	filename string
	product  *Product
	axis     *Variable // {Time, Vertical}, already log-transformed if pressure
	bounds   map[string]*Variable
}

// RegridCollocated implements §4.3 "Regrid/smooth against collocation":
// resamples every resamplable variable of p onto the per-sample vertical
// grid of whatever product each of p's samples collocates with, per
// table, optionally applying averaging-kernel smoothing to the species
// named in smoothSpecies.
func (e *RegridEngine) RegridCollocated(p *Product, axisName, axisUnit string, table CollocationTable, smoothSpecies []string) error {
	pressure := isPressureAxis(axisName)
	smooth := make(map[string]bool, len(smoothSpecies))
	for _, s := range smoothSpecies {
		smooth[s] = true
	}

	// Step 1: shallow-copy, filter, sort.
	filtered := table.Copy().FilterBySourceA(p.SourceProduct).SortByID()
	pairs := filtered.Pairs()
	byID := make(map[int64]CollocationPair, len(pairs))
	for _, pr := range pairs {
		byID[pr.ID] = pr
	}

	// Step 2: N_max across matching B products, from pair metadata alone
	// (no import needed yet).
	nMax, _ := p.DimensionLength(Vertical)
	for _, pr := range pairs {
		if l, ok := pr.MetaB.DimLengths[Vertical]; ok && l > nMax {
			nMax = l
		}
	}

	// Step 3: drop Remove-category variables; broadcast time-independent
	// vertical variables along time.
	timeLen := mustTimeLength(p)
	for _, v := range append([]*Variable(nil), p.Variables()...) {
		switch CategoryOf(v) {
		case Remove:
			e.logger().WithField("variable", v.Name).Warn("dropping variable not resamplable onto vertical grid")
			if err := p.RemoveVariable(v.Name); err != nil {
				return err
			}
		case Linear, Interval:
			if !hasKind(v.Dimensions, Time) {
				broadcastLeading(v, Time, timeLen)
			}
		}
	}

	// Step 4: derive the source axis on P.
	f64 := Float64
	srcAxis, err := e.Resolver.GetDerived(p, axisName, axisUnit, &f64, []DimSpec{{Kind: Time}, {Kind: Vertical}})
	if err != nil {
		return err
	}
	if pressure {
		for i := range srcAxis.Data {
			srcAxis.SetFloat64At(i, math.Log(srcAxis.Float64At(i)))
		}
	}

	// Step 5: grow the vertical axis if needed.
	grew, err := e.growVerticalAxisIfNeeded(p, nMax)
	if err != nil {
		return err
	}

	srcVertLen := srcAxis.Dimensions[1].Length

	var state matchState
	idxVar := p.Variable("collocation_index")
	if idxVar == nil {
		return &Error{Kind: VariableNotFound, Message: "collocation_index"}
	}

	// Step 6: iterate samples.
	for i := 0; i < timeLen; i++ {
		id := int64(idxVar.Float64At(i))
		pair, ok := byID[id]
		if !ok {
			return &Error{Kind: NoData, Message: fmt.Sprintf("no collocation pair for id %d", id)}
		}
		if state.product == nil || state.filename != pair.MetaB.Filename {
			matched, err := e.Importer.Import(pair.MetaB.Filename)
			if err != nil {
				return &Error{Kind: Import, Message: pair.MetaB.Filename, Cause: err}
			}
			state = matchState{filename: pair.MetaB.Filename, product: matched, bounds: map[string]*Variable{}}
			tgtAxis, err := e.Resolver.GetDerived(matched, axisName, axisUnit, &f64, []DimSpec{{Kind: Time}, {Kind: Vertical}})
			if err != nil {
				return err
			}
			if pressure {
				for k := range tgtAxis.Data {
					tgtAxis.SetFloat64At(k, math.Log(tgtAxis.Float64At(k)))
				}
			}
			state.axis = tgtAxis
		}

		bIdxVar := state.product.Variable("collocation_index")
		if bIdxVar == nil {
			return &Error{Kind: VariableNotFound, Message: "collocation_index (match product)"}
		}
		j := -1
		for k := 0; k < len(bIdxVar.Data); k++ {
			if int64(bIdxVar.Float64At(k)) == id {
				j = k
				break
			}
		}
		if j < 0 {
			return &Error{Kind: NoData, Message: fmt.Sprintf("collocation id %d not found in match product", id)}
		}

		tgtVertLen := state.axis.Dimensions[1].Length
		srcRow := asFloat64Slice(srcAxis)[i*srcVertLen : (i+1)*srcVertLen]
		tgtRow := asFloat64Slice(state.axis)[j*tgtVertLen : (j+1)*tgtVertLen]
		nSrc := unpaddedLen(srcRow)
		nTgt := unpaddedLen(tgtRow)

		for _, v := range p.Variables() {
			cat := CategoryOf(v)
			if cat == Skip || v.Name == axisName || v.Name == "collocation_index" {
				continue
			}
			vertLen := v.Dimensions[len(v.Dimensions)-1].Length
			rowStart := i * vertLen
			srcY := asFloat64Slice(v)[rowStart : rowStart+vertLen][:nSrc]
			outY := make([]float64, vertLen)
			for k := range outY {
				outY[k] = math.NaN()
			}

			switch cat {
			case Linear:
				e.Interp.Linear1D(srcRow[:nSrc], srcY, tgtRow[:nTgt], outY[:nTgt], false)
			case Interval:
				boundsA, err := e.laterallyCachedBounds(p, v.Name, axisUnit)
				if err != nil {
					return err
				}
				boundsB, err := e.matchBounds(&state, v.Name, axisUnit)
				if err != nil {
					return err
				}
				srcBounds := rowBounds(boundsA, i, nSrc)
				tgtBounds := rowBounds(boundsB, j, nTgt)
				if pressure {
					for _, bs := range [][][2]float64{srcBounds, tgtBounds} {
						for k := range bs {
							bs[k] = [2]float64{math.Log(bs[k][0]), math.Log(bs[k][1])}
						}
					}
				}
				e.Interp.Interval(srcBounds, srcY, tgtBounds, outY[:nTgt])
			}

			if smooth[v.Name] {
				if err := e.applyAVK(&state, v, j, outY); err != nil {
					return err
				}
			}

			for k := 0; k < vertLen; k++ {
				v.SetFloat64At(rowStart+k, outY[k])
			}
		}
	}

	if grew {
		if _, err := e.growVerticalAxisIfNeeded(p, nMax); err != nil {
			return err
		}
	}
	p.SetDimensionLength(Vertical, nMax)
	return nil
}

// laterallyCachedBounds derives `{name}_bounds` on p. It is not cached
// across samples since p itself does not change during the loop — only
// the match-product side needs per-match caching (matchState.bounds).
func (e *RegridEngine) laterallyCachedBounds(p *Product, name, unit string) (*Variable, error) {
	two := 2
	f64 := Float64
	return e.Resolver.GetDerived(p, name+"_bounds", unit, &f64, []DimSpec{{Kind: Time}, {Kind: Vertical}, {Kind: Independent, Length: &two}})
}

func (e *RegridEngine) matchBounds(state *matchState, name, unit string) (*Variable, error) {
	if v, ok := state.bounds[name]; ok {
		return v, nil
	}
	two := 2
	f64 := Float64
	v, err := e.Resolver.GetDerived(state.product, name+"_bounds", unit, &f64, []DimSpec{{Kind: Time}, {Kind: Vertical}, {Kind: Independent, Length: &two}})
	if err != nil {
		return nil, err
	}
	state.bounds[name] = v
	return v, nil
}

func rowBounds(v *Variable, row, n int) [][2]float64 {
	vertLen := v.Dimensions[1].Length
	out := make([][2]float64, n)
	base := row * vertLen * 2
	for k := 0; k < n; k++ {
		out[k] = [2]float64{v.Float64At(base + k*2), v.Float64At(base + k*2 + 1)}
	}
	return out
}

// applyAVK implements §4.3 step 6.e's smoothing: out = A*(in - a) + a,
// treating NaN inputs as zero during the matrix-vector product.
func (e *RegridEngine) applyAVK(state *matchState, v *Variable, matchRow int, outY []float64) error {
	f64 := Float64
	avk, err := e.Resolver.GetDerived(state.product, v.Name+"_avk", "", &f64, []DimSpec{{Kind: Time}, {Kind: Vertical}, {Kind: Vertical}})
	if err != nil {
		return err
	}
	n := avk.Dimensions[1].Length
	if avk.Dimensions[2].Length != n {
		return &Error{Kind: ArrayRankMismatch, Message: fmt.Sprintf("averaging kernel for %q is not square", v.Name)}
	}

	a := make([]float64, n)
	if apriori, err := e.Resolver.GetDerived(state.product, v.Name+"_apriori", v.Unit, &f64, []DimSpec{{Kind: Time}, {Kind: Vertical}}); err == nil {
		base := matchRow * n
		for k := 0; k < n && k < len(apriori.Data)-base; k++ {
			a[k] = apriori.Float64At(base + k)
		}
	}

	in := make([]float64, n)
	for k := 0; k < n; k++ {
		if k < len(outY) && !math.IsNaN(outY[k]) {
			in[k] = outY[k] - a[k]
		} else {
			in[k] = 0
		}
	}

	avkBase := matchRow * n * n
	data := make([]float64, n*n)
	for k := 0; k < n*n; k++ {
		if avkBase+k < len(avk.Data) {
			d := avk.Float64At(avkBase + k)
			if !math.IsNaN(d) {
				data[k] = d
			}
		}
	}
	A := mat.NewDense(n, n, data)
	x := mat.NewVecDense(n, in)
	var y mat.VecDense
	y.MulVec(A, x)

	for k := 0; k < n && k < len(outY); k++ {
		outY[k] = y.AtVec(k) + a[k]
	}
	return nil
}

// growVerticalAxisIfNeeded pads every variable carrying a vertical axis to
// newLen with NaN, returning whether growth actually happened. It never
// shrinks: when newLen is not larger than the current vertical length it
// leaves the product unchanged.
func (e *RegridEngine) growVerticalAxisIfNeeded(p *Product, newLen int) (bool, error) {
	cur, _ := p.DimensionLength(Vertical)
	if newLen <= cur {
		return false, nil
	}
	for _, v := range p.Variables() {
		axis := -1
		for i, d := range v.Dimensions {
			if d.Kind == Vertical {
				axis = i
				break
			}
		}
		if axis < 0 {
			continue
		}
		if err := padVerticalWithNaN(v, axis, newLen); err != nil {
			return false, err
		}
	}
	p.SetDimensionLength(Vertical, newLen)
	return true, nil
}

// padVerticalWithNaN grows axis to newLength, filling new entries with NaN
// rather than ResizeDimension's zero value (§4.3: "pad with NaN").
func padVerticalWithNaN(v *Variable, axis, newLength int) error {
	old := v.Dimensions[axis].Length
	if old == newLength {
		return nil
	}
	if v.ElemType != Float64 {
		if err := v.ConvertType(Float64); err != nil {
			return err
		}
	}
	outer, inner := 1, 1
	for i := 0; i < axis; i++ {
		outer *= v.Dimensions[i].Length
	}
	for i := axis + 1; i < len(v.Dimensions); i++ {
		inner *= v.Dimensions[i].Length
	}
	out := make([]interface{}, outer*newLength*inner)
	for i := range out {
		out[i] = math.NaN()
	}
	copyLen := old
	if newLength < copyLen {
		copyLen = newLength
	}
	for o := 0; o < outer; o++ {
		for k := 0; k < copyLen; k++ {
			srcBase := (o*old + k) * inner
			dstBase := (o*newLength + k) * inner
			copy(out[dstBase:dstBase+inner], v.Data[srcBase:srcBase+inner])
		}
	}
	v.Data = out
	v.Dimensions[axis].Length = newLength
	return nil
}
