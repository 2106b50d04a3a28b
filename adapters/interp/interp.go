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

// Package interp is a reference implementation of harpcore's Interpolator
// collaborator (§6): pointwise linear interpolation and layer-overlap
// (interval) averaging using the six-way overlap classifier §4.3
// attributes to the vertical-profile collaborator.
package interp

import (
	"math"
	"sort"

	"github.com/spatialmodel/harpcore"
)

// Kernels is harpcore.Interpolator's reference implementation. It carries
// no state; a zero value is ready to use.
type Kernels struct{}

// Linear1D interpolates (srcX, srcY) onto tgtX. srcX must be monotonic
// (increasing or decreasing); points outside its range are written as NaN
// unless extrapolate is true, in which case the nearest segment's slope is
// extended.
func (Kernels) Linear1D(srcX, srcY, tgtX, tgtYOut []float64, extrapolate bool) {
	n := len(srcX)
	increasing := n < 2 || srcX[n-1] >= srcX[0]
	for i, x := range tgtX {
		tgtYOut[i] = interpolateOne(srcX, srcY, x, increasing, extrapolate)
	}
}

func interpolateOne(srcX, srcY []float64, x float64, increasing, extrapolate bool) float64 {
	n := len(srcX)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		if x == srcX[0] {
			return srcY[0]
		}
		if extrapolate {
			return srcY[0]
		}
		return math.NaN()
	}

	var hi int
	if increasing {
		hi = sort.Search(n, func(i int) bool { return srcX[i] >= x })
	} else {
		hi = sort.Search(n, func(i int) bool { return srcX[i] <= x })
	}

	switch {
	case hi == 0:
		if srcX[0] == x {
			return srcY[0]
		}
		if !extrapolate {
			return math.NaN()
		}
		return lerpSegment(srcX[0], srcY[0], srcX[1], srcY[1], x)
	case hi == n:
		if !extrapolate {
			return math.NaN()
		}
		return lerpSegment(srcX[n-2], srcY[n-2], srcX[n-1], srcY[n-1], x)
	default:
		return lerpSegment(srcX[hi-1], srcY[hi-1], srcX[hi], srcY[hi], x)
	}
}

func lerpSegment(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// overlap classifies the relationship between layer bounds [aLo,aHi] and
// [bLo,bHi], one of the six cases §4.3 names: no-overlap in either order,
// exact equality, partial-overlap in either order, A-contains-B, and
// B-contains-A.
type overlap int

const (
	overlapNone overlap = iota
	overlapEqual
	overlapPartialAfterB  // b starts inside a, ends after a
	overlapPartialBeforeB // b starts before a, ends inside a
	overlapAContainsB
	overlapBContainsA
)

func classify(aLo, aHi, bLo, bHi float64) overlap {
	lo, hi := aLo, aHi
	if lo > hi {
		lo, hi = hi, lo
	}
	blo, bhi := bLo, bHi
	if blo > bhi {
		blo, bhi = bhi, blo
	}
	switch {
	case bhi <= lo || blo >= hi:
		return overlapNone
	case blo == lo && bhi == hi:
		return overlapEqual
	case blo <= lo && bhi >= hi:
		return overlapBContainsA
	case blo >= lo && bhi <= hi:
		return overlapAContainsB
	case blo < lo:
		return overlapPartialBeforeB
	default:
		return overlapPartialAfterB
	}
}

func overlapAmount(aLo, aHi, bLo, bHi float64) float64 {
	lo, hi := aLo, aHi
	if lo > hi {
		lo, hi = hi, lo
	}
	blo, bhi := bLo, bHi
	if blo > bhi {
		blo, bhi = bhi, blo
	}
	start := math.Max(lo, blo)
	end := math.Min(hi, bhi)
	if end <= start {
		return 0
	}
	return end - start
}

// Interval averages srcY (one value per source layer bounded by
// srcBounds) across layer overlaps onto each target layer in tgtBounds,
// using inclusive/exclusive overlap weights.
func (Kernels) Interval(srcBounds [][2]float64, srcY []float64, tgtBounds [][2]float64, tgtYOut []float64) {
	for t, tb := range tgtBounds {
		var weighted, totalWeight float64
		any := false
		for s, sb := range srcBounds {
			if classify(tb[0], tb[1], sb[0], sb[1]) == overlapNone {
				continue
			}
			w := overlapAmount(tb[0], tb[1], sb[0], sb[1])
			if w <= 0 || math.IsNaN(srcY[s]) {
				continue
			}
			weighted += w * srcY[s]
			totalWeight += w
			any = true
		}
		if !any || totalWeight == 0 {
			tgtYOut[t] = math.NaN()
			continue
		}
		tgtYOut[t] = weighted / totalWeight
	}
}

var _ harpcore.Interpolator = Kernels{}
