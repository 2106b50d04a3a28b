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

import "math"

// AltitudeBoundsFromAltitude derives the layer-bounds profile for a
// monotonic altitude profile, mirroring the SUPPLEMENTED-FEATURES helper
// named in §8 R1: bounds[2k] and bounds[2k+1] are the lower and upper
// bounds of level k, with interior bounds at the midpoint between adjacent
// levels and the two end bounds extrapolated symmetrically.
//
// Example (§8 scenario 2): altitude [1000, 2000, 3000] -> bounds
// [500, 1500, 1500, 2500, 2500, 3500].
func AltitudeBoundsFromAltitude(profile []float64) []float64 {
	n := len(profile)
	bounds := make([]float64, 2*n)
	for k := 0; k < n; k++ {
		var lower, upper float64
		switch {
		case k == 0 && n > 1:
			lower = profile[0] - (profile[1]-profile[0])/2
		case k == 0:
			lower = profile[0]
		default:
			lower = (profile[k-1] + profile[k]) / 2
		}
		switch {
		case k == n-1 && n > 1:
			upper = profile[n-1] + (profile[n-1]-profile[n-2])/2
		case k == n-1:
			upper = profile[n-1]
		default:
			upper = (profile[k] + profile[k+1]) / 2
		}
		bounds[2*k] = lower
		bounds[2*k+1] = upper
	}
	return bounds
}

// ColumnFromPartialColumn sums a profile of partial-column contributions,
// ignoring NaNs, per §7's one exception to "no silently swallowed errors"
// and §8 R2/scenario 3: the sum of the non-NaN contributions, or NaN if
// every contribution is NaN (including the empty case).
func ColumnFromPartialColumn(partial []float64) float64 {
	sum := 0.0
	any := false
	for _, v := range partial {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		any = true
	}
	if !any {
		return math.NaN()
	}
	return sum
}

// unpaddedLen returns the index one past the last non-NaN value in row,
// i.e. the length of its valid (unpadded) prefix. The design notes call
// for a single shared helper so every loop over a padded vertical column
// agrees on what "unpadded" means, rather than each call site
// recomputing it independently.
func unpaddedLen(row []float64) int {
	n := 0
	for i, v := range row {
		if !math.IsNaN(v) {
			n = i + 1
		}
	}
	return n
}
