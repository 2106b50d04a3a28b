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

import "strings"

// ResampleCategory classifies how the regridder handles a variable (§4.3).
type ResampleCategory int

const (
	// Skip variables have no vertical dimension and are left untouched.
	Skip ResampleCategory = iota
	// Remove variables cannot be meaningfully resampled and are dropped.
	Remove
	// Interval variables are resampled with layer-overlap averaging.
	Interval
	// Linear variables are resampled with pointwise interpolation.
	Linear
)

func (c ResampleCategory) String() string {
	switch c {
	case Skip:
		return "skip"
	case Remove:
		return "remove"
	case Interval:
		return "interval"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// CategoryOf classifies v per §4.3's resample-category rules:
//
//   - Skip: no vertical dimension.
//   - Remove: more than one vertical axis, string-typed, or name ends in
//     "_uncertainty" or "_avk".
//   - Interval: exactly one vertical axis (the last), name contains
//     "_column_".
//   - Linear: exactly one vertical axis (the last), none of the above.
//
// A variable with exactly one vertical axis that is not its last axis
// matches neither Interval nor Linear's "last axis" clause; harpcore
// treats that case as Remove, since neither interpolation kernel is
// defined for a non-trailing vertical axis (a documented judgment call,
// see DESIGN.md).
func CategoryOf(v *Variable) ResampleCategory {
	nVert := 0
	lastIsVert := len(v.Dimensions) > 0 && v.Dimensions[len(v.Dimensions)-1].Kind == Vertical
	for _, d := range v.Dimensions {
		if d.Kind == Vertical {
			nVert++
		}
	}
	if nVert == 0 {
		return Skip
	}
	if nVert > 1 || v.ElemType == String || strings.HasSuffix(v.Name, "_uncertainty") || strings.HasSuffix(v.Name, "_avk") {
		return Remove
	}
	if !lastIsVert {
		return Remove
	}
	if strings.Contains(v.Name, "_column_") {
		return Interval
	}
	return Linear
}
