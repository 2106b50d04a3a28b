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

// This file declares the narrow collaborator interfaces the core planner
// and regridder call through. §1 places their implementations out of
// scope; reference adapters grounded on the teacher's actual dependency
// stack live under ./adapters.

// UnitConverter performs unit-string-level conversions on Variable
// buffers. Concrete implementations typically parse unit strings into a
// dimensional representation (the teacher uses github.com/ctessum/unit for
// this) and apply the resulting scale/offset to every element.
type UnitConverter interface {
	// CanConvert reports whether a conversion from srcUnit to dstUnit is
	// defined.
	CanConvert(srcUnit, dstUnit string) bool
	// ConvertVariable converts v's buffer and Unit field from v.Unit to
	// dstUnit in place.
	ConvertVariable(v *Variable, dstUnit string) error
	// VariableHasUnit reports syntactic equality of v.Unit and u after
	// normalization (e.g. "hPa" == "hectopascal").
	VariableHasUnit(v *Variable, u string) bool
}

// Interpolator supplies the two interpolation kernels the regridder needs.
// Implementations are expected to operate entirely in float64.
type Interpolator interface {
	// Linear1D interpolates (srcX, srcY) onto tgtX, writing into
	// tgtYOut (len(tgtYOut) == len(tgtX)). When extrapolate is false,
	// target points outside [min(srcX), max(srcX)] are written as NaN.
	Linear1D(srcX, srcY, tgtX, tgtYOut []float64, extrapolate bool)
	// Interval averages srcY (one value per layer, len(srcBounds) rows)
	// across layer overlaps onto tgtBounds, writing into tgtYOut
	// (len(tgtYOut) == len(tgtBounds)).
	Interval(srcBounds [][2]float64, srcY []float64, tgtBounds [][2]float64, tgtYOut []float64)
}

// CollocationPair asserts that sample IndexA of the local product
// corresponds to sample IndexB of a matching product described by MetaB.
type CollocationPair struct {
	ID     int64
	IndexA int
	IndexB int
	MetaB  CollocationMetaB
}

// CollocationMetaB is the B-side bookkeeping carried by a CollocationPair:
// enough to open the matching product and validate its shape without
// reading it first.
type CollocationMetaB struct {
	Filename   string
	SourceID   string
	DimLengths map[DimensionKind]int
}

// CollocationTable is a read-only handle on a collocation result. §6
// specifies it supports shallow copy, filtering by the A-side source
// identifier, sorting by collocation id, and pair iteration.
type CollocationTable interface {
	// Copy returns a shallow copy (the pair slice is new, the pairs
	// themselves are value types and need no deep copy).
	Copy() CollocationTable
	// FilterBySourceA returns a copy containing only pairs whose A-side
	// source identifier equals sourceID. The regridder passes the local
	// product's SourceProduct. The A-side identifier is not a field of
	// CollocationPair; each concrete table keeps it alongside its pairs
	// (see adapters/collocation).
	FilterBySourceA(sourceID string) CollocationTable
	// SortByID returns a copy with pairs ordered by ascending ID, for a
	// linear scan during regridding.
	SortByID() CollocationTable
	// Pairs returns the table's pairs in their current order.
	Pairs() []CollocationPair
}

// ProductImporter opens an external file and decodes it into a Product.
// File-format readers proper (HDF-EOS/HDF4/HDF5/netCDF/CODA) are out of
// scope per §1; this is the seam the regridder calls through to load a
// collocation match product.
type ProductImporter interface {
	Import(filename string) (*Product, error)
}
