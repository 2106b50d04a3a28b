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

import "fmt"

// Variable is a named, typed, unit-carrying dense tensor. Its element type,
// dimensions and Data buffer change in place only through the named
// operations below (ConvertType, ConvertUnit, AddDimension,
// ResizeDimension, ReplaceData).
//
// Invariant (§3 P1): len(Data) always equals the product of the current
// dimension lengths.
type Variable struct {
	Name       string
	ElemType   ElementType
	Dimensions []Dimension
	Unit       string
	Data       []interface{}
}

// NewVariable allocates a zero-filled Variable with the given shape. Any
// axis length may be zero, in which case Data is empty.
func NewVariable(name string, elemType ElementType, dims []Dimension, unit string) *Variable {
	v := &Variable{
		Name:       name,
		ElemType:   elemType,
		Dimensions: append([]Dimension(nil), dims...),
		Unit:       unit,
	}
	n := v.NumElements()
	v.Data = make([]interface{}, n)
	z := zeroValue(elemType)
	for i := range v.Data {
		v.Data[i] = z
	}
	return v
}

// NumElements returns the product of the variable's dimension lengths (1
// for a scalar/rank-0 variable).
func (v *Variable) NumElements() int {
	n := 1
	for _, d := range v.Dimensions {
		n *= d.Length
	}
	return n
}

// Rank returns the number of axes.
func (v *Variable) Rank() int {
	return len(v.Dimensions)
}

// DimKinds returns the ordered list of dimension kinds, ignoring lengths.
func (v *Variable) DimKinds() DimSignature {
	out := make(DimSignature, len(v.Dimensions))
	for i, d := range v.Dimensions {
		out[i] = d.Kind
	}
	return out
}

// HasDimensionKinds reports whether v's ordered dimension kinds exactly
// equal sig.
func (v *Variable) HasDimensionKinds(sig DimSignature) bool {
	return v.DimKinds().Equal(sig)
}

// HasUnit reports whether v's unit is syntactically equal (after
// normalization) to u. It delegates the normalization itself to the
// UnitConverter collaborator when one is supplied; with a nil converter it
// falls back to plain string equality.
func (v *Variable) HasUnit(u string, conv UnitConverter) bool {
	if conv != nil {
		return conv.VariableHasUnit(v, u)
	}
	return v.Unit == u
}

// Copy returns a deep copy: a new Data buffer and a new Dimensions slice,
// so mutating the copy never mutates the original (§3, §8 P4).
func (v *Variable) Copy() *Variable {
	o := &Variable{
		Name:       v.Name,
		ElemType:   v.ElemType,
		Dimensions: append([]Dimension(nil), v.Dimensions...),
		Unit:       v.Unit,
		Data:       append([]interface{}(nil), v.Data...),
	}
	return o
}

// ConvertType coerces every element of v's buffer to dstType in place.
func (v *Variable) ConvertType(dstType ElementType) error {
	if v.ElemType == dstType {
		return nil
	}
	out := make([]interface{}, len(v.Data))
	for i, e := range v.Data {
		c, err := coerceElement(e, v.ElemType, dstType)
		if err != nil {
			return err
		}
		out[i] = c
	}
	v.Data = out
	v.ElemType = dstType
	return nil
}

// ConvertUnit delegates to the UnitConverter collaborator (§6). A nil
// converter with a no-op conversion (src == dst) always succeeds.
func (v *Variable) ConvertUnit(dstUnit string, conv UnitConverter) error {
	if dstUnit == "" || v.Unit == dstUnit {
		return nil
	}
	if conv == nil {
		return &Error{Kind: UnitConversion, Message: fmt.Sprintf("no unit converter available to convert %q to %q", v.Unit, dstUnit)}
	}
	return conv.ConvertVariable(v, dstUnit)
}

// AddDimension appends a new axis of the given kind and length. The
// existing buffer is replicated across the new axis (each existing element
// repeated length times), preserving row-major order with the new axis as
// the fastest-varying (last) index.
func (v *Variable) AddDimension(kind DimensionKind, length int) error {
	if len(v.Dimensions) >= MaxRank {
		return &Error{Kind: ArrayRankMismatch, Message: "maximum rank exceeded"}
	}
	old := v.Data
	out := make([]interface{}, len(old)*length)
	for i, e := range old {
		for j := 0; j < length; j++ {
			out[i*length+j] = e
		}
	}
	v.Data = out
	v.Dimensions = append(v.Dimensions, Dimension{Kind: kind, Length: length})
	return nil
}

// ResizeDimension changes the length of axis i in place, truncating or
// zero-padding along that axis. It is only meaningful for the last axis in
// the common case (vertical regridding replaces the trailing vertical
// axis), but operates generally on any axis index.
func (v *Variable) ResizeDimension(axis, newLength int) error {
	if axis < 0 || axis >= len(v.Dimensions) {
		return &Error{Kind: InvalidIndex, Message: fmt.Sprintf("axis %d out of range", axis)}
	}
	oldLength := v.Dimensions[axis].Length
	if oldLength == newLength {
		return nil
	}
	outer, inner := 1, 1
	for i := 0; i < axis; i++ {
		outer *= v.Dimensions[i].Length
	}
	for i := axis + 1; i < len(v.Dimensions); i++ {
		inner *= v.Dimensions[i].Length
	}
	out := make([]interface{}, outer*newLength*inner)
	z := zeroValue(v.ElemType)
	for i := range out {
		out[i] = z
	}
	copyLen := oldLength
	if newLength < copyLen {
		copyLen = newLength
	}
	for o := 0; o < outer; o++ {
		for k := 0; k < copyLen; k++ {
			srcBase := (o*oldLength + k) * inner
			dstBase := (o*newLength + k) * inner
			copy(out[dstBase:dstBase+inner], v.Data[srcBase:srcBase+inner])
		}
	}
	v.Data = out
	v.Dimensions[axis].Length = newLength
	return nil
}

// ReplaceData overwrites the buffer wholesale. len(data) must equal
// NumElements(); the caller is responsible for keeping shape and data in
// sync (callers typically reshape first, then ReplaceData).
func (v *Variable) ReplaceData(data []interface{}) error {
	if len(data) != v.NumElements() {
		return &Error{Kind: ArrayOutOfBounds, Message: fmt.Sprintf("expected %d elements, got %d", v.NumElements(), len(data))}
	}
	v.Data = data
	return nil
}

// Float64At returns element i coerced to float64, for the common case of
// numeric interpolation code that wants to treat any numeric element type
// uniformly.
func (v *Variable) Float64At(i int) float64 {
	return toFloat64(v.Data[i], v.ElemType)
}

// SetFloat64At stores a float64 value at index i, coercing to v's element
// type.
func (v *Variable) SetFloat64At(i int, f float64) {
	switch v.ElemType {
	case Int8:
		v.Data[i] = int8(f)
	case Int16:
		v.Data[i] = int16(f)
	case Int32:
		v.Data[i] = int32(f)
	case Float32:
		v.Data[i] = float32(f)
	case Float64:
		v.Data[i] = f
	}
}
