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

import "testing"

// P1: num_elements always equals the product of the dimension lengths.
func TestVariableNumElements(t *testing.T) {
	v := NewVariable("x", Float64, []Dimension{{Kind: Time, Length: 3}, {Kind: Vertical, Length: 4}}, "m")
	if n := v.NumElements(); n != 12 {
		t.Fatalf("NumElements() = %d, want 12", n)
	}
	if len(v.Data) != 12 {
		t.Fatalf("len(Data) = %d, want 12", len(v.Data))
	}
}

func TestVariableCopyIsDeep(t *testing.T) {
	v := NewVariable("x", Float64, []Dimension{{Kind: Vertical, Length: 3}}, "m")
	v.SetFloat64At(0, 1)
	c := v.Copy()
	c.SetFloat64At(0, 99)
	if v.Float64At(0) != 1 {
		t.Fatalf("mutating the copy mutated the original: got %v", v.Float64At(0))
	}
	c.Dimensions[0].Length = 999
	if v.Dimensions[0].Length != 3 {
		t.Fatalf("mutating the copy's Dimensions mutated the original")
	}
}

func TestVariableConvertType(t *testing.T) {
	v := NewVariable("x", Int32, []Dimension{{Kind: Vertical, Length: 2}}, "")
	v.Data[0] = int32(10)
	v.Data[1] = int32(20)
	if err := v.ConvertType(Float64); err != nil {
		t.Fatalf("ConvertType: %v", err)
	}
	if v.Float64At(0) != 10 || v.Float64At(1) != 20 {
		t.Fatalf("unexpected data after ConvertType: %v", v.Data)
	}
	if v.ElemType != Float64 {
		t.Fatalf("ElemType = %v, want Float64", v.ElemType)
	}
}

func TestVariableConvertTypeRejectsString(t *testing.T) {
	v := NewVariable("x", String, []Dimension{{Kind: Vertical, Length: 1}}, "")
	v.Data[0] = "hi"
	err := v.ConvertType(Float64)
	if err == nil {
		t.Fatal("expected error converting string to float64")
	}
	herr, ok := err.(*Error)
	if !ok || herr.Kind != InvalidType {
		t.Fatalf("error = %v, want InvalidType", err)
	}
}

func TestVariableAddDimension(t *testing.T) {
	v := NewVariable("x", Float64, []Dimension{{Kind: Vertical, Length: 2}}, "m")
	v.SetFloat64At(0, 1)
	v.SetFloat64At(1, 2)
	if err := v.AddDimension(Independent, 2); err != nil {
		t.Fatalf("AddDimension: %v", err)
	}
	if v.NumElements() != 4 {
		t.Fatalf("NumElements() = %d, want 4", v.NumElements())
	}
	want := []float64{1, 1, 2, 2}
	for i, w := range want {
		if v.Float64At(i) != w {
			t.Fatalf("Data[%d] = %v, want %v", i, v.Float64At(i), w)
		}
	}
}

func TestVariableResizeDimensionTruncateAndGrow(t *testing.T) {
	v := NewVariable("x", Float64, []Dimension{{Kind: Vertical, Length: 3}}, "m")
	v.SetFloat64At(0, 1)
	v.SetFloat64At(1, 2)
	v.SetFloat64At(2, 3)

	if err := v.ResizeDimension(0, 2); err != nil {
		t.Fatalf("ResizeDimension shrink: %v", err)
	}
	if v.NumElements() != 2 || v.Float64At(0) != 1 || v.Float64At(1) != 2 {
		t.Fatalf("unexpected data after shrink: %v", v.Data)
	}

	if err := v.ResizeDimension(0, 5); err != nil {
		t.Fatalf("ResizeDimension grow: %v", err)
	}
	if v.NumElements() != 5 {
		t.Fatalf("NumElements() = %d, want 5", v.NumElements())
	}
	if v.Float64At(2) != 0 {
		t.Fatalf("padded element = %v, want zero value", v.Float64At(2))
	}
}

func TestVariableHasDimensionKinds(t *testing.T) {
	v := NewVariable("x", Float64, []Dimension{{Kind: Time, Length: 2}, {Kind: Vertical, Length: 3}}, "")
	if !v.HasDimensionKinds(DimSignature{Time, Vertical}) {
		t.Fatal("expected match")
	}
	if v.HasDimensionKinds(DimSignature{Vertical, Time}) {
		t.Fatal("expected mismatch on order")
	}
}
