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

func TestCoerceElementWidensAndNarrows(t *testing.T) {
	got, err := coerceElement(int32(7), Int32, Float64)
	if err != nil {
		t.Fatalf("coerceElement: %v", err)
	}
	if got.(float64) != 7 {
		t.Fatalf("got %v, want 7", got)
	}

	got, err = coerceElement(float64(3.9), Float64, Int32)
	if err != nil {
		t.Fatalf("coerceElement: %v", err)
	}
	if got.(int32) != 3 {
		t.Fatalf("got %v, want 3 (truncated)", got)
	}
}

func TestCoerceElementRejectsString(t *testing.T) {
	if _, err := coerceElement("x", String, Float64); err == nil {
		t.Fatal("expected error coercing string to float64")
	}
	if _, err := coerceElement(float64(1), Float64, String); err == nil {
		t.Fatal("expected error coercing float64 to string")
	}
}

func TestZeroValue(t *testing.T) {
	cases := map[ElementType]interface{}{
		Int8:    int8(0),
		Int16:   int16(0),
		Int32:   int32(0),
		Float32: float32(0),
		Float64: float64(0),
		String:  "",
	}
	for typ, want := range cases {
		if got := zeroValue(typ); got != want {
			t.Fatalf("zeroValue(%v) = %v, want %v", typ, got, want)
		}
	}
}

func TestElementTypeString(t *testing.T) {
	if Float64.String() != "float64" {
		t.Fatalf("Float64.String() = %q, want %q", Float64.String(), "float64")
	}
	if ElementType(99).String() == "" {
		t.Fatal("expected a non-empty fallback string for an unknown element type")
	}
}
