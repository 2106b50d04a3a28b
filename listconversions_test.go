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
	"strings"
	"testing"
)

func TestListConversionsWithoutProductDumpsRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&Conversion{
		Output:  Signature{Name: "doubled", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}},
		Sources: []Signature{{Name: "base", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}}},
		Compute: func(sources []*Variable) (*Variable, error) { return sources[0].Copy(), nil },
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := NewResolver(reg, nil)
	out := r.ListConversions(nil)
	if !strings.Contains(out, "doubled") || !strings.Contains(out, "base") {
		t.Fatalf("ListConversions(nil) = %q, missing expected names", out)
	}
}

func TestListConversionsWithProductMarksPresentSources(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&Conversion{
		Output:  Signature{Name: "doubled", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}},
		Sources: []Signature{{Name: "base", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}}},
		Compute: func(sources []*Variable) (*Variable, error) { return sources[0].Copy(), nil },
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	p := NewProduct("test")
	if err := p.AddVariable(NewVariable("base", Float64, []Dimension{{Kind: Vertical, Length: 2}}, "")); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}
	r := NewResolver(reg, nil)
	out := r.ListConversions(p)
	if !strings.Contains(out, "present in product") {
		t.Fatalf("ListConversions(p) = %q, expected a present-in-product annotation for base", out)
	}
}

func TestFormatSignature(t *testing.T) {
	length := 2
	s := Signature{Name: "x", Type: Float64, Unit: "m", Dims: []DimSpec{{Kind: Independent, Length: &length}}}
	got := formatSignature(s)
	want := "x {independent=2} float64 [m]"
	if got != want {
		t.Fatalf("formatSignature = %q, want %q", got, want)
	}

	noUnit := Signature{Name: "y", Type: Int32, Dims: []DimSpec{{Kind: Time}}}
	got = formatSignature(noUnit)
	want = "y {time} int32 [-]"
	if got != want {
		t.Fatalf("formatSignature = %q, want %q", got, want)
	}
}
