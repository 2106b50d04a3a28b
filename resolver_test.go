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

// scaleConverter is a minimal UnitConverter test double: it knows a single
// fixed scale factor between two named units, enough to exercise §8
// scenario 4 (hPa -> Pa, factor 100) without pulling in a real dimensional
// analysis adapter.
type scaleConverter struct {
	src, dst string
	factor   float64
}

func (c scaleConverter) CanConvert(src, dst string) bool {
	return src == c.src && dst == c.dst
}

func (c scaleConverter) ConvertVariable(v *Variable, dstUnit string) error {
	if v.Unit != c.src || dstUnit != c.dst {
		return &Error{Kind: UnitConversion, Message: "unsupported conversion in test double"}
	}
	for i := range v.Data {
		v.SetFloat64At(i, v.Float64At(i)*c.factor)
	}
	v.Unit = dstUnit
	return nil
}

func (c scaleConverter) VariableHasUnit(v *Variable, u string) bool {
	return v.Unit == u
}

func newHPaToPaConverter() UnitConverter {
	return scaleConverter{src: "hPa", dst: "Pa", factor: 100}
}

// §8 scenario 4: resolver cheap path with unit coercion.
func TestGetDerivedCheapPathWithUnitCoercion(t *testing.T) {
	p := NewProduct("test")
	pressure := NewVariable("pressure", Float64, []Dimension{{Kind: Time, Length: 1}, {Kind: Vertical, Length: 2}}, "hPa")
	pressure.SetFloat64At(0, 10)
	pressure.SetFloat64At(1, 20)
	if err := p.AddVariable(pressure); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}

	r := NewResolver(NewRegistry(), newHPaToPaConverter())
	got, err := r.GetDerived(p, "pressure", "Pa", nil, []DimSpec{{Kind: Time}, {Kind: Vertical}})
	if err != nil {
		t.Fatalf("GetDerived: %v", err)
	}
	if got.Unit != "Pa" {
		t.Fatalf("Unit = %q, want Pa", got.Unit)
	}
	want := []float64{1000, 2000}
	for i, w := range want {
		if got.Float64At(i) != w {
			t.Fatalf("Data[%d] = %v, want %v", i, got.Float64At(i), w)
		}
	}
	// The original in the product must be untouched (P4).
	if p.Variable("pressure").Unit != "hPa" || p.Variable("pressure").Float64At(0) != 10 {
		t.Fatal("GetDerived mutated the original product variable")
	}
}

// §8 scenario 5: resolver cycle refusal (P6 cycle freedom).
func TestGetDerivedRefusesCycle(t *testing.T) {
	reg := NewRegistry()
	dims := []DimSpec{{Kind: Vertical}}
	mustRegisterForTest(t, reg, &Conversion{
		Output:  Signature{Name: "A", Type: Float64, Dims: dims},
		Sources: []Signature{{Name: "B", Type: Float64, Dims: dims}},
		Compute: func(sources []*Variable) (*Variable, error) {
			return sources[0].Copy(), nil
		},
	})
	mustRegisterForTest(t, reg, &Conversion{
		Output:  Signature{Name: "B", Type: Float64, Dims: dims},
		Sources: []Signature{{Name: "A", Type: Float64, Dims: dims}},
		Compute: func(sources []*Variable) (*Variable, error) {
			return sources[0].Copy(), nil
		},
	})

	p := NewProduct("test")
	r := NewResolver(reg, nil)
	_, err := r.GetDerived(p, "A", "", nil, dims)
	if err == nil {
		t.Fatal("expected VariableNotFound on an unsatisfiable A<-B<-A cycle")
	}
	herr, ok := err.(*Error)
	if !ok || herr.Kind != VariableNotFound {
		t.Fatalf("error = %v, want VariableNotFound", err)
	}
}

// P3: GetDerived is idempotent.
func TestGetDerivedIsIdempotent(t *testing.T) {
	p := NewProduct("test")
	x := NewVariable("x", Float64, []Dimension{{Kind: Vertical, Length: 3}}, "m")
	x.SetFloat64At(0, 1)
	x.SetFloat64At(1, 2)
	x.SetFloat64At(2, 3)
	if err := p.AddVariable(x); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}
	r := NewResolver(NewRegistry(), nil)
	dims := []DimSpec{{Kind: Vertical}}

	a, err := r.GetDerived(p, "x", "", nil, dims)
	if err != nil {
		t.Fatalf("first GetDerived: %v", err)
	}
	b, err := r.GetDerived(p, "x", "", nil, dims)
	if err != nil {
		t.Fatalf("second GetDerived: %v", err)
	}
	if a.Unit != b.Unit || !a.HasDimensionKinds(b.DimKinds()) {
		t.Fatalf("shapes differ between calls: %v vs %v", a, b)
	}
	for i := range a.Data {
		if a.Float64At(i) != b.Float64At(i) {
			t.Fatalf("data differs at %d: %v vs %v", i, a.Float64At(i), b.Float64At(i))
		}
	}
}

// P4: when the product already has the requested variable, GetDerived
// returns a deep copy.
func TestGetDerivedReturnsDeepCopy(t *testing.T) {
	p := NewProduct("test")
	x := NewVariable("x", Float64, []Dimension{{Kind: Vertical, Length: 1}}, "m")
	x.SetFloat64At(0, 5)
	if err := p.AddVariable(x); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}
	r := NewResolver(NewRegistry(), nil)
	got, err := r.GetDerived(p, "x", "", nil, []DimSpec{{Kind: Vertical}})
	if err != nil {
		t.Fatalf("GetDerived: %v", err)
	}
	got.SetFloat64At(0, 999)
	if p.Variable("x").Float64At(0) != 5 {
		t.Fatal("mutating GetDerived's result mutated the product's variable")
	}
}

// A chained conversion (derived from a derived source) succeeds.
func TestGetDerivedChainedConversion(t *testing.T) {
	reg := NewRegistry()
	two := 2
	mustRegisterForTest(t, reg, &Conversion{
		Output: Signature{Name: "doubled", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}},
		Sources: []Signature{
			{Name: "base", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}},
		},
		Compute: func(sources []*Variable) (*Variable, error) {
			out := sources[0].Copy()
			out.Name = "doubled"
			for i := range out.Data {
				out.SetFloat64At(i, out.Float64At(i)*2)
			}
			return out, nil
		},
	})
	mustRegisterForTest(t, reg, &Conversion{
		Output: Signature{Name: "quadrupled", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}},
		Sources: []Signature{
			{Name: "doubled", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}},
		},
		Compute: func(sources []*Variable) (*Variable, error) {
			out := sources[0].Copy()
			out.Name = "quadrupled"
			for i := range out.Data {
				out.SetFloat64At(i, out.Float64At(i)*2)
			}
			return out, nil
		},
	})

	p := NewProduct("test")
	base := NewVariable("base", Float64, []Dimension{{Kind: Vertical, Length: 2}}, "")
	base.SetFloat64At(0, 1)
	base.SetFloat64At(1, 2)
	if err := p.AddVariable(base); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}

	r := NewResolver(reg, nil)
	got, err := r.GetDerived(p, "quadrupled", "", nil, []DimSpec{{Kind: Vertical}})
	if err != nil {
		t.Fatalf("GetDerived(quadrupled): %v", err)
	}
	if got.Float64At(0) != 4 || got.Float64At(1) != 8 {
		t.Fatalf("Data = %v, want [4 8]", got.Data)
	}
	_ = two
}

func TestAddDerivedReplacesMismatchedShape(t *testing.T) {
	p := NewProduct("test")
	old := NewVariable("x", Float64, []Dimension{{Kind: Time, Length: 2}}, "s")
	if err := p.AddVariable(old); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}

	reg := NewRegistry()
	mustRegisterForTest(t, reg, &Conversion{
		Output:  Signature{Name: "x", Type: Float64, Dims: []DimSpec{{Kind: Vertical}}},
		Sources: nil,
		Compute: func([]*Variable) (*Variable, error) {
			return NewVariable("x", Float64, []Dimension{{Kind: Vertical, Length: 3}}, "m"), nil
		},
	})
	r := NewResolver(reg, nil)
	if err := r.AddDerived(p, "x", "", []DimSpec{{Kind: Vertical}}); err != nil {
		t.Fatalf("AddDerived: %v", err)
	}
	got := p.Variable("x")
	if !got.HasDimensionKinds(DimSignature{Vertical}) {
		t.Fatalf("AddDerived did not replace the mismatched-shape variable: %v", got.Dimensions)
	}
}

func mustRegisterForTest(t *testing.T, r *Registry, c *Conversion) {
	t.Helper()
	if err := r.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
}
