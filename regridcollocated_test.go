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

package harpcore_test

import (
	"testing"

	"github.com/spatialmodel/harpcore"
	"github.com/spatialmodel/harpcore/adapters/collocation"
	"github.com/spatialmodel/harpcore/adapters/interp"
)

type stubImporter struct {
	products map[string]*harpcore.Product
}

func (s stubImporter) Import(filename string) (*harpcore.Product, error) {
	p, ok := s.products[filename]
	if !ok {
		return nil, &harpcore.Error{Kind: harpcore.FileNotFound, Message: filename}
	}
	return p, nil
}

func newCollocatedFixture() (*harpcore.Product, harpcore.CollocationTable, stubImporter) {
	p := harpcore.NewProduct("A")
	altitude := harpcore.NewVariable("altitude", harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Time, Length: 1}, {Kind: harpcore.Vertical, Length: 2}}, "m")
	altitude.SetFloat64At(0, 0)
	altitude.SetFloat64At(1, 1000)
	idx := harpcore.NewVariable("collocation_index", harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Time, Length: 1}}, "")
	idx.SetFloat64At(0, 5)
	ozone := harpcore.NewVariable("ozone", harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Time, Length: 1}, {Kind: harpcore.Vertical, Length: 2}}, "ppbv")
	ozone.SetFloat64At(0, 10)
	ozone.SetFloat64At(1, 20)
	for _, v := range []*harpcore.Variable{altitude, idx, ozone} {
		if err := p.AddVariable(v); err != nil {
			panic(err)
		}
	}

	matched := harpcore.NewProduct("B")
	matchedAltitude := harpcore.NewVariable("altitude", harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Time, Length: 1}, {Kind: harpcore.Vertical, Length: 2}}, "m")
	matchedAltitude.SetFloat64At(0, 250)
	matchedAltitude.SetFloat64At(1, 750)
	matchedIdx := harpcore.NewVariable("collocation_index", harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Time, Length: 1}}, "")
	matchedIdx.SetFloat64At(0, 5)
	for _, v := range []*harpcore.Variable{matchedAltitude, matchedIdx} {
		if err := matched.AddVariable(v); err != nil {
			panic(err)
		}
	}

	table := collocation.New(
		[]harpcore.CollocationPair{{
			ID:     5,
			IndexA: 0,
			IndexB: 0,
			MetaB:  harpcore.CollocationMetaB{Filename: "matched.nc", DimLengths: map[harpcore.DimensionKind]int{harpcore.Vertical: 2}},
		}},
		[]string{"A"},
	)

	return p, table, stubImporter{products: map[string]*harpcore.Product{"matched.nc": matched}}
}

func TestRegridCollocatedLinear(t *testing.T) {
	p, table, importer := newCollocatedFixture()
	resolver := harpcore.NewResolver(harpcore.NewRegistry(), nil)
	engine := harpcore.NewRegridEngine(resolver, interp.Kernels{}, importer)

	if err := engine.RegridCollocated(p, "altitude", "m", table, nil); err != nil {
		t.Fatalf("RegridCollocated: %v", err)
	}

	ozone := p.Variable("ozone")
	if ozone == nil {
		t.Fatal("expected ozone to survive the collocated regrid")
	}
	want := []float64{12.5, 17.5}
	for i, w := range want {
		if ozone.Float64At(i) != w {
			t.Fatalf("ozone[%d] = %v, want %v", i, ozone.Float64At(i), w)
		}
	}
}

func TestRegridCollocatedDropsRemoveCategoryVariable(t *testing.T) {
	p, table, importer := newCollocatedFixture()
	unc := harpcore.NewVariable("ozone_uncertainty", harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Time, Length: 1}, {Kind: harpcore.Vertical, Length: 2}}, "ppbv")
	if err := p.AddVariable(unc); err != nil {
		t.Fatalf("AddVariable(ozone_uncertainty): %v", err)
	}

	resolver := harpcore.NewResolver(harpcore.NewRegistry(), nil)
	engine := harpcore.NewRegridEngine(resolver, interp.Kernels{}, importer)
	if err := engine.RegridCollocated(p, "altitude", "m", table, nil); err != nil {
		t.Fatalf("RegridCollocated: %v", err)
	}
	if p.Variable("ozone_uncertainty") != nil {
		t.Fatal("expected ozone_uncertainty to be dropped before matching")
	}
}

func TestRegridCollocatedMissingCollocationIndexFails(t *testing.T) {
	p := harpcore.NewProduct("A")
	altitude := harpcore.NewVariable("altitude", harpcore.Float64, []harpcore.Dimension{{Kind: harpcore.Time, Length: 1}, {Kind: harpcore.Vertical, Length: 1}}, "m")
	if err := p.AddVariable(altitude); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}
	table := collocation.New(nil, nil)
	resolver := harpcore.NewResolver(harpcore.NewRegistry(), nil)
	engine := harpcore.NewRegridEngine(resolver, interp.Kernels{}, stubImporter{})

	err := engine.RegridCollocated(p, "altitude", "m", table, nil)
	if err == nil {
		t.Fatal("expected an error when the product has no collocation_index variable")
	}
}
