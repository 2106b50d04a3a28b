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

// Product is an ordered collection of uniquely-named Variables sharing a
// table of named-dimension lengths. It owns its variables exclusively: no
// Variable pointer returned by Variable(name) should be stored into another
// Product without a Copy.
type Product struct {
	// SourceProduct optionally identifies the file or dataset this
	// product was read from; see the collocation-pair metadata in §3.
	SourceProduct string
	// Metadata carries arbitrary application metadata, analogous to the
	// teacher's free-form Cell-level bookkeeping fields.
	Metadata map[string]string

	vars    []*Variable
	index   map[string]int // name -> position in vars
	dimLens map[DimensionKind]int
}

// NewProduct returns an empty product.
func NewProduct(sourceProduct string) *Product {
	return &Product{
		SourceProduct: sourceProduct,
		Metadata:      make(map[string]string),
		index:         make(map[string]int),
		dimLens:       make(map[DimensionKind]int),
	}
}

// Variables returns the product's variables in insertion order. The slice
// is owned by the product; callers must not mutate it, only its elements
// through the documented named operations.
func (p *Product) Variables() []*Variable {
	return p.vars
}

// Variable returns the variable named name, or nil if absent.
func (p *Product) Variable(name string) *Variable {
	if i, ok := p.index[name]; ok {
		return p.vars[i]
	}
	return nil
}

// Has reports whether the product has a variable named name whose ordered
// dimension kinds equal sig.
func (p *Product) Has(name string, sig DimSignature) bool {
	v := p.Variable(name)
	return v != nil && v.HasDimensionKinds(sig)
}

// DimensionLength returns the length currently recorded for kind, or
// (0, false) if the kind has not been established by any variable yet.
// Independent is never tracked here (§3: "for all non-independent kinds").
func (p *Product) DimensionLength(kind DimensionKind) (int, bool) {
	n, ok := p.dimLens[kind]
	return n, ok
}

// SetDimensionLength establishes or overwrites the length recorded for
// kind. Callers adding a variable should prefer AddVariable, which
// validates consistency; SetDimensionLength exists for bootstrapping an
// empty product (e.g. before adding its first variable of a new kind, such
// as a regrid target whose length differs from any variable yet present).
func (p *Product) SetDimensionLength(kind DimensionKind, length int) {
	if kind == Independent {
		return
	}
	p.dimLens[kind] = length
}

// AddVariable appends v to the product. It is an error to add a variable
// whose name is already present (§3 P2), or whose non-independent axis
// lengths conflict with the product's existing dimension-length table.
// Axis kinds not yet recorded establish the table entry.
func (p *Product) AddVariable(v *Variable) error {
	if _, exists := p.index[v.Name]; exists {
		return &Error{Kind: InvalidName, Message: fmt.Sprintf("variable %q already present", v.Name)}
	}
	for _, d := range v.Dimensions {
		if d.Kind == Independent {
			continue
		}
		if existing, ok := p.dimLens[d.Kind]; ok {
			if existing != d.Length {
				return &Error{Kind: ArrayRankMismatch, Message: fmt.Sprintf(
					"variable %q axis %s length %d conflicts with product length %d",
					v.Name, d.Kind, d.Length, existing)}
			}
		} else {
			p.dimLens[d.Kind] = d.Length
		}
	}
	p.index[v.Name] = len(p.vars)
	p.vars = append(p.vars, v)
	return nil
}

// RemoveVariable removes the named variable, preserving the relative order
// of the surviving variables (§5 ordering guarantee).
func (p *Product) RemoveVariable(name string) error {
	i, ok := p.index[name]
	if !ok {
		return &Error{Kind: VariableNotFound, Message: name}
	}
	p.vars = append(p.vars[:i], p.vars[i+1:]...)
	delete(p.index, name)
	for n, idx := range p.index {
		if idx > i {
			p.index[n] = idx - 1
		}
	}
	return nil
}

// ReplaceVariable removes any existing variable with v.Name and adds v in
// its place, at the end of the ordered list (matching AddDerived's "remove
// any same-named variable with other dims, and add" semantics, §4.2).
func (p *Product) ReplaceVariable(v *Variable) error {
	if _, exists := p.index[v.Name]; exists {
		if err := p.RemoveVariable(v.Name); err != nil {
			return err
		}
	}
	return p.AddVariable(v)
}

// Copy returns a deep copy of the product and all its variables.
func (p *Product) Copy() *Product {
	o := NewProduct(p.SourceProduct)
	for k, v := range p.Metadata {
		o.Metadata[k] = v
	}
	for k, v := range p.dimLens {
		o.dimLens[k] = v
	}
	for _, v := range p.vars {
		vc := v.Copy()
		o.index[vc.Name] = len(o.vars)
		o.vars = append(o.vars, vc)
	}
	return o
}
