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
	"fmt"

	"github.com/sirupsen/logrus"
)

// Resolver is the derived-variable planner and executor (§4.2). It is
// read-only over its Registry; callers running disjoint products
// concurrently should share one Resolver (the registry is safe for
// concurrent reads) as long as each call is given its own Product.
type Resolver struct {
	Registry *Registry
	Units    UnitConverter
	Log      *logrus.Logger
}

// NewResolver returns a Resolver backed by reg and units. A nil logger
// defaults to logrus's standard logger, matching the teacher's convention
// of falling back to a package-level default rather than requiring every
// caller to wire one up.
func NewResolver(reg *Registry, units UnitConverter) *Resolver {
	return &Resolver{Registry: reg, Units: units, Log: logrus.StandardLogger()}
}

func (r *Resolver) logger() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}

// GetDerived implements §4.2's get_derived: if product already has a
// variable named name matching dims, a deep copy is returned (optionally
// unit-converted); otherwise the planner is invoked. typ may be nil to
// preserve whichever element type the resolved chain produces.
func (r *Resolver) GetDerived(product *Product, name, unit string, typ *ElementType, dims []DimSpec) (*Variable, error) {
	v, temporary, err := r.satisfy(product, newVisitStack(), goal{name: name, typ: typ, unit: unit, dims: dims})
	if err != nil {
		return nil, wrapDerive(name, err)
	}
	if !temporary {
		v = v.Copy()
	}
	return v, nil
}

// AddDerived implements §4.2's add_derived: ensures product contains a
// variable of the requested signature, mutating product in place. If a
// variable with name already has matching dims, only a unit coercion is
// applied in place (no new allocation); otherwise a fresh variable is
// derived, any same-named variable with other dims is removed, and the
// fresh variable is added.
func (r *Resolver) AddDerived(product *Product, name, unit string, dims []DimSpec) error {
	if existing := product.Variable(name); existing != nil && independentLengthsMatch(existing.Dimensions, dims) && existing.HasDimensionKinds(dimKindsOf(dims)) {
		if unit != "" && existing.Unit != unit {
			return existing.ConvertUnit(unit, r.Units)
		}
		return nil
	}
	v, temporary, err := r.satisfy(product, newVisitStack(), goal{name: name, typ: nil, unit: unit, dims: dims})
	if err != nil {
		return wrapDerive(name, err)
	}
	if !temporary {
		v = v.Copy()
	}
	if existing := product.Variable(name); existing != nil {
		if err := product.RemoveVariable(name); err != nil {
			return err
		}
	}
	return product.AddVariable(v)
}

// satisfy is the shared planner/executor core behind GetDerived,
// AddDerived, and source resolution. It returns the resolved variable and
// whether it is a freshly owned ("temporary") allocation as opposed to a
// variable still owned by product — callers that hand the result to
// another owner (a Product, or back to an external caller) must Copy it
// first when temporary is false (§4.2 execution: "Track is_temporary per
// source so originals in the product are never mutated").
func (r *Resolver) satisfy(product *Product, stack *visitStack, g goal) (*Variable, bool, error) {
	key := memoKey(g)
	if hit, ok := stack.memo[key]; ok {
		if hit.err != nil {
			return nil, false, hit.err
		}
		if hit.temporary {
			return hit.v.Copy(), true, nil
		}
		return hit.v, false, nil
	}
	v, temporary, err := r.satisfyUncached(product, stack, g)
	stack.memo[key] = memoEntry{v: v, temporary: temporary, err: err}
	return v, temporary, err
}

// satisfyUncached performs the actual planner/executor work for one goal;
// see satisfy for the memoization wrapper around it.
func (r *Resolver) satisfyUncached(product *Product, stack *visitStack, g goal) (*Variable, bool, error) {
	// Step 1: cheap path (§4.2 step 1).
	if v := product.Variable(g.name); v != nil && v.HasDimensionKinds(dimKindsOf(g.dims)) && independentLengthsMatch(v.Dimensions, g.dims) {
		return r.coerceGoal(v, g, false)
	}

	// Step 2: registry search (§4.2 step 2).
	candidates, ok := r.Registry.Lookup(g.name)
	if !ok {
		return nil, false, &Error{Kind: VariableNotFound, Message: g.name}
	}

	var lastErr error
	for _, c := range candidates {
		if c.Enabled != nil && !c.Enabled() {
			r.logger().WithField("conversion", g.name).Debug("candidate disabled, skipping")
			continue
		}
		if !candidateMatchesGoal(c, g) {
			continue
		}
		if stack.onStack(g.name, c.Rank()) {
			r.logger().WithField("conversion", g.name).WithField("rank", c.Rank()).Debug("candidate already on recursion stack, skipping")
			continue
		}

		stack.push(g.name, c.Rank())
		sources, serr := r.resolveSources(product, stack, c)
		stack.pop()
		if serr != nil {
			lastErr = serr
			continue
		}

		out, cerr := c.Compute(sources)
		if cerr != nil {
			lastErr = cerr
			continue
		}

		coerced, _, err := r.coerceGoal(out, g, true)
		if err != nil {
			lastErr = err
			continue
		}
		return coerced, true, nil
	}

	if lastErr != nil {
		return nil, false, lastErr
	}
	return nil, false, &Error{Kind: VariableNotFound, Message: g.name}
}

// resolveSources resolves every source requirement of c, in declared
// order, each already coerced to its declared type and unit (§4.2
// execution).
func (r *Resolver) resolveSources(product *Product, stack *visitStack, c *Conversion) ([]*Variable, error) {
	out := make([]*Variable, len(c.Sources))
	for i, sig := range c.Sources {
		typ := sig.Type
		// temporary is discarded here: whether v is a cheap-path pointer
		// still owned by product or a freshly derived allocation, it is
		// only ever read by c.Compute, never mutated (compute functions
		// are contractually pure, §3's conversion-descriptor invariant) —
		// so a live product-owned source is safe to hand over unguarded.
		v, _, err := r.satisfy(product, stack, goal{name: sig.Name, typ: &typ, unit: sig.Unit, dims: sig.Dims})
		if err != nil {
			return nil, &Error{Kind: VariableNotFound, Message: fmt.Sprintf("source %q of conversion for %q", sig.Name, c.Output.Name), Cause: err}
		}
		out[i] = v
	}
	return out, nil
}

// coerceGoal applies g's requested type/unit to v, cloning first only if
// v is not already an owned ("temporary") allocation and a coercion is
// actually needed.
func (r *Resolver) coerceGoal(v *Variable, g goal, temporary bool) (*Variable, bool, error) {
	needsType := g.typ != nil && v.ElemType != *g.typ
	needsUnit := g.unit != "" && v.Unit != g.unit
	if !needsType && !needsUnit {
		return v, temporary, nil
	}
	out := v
	if !temporary {
		out = v.Copy()
		temporary = true
	}
	if needsType {
		if err := out.ConvertType(*g.typ); err != nil {
			return nil, false, err
		}
	}
	if needsUnit {
		if err := out.ConvertUnit(g.unit, r.Units); err != nil {
			return nil, false, err
		}
	}
	return out, temporary, nil
}
