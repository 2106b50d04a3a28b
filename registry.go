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

	"github.com/Knetic/govaluate"
)

// MaxSources bounds the number of source requirements a single Conversion
// may declare (§3: "bounded by a small compile-time constant").
const MaxSources = 8

// DimSpec describes one axis of a requirement or output signature: a kind,
// and an optional length. A nil length leaves the length unconstrained:
// non-Independent axes take theirs from the product's dimension table, and
// an Independent axis with a nil length matches any length.
type DimSpec struct {
	Kind   DimensionKind
	Length *int
}

// Signature describes the shape a requirement or a produced variable must
// have: a name, element type, optional unit, and ordered axis specs.
type Signature struct {
	Name     string
	Type     ElementType
	Unit     string // empty means "unit not constrained"
	Dims     []DimSpec
}

// DimKinds returns the signature's ordered dimension kinds.
func (s Signature) DimKinds() DimSignature {
	out := make(DimSignature, len(s.Dims))
	for i, d := range s.Dims {
		out[i] = d.Kind
	}
	return out
}

// ComputeFunc is a pure function taking the resolved, already-coerced
// source variables (in declared order) and producing a newly allocated
// output variable matching the descriptor's Output signature.
type ComputeFunc func(sources []*Variable) (*Variable, error)

// Conversion is one registered rule producing Output.Name from zero or
// more Sources, gated by an optional Enabled predicate.
type Conversion struct {
	Output  Signature
	Sources []Signature
	// Enabled is the dynamic capability gate (§3, §4.2 step 2a). Nil
	// means always enabled.
	Enabled func() bool
	Note    string
	Compute ComputeFunc

	rank int // position within Lookup(Output.Name)'s list; set by Registry.Register
}

// Rank is the conversion's position within its per-name list, used by the
// planner as the skip-mask index and as the tie-break ordering (§4.2).
func (c *Conversion) Rank() int { return c.rank }

// EnabledFromExpression compiles expr once with github.com/Knetic/govaluate
// and returns an Enabled predicate that evaluates it against env on every
// call, coercing a non-bool result to false. This is how harpcore backs
// declarative capability gates like "has_avk && has_apriori" without each
// registration hand-writing a closure.
func EnabledFromExpression(expr string, env map[string]interface{}) (func() bool, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, &Error{Kind: InvalidArgument, Message: fmt.Sprintf("invalid capability expression %q", expr), Cause: err}
	}
	return func() bool {
		result, err := e.Evaluate(env)
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		return ok && b
	}, nil
}

// Registry is a mapping from output variable name to an ordered list of
// Conversions producing it. It is constructed once (conventionally from
// package init functions, mirroring the teacher's Mechanism-per-package
// registration pattern in science/chem/simplechem) and is read-only during
// resolver execution (§3, §5).
type Registry struct {
	byName map[string][]*Conversion
	order  []string // insertion order of first-seen names, for Iter/ListConversions
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string][]*Conversion)}
}

// Register appends a Conversion to the registry's per-name list for
// c.Output.Name, returning an error if the name is empty or the number of
// sources exceeds MaxSources.
func (r *Registry) Register(c *Conversion) error {
	if c.Output.Name == "" {
		return &Error{Kind: InvalidName, Message: "conversion output name must be non-empty"}
	}
	if len(c.Sources) > MaxSources {
		return &Error{Kind: InvalidArgument, Message: fmt.Sprintf("conversion for %q declares %d sources, exceeding MaxSources=%d", c.Output.Name, len(c.Sources), MaxSources)}
	}
	if c.Compute == nil {
		return &Error{Kind: InvalidArgument, Message: fmt.Sprintf("conversion for %q has no compute function", c.Output.Name)}
	}
	list := r.byName[c.Output.Name]
	c.rank = len(list)
	if len(list) == 0 {
		r.order = append(r.order, c.Output.Name)
	}
	r.byName[c.Output.Name] = append(list, c)
	return nil
}

// Lookup returns the ordered list of conversions registered for name, or
// (nil, false) if none are registered.
func (r *Registry) Lookup(name string) ([]*Conversion, bool) {
	l, ok := r.byName[name]
	return l, ok
}

// Iter returns every conversion in the registry, grouped by name in the
// order names were first registered and, within a name, in registration
// (rank) order.
func (r *Registry) Iter() []*Conversion {
	var out []*Conversion
	for _, name := range r.order {
		out = append(out, r.byName[name]...)
	}
	return out
}

// DefaultRegistry is the process-wide registry conventionally populated by
// package init functions (§3: "constructed once at startup by module init
// functions, and is treated as read-only during resolver execution").
// Reimplementations that need concurrent, disjoint registries should
// construct their own *Registry with NewRegistry instead of relying on
// this global, per the design notes' concurrency guidance.
var DefaultRegistry = NewRegistry()

// Register registers c on DefaultRegistry.
func Register(c *Conversion) error {
	return DefaultRegistry.Register(c)
}
